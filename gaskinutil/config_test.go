/*
Copyright © 2025 the Gaskin authors.
This file is part of Gaskin.

Gaskin is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Gaskin is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Gaskin.  If not, see <http://www.gnu.org/licenses/>.
*/

package gaskinutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const configTemplate = `
MechanismFile = "${GASKIN_TEST_DIR}/mechanism.toml"
StateFile = "${GASKIN_TEST_DIR}/states.nc"
OutputFile = "${GASKIN_TEST_DIR}/out/sources.nc"
Processors = 1

[OutputVariables]
STotal = "S_A + S_B"
ATotal = "sum(S_A)"
`

func TestReadConfigFile(t *testing.T) {
	dir := t.TempDir()
	os.Setenv("GASKIN_TEST_DIR", dir)
	defer os.Unsetenv("GASKIN_TEST_DIR")
	path := filepath.Join(dir, "gaskin.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := ReadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := dir + "/mechanism.toml"; cfg.MechanismFile != want {
		t.Errorf("MechanismFile = %q, want %q", cfg.MechanismFile, want)
	}
	if want := dir + "/states.nc"; cfg.StateFile != want {
		t.Errorf("StateFile = %q, want %q", cfg.StateFile, want)
	}
	if want := dir + "/out/sources.log"; cfg.LogFile != want {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, want)
	}
	if cfg.Processors != 1 {
		t.Errorf("Processors = %d, want 1", cfg.Processors)
	}
	if got := cfg.OutputVariables["STotal"]; got != "S_A + S_B" {
		t.Errorf("OutputVariables[STotal] = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "out")); err != nil {
		t.Errorf("the output directory was not created: %v", err)
	}
}

// Line breaks inside output variable expressions turn into spaces so
// that multi-line TOML strings parse as single expressions.
func TestReadConfigFileMultiline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gaskin.toml")
	contents := "MechanismFile = \"m.toml\"\n" +
		"StateFile = \"s.nc\"\n" +
		"OutputFile = \"" + dir + "/o.nc\"\n" +
		"[OutputVariables]\n" +
		"STotal = \"\"\"\nS_A +\nS_B\"\"\"\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := ReadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.OutputVariables["STotal"]; got != "S_A + S_B" {
		t.Errorf("OutputVariables[STotal] = %q, want %q", got, "S_A + S_B")
	}
}

func TestReadConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadConfigFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("missing configuration file: expected an error")
	}

	cases := []struct {
		name, contents, want string
	}{
		{"no mechanism", "StateFile = \"s.nc\"\nOutputFile = \"o.nc\"", "mechanism file"},
		{"no state", "MechanismFile = \"m.toml\"\nOutputFile = \"o.nc\"", "state file"},
		{"no output", "MechanismFile = \"m.toml\"\nStateFile = \"s.nc\"", "output file"},
		{"bad toml", "MechanismFile = [", "parsing"},
	}
	for _, c := range cases {
		path := filepath.Join(dir, "gaskin.toml")
		if err := os.WriteFile(path, []byte(c.contents), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := ReadConfigFile(path)
		if err == nil {
			t.Errorf("%s: expected an error", c.name)
		} else if !strings.Contains(err.Error(), c.want) {
			t.Errorf("%s: error %q does not mention %q", c.name, err, c.want)
		}
	}
}

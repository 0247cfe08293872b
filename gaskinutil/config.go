/*
Copyright © 2024 the Gaskin authors.
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
	"bufio"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ConfigData holds the contents of the configuration file.
type ConfigData struct {
	// MechanismFile is the location of the TOML mechanism description
	// holding the species, the reactions with their rate parameters,
	// and optionally the NASA polynomial fits of the species. It can
	// be a local path or an http:// or https:// address, and it can
	// include environment variables.
	MechanismFile string

	// StateFile is the location of the NetCDF file holding the
	// thermodynamic states to react: a temperature variable [K], a
	// density variable [kg/m³], and one mass fraction variable
	// Y_<species> per species in the mechanism, all on the same grid.
	// It can include environment variables.
	StateFile string

	// OutputFile is the location where the NetCDF output file should
	// be written. It can include environment variables.
	OutputFile string

	// LogFile is the location where the log file should be written.
	// If it is left blank, the log will be written to OutputFile with
	// the extension changed to .log.
	LogFile string

	// OutputVariables maps names of extra output variables to
	// expressions for calculating them. Expressions can refer to the
	// mass sources S_<species>, the state variables temperature,
	// density, and Y_<species>, and other output variables. For
	// example:
	//   [OutputVariables]
	//   SHOx = "S_OH + S_HO2"
	// Expressions that evaluate to a single number, such as
	// "sum(S_OH)", are reported in the log instead of being written
	// to the output file.
	OutputVariables map[string]string

	// Processors is the number of worker goroutines to compute with.
	// Zero or less means one worker per available CPU.
	Processors int
}

// ReadConfigFile reads and parses a TOML configuration file.
func ReadConfigFile(filename string) (config *ConfigData, err error) {
	// Open the configuration file
	var (
		file  *os.File
		bytes []byte
	)
	file, err = os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("the configuration file you have specified, %v, does not "+
			"appear to exist. Please check the file name and location and "+
			"try again.\n", filename)
	}
	reader := bufio.NewReader(file)
	bytes, err = ioutil.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("problem reading configuration file: %v", err)
	}

	config = new(ConfigData)
	_, err = toml.Decode(string(bytes), config)
	if err != nil {
		return nil, fmt.Errorf(
			"there has been an error parsing the configuration file: %v\n", err)
	}

	for k, v := range config.OutputVariables {
		v = strings.Replace(v, "\r\n", " ", -1)
		v = strings.Replace(v, "\n", " ", -1)
		config.OutputVariables[k] = os.ExpandEnv(v)
	}

	config.MechanismFile = os.ExpandEnv(config.MechanismFile)
	config.StateFile = os.ExpandEnv(config.StateFile)
	config.OutputFile = os.ExpandEnv(config.OutputFile)
	config.LogFile = os.ExpandEnv(config.LogFile)

	if config.MechanismFile == "" {
		return nil, fmt.Errorf("you need to specify a mechanism file in the " +
			"configuration file (for example: " +
			"\"MechanismFile\":\"mechanism.toml\")")
	}

	if config.StateFile == "" {
		return nil, fmt.Errorf("you need to specify a state file in the " +
			"configuration file (for example: " +
			"\"StateFile\":\"states.nc\")")
	}

	if config.OutputFile == "" {
		return nil, fmt.Errorf("you need to specify an output file in the " +
			"configuration file (for example: " +
			"\"OutputFile\":\"sources.nc\")")
	}

	if config.LogFile == "" {
		config.LogFile = strings.TrimSuffix(config.OutputFile, filepath.Ext(config.OutputFile)) + ".log"
	}

	outdir := filepath.Dir(config.OutputFile)
	err = os.MkdirAll(outdir, os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("problem creating output directory: %v", err)
	}
	return config, nil
}

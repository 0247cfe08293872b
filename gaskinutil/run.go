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
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ctessum/sparse"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/farscape-project/gaskin/mech/arrhenius"
	"github.com/farscape-project/gaskin/reactor"
)

func init() {
	RootCmd.AddCommand(runCmd)
}

// runCmd is a command that computes mass sources for the configured
// state file.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Compute mass sources",
	Long: "Load the mechanism and the state file named in the configuration " +
		"file, compute the mass source density of every species in every " +
		"grid cell, and write the results to the output file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(Config)
	},
}

// Run computes the mass sources specified by config.
func Run(config *ConfigData) error {
	logfile, err := os.Create(config.LogFile)
	if err != nil {
		return fmt.Errorf("gaskin: problem creating log file: %v", err)
	}
	defer logfile.Close()
	log := logrus.New()
	log.Out = io.MultiWriter(os.Stdout, logfile)

	mech, err := arrhenius.LoadPath(config.MechanismFile, log)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"mechanism":   mechanismLabel(mech, config.MechanismFile),
		"fingerprint": mech.Fingerprint(),
	}).Info("loaded mechanism")

	// Reversible reactions need the thermodynamic data; mechanisms
	// without reversible reactions run fine without it.
	var thermo reactor.Thermo
	if eval, err := mech.Thermo(); err == nil {
		thermo = eval
	}

	f, err := os.Open(config.StateFile)
	if err != nil {
		return fmt.Errorf("gaskin: problem opening state file: %v", err)
	}
	state, err := reactor.ReadStateField(f, mech.Mixture())
	f.Close()
	if err != nil {
		return err
	}

	sources, err := reactor.ComputeSources(mech, thermo, state, reactor.Config{
		Processors: config.Processors,
		Log:        log,
	})
	if err != nil {
		return err
	}
	sources.Attributes = map[string]string{
		"mechanism":   mechanismLabel(mech, config.MechanismFile),
		"fingerprint": mech.Fingerprint(),
	}

	if len(config.OutputVariables) > 0 {
		o, err := reactor.NewOutputter(config.OutputVariables, nil)
		if err != nil {
			return err
		}
		fields, totals, err := o.Output(outputData(state, sources))
		if err != nil {
			return err
		}
		sources.Derived = fields
		names := make([]string, 0, len(totals))
		for name := range totals {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			log.WithFields(logrus.Fields{
				"name":  name,
				"value": totals[name],
			}).Info("output total")
		}
	}

	w, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("gaskin: problem creating output file: %v", err)
	}
	defer w.Close()
	if err := sources.WriteNetCDF(w); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{"file": config.OutputFile}).Info("wrote mass sources")
	return nil
}

// mechanismLabel identifies a mechanism in logs and file metadata by
// its name, or by the path it was loaded from when it has none.
func mechanismLabel(m *arrhenius.Mechanism, path string) string {
	if m.Name() != "" {
		return m.Name()
	}
	return path
}

// outputData gathers the variables that output expressions can refer
// to: the state fields under the names used in state files and the
// mass sources under S_<species>.
func outputData(state *reactor.StateField, sources *reactor.SourceField) map[string]*sparse.DenseArray {
	data := make(map[string]*sparse.DenseArray, 2*len(sources.Names)+2)
	data[reactor.TemperatureVar] = state.Temperature
	data[reactor.DensityVar] = state.Density
	for i, name := range sources.Names {
		data[reactor.FractionPrefix+name] = state.MassFractions[i]
		data[reactor.SourcePrefix+name] = sources.Sources[name]
	}
	return data
}

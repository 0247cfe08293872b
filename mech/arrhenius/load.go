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

package arrhenius

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cenkalti/backoff"
	"github.com/sirupsen/logrus"

	"github.com/farscape-project/gaskin"
	"github.com/farscape-project/gaskin/thermo/nasa7"
)

// mechanismFile mirrors the TOML description of a mechanism. Species
// are listed in mixture order; each reaction gives its equation, its
// Arrhenius parameters, and optionally its third-body efficiencies by
// species name. Species may carry NASA polynomial fits in Thermo
// blocks; either all species carry them or none do.
type mechanismFile struct {
	// Name optionally identifies the mechanism.
	Name string

	// MolarMassUnits optionally declares the units the molar masses
	// are written in. The only accepted value is the canonical form
	// of gaskin.MolarMassDim; declarations in other units are
	// rejected rather than converted.
	MolarMassUnits string

	Species  []speciesFile
	Reaction []reactionFile
}

// massBalanceTolerance is the absolute mass defect [kg/kmol] above
// which a loaded reaction draws a warning. Rounding in consistent
// molar mass tables stays many orders of magnitude below it.
const massBalanceTolerance = 1e-6

type speciesFile struct {
	Name      string
	MolarMass float64
	Thermo    []thermoFile
}

type thermoFile struct {
	Tmin   float64
	Tmax   float64
	Coeffs []float64
}

type reactionFile struct {
	Equation     string
	A            float64
	Beta         float64
	Ea           float64
	Efficiencies map[string]float64
}

// Load reads a TOML mechanism description.
func Load(r io.Reader) (*Mechanism, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("arrhenius: reading mechanism: %v", err)
	}
	var f mechanismFile
	if _, err := toml.Decode(string(b), &f); err != nil {
		return nil, fmt.Errorf("arrhenius: decoding mechanism: %v", err)
	}

	if f.MolarMassUnits != "" && f.MolarMassUnits != gaskin.MolarMassDim.String() {
		return nil, fmt.Errorf("arrhenius: molar masses must be in %q but the mechanism declares %q",
			gaskin.MolarMassDim.String(), f.MolarMassUnits)
	}

	species := make([]gaskin.Species, len(f.Species))
	for i, s := range f.Species {
		species[i] = gaskin.Species{Name: s.Name, MolarMass: s.MolarMass}
	}
	mix, err := gaskin.NewMixture(species)
	if err != nil {
		return nil, err
	}

	reactions := make([]gaskin.Reaction, len(f.Reaction))
	params := make([]RateParams, len(f.Reaction))
	for i, rf := range f.Reaction {
		rxn, err := ParseEquation(rf.Equation, mix)
		if err != nil {
			return nil, err
		}
		if len(rf.Efficiencies) > 0 {
			if !rxn.ThirdBody {
				return nil, fmt.Errorf("arrhenius: reaction %q has third-body efficiencies but no M in its equation", rf.Equation)
			}
			rxn.Efficiencies = make(map[int]float64, len(rf.Efficiencies))
			for name, eff := range rf.Efficiencies {
				j := mix.SpeciesIndex(name)
				if j < 0 {
					return nil, fmt.Errorf("arrhenius: reaction %q has an efficiency for unknown species %q", rf.Equation, name)
				}
				rxn.Efficiencies[j] = eff
			}
		}
		reactions[i] = rxn
		params[i] = RateParams{A: rf.A, Beta: rf.Beta, Ea: rf.Ea}

		if defect := rxn.MassBalance(mix); math.Abs(defect) > massBalanceTolerance {
			logrus.WithFields(logrus.Fields{
				"reaction": rf.Equation,
				"defect":   defect,
			}).Warn("arrhenius: reaction does not conserve mass")
		}
	}

	m, err := New(mix, reactions, params)
	if err != nil {
		return nil, err
	}
	m.name = f.Name

	var haveThermo bool
	for _, s := range f.Species {
		if len(s.Thermo) > 0 {
			haveThermo = true
			break
		}
	}
	if haveThermo {
		fits := make([][]nasa7.Interval, len(f.Species))
		for i, s := range f.Species {
			if len(s.Thermo) == 0 {
				return nil, fmt.Errorf("arrhenius: species %s has no thermodynamic data but other species do", s.Name)
			}
			for _, tf := range s.Thermo {
				if len(tf.Coeffs) != 7 {
					return nil, fmt.Errorf("arrhenius: species %s has a thermo interval with %d coefficients, want 7", s.Name, len(tf.Coeffs))
				}
				iv := nasa7.Interval{Tmin: tf.Tmin, Tmax: tf.Tmax}
				copy(iv.Coeffs[:], tf.Coeffs)
				fits[i] = append(fits[i], iv)
			}
		}
		// Check the fits now so Thermo can only fail when data is absent.
		if _, err := nasa7.NewEvaluator(mix, fits); err != nil {
			return nil, err
		}
		m.thermo = fits
	}
	return m, nil
}

// LoadFile reads a TOML mechanism description from a file. The path
// can include environment variables.
func LoadFile(filename string) (*Mechanism, error) {
	f, err := os.Open(os.ExpandEnv(filename))
	if err != nil {
		return nil, fmt.Errorf("arrhenius: %v", err)
	}
	defer f.Close()
	return Load(f)
}

// LoadPath loads a mechanism from a local path or, if path starts with
// http:// or https://, downloads it, retrying transient failures with
// exponential backoff. Retries are reported to log; if log is nil the
// logrus standard logger is used.
func LoadPath(path string, log logrus.FieldLogger) (*Mechanism, error) {
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		return LoadFile(path)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	var m *Mechanism
	err := backoff.RetryNotify(
		func() error {
			resp, err := http.Get(path)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("arrhenius: downloading %s: %s", path, resp.Status)
			}
			mech, err := Load(resp.Body)
			if err != nil {
				// A malformed mechanism won't get better by retrying.
				return backoff.Permanent(err)
			}
			m = mech
			return nil
		},
		backoff.NewExponentialBackOff(),
		func(err error, d time.Duration) {
			log.WithFields(logrus.Fields{
				"path": path,
				"wait": d,
			}).Warnf("retrying mechanism download: %v", err)
		},
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

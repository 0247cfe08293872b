package gaskinutil

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/farscape-project/gaskin/mech/arrhenius"
)

func init() {
	RootCmd.AddCommand(mechCmd)
}

// mechCmd is a command that loads a mechanism and prints a summary of
// it.
var mechCmd = &cobra.Command{
	Use:   "mech [mechanism file]",
	Short: "Summarize a mechanism",
	Long: "Load a mechanism, check it for consistency, and print its species " +
		"and reactions. With no argument, the mechanism named in the " +
		"configuration file is used.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return Mech(args[0], os.Stdout)
		}
		return Mech(Config.MechanismFile, os.Stdout)
	},
	// The configuration file is only consulted when no mechanism is
	// named on the command line.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return nil
		}
		return Startup(configFile)
	},
}

// Mech loads the mechanism at path and writes a summary of its
// contents to out.
func Mech(path string, out io.Writer) error {
	mech, err := arrhenius.LoadPath(path, nil)
	if err != nil {
		return err
	}
	mix := mech.Mixture()

	fmt.Fprintf(out, "Mechanism: %s\n", mechanismLabel(mech, path))
	fmt.Fprintf(out, "Fingerprint: %s\n", mech.Fingerprint())
	if _, err := mech.Thermo(); err == nil {
		fmt.Fprintln(out, "Thermodynamic data: present")
	} else {
		fmt.Fprintln(out, "Thermodynamic data: absent")
	}

	fmt.Fprintf(out, "\n%d species:\n", mix.NSpecies())
	w := tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "name\tmolar mass [kg/kmol]")
	for i := 0; i < mix.NSpecies(); i++ {
		s := mix.Species(i)
		fmt.Fprintf(w, "%s\t%g\n", s.Name, s.MolarMass)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d reactions:\n", mech.NReactions())
	w = tabwriter.NewWriter(out, 0, 8, 1, '\t', 0)
	fmt.Fprintln(w, "equation\tA\tβ\tEa [J/kmol]\tmass defect [kg/kmol]")
	for i := 0; i < mech.NReactions(); i++ {
		r := mech.Reaction(i)
		p := mech.RateParams(i)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\n", r.Equation, p.A, p.Beta, p.Ea, r.MassBalance(mix))
	}
	w.Flush()
	return nil
}

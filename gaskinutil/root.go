// Package gaskinutil holds the commands of the gaskin command-line
// interface.
package gaskinutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/farscape-project/gaskin"
)

const year = "2025"

var (
	configFile string

	// Config holds the global configuration data.
	Config *ConfigData
)

// RootCmd is the main command.
var RootCmd = &cobra.Command{
	Use:   "gaskin",
	Short: "A gas-phase chemical kinetics calculator.",
	Long: `Gaskin computes the chemical mass source density of every species
          in a reaction mechanism over gridded thermodynamic states.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return Startup(configFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		completedMessage()
	},
}

// Startup reads the configuration file and prints a welcome message.
func Startup(configFile string) error {
	var err error
	Config, err = ReadConfigFile(configFile)
	if err != nil {
		return err
	}

	fmt.Println("\n" +
		"------------------------------------------------\n" +
		"                    Welcome!\n" +
		"          (Gas)-phase chemical (Kin)etics       \n" +
		"                Version " + gaskin.Version + "  \n" +
		"               Copyright 2024-" + year + "      \n" +
		"              the Farscape project              \n" +
		"------------------------------------------------")
	return nil
}

func completedMessage() {
	fmt.Println("\n" +
		"------------------------------------\n" +
		"          Gaskin Completed!\n" +
		"------------------------------------")
}

func init() {
	RootCmd.AddCommand(versionCmd)

	RootCmd.PersistentFlags().StringVar(&configFile, "config", "./gaskin.toml", "configuration file location")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Gaskin",

	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Gaskin v%s\n", gaskin.Version)
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
	},
}

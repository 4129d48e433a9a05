package cmd

import (
	"github.com/spf13/cobra"

	"github.com/marcus/charview/internal/output"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		return output.JSON(store.Settings())
	},
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		store.Reset()
		if err := store.Flush(); err != nil {
			output.Error("%v", err)
			return err
		}
		output.Info("settings reset to defaults")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

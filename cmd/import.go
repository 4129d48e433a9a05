package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/marcus/charview/internal/output"
)

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Import card JSON files from a directory",
	Long: `Scans a directory for card JSON files and adds them to the library.
Files already present (by content hash) are skipped; unparseable files are
reported and do not abort the scan.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := openLibrary()
		if err != nil {
			output.Error("%v", err)
			return err
		}
		defer lib.Close()

		result, err := lib.ImportDir(context.Background(), args[0])
		if err != nil {
			output.Error("%v", err)
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return output.JSON(result)
		}
		output.Info("imported %d, skipped %d, failed %d",
			result.Imported, result.Skipped, len(result.Failed))
		for _, name := range result.Failed {
			output.Error("  failed: %s", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().Bool("json", false, "Machine-readable JSON")
}

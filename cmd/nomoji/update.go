package nomoji

import (
	"fmt"
	"os"

	"github.com/nomoji/nomoji/internal/update"
	"github.com/spf13/cobra"
)

func init() {
	var checkOnly bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update nomoji to the latest GitHub release",
		RunE: func(_ *cobra.Command, _ []string) error {
			if checkOnly {
				latest, newer, err := update.Check(version, false)
				if err != nil {
					return err
				}
				switch {
				case latest == "":
					fmt.Println("could not determine latest version")
				case newer:
					fmt.Printf("new version available: v%s (current v%s)\n", latest, version)
				default:
					fmt.Printf("up to date (v%s)\n", version)
				}
				return nil
			}
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("self-update failed: %w", err)
			}
			_, _ = fmt.Fprintln(os.Stderr, "updated to latest release")
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check", false, "check for a newer release without installing")
	rootCmd.AddCommand(cmd)
}

package nomoji

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/nomoji/nomoji/internal/audit"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func init() {
	var flagHistPath string
	var flagHistDelete int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past clean and scan runs",
		RunE: func(_ *cobra.Command, _ []string) error {
			abs, _ := filepath.Abs(flagHistPath)
			log := audit.NewLog(abs)
			if flagHistDelete >= 0 {
				if err := log.DeleteRecord(flagHistDelete); err != nil {
					return err
				}
				fmt.Println("Deleted record", flagHistDelete)
				return nil
			}
			records, err := log.LoadHistory()
			if err != nil {
				fmt.Println("No run history yet")
				return nil
			}
			if flagJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}
			t := tablewriter.NewWriter(os.Stdout)
			t.Header("WHEN", "MODE", "FILES", "EMOJI", "FAILED", "DURATION")
			for _, r := range records {
				mode := "clean"
				if r.DryRun {
					mode = "scan"
				}
				_ = t.Append(
					r.Timestamp.Format("Jan 2 15:04"),
					mode,
					strconv.Itoa(r.Files),
					strconv.Itoa(r.Removed),
					strconv.Itoa(r.Failed),
					r.Duration,
				)
			}
			return t.Render()
		},
	}
	cmd.Flags().StringVarP(&flagHistPath, "path", "p", ".", "project root")
	cmd.Flags().IntVar(&flagHistDelete, "delete", -1, "delete record at index (0 = most recent)")
	rootCmd.AddCommand(cmd)
}

package nomoji

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nomoji/nomoji/internal/audit"
	"github.com/nomoji/nomoji/internal/config"
	"github.com/nomoji/nomoji/internal/engine"
	"github.com/nomoji/nomoji/internal/report"
	"github.com/nomoji/nomoji/internal/types"
	"github.com/nomoji/nomoji/internal/update"
	"github.com/spf13/cobra"
)

var (
	flagScanPath    string
	flagScanInclude string
	flagScanExclude string
	flagScanMaxB    int64
	flagTable       bool
	flagText        bool
	flagFailIfFound bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Report emoji counts without modifying files",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagScanPath, "path", "p", ".", "path to scan")
	cmd.Flags().StringVar(&flagScanInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagScanExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagScanMaxB, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders (default)")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text columnar format")
	cmd.Flags().BoolVar(&flagFailIfFound, "fail-if-found", false, "exit 1 when any emoji is found")
}

func runScan(cmd *cobra.Command, args []string) error {
	abs, _ := filepath.Abs(flagScanPath)
	// Load configs: CLI > local > global
	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(abs); err == nil {
		lcfg = c
	}

	defaultExcludes := flagDefaultExcludes
	if !cmd.Flags().Changed("default-excludes") {
		if lcfg.DefaultExcludes != nil {
			defaultExcludes = *lcfg.DefaultExcludes
		} else if gcfg.DefaultExcludes != nil {
			defaultExcludes = *gcfg.DefaultExcludes
		}
	}

	paths := []string{abs}
	root := abs
	if len(args) > 0 {
		paths = args
		root = "."
	}
	cfg := engine.Config{
		Paths:           paths,
		Root:            root,
		IncludeGlobs:    pickString(flagScanInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagScanExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagScanMaxB, lcfg.MaxBytes, gcfg.MaxBytes),
		DryRun:          true,
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		NoCache:         pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		DefaultExcludes: defaultExcludes,
	}

	// Friendly banner before scanning
	if !flagJSON && !flagSARIF {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'nomoji update' to upgrade\n", latest)
			}
		}
		if flagSelfUpdate {
			if err := selfUpdate(); err == nil {
				_, _ = fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
				return nil
			}
		}
		_, _ = fmt.Fprintf(os.Stderr, "Scanning %s for emoji...\n", strings.Join(paths, " "))
	}

	// Optional progress bar: simple textual bar
	total, _ := engine.CountTargets(cfg)
	progressed := 0
	if total > 0 && !flagJSON && !flagSARIF && stderrIsTerminal() {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				_, _ = fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := engine.Run(cfg)
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	if cfg.Progress != nil {
		_, _ = fmt.Fprintln(os.Stderr)
	}

	_ = audit.NewLog(abs).LogRun(audit.CreateRunRecord(abs, res.Files, true, res.Duration))

	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor)
	opts := report.PrintOptions{NoColor: noColor, DryRun: true, Duration: res.Duration}
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, res.Files); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Files); err != nil {
			return err
		}
	case flagText:
		report.PrintText(os.Stdout, res.Files, opts)
	case flagTable:
		report.PrintTable(os.Stdout, res.Files, opts)
	default:
		// Default to table format
		report.PrintTable(os.Stdout, res.Files, opts)
	}

	if report.ShouldFail(res.Files) {
		os.Exit(1)
	}
	if flagFailIfFound && types.Summarize(res.Files).Removed > 0 {
		os.Exit(1)
	}
	return nil
}

package nomoji

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/nomoji/nomoji/internal/audit"
	"github.com/nomoji/nomoji/internal/config"
	"github.com/nomoji/nomoji/internal/engine"
	"github.com/nomoji/nomoji/internal/files"
	"github.com/nomoji/nomoji/internal/report"
	"github.com/nomoji/nomoji/internal/scrub"
	"github.com/nomoji/nomoji/internal/update"
	"github.com/spf13/cobra"
)

var (
	flagBackup       bool
	flagBackupSuffix string
	flagInPlace      bool
	flagCleanDryRun  bool
	flagCleanInclude string
	flagCleanExclude string
	flagCleanMaxB    int64
	flagCopy         bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "clean [files...]",
		Short: "Remove emoji from files or stdin",
		Long:  "Remove emoji from the named files or directories. With no arguments or '-', stdin is read and the cleaned text goes to stdout. Without -b or -i, cleaned content goes to stdout and files are left untouched.",
		Args:  cobra.ArbitraryArgs,
		RunE:  runClean,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVarP(&flagBackup, "backup", "b", false, "back up each file before overwriting it")
	cmd.Flags().StringVar(&flagBackupSuffix, "backup-suffix", "", "backup file suffix (default .bak)")
	cmd.Flags().BoolVarP(&flagInPlace, "inplace", "i", false, "overwrite files without a backup")
	cmd.Flags().BoolVar(&flagCleanDryRun, "dry-run", false, "count emoji without writing anything")
	cmd.Flags().StringVar(&flagCleanInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagCleanExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagCleanMaxB, "max-bytes", 1<<20, "skip walked files larger than this")
	cmd.Flags().BoolVar(&flagCopy, "copy", false, "copy cleaned stdin to the clipboard instead of stdout")
}

func runClean(cmd *cobra.Command, args []string) error {
	if flagBackup && flagInPlace {
		return fmt.Errorf("--backup and --inplace are mutually exclusive")
	}

	stdin := len(args) == 0
	for _, a := range args {
		if a == "-" {
			stdin = true
		}
	}
	if stdin {
		if len(args) > 1 {
			return fmt.Errorf("'-' cannot be combined with file arguments")
		}
		if flagBackup || flagInPlace {
			return fmt.Errorf("write-back modes do not apply to stdin")
		}
		return cleanStdin(os.Stdin, os.Stdout)
	}
	if flagCopy {
		return fmt.Errorf("--copy only applies to stdin ('-')")
	}

	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal("."); err == nil {
		lcfg = c
	}

	suffix := pickString(flagBackupSuffix, lcfg.BackupSuffix, gcfg.BackupSuffix)
	if suffix == "" {
		suffix = files.DefaultBackupSuffix
	}
	defaultExcludes := flagDefaultExcludes
	if !cmd.Flags().Changed("default-excludes") {
		if lcfg.DefaultExcludes != nil {
			defaultExcludes = *lcfg.DefaultExcludes
		} else if gcfg.DefaultExcludes != nil {
			defaultExcludes = *gcfg.DefaultExcludes
		}
	}

	cfg := engine.Config{
		Paths:           args,
		Root:            ".",
		IncludeGlobs:    pickString(flagCleanInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagCleanExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickInt64(flagCleanMaxB, lcfg.MaxBytes, gcfg.MaxBytes),
		Backup:          flagBackup,
		BackupSuffix:    suffix,
		InPlace:         flagInPlace,
		DryRun:          flagCleanDryRun,
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		NoCache:         pickBool(flagNoCache, lcfg.NoCache, gcfg.NoCache),
		DefaultExcludes: defaultExcludes,
	}
	writeBack := flagBackup || flagInPlace || flagCleanDryRun
	if !writeBack {
		// JSON owns stdout; the cleaned content is dropped in that combination.
		if flagJSON {
			cfg.Output = io.Discard
		} else {
			cfg.Output = os.Stdout
		}
	}

	if !flagJSON {
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
	}

	// Progress bar only when stdout is free for it and stderr is a terminal
	total, _ := engine.CountTargets(cfg)
	progressed := 0
	if writeBack && total > 0 && !flagJSON && stderrIsTerminal() {
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
		return fmt.Errorf("clean error: %w", err)
	}
	if cfg.Progress != nil {
		_, _ = fmt.Fprintln(os.Stderr)
	}

	_ = audit.NewLog(".").LogRun(audit.CreateRunRecord(".", res.Files, flagCleanDryRun, res.Duration))

	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) || !stderrIsTerminal()
	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.Files); err != nil {
			return err
		}
	} else {
		// Stdout carries cleaned content; the report always goes to stderr.
		report.PrintText(os.Stderr, res.Files, report.PrintOptions{
			NoColor:  noColor,
			DryRun:   flagCleanDryRun,
			Duration: res.Duration,
		})
	}

	if report.ShouldFail(res.Files) {
		os.Exit(1)
	}
	return nil
}

// cleanStdin scrubs one stream: stdin to stdout (or the clipboard), with the
// removal count reported on stderr.
func cleanStdin(in io.Reader, out io.Writer) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	cleaned, removed, err := scrub.ScrubBytes(data)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error: stdin:", err)
		os.Exit(1)
	}
	if flagCopy {
		if err := clipboard.WriteAll(cleaned); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stderr, "Removed %d emoji (copied to clipboard)\n", removed)
		return nil
	}
	if _, err := io.WriteString(out, cleaned); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(os.Stderr, "Removed %d emoji\n", removed)
	return nil
}

package nomoji

import (
	"fmt"
	"path/filepath"

	"github.com/nomoji/nomoji/internal/engine"
	"github.com/nomoji/nomoji/internal/tui"
	"github.com/nomoji/nomoji/internal/types"
	"github.com/spf13/cobra"
)

var flagTUIPath string

func init() {
	cmd := &cobra.Command{
		Use:   "tui [paths...]",
		Short: "Review and clean files interactively",
		RunE:  runTUI,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagTUIPath, "path", "p", ".", "path to scan")
}

func runTUI(_ *cobra.Command, args []string) error {
	abs, _ := filepath.Abs(flagTUIPath)
	paths := []string{abs}
	root := abs
	if len(args) > 0 {
		paths = args
		root = "."
	}

	scanCfg := engine.Config{
		Paths:           paths,
		Root:            root,
		DryRun:          true,
		MaxBytes:        1 << 20,
		Threads:         flagThreads,
		NoCache:         flagNoCache,
		DefaultExcludes: flagDefaultExcludes,
	}

	rescan := func() ([]types.FileResult, error) {
		res, err := engine.Run(scanCfg)
		if err != nil {
			return nil, err
		}
		return res.Files, nil
	}

	apply := func(paths []string) ([]types.FileResult, error) {
		res, err := engine.Run(engine.Config{
			Paths:   paths,
			Root:    root,
			InPlace: true,
			Threads: flagThreads,
			NoCache: true,
		})
		if err != nil {
			return nil, err
		}
		return res.Files, nil
	}

	initial, err := rescan()
	if err != nil {
		return fmt.Errorf("scan error: %w", err)
	}
	return tui.Run(initial, rescan, apply)
}

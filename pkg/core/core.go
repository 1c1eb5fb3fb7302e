package core

import (
	"github.com/nomoji/nomoji/internal/engine"
	"github.com/nomoji/nomoji/internal/scrub"
	"github.com/nomoji/nomoji/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Config = engine.Config
type FileResult = types.FileResult
type Result = engine.Result

// Clean strips emoji from a string and returns the cleaned text with the
// number of sequences removed. Composed sequences count once.
func Clean(s string) (string, int) {
	return scrub.Scrub(s)
}

// Count reports how many emoji sequences Clean would remove.
func Count(s string) int { return scrub.Count(s) }

// Run is the stable entrypoint for other programs: it processes cfg.Paths
// and returns per-file results.
func Run(cfg Config) (Result, error) {
	return engine.Run(cfg)
}

// Scan runs without writing anything, regardless of the write-mode fields
// in cfg.
func Scan(cfg Config) ([]FileResult, error) {
	cfg.DryRun = true
	cfg.Backup = false
	cfg.InPlace = false
	cfg.Output = nil
	res, err := engine.Run(cfg)
	if err != nil {
		return nil, err
	}
	return res.Files, nil
}

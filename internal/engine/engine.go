package engine

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	"github.com/nomoji/nomoji/internal/cache"
	"github.com/nomoji/nomoji/internal/files"
	"github.com/nomoji/nomoji/internal/ignore"
	"github.com/nomoji/nomoji/internal/scrub"
	"github.com/nomoji/nomoji/internal/types"
)

// Config controls a clean run: input selection, write mode, and performance.
type Config struct {
	// Paths are the files and directories named on the command line.
	// Directories are walked; files are processed as given.
	Paths        []string
	Root         string // base for cache and .nomojiignore lookup; "." when empty
	IncludeGlobs string // comma-separated, doublestar semantics
	ExcludeGlobs string
	MaxBytes     int64 // walked files larger than this are skipped

	Backup       bool // copy to <file><suffix> before overwriting
	BackupSuffix string
	InPlace      bool // overwrite without a backup
	DryRun       bool // count only, never write

	// Output receives cleaned content in input order when no write-back mode
	// is selected (the piped/stdout mode). Ignored for backup/in-place/dry.
	Output io.Writer

	Threads         int
	NoCache         bool
	DefaultExcludes bool
	Progress        func()
}

// Result contains per-file outcomes and run timing.
type Result struct {
	Files    []types.FileResult
	Duration time.Duration
}

type target struct {
	path     string // path to open
	key      string // display and cache key (slash-separated)
	explicit bool   // named directly on the command line
}

type outcome struct {
	res       types.FileResult
	cleaned   []byte // populated in stdout mode
	cleanHash string // content hash when the file turned out emoji-free
}

// Run processes every target per cfg. Each file is an independent unit of
// work; failures are recorded in the result and never abort the run.
func Run(cfg Config) (Result, error) {
	started := time.Now()
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}

	ign, _ := ignore.Load(filepath.Join(cfg.Root, ".nomojiignore"))
	targets, err := collectTargets(cfg, ign)
	if err != nil {
		return Result{}, err
	}

	var db cache.DB
	if !cfg.NoCache {
		db, _ = cache.Load(cfg.Root)
	} else {
		db.Entries = map[string]string{}
	}

	outcomes := make([]outcome, len(targets))
	jobs := make(chan int)
	var wg sync.WaitGroup
	var progressMu sync.Mutex
	for w := 0; w < cfg.Threads; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = processOne(cfg, targets[i], db)
				if cfg.Progress != nil {
					progressMu.Lock()
					cfg.Progress()
					progressMu.Unlock()
				}
			}
		}()
	}
	for i := range targets {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var result Result
	result.Files = make([]types.FileResult, 0, len(outcomes))
	updated := map[string]string{}
	for i, o := range outcomes {
		result.Files = append(result.Files, o.res)
		if o.cleanHash != "" {
			updated[targets[i].key] = o.cleanHash
		}
		if cfg.Output != nil && o.cleaned != nil {
			if _, err := cfg.Output.Write(o.cleaned); err != nil {
				result.Files[i].Success = false
				result.Files[i].Error = fmt.Sprintf("write output: %v", err)
			}
		}
	}

	if !cfg.NoCache && len(updated) > 0 {
		if db.Entries == nil {
			db.Entries = map[string]string{}
		}
		for k, v := range updated {
			db.Entries[k] = v
		}
		_ = cache.Save(cfg.Root, db)
	}

	result.Duration = time.Since(started)
	return result, nil
}

func processOne(cfg Config, tgt target, db cache.DB) outcome {
	var o outcome
	o.res = types.FileResult{Path: tgt.key}

	data, err := os.ReadFile(tgt.path)
	if err != nil {
		o.res.Error = fmt.Sprintf("read file: %v", err)
		return o
	}

	if !tgt.explicit {
		// Walked files get content-level gates the walker cannot apply by name.
		if looksBinary(data) || looksNonTextMIME(tgt.path, data) {
			o.res.Success = true
			o.res.Skipped = true
			return o
		}
		if bytes.Contains(data, []byte("nomoji:ignore-file")) {
			o.res.Success = true
			o.res.Skipped = true
			return o
		}
	}

	if !cfg.NoCache && db.Entries != nil && db.Entries[tgt.key] == cache.Hash(data) {
		// Known clean since the last run; in stdout mode the content still
		// has to pass through.
		o.res.Success = true
		o.res.Skipped = true
		if writeMode(cfg) == modeStdout {
			o.cleaned = data
		}
		return o
	}

	cleaned, removed, err := scrub.ScrubBytes(data)
	if err != nil {
		o.res.Error = err.Error()
		return o
	}
	o.res.Removed = removed
	o.res.Success = true

	if removed == 0 {
		o.cleanHash = cache.Hash(data)
	}

	switch writeMode(cfg) {
	case modeDry:
	case modeStdout:
		o.cleaned = []byte(cleaned)
	case modeBackup:
		if removed == 0 {
			return o
		}
		if _, err := files.CreateBackup(tgt.path, cfg.BackupSuffix); err != nil {
			o.res.Success = false
			o.res.Error = fmt.Sprintf("create backup: %v", err)
			return o
		}
		if err := files.Overwrite(tgt.path, []byte(cleaned)); err != nil {
			o.res.Success = false
			o.res.Error = err.Error()
		}
	case modeInPlace:
		if removed == 0 {
			return o
		}
		if err := files.Overwrite(tgt.path, []byte(cleaned)); err != nil {
			o.res.Success = false
			o.res.Error = err.Error()
		}
	}
	return o
}

type mode int

const (
	modeStdout mode = iota
	modeDry
	modeBackup
	modeInPlace
)

func writeMode(cfg Config) mode {
	switch {
	case cfg.DryRun:
		return modeDry
	case cfg.Backup:
		return modeBackup
	case cfg.InPlace:
		return modeInPlace
	default:
		return modeStdout
	}
}

func collectTargets(cfg Config, ign ignore.Matcher) ([]target, error) {
	var out []target
	for _, p := range cfg.Paths {
		st, err := os.Stat(p)
		if err != nil {
			// surface as a per-file failure so the run continues
			out = append(out, target{path: p, key: filepath.ToSlash(p), explicit: true})
			continue
		}
		if !st.IsDir() {
			out = append(out, target{path: p, key: filepath.ToSlash(p), explicit: true})
			continue
		}
		err = Walk(p, cfg, ign, func(path, rel string) {
			out = append(out, target{path: path, key: filepath.ToSlash(path)})
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CountTargets estimates the number of files a run would process. It mirrors
// the selection logic of Run but avoids reading file contents.
func CountTargets(cfg Config) (int, error) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ".nomojiignore"))
	targets, err := collectTargets(cfg, ign)
	if err != nil {
		return 0, err
	}
	return len(targets), nil
}

// allowedByGlobs returns true if the given path is allowed by the include/
// exclude glob configuration. Include globs are comma-separated and, if
// provided, act as a positive filter. Exclude globs are subtracted last.
// Matching uses forward-slash semantics.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 {
		if !matchAnyGlob(rp, includes) {
			return false
		}
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
			out = append(out, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}

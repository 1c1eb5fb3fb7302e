package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/nomoji/nomoji/internal/types"
	"github.com/olekukonko/tablewriter"
)

type PrintOptions struct {
	NoColor  bool
	DryRun   bool
	Duration time.Duration
}

// PrintText renders per-file results in plain columns plus a summary footer,
// sorted by path.
func PrintText(w io.Writer, results []types.FileResult, opts PrintOptions) {
	sortResults(results)
	if len(results) == 0 {
		fmt.Fprintln(w, "Nothing to process")
		return
	}
	maxPath := 4
	for _, r := range results {
		if l := len(r.Path); l > maxPath {
			maxPath = l
		}
	}
	for _, r := range results {
		fmt.Fprintf(w, "%-*s  %4d  %s\n", maxPath, r.Path, r.Removed, statusText(r, opts))
	}
	printFooter(w, results, opts)
}

// PrintTable renders results as a bordered table plus the summary footer.
func PrintTable(w io.Writer, results []types.FileResult, opts PrintOptions) {
	sortResults(results)
	if len(results) == 0 {
		fmt.Fprintln(w, "Nothing to process")
		return
	}
	verb := "REMOVED"
	if opts.DryRun {
		verb = "FOUND"
	}
	t := tablewriter.NewWriter(w)
	t.Header("FILE", "EMOJI "+verb, "STATUS")
	for _, r := range results {
		_ = t.Append(r.Path, strconv.Itoa(r.Removed), statusText(r, opts))
	}
	_ = t.Render()
	printFooter(w, results, opts)
}

func printFooter(w io.Writer, results []types.FileResult, opts PrintOptions) {
	s := types.Summarize(results)
	verb := "removed"
	if opts.DryRun {
		verb = "found"
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Files processed: %d\n", s.Files)
	fmt.Fprintf(w, "Successful: %d\n", s.Succeeded)
	if s.Failed > 0 {
		fmt.Fprintf(w, "Failed: %d\n", s.Failed)
	}
	if s.Skipped > 0 {
		fmt.Fprintf(w, "Skipped: %d\n", s.Skipped)
	}
	fmt.Fprintf(w, "Total emoji %s: %d\n", verb, s.Removed)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Duration: %.2fs\n", opts.Duration.Seconds())
	}
}

// ShouldFail reports whether the process should exit non-zero: at least one
// unit failed.
func ShouldFail(results []types.FileResult) bool {
	for _, r := range results {
		if !r.Success {
			return true
		}
	}
	return false
}

func sortResults(results []types.FileResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Path < results[j].Path
	})
}

func statusText(r types.FileResult, opts PrintOptions) string {
	switch {
	case !r.Success:
		return colorize("ERROR: "+r.Error, "\x1b[31m", opts.NoColor)
	case r.Skipped:
		return "skipped"
	default:
		return colorize("ok", "\x1b[32m", opts.NoColor)
	}
}

func colorize(s, color string, noColor bool) string {
	if noColor {
		return s
	}
	return color + s + "\x1b[0m"
}

package types

// FileResult records the outcome of processing one input unit (a file or
// stdin). Error carries the failure text when Success is false.
type FileResult struct {
	Path    string `json:"path"`
	Removed int    `json:"removed"`
	Skipped bool   `json:"skipped,omitempty"` // known clean or non-text, not scrubbed
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Summary aggregates per-file results for the report footer and exit status.
type Summary struct {
	Files     int `json:"files"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
	Removed   int `json:"removed"`
}

// Summarize folds results into aggregate counts.
func Summarize(results []FileResult) Summary {
	var s Summary
	s.Files = len(results)
	for _, r := range results {
		if r.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
		if r.Skipped {
			s.Skipped++
		}
		s.Removed += r.Removed
	}
	return s
}

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nomoji/nomoji/internal/types"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID string `json:"id"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt `json:"artifactLocation"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

const (
	ruleEmojiPresent    = "emoji-present"
	ruleProcessingError = "processing-error"
)

// WriteSARIF writes scan results as SARIF 2.1.0. Files that still contain
// emoji become warnings; files that could not be processed become errors.
// Clean and skipped files are omitted.
func WriteSARIF(w io.Writer, results []types.FileResult) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:    "nomoji",
			Version: time.Now().Format("2006.01.02"),
			Rules:   []sarifRule{{ID: ruleEmojiPresent}, {ID: ruleProcessingError}},
		}},
	}
	for _, r := range results {
		var res sarifResult
		switch {
		case !r.Success:
			res = sarifResult{
				RuleID:  ruleProcessingError,
				Level:   "error",
				Message: sarifMessage{Text: r.Error},
			}
		case !r.Skipped && r.Removed > 0:
			res = sarifResult{
				RuleID:  ruleEmojiPresent,
				Level:   "warning",
				Message: sarifMessage{Text: fmt.Sprintf("%d emoji sequence(s) found", r.Removed)},
			}
		default:
			continue
		}
		res.Locations = []sarifLoc{{
			PhysicalLocation: sarifPhys{ArtifactLocation: sarifArt{URI: r.Path}},
		}}
		run.Results = append(run.Results, res)
	}
	doc := sarif{Version: "2.1.0", Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

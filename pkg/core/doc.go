// Package core provides a small, stable facade over nomoji's internal engine
// for external integrations. It deliberately re-exports a narrow API surface
// so other tools can depend on a stable import path without exposing internal
// implementation packages.
//
// Example:
//
//	cleaned, n := core.Clean("done ✅")
//	results, err := core.Scan(core.Config{Paths: []string{"."}})
//	if err != nil { /* handle */ }
//	_ = core.MarshalResults(os.Stdout, results)
package core

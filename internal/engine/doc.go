// Package engine contains the per-file orchestration for nomoji. It collects
// target files, scrubs each one on a worker pool, applies the selected write
// mode, and returns structured results. This package is internal; external
// consumers should use the stable facade in pkg/core.
package engine

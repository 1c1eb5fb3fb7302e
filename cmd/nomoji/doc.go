// Package nomoji provides the command-line interface for the nomoji tool.
// It configures subcommands (clean, scan, tui, etc.), parses flags, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/nomoji/nomoji/cmd/nomoji"
//	func main() { nomoji.Execute() }
package nomoji

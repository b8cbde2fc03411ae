// Package watcher implements the polling loop behind peat.
//
// A PathSource yields the current WatchSet, either a fixed list read once at
// startup or the output of a generator command re-run before every check. A
// Detector compares each path's modification time against a cutoff derived
// from the poll interval, and the Loop re-runs the target command through a
// CommandRunner whenever the Detector reports a change.
//
// Everything runs on the caller's goroutine. Only one subprocess exists at a
// time and nothing is ever run concurrently with the loop.
package watcher

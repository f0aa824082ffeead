// Package ui implements the interactive terminal client using bubbletea's Elm architecture.
//
// The TUI mirrors the Rooha web experience as a two-view application:
//  1. [DetectView] : mode selection → text entry or face capture → loading →
//     result with track grid, audio previews, and feedback
//  2. [HistoryView] : aggregate stats plus past sessions
//
// An auth overlay (login/register) can be opened from either view. The (view)
// [Model] implements bubbletea's standard Init/Update/View pattern; async
// work (camera acquisition, analysis submission, history fetches, auth calls)
// flows back in as typed messages.
//
// Two guards keep rapid navigation safe: the capture coordinator owns the
// single camera stream slot and is released on every path out of the detect
// view, and each submission carries a generation number so a stale analysis
// response arriving after navigation or reset is discarded instead of
// rendered.
package ui

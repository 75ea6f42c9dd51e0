// Package tui provides a Bubble Tea terminal user interface for
// trackfetch.
//
// The model sits on top of a running job scheduler: submissions go in
// through a text input, and per-job rows are rendered purely from the
// scheduler's event stream via wait-for-event commands. The UI never
// reads job state directly.
//
// # Keys
//
//   - enter: queue the entered URL as a job
//   - tab: cycle the output format
//   - ctrl+p: toggle playlist mode
//   - ctrl+l: toggle the activity log
//   - esc / ctrl+c: quit
package tui

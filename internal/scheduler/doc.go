// Package scheduler triggers daily report generation and a daily
// reminder at fixed civil times in a configured time zone.
//
// The triggers are evaluated by a ticker loop against wall-clock time in
// the configured *time.Location, so they fire at fixed local times
// regardless of UTC offset changes such as DST.
//
// A process-wide single-flight guard ensures at most one generation run
// proceeds at a time; the guard is cleared on every exit path, including
// failures, so a crashed run can never wedge the scheduler.
package scheduler

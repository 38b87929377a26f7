// Package report renders trending reports as Markdown documents and
// manages their persistence.
//
// # Components
//
//   - Builder: turns an ordered project sequence into a Markdown document
//   - Store: flat-directory persistence with listing, reading, and
//     retention pruning
//
// Documents are named trending-YYYY-MM-DD.md after their calendar date,
// so at most one document exists per date and a lexicographic sort of
// file names is also a chronological sort.
package report

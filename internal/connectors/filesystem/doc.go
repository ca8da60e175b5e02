// Package filesystem implements a remote repository over a local directory
// tree.
//
// Every regular, non-hidden file below the root is a document. Its identity
// is the slash-separated path relative to the root and its change token
// combines modification time and size, so an edit that keeps both unchanged
// goes unnoticed until either moves.
//
// Hidden files and directories (names starting with ".") are skipped, which
// keeps version control metadata and editor swap files out of the index.
//
// With filesystem.watch enabled, [Repository.Watch] reports changes through
// fsnotify. Bursts of events are coalesced so one save triggers one pass.
package filesystem

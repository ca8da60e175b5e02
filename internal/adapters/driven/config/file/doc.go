// Package file provides file-based implementations of driven port interfaces.
//
// ConfigStore reads and writes ~/.sprag/config.toml. Nested TOML tables are
// exposed as dot-notation keys ("sync.workers"), and written back as tables.
package file

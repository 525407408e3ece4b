// Package filesystem provides implementations of types.FS: the real OS
// filesystem and an afero-backed one used for in-memory tests.
package filesystem

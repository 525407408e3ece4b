// Package executor realizes a types.Plan on the filesystem.
//
// Links are created in plan order. When a destination already exists the
// plan's ConflictStrategy decides what happens to it. The first failure
// stops the run; links created before it are left in place.
package executor

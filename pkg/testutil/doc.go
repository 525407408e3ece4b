// Package testutil provides test environments for bub components.
//
// A TestEnvironment holds a package directory and a fake home directory,
// backed either by an in-memory filesystem (EnvMemoryOnly, the default for
// config and planner tests) or by a real temporary directory (EnvIsolated,
// for anything that creates links).
package testutil

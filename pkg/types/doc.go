// Package types defines the core data types shared by the planner and the
// executor: link types, conflict strategies, planned links, the plan itself,
// and the FS interface every filesystem access goes through.
package types

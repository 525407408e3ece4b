// Package planner turns a package directory into a link plan.
//
// The planner resolves the root config, then walks the package depth first
// in lexicographic order. Every directory that carries its own descriptor
// pushes a config onto a matchers.ConfigStack; the stack is unwound as the
// walk leaves that directory's scope.
//
// Key rules:
//   - An excluded name is skipped; an excluded directory is pruned whole
//   - Failing the include test skips an entry but never prunes a directory
//   - A file's destination is its path below the package root joined onto
//     the target of the innermost config
//   - With link_root the package directory itself is the single link
package planner

package testutil

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/arthur-debert/bub/pkg/filesystem"
	"github.com/arthur-debert/bub/pkg/types"
	"github.com/stretchr/testify/require"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment is a package directory plus a home directory on a
// filesystem the test owns. HOME points at HomeDir for the test's duration.
type TestEnvironment struct {
	Root       string
	PackageDir string
	HomeDir    string
	FS         types.FS
	Type       EnvType

	t *testing.T
}

// NewTestEnvironment creates <root>/pkg and <root>/home and points HOME at
// the latter.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}
	switch envType {
	case EnvIsolated:
		root, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		env.Root = root
		env.FS = filesystem.NewOS()
	default:
		env.Root = "/test"
		env.FS = filesystem.NewMemory()
	}

	env.PackageDir = filepath.Join(env.Root, "pkg")
	env.HomeDir = filepath.Join(env.Root, "home")
	require.NoError(t, env.FS.MkdirAll(env.PackageDir, 0755))
	require.NoError(t, env.FS.MkdirAll(env.HomeDir, 0755))
	t.Setenv("HOME", env.HomeDir)

	return env
}

// Path returns the absolute path of rel inside the package directory
func (e *TestEnvironment) Path(rel string) string {
	return filepath.Join(e.PackageDir, filepath.FromSlash(rel))
}

// HomePath returns the absolute path of rel inside the home directory
func (e *TestEnvironment) HomePath(rel string) string {
	return filepath.Join(e.HomeDir, filepath.FromSlash(rel))
}

// AddFile writes a file inside the package, creating parent directories
func (e *TestEnvironment) AddFile(rel, content string) string {
	e.t.Helper()
	return e.WriteFile(e.Path(rel), content)
}

// AddDir creates a directory inside the package
func (e *TestEnvironment) AddDir(rel string) string {
	e.t.Helper()
	path := e.Path(rel)
	require.NoError(e.t, e.FS.MkdirAll(path, 0755))
	return path
}

// AddDescriptor writes a .bub.toml into the package subdirectory rel
// ("" or "." for the package root)
func (e *TestEnvironment) AddDescriptor(rel, content string) string {
	e.t.Helper()
	return e.AddFile(filepath.Join(rel, ".bub.toml"), content)
}

// AddTree creates every entry of tree. Keys ending in "/" are directories,
// everything else a file with the given content.
func (e *TestEnvironment) AddTree(tree map[string]string) {
	e.t.Helper()

	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.HasSuffix(k, "/") {
			e.AddDir(strings.TrimSuffix(k, "/"))
			continue
		}
		e.AddFile(k, tree[k])
	}
}

// WriteFile writes content to an absolute path, creating parents
func (e *TestEnvironment) WriteFile(path, content string) string {
	e.t.Helper()
	require.NoError(e.t, e.FS.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(e.t, e.FS.WriteFile(path, []byte(content), 0644))
	return path
}

// ReadFile returns the content at an absolute path
func (e *TestEnvironment) ReadFile(path string) string {
	e.t.Helper()
	data, err := e.FS.ReadFile(path)
	require.NoError(e.t, err)
	return string(data)
}

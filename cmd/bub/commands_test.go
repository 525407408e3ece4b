package bub_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/bub/cmd/bub"
	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/arthur-debert/bub/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCLIEnv isolates HOME, settings, state and BUB_* variables
func newCLIEnv(t *testing.T) *testutil.TestEnvironment {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	t.Setenv("XDG_STATE_HOME", filepath.Join(env.Root, "state"))
	t.Setenv("BUB_CONFIG_DIR", filepath.Join(env.Root, "config"))
	for _, key := range []string{"BUB_IF_TARGET_EXISTS", "BUB_CREATE_DIRS", "BUB_COLOR", "BUB_FORMAT", "NO_COLOR"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	return env
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := bub.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDryRunLeavesTargetUntouched(t *testing.T) {
	env := newCLIEnv(t)
	env.AddTree(map[string]string{
		"a.txt":     "a",
		"sub/b.txt": "b",
	})

	out, err := execute(t, "--dry-run", env.PackageDir)
	require.NoError(t, err)

	assert.Contains(t, out, "Here's the unboxing plan:")
	assert.Contains(t, out, "a.txt -> a.txt")
	assert.Contains(t, out, "sub/b.txt -> sub/b.txt")
	assert.Contains(t, out, bub.MsgDryRunNotice)

	_, err = os.Lstat(env.HomePath("a.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunCreatesLinks(t *testing.T) {
	env := newCLIEnv(t)
	env.AddTree(map[string]string{
		"a.txt":     "a",
		"sub/b.txt": "b",
		"README.md": "docs",
	})

	out, err := execute(t, env.PackageDir)
	require.NoError(t, err)
	assert.Contains(t, out, "2 links created")

	dest, err := os.Readlink(env.HomePath("sub/b.txt"))
	require.NoError(t, err)
	assert.Equal(t, env.Path("sub/b.txt"), dest)

	_, err = os.Lstat(env.HomePath("README.md"))
	assert.True(t, os.IsNotExist(err), "README is excluded by default")
}

func TestRunFlags(t *testing.T) {
	tests := []struct {
		name  string
		tree  map[string]string
		args  func(env *testutil.TestEnvironment) []string
		check func(t *testing.T, env *testutil.TestEnvironment)
	}{
		{
			name: "target and relative links",
			tree: map[string]string{"init.lua": "x"},
			args: func(env *testutil.TestEnvironment) []string {
				return []string{"-t", env.HomePath(".config/nvim"), "-l", "relative", env.PackageDir}
			},
			check: func(t *testing.T, env *testutil.TestEnvironment) {
				dest, err := os.Readlink(env.HomePath(".config/nvim/init.lua"))
				require.NoError(t, err)
				assert.False(t, filepath.IsAbs(dest))
				assert.Equal(t, env.Path("init.lua"), filepath.Join(env.HomePath(".config/nvim"), dest))
			},
		},
		{
			name: "ignore pattern",
			tree: map[string]string{"keep": "k", "drop.swp": "d"},
			args: func(env *testutil.TestEnvironment) []string {
				return []string{"-i", `\.swp$`, env.PackageDir}
			},
			check: func(t *testing.T, env *testutil.TestEnvironment) {
				_, err := os.Lstat(env.HomePath("keep"))
				assert.NoError(t, err)
				_, err = os.Lstat(env.HomePath("drop.swp"))
				assert.True(t, os.IsNotExist(err))
			},
		},
		{
			name: "link root",
			tree: map[string]string{"file": "f"},
			args: func(env *testutil.TestEnvironment) []string {
				return []string{"-r", "-t", env.HomePath("linked"), env.PackageDir}
			},
			check: func(t *testing.T, env *testutil.TestEnvironment) {
				dest, err := os.Readlink(env.HomePath("linked"))
				require.NoError(t, err)
				assert.Equal(t, env.PackageDir, dest)
			},
		},
		{
			name: "move existing file",
			tree: map[string]string{".vimrc": "new"},
			args: func(env *testutil.TestEnvironment) []string {
				env.WriteFile(env.HomePath(".vimrc"), "old")
				return []string{"-e", "move", env.PackageDir}
			},
			check: func(t *testing.T, env *testutil.TestEnvironment) {
				assert.Equal(t, "old", env.ReadFile(env.HomePath(".vimrc.bak")))
				assert.Equal(t, "new", env.ReadFile(env.HomePath(".vimrc")))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			env.AddTree(tt.tree)

			_, err := execute(t, tt.args(env)...)
			require.NoError(t, err)
			tt.check(t, env)
		})
	}
}

func TestSaveConfigWritesDescriptor(t *testing.T) {
	env := newCLIEnv(t)
	env.AddFile("kitty.conf", "x")

	out, err := execute(t, "-d", "-s", "-t", env.HomePath(".config/kitty"), "-l", "hard", env.PackageDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved config to")

	saved := env.ReadFile(env.Path(".bub.toml"))
	assert.Contains(t, saved, "~/.config/kitty")
	assert.Contains(t, saved, "hard")

	// The saved descriptor is picked up on the next run without flags
	out, err = execute(t, "-d", env.PackageDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Target: ~/.config/kitty")
	assert.Contains(t, out, "(hard link)")
}

func TestSettingsApplyWhenFlagMissing(t *testing.T) {
	env := newCLIEnv(t)
	env.AddFile(".zshrc", "new")
	env.WriteFile(env.HomePath(".zshrc"), "old")

	_, err := execute(t, env.PackageDir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTargetExists))

	t.Setenv("BUB_IF_TARGET_EXISTS", "ignore")
	out, err := execute(t, env.PackageDir)
	require.NoError(t, err)
	assert.Contains(t, out, "1 skipped")
	assert.Equal(t, "old", env.ReadFile(env.HomePath(".zshrc")))

	// An explicit flag beats the setting
	_, err = execute(t, "-e", "overwrite", env.PackageDir)
	require.NoError(t, err)
	assert.Equal(t, "new", env.ReadFile(env.HomePath(".zshrc")))
}

func TestMultiplePackagesStopAtFirstFailure(t *testing.T) {
	env := newCLIEnv(t)
	env.AddFile("a", "a")
	missing := filepath.Join(env.Root, "missing")
	second := filepath.Join(env.Root, "second")
	env.WriteFile(filepath.Join(second, "b"), "b")

	_, err := execute(t, env.PackageDir, missing, second)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotFound))
	assert.Contains(t, err.Error(), "failed to unbox")

	_, statErr := os.Lstat(env.HomePath("a"))
	assert.NoError(t, statErr, "first package was unboxed")
	_, statErr = os.Lstat(env.HomePath("b"))
	assert.True(t, os.IsNotExist(statErr), "later packages are not touched")
}

func TestJSONFormat(t *testing.T) {
	env := newCLIEnv(t)
	env.AddFile("a", "a")

	out, err := execute(t, "-d", "--format", "json", env.PackageDir)
	require.NoError(t, err)
	assert.Contains(t, out, `"conflict_strategy": "error"`)
	assert.NotContains(t, out, bub.MsgDryRunNotice)
}

func TestInvalidFlagValues(t *testing.T) {
	env := newCLIEnv(t)

	for _, args := range [][]string{
		{"-l", "soft", env.PackageDir},
		{"-e", "merge", env.PackageDir},
		{"--color", "sometimes", env.PackageDir},
	} {
		_, err := execute(t, args...)
		assert.Error(t, err, "%v", args)
	}
}

func TestNoPackages(t *testing.T) {
	newCLIEnv(t)
	_, err := execute(t)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestSubcommands(t *testing.T) {
	newCLIEnv(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bub version")

	out, err = execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "bash completion")

	out, err = execute(t, "help", "topics")
	require.NoError(t, err)
	assert.Contains(t, out, "patterns")
	assert.Contains(t, out, "strategies")
	assert.Contains(t, out, "config")

	out, err = execute(t, "help", "strategies")
	require.NoError(t, err)
	assert.Contains(t, out, "overwrite")
}

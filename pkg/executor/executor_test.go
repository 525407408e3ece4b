package executor_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/arthur-debert/bub/pkg/executor"
	"github.com/arthur-debert/bub/pkg/testutil"
	"github.com/arthur-debert/bub/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isSymlink(t *testing.T, path string) bool {
	t.Helper()
	info, err := os.Lstat(path)
	require.NoError(t, err)
	return info.Mode()&fs.ModeSymlink != 0
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestExecuteLinkTypes(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	abs := env.AddFile("abs.txt", "absolute")
	rel := env.AddFile("sub/rel.txt", "relative")
	hard := env.AddFile("hard.txt", "hard")

	plan := &types.Plan{
		Links: []types.PlannedLink{
			{Src: abs, Dest: env.HomePath("abs.txt"), Type: types.AbsoluteSymlink},
			{Src: rel, Dest: env.HomePath("sub/rel.txt"), Type: types.RelativeSymlink},
			{Src: hard, Dest: env.HomePath("hard.txt"), Type: types.HardLink},
		},
		CreateMissingDirs: true,
	}

	result, err := executor.New(env.FS).Execute(plan)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Created)
	assert.Equal(t, 3, result.Linked())
	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, executor.ActionCreated, result.Outcomes[0].Action)

	t.Run("absolute", func(t *testing.T) {
		target, err := os.Readlink(env.HomePath("abs.txt"))
		require.NoError(t, err)
		assert.Equal(t, abs, target)
	})

	t.Run("relative_round_trip", func(t *testing.T) {
		dest := env.HomePath("sub/rel.txt")
		target, err := os.Readlink(dest)
		require.NoError(t, err)
		assert.False(t, filepath.IsAbs(target))
		assert.Equal(t, rel, filepath.Join(filepath.Dir(dest), target))
		assert.Equal(t, "relative", readFile(t, dest))
	})

	t.Run("hard", func(t *testing.T) {
		assert.False(t, isSymlink(t, env.HomePath("hard.txt")))
		srcInfo, err := os.Stat(hard)
		require.NoError(t, err)
		destInfo, err := os.Stat(env.HomePath("hard.txt"))
		require.NoError(t, err)
		assert.True(t, os.SameFile(srcInfo, destInfo))
	})
}

func TestExecuteMissingDirs(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	src := env.AddFile("deep/file", "x")
	link := types.PlannedLink{Src: src, Dest: env.HomePath("deep/file"), Type: types.AbsoluteSymlink}

	_, err := executor.New(env.FS).Execute(&types.Plan{Links: []types.PlannedLink{link}})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkIO))
	assert.Equal(t, link, errors.GetErrorDetails(err)["link"])
}

func TestExecuteConflictStrategies(t *testing.T) {
	tests := []struct {
		name     string
		strategy types.ConflictStrategy
		check    func(t *testing.T, env *testutil.TestEnvironment, src, dest string, result executor.Result)
	}{
		{
			name:     "adopt",
			strategy: types.Adopt,
			check: func(t *testing.T, env *testutil.TestEnvironment, src, dest string, result executor.Result) {
				assert.Equal(t, 1, result.Adopted)
				assert.Equal(t, "existing", readFile(t, src), "package file takes the adopted content")
				assert.True(t, isSymlink(t, dest))
				assert.Equal(t, "existing", readFile(t, dest))
			},
		},
		{
			name:     "ignore",
			strategy: types.Ignore,
			check: func(t *testing.T, env *testutil.TestEnvironment, src, dest string, result executor.Result) {
				assert.Equal(t, 1, result.Skipped)
				assert.False(t, isSymlink(t, dest))
				assert.Equal(t, "existing", readFile(t, dest))
				assert.Equal(t, "package", readFile(t, src))
			},
		},
		{
			name:     "move",
			strategy: types.Move,
			check: func(t *testing.T, env *testutil.TestEnvironment, src, dest string, result executor.Result) {
				assert.Equal(t, 1, result.Moved)
				assert.Equal(t, "existing", readFile(t, dest+".bak"))
				assert.True(t, isSymlink(t, dest))
				assert.Equal(t, "package", readFile(t, dest))
			},
		},
		{
			name:     "overwrite",
			strategy: types.Overwrite,
			check: func(t *testing.T, env *testutil.TestEnvironment, src, dest string, result executor.Result) {
				assert.Equal(t, 1, result.Overwritten)
				assert.True(t, isSymlink(t, dest))
				assert.Equal(t, "package", readFile(t, dest))
				_, err := os.Lstat(dest + ".bak")
				assert.True(t, os.IsNotExist(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
			src := env.AddFile("conf", "package")
			dest := env.WriteFile(env.HomePath("conf"), "existing")

			plan := &types.Plan{
				Links:             []types.PlannedLink{{Src: src, Dest: dest, Type: types.AbsoluteSymlink}},
				ConflictStrategy:  tt.strategy,
				CreateMissingDirs: true,
			}

			result, err := executor.New(env.FS).Execute(plan)
			require.NoError(t, err)
			tt.check(t, env, src, dest, result)
		})
	}
}

func TestExecuteThrowErrorStopsWithoutRollback(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	a := env.AddFile("a", "a")
	b := env.AddFile("b", "b")
	c := env.AddFile("c", "c")
	env.WriteFile(env.HomePath("b"), "existing")

	conflicting := types.PlannedLink{Src: b, Dest: env.HomePath("b"), Type: types.AbsoluteSymlink}
	plan := &types.Plan{
		Links: []types.PlannedLink{
			{Src: a, Dest: env.HomePath("a"), Type: types.AbsoluteSymlink},
			conflicting,
			{Src: c, Dest: env.HomePath("c"), Type: types.AbsoluteSymlink},
		},
		ConflictStrategy:  types.ThrowError,
		CreateMissingDirs: true,
	}

	result, err := executor.New(env.FS).Execute(plan)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTargetExists))
	assert.Equal(t, conflicting, errors.GetErrorDetails(err)["link"])
	assert.Equal(t, 1, result.Created)

	assert.True(t, isSymlink(t, env.HomePath("a")), "earlier link is kept")
	assert.Equal(t, "existing", readFile(t, env.HomePath("b")))
	_, err = os.Lstat(env.HomePath("c"))
	assert.True(t, os.IsNotExist(err), "later link is never attempted")
}

func TestExecuteDanglingSymlinkIsPresent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	src := env.AddFile("a", "a")
	dest := env.HomePath("a")
	require.NoError(t, os.Symlink(env.HomePath("missing"), dest))

	plan := &types.Plan{Links: []types.PlannedLink{{Src: src, Dest: dest}}}
	_, err := executor.New(env.FS).Execute(plan)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTargetExists))
}

func TestExecuteAdoptRefusesSymlink(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	src := env.AddFile("a", "package")
	other := env.WriteFile(filepath.Join(env.Root, "other"), "other")
	dest := env.HomePath("a")
	require.NoError(t, os.Symlink(other, dest))

	plan := &types.Plan{
		Links:            []types.PlannedLink{{Src: src, Dest: dest}},
		ConflictStrategy: types.Adopt,
	}
	_, err := executor.New(env.FS).Execute(plan)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAdoptSymlink))

	target, err := os.Readlink(dest)
	require.NoError(t, err)
	assert.Equal(t, other, target, "dest is left untouched")
	assert.Equal(t, "package", readFile(t, src))
}

func TestExecuteHardLinkToDirectoryFails(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	dir := env.AddDir("d")

	plan := &types.Plan{Links: []types.PlannedLink{{Src: dir, Dest: env.HomePath("d"), Type: types.HardLink}}}
	_, err := executor.New(env.FS).Execute(plan)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkIO))
}

func TestExecuteHardLinkToSymlinkFails(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated)
	env.AddFile("real", "content")
	ln := env.Path("ln")
	require.NoError(t, os.Symlink("real", ln))

	plan := &types.Plan{Links: []types.PlannedLink{{Src: ln, Dest: env.HomePath("ln"), Type: types.HardLink}}}
	result, err := executor.New(env.FS).Execute(plan)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkIO))
	assert.Equal(t, plan.Links[0], errors.GetErrorDetails(err)["link"])
	assert.Zero(t, result.Created)

	_, statErr := os.Lstat(env.HomePath("ln"))
	assert.True(t, os.IsNotExist(statErr), "nothing is linked into the target")
}

func TestExecuteNilPlan(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	_, err := executor.New(env.FS).Execute(nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

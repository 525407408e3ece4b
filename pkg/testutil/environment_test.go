package testutil_test

import (
	"os"
	"testing"

	"github.com/arthur-debert/bub/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestEnvironment(t *testing.T) {
	for _, envType := range []testutil.EnvType{testutil.EnvMemoryOnly, testutil.EnvIsolated} {
		env := testutil.NewTestEnvironment(t, envType)

		env.AddTree(map[string]string{
			"a.txt":     "a",
			"sub/":      "",
			"sub/b.txt": "b",
		})

		assert.Equal(t, "a", env.ReadFile(env.Path("a.txt")))
		assert.Equal(t, "b", env.ReadFile(env.Path("sub/b.txt")))

		info, err := env.FS.Stat(env.Path("sub"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, env.HomeDir, os.Getenv("HOME"))
	}
}

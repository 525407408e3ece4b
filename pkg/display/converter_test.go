package display_test

import (
	"testing"

	"github.com/arthur-debert/bub/pkg/display"
	"github.com/arthur-debert/bub/pkg/executor"
	"github.com/arthur-debert/bub/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestConvertPlan(t *testing.T) {
	t.Setenv("HOME", "/home/u")

	plan := &types.Plan{
		Package: "/home/u/dotfiles/vim",
		Target:  "/home/u",
		Links: []types.PlannedLink{
			{Src: "/home/u/dotfiles/vim/z.vim", Dest: "/home/u/z.vim", Type: types.HardLink},
			{Src: "/home/u/dotfiles/vim/.vimrc", Dest: "/home/u/.vimrc", Type: types.AbsoluteSymlink},
			{Src: "/home/u/dotfiles/vim/sub/b", Dest: "/opt/elsewhere/sub/b", Type: types.AbsoluteSymlink},
			{Src: "/home/u/dotfiles/vim/rel", Dest: "/home/u/rel", Type: types.RelativeSymlink},
		},
		ConflictStrategy:  types.Move,
		CreateMissingDirs: true,
	}

	view := display.ConvertPlan(plan)

	assert.Equal(t, "~/dotfiles/vim", view.Package)
	assert.Equal(t, "~", view.Target)
	assert.Equal(t, []display.LinkLine{
		{Dest: ".vimrc", Src: ".vimrc", Type: types.AbsoluteSymlink},
		{Dest: "rel", Src: "dotfiles/vim/rel", Type: types.RelativeSymlink},
		{Dest: "z.vim", Src: "z.vim", Type: types.HardLink},
		{Dest: "/opt/elsewhere/sub/b", Src: "sub/b", Type: types.AbsoluteSymlink},
	}, view.Lines)
	assert.Equal(t, "If a target file already exists, it will be moved to <target_file>.bak", view.StrategySentence())
	assert.Empty(t, view.DirsSentence())
	assert.Len(t, plan.Links, 4, "plan is not modified")
	assert.Equal(t, "/home/u/z.vim", plan.Links[0].Dest)
}

func TestConvertPlanLinkRoot(t *testing.T) {
	t.Setenv("HOME", "/home/u")

	plan := &types.Plan{
		Package:  "/home/u/dotfiles/nvim",
		Target:   "/home/u/.config/nvim",
		LinkRoot: true,
		Links: []types.PlannedLink{
			{Src: "/home/u/dotfiles/nvim", Dest: "/home/u/.config/nvim"},
		},
	}

	view := display.ConvertPlan(plan)
	assert.Equal(t, []display.LinkLine{
		{Dest: "~/.config/nvim", Src: "~/dotfiles/nvim", Type: types.AbsoluteSymlink},
	}, view.Lines)
	assert.Equal(t, "If a target file already exists, it will throw an error", view.StrategySentence())
	assert.Equal(t, "Target directories will not be created", view.DirsSentence())
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		res  executor.Result
		want string
	}{
		{name: "single", res: executor.Result{Created: 1}, want: "1 link created"},
		{name: "plain", res: executor.Result{Created: 3}, want: "3 links created"},
		{
			name: "mixed",
			res:  executor.Result{Created: 2, Adopted: 1, Moved: 1, Skipped: 2},
			want: "2 links created, 1 adopted, 1 moved, 2 skipped",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, display.Summary(tt.res))
		})
	}
}

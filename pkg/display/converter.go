// Package display converts plans and execution results into
// display-friendly views shared by the text, terminal and JSON renderers.
package display

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/bub/pkg/executor"
	"github.com/arthur-debert/bub/pkg/paths"
	"github.com/arthur-debert/bub/pkg/types"
)

// PlanHeading opens every rendered plan
const PlanHeading = "Here's the unboxing plan:"

// LinkLine is one planned link with paths shortened for display
type LinkLine struct {
	Dest string         `json:"dest"`
	Src  string         `json:"src"`
	Type types.LinkType `json:"type"`
}

// PlanView is a plan ready to print. Lines are sorted by destination.
type PlanView struct {
	Package           string                 `json:"package"`
	Target            string                 `json:"target"`
	LinkRoot          bool                   `json:"link_root"`
	Lines             []LinkLine             `json:"links"`
	ConflictStrategy  types.ConflictStrategy `json:"conflict_strategy"`
	CreateMissingDirs bool                   `json:"create_missing_dirs"`
}

// ConvertPlan builds the view of plan. Destinations are shown relative to
// the target and sources relative to the package; with link_root, or when
// a path lies outside that prefix, the full path is shown with ~ for home.
// Relative symlinks show the path stored in the link.
func ConvertPlan(plan *types.Plan) PlanView {
	view := PlanView{
		Package:           paths.ReplaceHomeWithTilde(plan.Package),
		Target:            paths.ReplaceHomeWithTilde(plan.Target),
		LinkRoot:          plan.LinkRoot,
		ConflictStrategy:  plan.ConflictStrategy,
		CreateMissingDirs: plan.CreateMissingDirs,
	}

	links := make([]types.PlannedLink, len(plan.Links))
	copy(links, plan.Links)
	sort.SliceStable(links, func(i, j int) bool { return links[i].Dest < links[j].Dest })

	for _, pl := range links {
		line := LinkLine{
			Dest: shorten(pl.Dest, plan.Target, plan.LinkRoot),
			Src:  shorten(pl.Src, plan.Package, plan.LinkRoot),
			Type: pl.Type,
		}
		if pl.Type == types.RelativeSymlink {
			if rel, err := pl.RelativeSrc(); err == nil {
				line.Src = rel
			}
		}
		view.Lines = append(view.Lines, line)
	}
	return view
}

// StrategySentence describes what happens to existing files
func (v PlanView) StrategySentence() string {
	return "If a target file already exists, it will " + v.ConflictStrategy.Describe()
}

// DirsSentence is shown only when parent directories will not be created
func (v PlanView) DirsSentence() string {
	if v.CreateMissingDirs {
		return ""
	}
	return "Target directories will not be created"
}

func shorten(path, prefix string, linkRoot bool) string {
	if !linkRoot && prefix != "" && paths.IsWithin(prefix, path) && path != prefix {
		if rel, err := filepath.Rel(prefix, path); err == nil {
			return rel
		}
	}
	return paths.ReplaceHomeWithTilde(path)
}

// ResultView summarizes one package's execution
type ResultView struct {
	Package string          `json:"package"`
	Summary string          `json:"summary"`
	Result  executor.Result `json:"result"`
}

// ConvertResult builds the view of an execution result
func ConvertResult(pkg string, res executor.Result) ResultView {
	return ResultView{
		Package: paths.ReplaceHomeWithTilde(pkg),
		Summary: Summary(res),
		Result:  res,
	}
}

// Summary renders result counts as a sentence, e.g.
// "3 links created, 1 adopted, 1 skipped".
func Summary(res executor.Result) string {
	parts := []string{fmt.Sprintf("%d %s created", res.Created, plural(res.Created, "link", "links"))}
	for _, c := range []struct {
		n    int
		verb string
	}{
		{res.Adopted, "adopted"},
		{res.Moved, "moved"},
		{res.Overwritten, "overwritten"},
		{res.Skipped, "skipped"},
	} {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.verb))
		}
	}
	return strings.Join(parts, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

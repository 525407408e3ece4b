package planner

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/bub/pkg/config"
	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/arthur-debert/bub/pkg/logging"
	"github.com/arthur-debert/bub/pkg/matchers"
	"github.com/arthur-debert/bub/pkg/paths"
	"github.com/arthur-debert/bub/pkg/types"
	"github.com/rs/zerolog"
)

// Plan computes the links for the package rooted at packageRoot. No partial
// plan is returned on error.
func Plan(fsys types.FS, packageRoot string, ov config.Overrides) (*types.Plan, error) {
	log := logging.GetLogger("planner")
	done := logging.LogOperationStart(log, "plan")
	defer done()

	root := filepath.Clean(packageRoot)
	info, err := fsys.Stat(root)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Newf(errors.ErrPackageNotFound, "package %s does not exist", root).
				WithDetail("package", root)
		}
		return nil, errors.Wrapf(err, errors.ErrPackageNotFound, "cannot access package %s", root).
			WithDetail("package", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrPackageNotFound, "package %s is not a directory", root).
			WithDetail("package", root)
	}

	rootCfg, err := config.Resolve(fsys, root, ov)
	if err != nil {
		return nil, err
	}
	if paths.IsWithin(root, rootCfg.Target) {
		return nil, errors.Newf(errors.ErrCircularReference,
			"target %s is inside package %s", rootCfg.Target, root).
			WithDetail("package", root).
			WithDetail("target", rootCfg.Target)
	}

	plan := &types.Plan{
		ConflictStrategy:  ov.ConflictStrategy,
		CreateMissingDirs: ov.CreateMissingDirs,
		Package:           root,
		Target:            rootCfg.Target,
		LinkRoot:          rootCfg.LinkRoot,
	}

	if rootCfg.LinkRoot {
		plan.Links = []types.PlannedLink{{Src: root, Dest: rootCfg.Target, Type: rootCfg.LinkType}}
		log.Debug().Str("package", root).Str("target", rootCfg.Target).Msg("Linking package root")
		return plan, nil
	}

	w := &walker{
		fsys:  fsys,
		root:  root,
		ov:    ov,
		stack: matchers.NewConfigStack(rootCfg),
		log:   log,
	}
	if err := w.walk(root); err != nil {
		return nil, err
	}

	if len(w.links) == 0 {
		return nil, errors.Newf(errors.ErrEmptyPlan, "nothing to link in %s", root).
			WithDetail("package", root)
	}
	plan.Links = w.links

	log.Info().
		Str("package", root).
		Int("links", len(plan.Links)).
		Msg("Plan ready")
	return plan, nil
}

type walker struct {
	fsys  types.FS
	root  string
	ov    config.Overrides
	stack *matchers.ConfigStack
	links []types.PlannedLink
	log   zerolog.Logger
}

// walk visits the children of dir in name order, recursing into
// directories that survive the exclude test.
func (w *walker) walk(dir string) error {
	entries, err := w.fsys.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrWalk, "failed to read %s", dir).
			WithDetail("path", dir)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if err := w.visit(path, entry); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) visit(path string, entry fs.DirEntry) error {
	if popped := w.stack.Correct(path); popped > 0 {
		w.log.Trace().Str("path", path).Int("popped", popped).Msg("Left config scope")
	}

	name := entry.Name()
	if w.stack.Excluded(name) {
		w.log.Debug().Str("path", path).Bool("dir", entry.IsDir()).Msg("Excluded")
		return nil
	}

	included := w.stack.Included(w.components(path))

	if entry.IsDir() {
		cfg, err := config.Resolve(w.fsys, path, w.ov)
		if err != nil {
			return err
		}
		if cfg.HasDescriptor() {
			w.stack.Push(cfg)
			w.log.Debug().Str("path", path).Str("source", cfg.Source).Msg("Pushed config")
		}
		if !included {
			w.log.Trace().Str("path", path).Msg("Directory not included, descending anyway")
		}
		return w.walk(path)
	}

	if !included {
		w.log.Debug().Str("path", path).Msg("Not included")
		return nil
	}

	top := w.stack.Top()
	tail, err := filepath.Rel(w.root, path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrWalk, "%s is outside package %s", path, w.root).
			WithDetail("path", path)
	}

	link := types.PlannedLink{
		Src:  path,
		Dest: filepath.Join(top.Target, tail),
		Type: top.LinkType,
	}
	w.links = append(w.links, link)
	w.log.Trace().Str("src", link.Src).Str("dest", link.Dest).Str("type", link.Type.String()).Msg("Planned link")
	return nil
}

// components splits path below the package root into its parts
func (w *walker) components(path string) []string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return []string{filepath.Base(path)}
	}
	return strings.Split(rel, string(filepath.Separator))
}

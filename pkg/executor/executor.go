package executor

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/arthur-debert/bub/pkg/logging"
	"github.com/arthur-debert/bub/pkg/paths"
	"github.com/arthur-debert/bub/pkg/types"
	"github.com/rs/zerolog"
)

// Action records what the executor did for one planned link
type Action string

const (
	ActionCreated     Action = "created"
	ActionSkipped     Action = "skipped"
	ActionAdopted     Action = "adopted"
	ActionMoved       Action = "moved"
	ActionOverwritten Action = "overwritten"
)

// Outcome pairs a planned link with what happened to it
type Outcome struct {
	Link   types.PlannedLink `json:"link"`
	Action Action            `json:"action"`
}

// Result summarizes an Execute run. On error it covers the links handled
// before the failure.
type Result struct {
	Outcomes    []Outcome `json:"outcomes"`
	Created     int       `json:"created"`
	Skipped     int       `json:"skipped"`
	Adopted     int       `json:"adopted"`
	Moved       int       `json:"moved"`
	Overwritten int       `json:"overwritten"`
}

func (r *Result) record(link types.PlannedLink, action Action) {
	r.Outcomes = append(r.Outcomes, Outcome{Link: link, Action: action})
	switch action {
	case ActionCreated:
		r.Created++
	case ActionSkipped:
		r.Skipped++
	case ActionAdopted:
		r.Adopted++
	case ActionMoved:
		r.Moved++
	case ActionOverwritten:
		r.Overwritten++
	}
}

// Linked returns the number of links that now exist at their destination
func (r Result) Linked() int {
	return r.Created + r.Adopted + r.Moved + r.Overwritten
}

// Executor creates the links of a plan
type Executor struct {
	fs     types.FS
	logger zerolog.Logger
}

// New creates an executor working on fsys
func New(fsys types.FS) *Executor {
	return &Executor{
		fs:     fsys,
		logger: logging.GetLogger("executor"),
	}
}

// Execute realizes every link of plan in order. It stops at the first
// error and does not undo earlier links.
func (e *Executor) Execute(plan *types.Plan) (Result, error) {
	var result Result
	if plan == nil {
		return result, errors.New(errors.ErrInvalidInput, "no plan to execute")
	}

	done := logging.LogOperationStart(e.logger, "execute")
	defer done()

	for _, link := range plan.Links {
		action, err := e.executeLink(plan, link)
		if err != nil {
			e.logger.Error().Err(err).Str("dest", link.Dest).Msg("Link failed")
			return result, err
		}
		result.record(link, action)
	}

	e.logger.Info().
		Int("created", result.Created).
		Int("skipped", result.Skipped).
		Int("adopted", result.Adopted).
		Int("moved", result.Moved).
		Int("overwritten", result.Overwritten).
		Msg("Plan executed")
	return result, nil
}

func (e *Executor) executeLink(plan *types.Plan, link types.PlannedLink) (Action, error) {
	present, err := e.exists(link.Dest)
	if err != nil {
		return "", linkError(err, link, "cannot inspect destination")
	}

	action := ActionCreated
	if present {
		switch plan.ConflictStrategy {
		case types.Adopt:
			err = e.adopt(link)
			action = ActionAdopted
		case types.Ignore:
			e.ignore(link)
			return ActionSkipped, nil
		case types.Move:
			err = e.move(link)
			action = ActionMoved
		case types.Overwrite:
			err = e.overwrite(link)
			action = ActionOverwritten
		default:
			return "", e.throwError(link)
		}
		if err != nil {
			return "", err
		}
	}

	if err := e.createLink(link, plan.CreateMissingDirs); err != nil {
		return "", err
	}
	return action, nil
}

// exists reports whether anything, including a dangling symlink, is at path
func (e *Executor) exists(path string) (bool, error) {
	_, err := e.fs.Lstat(path)
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// createLink makes dest point at src according to the link type
func (e *Executor) createLink(link types.PlannedLink, createDirs bool) error {
	if createDirs {
		parent := filepath.Dir(link.Dest)
		if err := e.fs.MkdirAll(parent, 0755); err != nil {
			return linkError(err, link, "cannot create parent directory")
		}
	}

	switch link.Type {
	case types.HardLink:
		info, err := e.fs.Lstat(link.Src)
		if err != nil {
			return linkError(err, link, "cannot inspect hard link source")
		}
		if !info.Mode().IsRegular() {
			return errors.Newf(errors.ErrLinkIO,
				"hard link source %s is not a regular file", paths.ReplaceHomeWithTilde(link.Src)).
				WithDetail("link", link)
		}
		if err := e.fs.Link(link.Src, link.Dest); err != nil {
			return linkError(err, link, "cannot create hard link")
		}
	default:
		target, err := link.LinkTarget()
		if err != nil {
			return linkError(err, link, "cannot compute link target")
		}
		if err := e.fs.Symlink(target, link.Dest); err != nil {
			return linkError(err, link, "cannot create symlink")
		}
	}

	e.logger.Debug().
		Str("src", link.Src).
		Str("dest", link.Dest).
		Str("type", link.Type.String()).
		Msg("Created link")
	return nil
}

func linkError(err error, link types.PlannedLink, msg string) error {
	return errors.Wrapf(err, errors.ErrLinkIO, "%s: %s", msg, paths.ReplaceHomeWithTilde(link.Dest)).
		WithDetail("link", link)
}

package executor

import (
	"io/fs"

	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/arthur-debert/bub/pkg/internal/hashutil"
	"github.com/arthur-debert/bub/pkg/paths"
	"github.com/arthur-debert/bub/pkg/types"
)

// BackupSuffix is appended to destinations moved out of the way
const BackupSuffix = ".bak"

// adopt copies the existing destination over the package file and removes
// the destination. A symlink at dest is refused since it may point at src.
func (e *Executor) adopt(link types.PlannedLink) error {
	info, err := e.fs.Lstat(link.Dest)
	if err != nil {
		return linkError(err, link, "cannot inspect destination")
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return errors.Newf(errors.ErrAdoptSymlink,
			"refusing to adopt symlink %s", paths.ReplaceHomeWithTilde(link.Dest)).
			WithDetail("link", link)
	}

	e.logger.Warn().Str("dest", paths.ReplaceHomeWithTilde(link.Dest)).Msg("Adopting existing file")

	data, err := e.fs.ReadFile(link.Dest)
	if err != nil {
		return linkError(err, link, "cannot read destination")
	}
	if err := e.fs.WriteFile(link.Src, data, info.Mode().Perm()); err != nil {
		return linkError(err, link, "cannot copy destination into package")
	}
	if err := e.fs.Chmod(link.Src, info.Mode().Perm()); err != nil {
		return linkError(err, link, "cannot copy destination permissions")
	}

	copied, err := hashutil.FileChecksum(e.fs, link.Src)
	if err != nil {
		return linkError(err, link, "cannot read adopted file")
	}
	if copied != hashutil.Sum(data) {
		return errors.Newf(errors.ErrLinkIO,
			"adopted copy of %s does not match the original", paths.ReplaceHomeWithTilde(link.Dest)).
			WithDetail("link", link)
	}

	if err := e.fs.Remove(link.Dest); err != nil {
		return linkError(err, link, "cannot remove adopted destination")
	}
	return nil
}

// ignore leaves dest alone
func (e *Executor) ignore(link types.PlannedLink) {
	e.logger.Warn().Str("dest", paths.ReplaceHomeWithTilde(link.Dest)).Msg("Ignoring, already exists")
}

// move renames dest to dest.bak
func (e *Executor) move(link types.PlannedLink) error {
	backup := link.Dest + BackupSuffix
	e.logger.Warn().
		Str("dest", paths.ReplaceHomeWithTilde(link.Dest)).
		Str("backup", paths.ReplaceHomeWithTilde(backup)).
		Msg("Destination exists, moving")

	present, err := e.exists(backup)
	if err != nil {
		return linkError(err, link, "cannot inspect backup")
	}
	if present {
		e.logger.Warn().
			Str("backup", paths.ReplaceHomeWithTilde(backup)).
			Msg("Replacing existing backup")
	}

	if err := e.fs.Rename(link.Dest, backup); err != nil {
		return linkError(err, link, "cannot move destination")
	}
	return nil
}

// overwrite deletes dest
func (e *Executor) overwrite(link types.PlannedLink) error {
	e.logger.Warn().Str("dest", paths.ReplaceHomeWithTilde(link.Dest)).Msg("Overwriting")

	if err := e.fs.Remove(link.Dest); err != nil {
		return linkError(err, link, "cannot remove destination")
	}
	return nil
}

// throwError reports the conflict as a run-stopping error
func (e *Executor) throwError(link types.PlannedLink) error {
	return errors.Newf(errors.ErrTargetExists,
		"%s already exists", paths.ReplaceHomeWithTilde(link.Dest)).
		WithDetail("link", link)
}

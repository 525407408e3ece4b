package config

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"runtime"

	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/arthur-debert/bub/pkg/types"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"
)

// DescriptorFileName is the per-directory descriptor
const DescriptorFileName = ".bub.toml"

// OSDescriptorFileName returns the descriptor name for the running OS,
// e.g. .bub.linux.toml
func OSDescriptorFileName() string {
	return osDescriptorFileName(runtime.GOOS)
}

func osDescriptorFileName(goos string) string {
	return ".bub." + goos + ".toml"
}

// DescriptorPaths returns the candidate descriptor paths for dir in lookup
// order.
func DescriptorPaths(dir string) []string {
	return []string{
		filepath.Join(dir, OSDescriptorFileName()),
		filepath.Join(dir, DescriptorFileName),
	}
}

// LoadDescriptor reads and parses the descriptor of dir. The OS specific
// file wins over the generic one. It returns the decoded keys and the path
// they came from, or a CONFIG_NOT_FOUND error when dir has no descriptor.
func LoadDescriptor(fsys types.FS, dir string) (map[string]interface{}, string, error) {
	for _, path := range DescriptorPaths(dir) {
		info, err := fsys.Stat(path)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, path, errors.Wrapf(err, errors.ErrConfigRead, "cannot access %s", path).
				WithDetail("path", path)
		}
		if info.IsDir() {
			return nil, path, errors.Newf(errors.ErrConfigRead, "%s is a directory", path).
				WithDetail("path", path)
		}

		data, err := fsys.ReadFile(path)
		if err != nil {
			return nil, path, errors.Wrapf(err, errors.ErrConfigRead, "cannot read %s", path).
				WithDetail("path", path)
		}

		k := koanf.New(".")
		if err := k.Load(&rawBytesProvider{bytes: data}, toml.Parser()); err != nil {
			return nil, path, errors.Wrapf(err, errors.ErrConfigParse, "invalid TOML in %s", path).
				WithDetail("path", path)
		}
		return k.Raw(), path, nil
	}

	return nil, "", errors.Newf(errors.ErrConfigNotFound, "no descriptor in %s", dir).
		WithDetail("path", dir)
}

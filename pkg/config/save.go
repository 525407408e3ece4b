package config

import (
	"path/filepath"
	"regexp"

	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/arthur-debert/bub/pkg/logging"
	"github.com/arthur-debert/bub/pkg/paths"
	"github.com/arthur-debert/bub/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

// Save writes the config to the package's .bub.toml and returns the path
// written.
func (c *PackageConfig) Save(fsys types.FS) (string, error) {
	return c.saveAs(fsys, DescriptorFileName)
}

// SaveOS writes the config to the package's OS specific descriptor.
func (c *PackageConfig) SaveOS(fsys types.FS) (string, error) {
	return c.saveAs(fsys, OSDescriptorFileName())
}

// Marshal renders the config as descriptor TOML. Paths under the home
// directory are written with ~.
func (c *PackageConfig) Marshal() ([]byte, error) {
	d := descriptor{
		Target:   paths.ReplaceHomeWithTilde(c.Target),
		Exclude:  patternStrings(c.ExcludePatterns),
		Include:  patternStrings(c.IncludePatterns),
		LinkRoot: c.LinkRoot,
		LinkType: c.LinkType,
	}
	return toml.Marshal(d)
}

func (c *PackageConfig) saveAs(fsys types.FS, name string) (string, error) {
	path := filepath.Join(c.Package, name)

	data, err := c.Marshal()
	if err != nil {
		return path, errors.Wrap(err, errors.ErrConfigWrite, "failed to encode descriptor").
			WithDetail("path", path)
	}
	if err := fsys.WriteFile(path, data, 0644); err != nil {
		return path, errors.Wrapf(err, errors.ErrConfigWrite, "failed to write %s", path).
			WithDetail("path", path)
	}

	log := logging.GetLogger("config")
	log.Info().Str("path", path).Msg("Saved package config")
	return path, nil
}

func patternStrings(patterns []*regexp.Regexp) []string {
	out := make([]string, len(patterns))
	for i, re := range patterns {
		out[i] = re.String()
	}
	return out
}

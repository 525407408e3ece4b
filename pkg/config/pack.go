package config

import (
	"path/filepath"
	"regexp"

	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/arthur-debert/bub/pkg/logging"
	"github.com/arthur-debert/bub/pkg/paths"
	"github.com/arthur-debert/bub/pkg/types"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// PackageConfig is the effective configuration of one package directory.
// It is not modified after Resolve returns it.
type PackageConfig struct {
	// Package is the absolute directory the config belongs to
	Package string
	// Target is the absolute directory links are created in
	Target          string
	ExcludePatterns []*regexp.Regexp
	IncludePatterns []*regexp.Regexp
	LinkRoot        bool
	LinkType        types.LinkType
	// Source is the descriptor the config was read from, empty when the
	// directory has none
	Source string
}

// HasDescriptor reports whether the config was read from a file on disk
func (c *PackageConfig) HasDescriptor() bool {
	return c.Source != ""
}

// Contains reports whether path is the package directory or lies below it
func (c *PackageConfig) Contains(path string) bool {
	return paths.IsWithin(c.Package, path)
}

// MatchesExclude reports whether a bare entry name matches one of this
// config's exclude patterns
func (c *PackageConfig) MatchesExclude(name string) bool {
	return matchAny(c.ExcludePatterns, name)
}

// MatchesInclude reports whether a single path component matches one of
// this config's include patterns
func (c *PackageConfig) MatchesInclude(component string) bool {
	return matchAny(c.IncludePatterns, component)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, re := range patterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// Overrides are caller supplied values merged over every resolved config.
// Pattern lists append to the descriptor's; nil scalars leave the
// descriptor's value alone.
type Overrides struct {
	Target          *string
	ExcludePatterns []string
	IncludePatterns []string
	LinkRoot        *bool
	LinkType        *types.LinkType

	// Run-wide settings copied onto the plan
	ConflictStrategy  types.ConflictStrategy
	CreateMissingDirs bool
}

// DefaultOverrides returns overrides that change nothing and create
// missing parent directories.
func DefaultOverrides() Overrides {
	return Overrides{CreateMissingDirs: true}
}

func (ov Overrides) toMap() map[string]interface{} {
	m := make(map[string]interface{})
	if ov.Target != nil {
		m["target"] = *ov.Target
	}
	if len(ov.ExcludePatterns) > 0 {
		m["exclude"] = ov.ExcludePatterns
	}
	if len(ov.IncludePatterns) > 0 {
		m["include"] = ov.IncludePatterns
	}
	if ov.LinkRoot != nil {
		m["link_root"] = *ov.LinkRoot
	}
	if ov.LinkType != nil {
		m["link_type"] = ov.LinkType.String()
	}
	return m
}

// descriptor is the on-disk shape of a package config
type descriptor struct {
	Target   string         `koanf:"target" toml:"target"`
	Exclude  []string       `koanf:"exclude" toml:"exclude"`
	Include  []string       `koanf:"include" toml:"include"`
	LinkRoot bool           `koanf:"link_root" toml:"link_root"`
	LinkType types.LinkType `koanf:"link_type" toml:"link_type"`
}

// Resolve returns the effective config of dir: embedded defaults, then the
// directory's descriptor if any, then ov. A missing descriptor is not an
// error; read, parse and validation failures are.
func Resolve(fsys types.FS, dir string, ov Overrides) (*PackageConfig, error) {
	log := logging.GetLogger("config")
	dir = filepath.Clean(dir)

	home, err := paths.HomeDir()
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultDescriptor}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "embedded descriptor defaults are invalid")
	}
	if err := k.Set("target", home); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to set default target")
	}

	raw, source, err := LoadDescriptor(fsys, dir)
	switch {
	case err == nil:
		if err := k.Load(confmap.Provider(raw, "."), nil); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load %s", source).
				WithDetail("path", source)
		}
		log.Trace().Str("source", source).Msg("Loaded descriptor")
	case errors.IsErrorCode(err, errors.ErrConfigNotFound):
		source = ""
	default:
		return nil, err
	}

	merged := k.All()
	mergeMaps(merged, ov.toMap())

	final := koanf.New(".")
	if err := final.Load(confmap.Provider(merged, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to merge overrides")
	}

	var d descriptor
	if err := unmarshal(final, &d); err != nil {
		return nil, invalid(err, dir, source, "invalid configuration")
	}

	cfg, err := d.compile(dir, source)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("package", cfg.Package).
		Str("target", cfg.Target).
		Str("link_type", cfg.LinkType.String()).
		Bool("link_root", cfg.LinkRoot).
		Int("exclude", len(cfg.ExcludePatterns)).
		Int("include", len(cfg.IncludePatterns)).
		Str("source", source).
		Msg("Resolved package config")
	return cfg, nil
}

func (d descriptor) compile(dir, source string) (*PackageConfig, error) {
	target, err := paths.ExpandFrom(d.Target, dir)
	if err != nil {
		return nil, invalid(err, dir, source, "invalid target")
	}

	exclude, err := compilePatterns(d.Exclude)
	if err != nil {
		return nil, invalid(err, dir, source, "invalid exclude pattern")
	}
	include, err := compilePatterns(d.Include)
	if err != nil {
		return nil, invalid(err, dir, source, "invalid include pattern")
	}

	return &PackageConfig{
		Package:         dir,
		Target:          target,
		ExcludePatterns: exclude,
		IncludePatterns: include,
		LinkRoot:        d.LinkRoot,
		LinkType:        d.LinkType,
		Source:          source,
	}, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func invalid(err error, dir, source, msg string) error {
	return errors.Wrap(err, errors.ErrConfigInvalid, msg).
		WithDetail("package", dir).
		WithDetail("path", source)
}

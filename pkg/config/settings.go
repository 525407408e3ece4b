package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/bub/pkg/errors"
	"github.com/arthur-debert/bub/pkg/logging"
	"github.com/arthur-debert/bub/pkg/paths"
	"github.com/arthur-debert/bub/pkg/types"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as settings
const EnvPrefix = "BUB_"

// Settings are user level defaults for the command line. Flags given
// explicitly on the command line win over them.
type Settings struct {
	IfTargetExists types.ConflictStrategy `koanf:"if_target_exists"`
	CreateDirs     bool                   `koanf:"create_dirs"`
	Color          string                 `koanf:"color"`
	Format         string                 `koanf:"format"`

	// Source is the settings file that was read, empty when none exists
	Source string `koanf:"-"`
}

// LoadSettings layers the embedded settings, the user's settings file and
// BUB_* environment variables.
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(paths.SettingsFilePath())
}

// LoadSettingsFrom is LoadSettings with an explicit settings file path
func LoadSettingsFrom(settingsPath string) (*Settings, error) {
	log := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "embedded settings are invalid")
	}

	source := ""
	if _, err := os.Stat(settingsPath); err == nil {
		if err := k.Load(file.Provider(settingsPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load settings from %s", settingsPath).
				WithDetail("path", settingsPath)
		}
		source = settingsPath
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigRead, "failed to load environment settings")
	}

	var s Settings
	if err := unmarshal(k, &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "invalid settings").
			WithDetail("path", settingsPath)
	}
	s.Source = source

	log.Debug().
		Str("source", source).
		Str("if_target_exists", s.IfTargetExists.String()).
		Bool("create_dirs", s.CreateDirs).
		Msg("Loaded settings")
	return &s, nil
}

package config

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	sderrors "github.com/crusader2000/sunpy/pkg/errors"
	"github.com/crusader2000/sunpy/pkg/logging"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Config is the tool configuration after all layers are merged
type Config struct {
	Manifest ManifestConfig `koanf:"manifest" toml:"manifest"`
	Resolve  ResolveConfig  `koanf:"resolve" toml:"resolve"`
	Output   OutputConfig   `koanf:"output" toml:"output"`
}

// ManifestConfig locates the manifest file inside the packaging root
type ManifestConfig struct {
	File string `koanf:"file" toml:"file"`
}

// ResolveConfig controls rule-sequencing behavior
type ResolveConfig struct {
	// Policy is "sequential" or "deferred-global-exclude"
	Policy string `koanf:"policy" toml:"policy"`
}

// OutputConfig controls how the resolved file list is emitted
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"`
	Summary bool   `koanf:"summary" toml:"summary"`
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Load assembles the configuration in three layers: embedded defaults,
// then an optional .sdist.toml / sdist.toml in root, then SDIST_* env
// vars (SDIST_RESOLVE_POLICY -> resolve.policy).
func Load(root string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, sderrors.Wrap(err, sderrors.ErrConfigLoad, "failed to load default config")
	}

	// 2. Root config if present
	for _, filename := range []string{".sdist.toml", "sdist.toml"} {
		path := filepath.Join(root, filename)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, sderrors.Wrapf(err, sderrors.ErrConfigParse,
				"failed to load config from %s", path).WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded root config")
		break
	}

	// 3. Environment variables
	err := k.Load(env.Provider("SDIST_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "SDIST_")), "_", ".")
	}), nil)
	if err != nil {
		return nil, sderrors.Wrap(err, sderrors.ErrConfigLoad, "failed to load env vars")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, sderrors.Wrap(err, sderrors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the embedded defaults without any file or env layering
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, sderrors.Wrap(err, sderrors.ErrConfigLoad, "failed to load default config")
	}
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, sderrors.Wrap(err, sderrors.ErrConfigParse, "failed to unmarshal default config")
	}
	return &cfg, nil
}

// DefaultTOML renders the default configuration as TOML, for genconfig
func DefaultTOML() (string, error) {
	cfg, err := Default()
	if err != nil {
		return "", err
	}
	out, err := gotoml.Marshal(cfg)
	if err != nil {
		return "", sderrors.Wrap(err, sderrors.ErrInternal, "failed to marshal default config")
	}
	return string(out), nil
}

// validate rejects values the engine cannot honor
func validate(cfg *Config) error {
	if cfg.Manifest.File == "" {
		return sderrors.New(sderrors.ErrConfigValid, "manifest.file must not be empty")
	}
	switch cfg.Resolve.Policy {
	case "sequential", "deferred-global-exclude":
	default:
		return sderrors.Newf(sderrors.ErrConfigValid,
			"resolve.policy must be %q or %q, got %q",
			"sequential", "deferred-global-exclude", cfg.Resolve.Policy)
	}
	switch cfg.Output.Format {
	case "text", "json", "yaml":
	default:
		return sderrors.Newf(sderrors.ErrConfigValid,
			"output.format must be text, json or yaml, got %q", cfg.Output.Format)
	}
	return nil
}

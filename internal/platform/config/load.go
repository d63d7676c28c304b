package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix         = "APP_"
	defaultConfigDir  = "configs"
	defaultDotEnvPath = ".env"
)

// Option configures Load.
type Option func(*loadOptions)

type loadOptions struct {
	configDir  string
	dotEnvPath string
}

// WithConfigDir sets the directory holding base.yaml and the profile files.
// Defaults to "configs".
func WithConfigDir(dir string) Option {
	return func(o *loadOptions) { o.configDir = dir }
}

// WithDotEnv sets the dotenv file path. Defaults to ".env"; an empty path
// skips the layer.
func WithDotEnv(path string) Option {
	return func(o *loadOptions) { o.dotEnvPath = path }
}

// layer is one configuration source, applied over the ones before it.
type layer struct {
	name     string
	provider koanf.Provider
	parser   koanf.Parser
}

// Load builds the Config for profile. Later layers override earlier ones:
//
//  1. built-in defaults
//  2. {configDir}/base.yaml
//  3. {configDir}/{profile}.yaml
//  4. APP_ entries of the dotenv file, if present
//  5. APP_ environment variables
//
// Variable names resolve against the keys already known after layer 3, so
// underscores inside a field name survive:
//
//	APP_SERVER_READ_TIMEOUT                       -> server.read_timeout
//	APP_GUARD_ADMIN_TOKEN                         -> guard.admin_token
//	APP_STORE_POSTGREST_CLIENT_RETRY_MAX_ATTEMPTS -> store.postgrest.client.retry.max_attempts
func Load(profile string, opts ...Option) (*Config, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}

	o := loadOptions{configDir: defaultConfigDir, dotEnvPath: defaultDotEnvPath}
	for _, opt := range opts {
		opt(&o)
	}

	k := koanf.New(".")

	fileLayers := []layer{
		{name: "defaults", provider: confmap.Provider(defaults(), ".")},
		{name: "base config", provider: file.Provider(filepath.Join(o.configDir, "base.yaml")), parser: yaml.Parser()},
		{name: "profile config " + profile, provider: file.Provider(filepath.Join(o.configDir, profile+".yaml")), parser: yaml.Parser()},
	}
	if err := loadLayers(k, fileLayers); err != nil {
		return nil, err
	}

	keys := newEnvKeys(k.Keys())
	dotEnv, err := readDotEnv(o.dotEnvPath, keys)
	if err != nil {
		return nil, err
	}

	envLayers := []layer{
		{name: "dotenv", provider: confmap.Provider(dotEnv, ".")},
		{name: "environment", provider: env.Provider(".", env.Opt{
			Prefix: envPrefix,
			TransformFunc: func(name, value string) (string, any) {
				return keys.resolve(name), value
			},
		})},
	}
	if err := loadLayers(k, envLayers); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

func loadLayers(k *koanf.Koanf, layers []layer) error {
	for _, l := range layers {
		if err := k.Load(l.provider, l.parser); err != nil {
			return fmt.Errorf("loading %s: %w", l.name, err)
		}
	}
	return nil
}

// readDotEnv returns the APP_ entries of the dotenv file keyed by config
// path. The process environment is left untouched. A missing file or an
// empty path yields an empty map.
func readDotEnv(path string, keys envKeys) (map[string]any, error) {
	out := make(map[string]any)
	if path == "" {
		return out, nil
	}

	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading dotenv %s: %w", path, err)
	}

	for name, value := range vars {
		if strings.HasPrefix(name, envPrefix) {
			out[keys.resolve(name)] = value
		}
	}
	return out, nil
}

// envKeys maps the underscore form of each known config key back to the
// dotted key, e.g. "server_read_timeout" to "server.read_timeout".
type envKeys map[string]string

func newEnvKeys(known []string) envKeys {
	keys := make(envKeys, len(known))
	for _, key := range known {
		keys[strings.ReplaceAll(key, ".", "_")] = key
	}
	return keys
}

// resolve maps an APP_ variable name to a config key. Names that match no
// known key split on every underscore.
func (e envKeys) resolve(name string) string {
	flat := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	if key, ok := e[flat]; ok {
		return key
	}
	return strings.ReplaceAll(flat, "_", ".")
}

func validateProfile(profile string) error {
	switch {
	case strings.TrimSpace(profile) == "":
		return errors.New("profile must not be empty")
	case strings.ContainsAny(profile, `/\`):
		return fmt.Errorf("profile must not contain path separators, got %q", profile)
	case strings.Contains(profile, ".."):
		return fmt.Errorf("profile must not contain path traversal, got %q", profile)
	}
	return nil
}

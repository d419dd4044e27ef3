package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Context is one monitor appliance the browser can connect to.
type Context struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Insecure bool   `yaml:"insecure"`
	Timeout  int    `yaml:"timeout"` // seconds, 0 means default
}

type Config struct {
	Contexts []Context `yaml:"contexts"`
}

// DefaultPath returns the config file location under the user's home.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(home, ".zeeklook", "zeeklook.yml"), nil
}

// Load reads the YAML config from path. A missing file is not an error: it
// yields an empty config so an ad-hoc --url context can still be used.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}

	return &cfg, nil
}

// FindContext returns the named context, or the first one when name is empty.
func (c *Config) FindContext(name string) (Context, bool) {
	if name == "" {
		if len(c.Contexts) > 0 {
			return c.Contexts[0], true
		}
		return Context{}, false
	}
	for _, ctx := range c.Contexts {
		if ctx.Name == name {
			return ctx, true
		}
	}
	return Context{}, false
}

package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GitLab struct {
		BaseURL string        `yaml:"base_url"`
		Token   string        `yaml:"token"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"gitlab"`

	Artifacts struct {
		// Dir is the staging area for downloaded archives, relative
		// to the repository root.
		Dir string `yaml:"dir"`
	} `yaml:"artifacts"`
}

// Load builds the configuration from defaults, an optional YAML file
// and environment overrides, in that order. An absent token is not an
// error here: only API calls require it, and they report it
// themselves.
func Load(path string) (Config, error) {
	var c Config

	c.GitLab.BaseURL = "https://gitlab.com"
	c.GitLab.Timeout = 30 * time.Second
	c.Artifacts.Dir = ".glpipe/artifacts"

	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}

	if v := os.Getenv("GITLAB_BASE_URL"); v != "" {
		c.GitLab.BaseURL = v
	}

	if v := os.Getenv("GITLAB_TOKEN"); v != "" {
		c.GitLab.Token = v
	}

	if v := os.Getenv("GITLAB_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.GitLab.Timeout = d
		}
	}

	if v := os.Getenv("GLPIPE_ARTIFACTS_DIR"); v != "" {
		c.Artifacts.Dir = v
	}

	if c.GitLab.BaseURL == "" {
		c.GitLab.BaseURL = "https://gitlab.com"
	}

	if c.GitLab.Timeout <= 0 {
		c.GitLab.Timeout = 30 * time.Second
	}

	return c, nil
}

// Host returns the hostname of the configured base URL. The identity
// resolver accepts it as the instance host for remotes whose name
// does not contain "gitlab".
func (c Config) Host() string {
	u, err := url.Parse(strings.TrimSpace(c.GitLab.BaseURL))
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Package config defines the process-wide configuration value object.
// It is constructed once at startup and passed by reference into the
// pipeline; per-request code never reads the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/previewbuilder/internal/errors"
)

// Default ports for the HTTP servers.
const (
	DefaultBuildPort = 8080
	DefaultAdminPort = 8081
)

// Tools configures the external build tool invocations.
type Tools struct {
	// Bundler is the path to the bundler binary (bun).
	Bundler string `yaml:"bundler"`
	// CSSProcessor is the package executed via the bundler's runner
	// for stylesheet compilation.
	CSSProcessor string `yaml:"css_processor"`
}

// HTTP configures the listening ports.
type HTTP struct {
	BuildPort int `yaml:"build_port"`
	AdminPort int `yaml:"admin_port"`
}

// Config holds every setting the service needs. Required fields have no
// defaults; Validate reports all missing ones at once so operators fix a
// deployment in a single pass.
type Config struct {
	// Bucket is the object storage bucket artifacts are published to. Required.
	Bucket string `yaml:"bucket"`
	// DistributionDomain is the CDN domain serving the bucket. Required.
	DistributionDomain string `yaml:"distribution_domain"`
	// PreviewDomain is the wildcard domain for per-component preview hosts. Required.
	PreviewDomain string `yaml:"preview_domain"`
	// Region is the object storage deployment region. Required.
	Region string `yaml:"region"`
	// TemplateRoot is the directory containing the template skeleton. Required.
	TemplateRoot string `yaml:"template_root"`

	// WorkspaceBase is the directory build workspaces are created under.
	// Empty means the system temp directory.
	WorkspaceBase string `yaml:"workspace_base"`
	// StorageEndpoint overrides the object storage endpoint (tests, local stacks).
	StorageEndpoint string `yaml:"storage_endpoint"`

	Tools   Tools `yaml:"tools"`
	HTTP    HTTP  `yaml:"http"`
	Metrics bool  `yaml:"metrics"`
}

// Default returns a Config with defaults applied for everything optional.
func Default() *Config {
	return &Config{
		Tools: Tools{
			Bundler:      "bun",
			CSSProcessor: "tailwindcss",
		},
		HTTP: HTTP{
			BuildPort: DefaultBuildPort,
			AdminPort: DefaultAdminPort,
		},
		Metrics: true,
	}
}

// Load reads the optional YAML config file, then overlays environment
// variables on top. A missing file is not an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- operator-provided path
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to read config file")
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to parse config file")
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Validate checks required values and reports every missing one in a single
// error. Absence of any required value is startup-fatal, never per-request.
func (c *Config) Validate() error {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"bucket", c.Bucket},
		{"distribution_domain", c.DistributionDomain},
		{"preview_domain", c.PreviewDomain},
		{"region", c.Region},
		{"template_root", c.TemplateRoot},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return errors.ConfigError(fmt.Sprintf("missing required configuration: %s", strings.Join(missing, ", "))).
			WithContext("missing", missing)
	}

	if info, err := os.Stat(c.TemplateRoot); err != nil {
		return errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "template root not accessible").
			WithContext("template_root", c.TemplateRoot)
	} else if !info.IsDir() {
		return errors.ConfigError("template root is not a directory").
			WithContext("template_root", c.TemplateRoot)
	}
	return nil
}

// TemplatesDir resolves the skeleton directory inside the template root.
func (c *Config) TemplatesDir() string {
	return filepath.Join(c.TemplateRoot, "templates")
}

package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names. These match the deployment environment's
// contract; the rest of the codebase only sees the Config value object.
const (
	EnvBucket             = "PREVIEW_BUCKET_NAME"
	EnvDistributionDomain = "PREVIEW_DISTRIBUTION_DOMAIN"
	EnvPreviewDomain      = "PREVIEW_DOMAIN"
	EnvRegion             = "PREVIEW_REGION"
	EnvTemplateRoot       = "PREVIEW_TEMPLATE_ROOT"
	EnvWorkspaceBase      = "PREVIEW_WORKSPACE_BASE"
	EnvStorageEndpoint    = "PREVIEW_STORAGE_ENDPOINT"
	EnvBundler            = "PREVIEW_BUNDLER"
	EnvBuildPort          = "PREVIEW_BUILD_PORT"
	EnvAdminPort          = "PREVIEW_ADMIN_PORT"
)

// LoadEnvFile loads variables from .env/.env.local without overriding the
// process environment. Absence of both files is not an error.
func LoadEnvFile() {
	for _, p := range []string{".env", ".env.local"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// applyEnv overlays environment variables onto the config. Set variables win
// over file values; unset ones leave the existing value untouched.
func (c *Config) applyEnv() {
	setString(&c.Bucket, EnvBucket)
	setString(&c.DistributionDomain, EnvDistributionDomain)
	setString(&c.PreviewDomain, EnvPreviewDomain)
	setString(&c.Region, EnvRegion)
	setString(&c.TemplateRoot, EnvTemplateRoot)
	setString(&c.WorkspaceBase, EnvWorkspaceBase)
	setString(&c.StorageEndpoint, EnvStorageEndpoint)
	setString(&c.Tools.Bundler, EnvBundler)
	setInt(&c.HTTP.BuildPort, EnvBuildPort)
	setInt(&c.HTTP.AdminPort, EnvAdminPort)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

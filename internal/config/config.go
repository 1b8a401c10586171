package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Output  OutputConfig  `mapstructure:"output"`
}

type ServerConfig struct {
	Addr          string        `mapstructure:"addr"`
	MaxUploadMB   int64         `mapstructure:"max_upload_mb"`
	RunTimeout    time.Duration `mapstructure:"run_timeout"`
	PreviewRows   int           `mapstructure:"preview_rows"`
	UploadTempDir string        `mapstructure:"upload_temp_dir"`
}

type CatalogConfig struct {
	Path     string `mapstructure:"path"`
	Required bool   `mapstructure:"required"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_mb", 50)
	v.SetDefault("server.run_timeout", 2*time.Minute)
	v.SetDefault("server.preview_rows", 20)
	v.SetDefault("server.upload_temp_dir", "")
	v.SetDefault("catalog.path", "data/master_catalog.csv")
	v.SetDefault("catalog.required", false)
	v.SetDefault("output.dir", ".")
}

// LoadConfig loads configuration from config.yaml and environment variables.
// A missing config file is fine; defaults apply.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.salesclean/")
	v.AddConfigPath("/etc/salesclean/")

	// Enable environment variable override with SALESCLEAN_ prefix,
	// e.g. SALESCLEAN_CATALOG_PATH for catalog.path
	v.SetEnvPrefix("SALESCLEAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the jdx configuration file (~/.config/jdx/config.yaml).
// Numeric fields are pointers so an explicit zero can be told apart from an
// absent key.
type Config struct {
	Store    string `yaml:"store"`
	Root     string `yaml:"root"`
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Endpoint string `yaml:"endpoint"`
	Region   string `yaml:"region"`
	Secure   *bool  `yaml:"secure"`

	// Minio credentials. The MINIO_ACCESS_KEY and MINIO_SECRET_KEY
	// environment variables take precedence.
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`

	Workers *int   `yaml:"workers"`
	IOLimit *int64 `yaml:"io_limit"`

	Compression string `yaml:"compression"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// loaded is the configuration read by the root command.
var loaded Config

func configPath() string {
	if p := os.Getenv("JDX_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "jdx", "config.yaml")
}

// LoadConfig reads the config file. A missing file yields a zero Config; a
// file that does not parse is an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyConfig copies config values into the global flag variables whose flag
// was not set on the command line.
func applyConfig(c *cli.Command, cfg Config) {
	loaded = cfg

	setString := func(flag string, dst *string, v string) {
		if v != "" && !c.IsSet(flag) {
			*dst = v
		}
	}
	setString("store", &storeKind, cfg.Store)
	setString("root", &storeRoot, cfg.Root)
	setString("bucket", &bucket, cfg.Bucket)
	setString("prefix", &prefix, cfg.Prefix)
	setString("endpoint", &endpoint, cfg.Endpoint)
	setString("region", &region, cfg.Region)
	setString("log-level", &logLevel, cfg.LogLevel)
	setString("log-format", &logFormat, cfg.LogFormat)

	if cfg.Secure != nil && !c.IsSet("secure") {
		secure = *cfg.Secure
	}
	if cfg.Workers != nil && !c.IsSet("workers") {
		workers = *cfg.Workers
	}
	if cfg.IOLimit != nil && !c.IsSet("io-limit") {
		ioLimit = *cfg.IOLimit
	}
}

func minioCredentials() (string, string) {
	access, secret := os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY")
	if access == "" {
		access = loaded.AccessKey
	}
	if secret == "" {
		secret = loaded.SecretKey
	}
	return access, secret
}

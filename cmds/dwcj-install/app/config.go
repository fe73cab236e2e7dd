package app

import (
	"os"
	"path/filepath"

	"github.com/drone/envsubst"
	"github.com/mandelsoft/goutils/generics"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"

	"github.com/dwcj/installer/pkg/installer"
)

const CONFIG_FILE = ".dwcj-install"

const (
	ENV_DEPLOY_ROOT = "DWCJ_DEPLOY_ROOT"
	ENV_HOME        = "DWCJ_HOME"
	ENV_ADMIN       = "DWCJ_ADMIN"
)

const DEFAULT_ADMIN = "http://localhost:8888/admin"

// Config is the content of the configuration file. String values may
// refer to environment variables (${VAR}).
type Config struct {
	DeployRoot *string             `json:"deployRoot,omitempty"`
	Home       *string             `json:"home,omitempty"`
	Admin      *string             `json:"admin,omitempty"`
	Settings   *installer.Settings `json:"settings,omitempty"`
}

// GetConfig merges the configuration files found in the user home, the
// user config directory and the working directory, or reads the
// explicitly given file only. Environment variables override file
// settings.
func GetConfig(fs vfs.FileSystem, path string) (*Config, error) {
	var cfg Config

	if path != "" {
		c, err := ReadConfig(fs, path)
		if err != nil {
			return nil, err
		}
		MergeConfig(&cfg, c)
	} else {
		dir, err := os.UserHomeDir()
		if err == nil {
			MergeConfig(&cfg, readOptionalConfig(fs, filepath.Join(dir, CONFIG_FILE)))
		}
		dir, err = os.UserConfigDir()
		if err == nil {
			MergeConfig(&cfg, readOptionalConfig(fs, filepath.Join(dir, CONFIG_FILE)))
		}
		MergeConfig(&cfg, readOptionalConfig(fs, CONFIG_FILE))
	}

	if v := os.Getenv(ENV_DEPLOY_ROOT); v != "" {
		cfg.DeployRoot = generics.Pointer(v)
	}
	if v := os.Getenv(ENV_HOME); v != "" {
		cfg.Home = generics.Pointer(v)
	}
	if v := os.Getenv(ENV_ADMIN); v != "" {
		cfg.Admin = generics.Pointer(v)
	}
	if cfg.Admin == nil || *cfg.Admin == "" {
		cfg.Admin = generics.Pointer(DEFAULT_ADMIN)
	}
	return &cfg, nil
}

func readOptionalConfig(fs vfs.FileSystem, path string) *Config {
	cfg, err := ReadConfig(fs, path)
	if err != nil {
		return nil
	}
	return cfg
}

func ReadConfig(fs vfs.FileSystem, path string) (*Config, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	expanded, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = yaml.Unmarshal([]byte(expanded), &cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func MergeConfig(cfg *Config, add *Config) {
	if add == nil {
		return
	}
	if add.DeployRoot != nil {
		cfg.DeployRoot = add.DeployRoot
	}
	if add.Home != nil {
		cfg.Home = add.Home
	}
	if add.Admin != nil {
		cfg.Admin = add.Admin
	}
	if add.Settings != nil {
		cfg.Settings = add.Settings
	}
}

func value(flag string, cfg *string) string {
	if flag != "" || cfg == nil {
		return flag
	}
	return *cfg
}

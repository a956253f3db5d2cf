// Package config provides configuration types, defaults and loading for pdftok.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"pdftok/internal/log"
)

const (
	// DefaultRoot is the tree scanned for indexed PDFs
	DefaultRoot = "~/Dropbox"
	// EnvPrefix prefixes environment overrides, e.g. PDFTOK_ROOT
	EnvPrefix = "PDFTOK"
)

// Config holds every path and rule the core needs. It is passed explicitly
// to constructors; nothing below cmd/ resolves paths on its own.
type Config struct {
	Root             string   `mapstructure:"root" yaml:"root"`
	Registry         string   `mapstructure:"registry" yaml:"registry"`
	BackupDir        string   `mapstructure:"backup_dir" yaml:"backup_dir"` // empty = registry directory
	Report           string   `mapstructure:"report" yaml:"report"`
	InventoryDB      string   `mapstructure:"inventory_db" yaml:"inventory_db"`
	Extensions       []string `mapstructure:"extensions" yaml:"extensions"` // empty = every file
	ExcludeDirs      []string `mapstructure:"exclude_dirs" yaml:"exclude_dirs"`
	MinIndexTokens   int      `mapstructure:"min_index_tokens" yaml:"min_index_tokens"`
	ProtectedFolders []string `mapstructure:"protected_folders" yaml:"protected_folders"`
	IgnoredFolders   []string `mapstructure:"ignored_folders" yaml:"ignored_folders"`
	DebugLog         string   `mapstructure:"debug_log" yaml:"debug_log"`
	LogLevel         string   `mapstructure:"log_level" yaml:"log_level"`
}

// Defaults returns the configuration used when no file or override is present
func Defaults() Config {
	return Config{
		Root:        DefaultRoot,
		Registry:    "~/Dropbox/pdfmanager/pdf_manager_tok_init.json",
		Report:      "~/Dropbox/coffeetable/pdf-document.txt",
		InventoryDB: "~/Dropbox/pdfmanager/inventory.db",
		Extensions:  []string{".pdf"},
		ExcludeDirs: []string{"RAG"},
		// The spacing convention round-trips single-character codes
		MinIndexTokens: 1,
		ProtectedFolders: []string{
			"documents",
			"1hugefiles",
			"documents-in-folders",
			"1-spark-library",
		},
		IgnoredFolders: []string{"pdfmanager"},
		LogLevel:       "debug",
	}
}

// SetDefaults registers Defaults on v
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("root", d.Root)
	v.SetDefault("registry", d.Registry)
	v.SetDefault("backup_dir", d.BackupDir)
	v.SetDefault("report", d.Report)
	v.SetDefault("inventory_db", d.InventoryDB)
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("exclude_dirs", d.ExcludeDirs)
	v.SetDefault("min_index_tokens", d.MinIndexTokens)
	v.SetDefault("protected_folders", d.ProtectedFolders)
	v.SetDefault("ignored_folders", d.IgnoredFolders)
	v.SetDefault("debug_log", d.DebugLog)
	v.SetDefault("log_level", d.LogLevel)
}

// Load reads configuration into a Config.
// An explicit cfgFile must exist; otherwise ./.pdftok/config.yaml and then
// ~/.config/pdftok/config.yaml are tried, and a missing file means defaults.
func Load(v *viper.Viper, cfgFile string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if _, err := os.Stat(LocalConfigPath); err == nil {
		v.SetConfigFile(LocalConfigPath)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "pdftok"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "no config file found, using defaults")
	} else {
		log.Debug(log.CatConfig, "loaded config", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg = cfg.Expanded()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LocalConfigPath is the per-directory config location
const LocalConfigPath = ".pdftok/config.yaml"

// Validate checks required settings
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Root) == "" {
		missing = append(missing, "root")
	}
	if strings.TrimSpace(c.Registry) == "" {
		missing = append(missing, "registry")
	}
	if strings.TrimSpace(c.Report) == "" {
		missing = append(missing, "report")
	}
	if strings.TrimSpace(c.InventoryDB) == "" {
		missing = append(missing, "inventory_db")
	}
	if len(missing) > 0 {
		return fmt.Errorf("invalid config: missing %s", strings.Join(missing, ", "))
	}
	if c.MinIndexTokens < 1 {
		return fmt.Errorf("invalid config: min_index_tokens must be at least 1, got %d", c.MinIndexTokens)
	}
	return nil
}

// Expanded returns a copy with ~ expanded in every path
func (c Config) Expanded() Config {
	c.Root = ExpandPath(c.Root)
	c.Registry = ExpandPath(c.Registry)
	c.BackupDir = ExpandPath(c.BackupDir)
	c.Report = ExpandPath(c.Report)
	c.InventoryDB = ExpandPath(c.InventoryDB)
	c.DebugLog = ExpandPath(c.DebugLog)
	return c
}

// BackupDirectory returns where registry backups are written
func (c Config) BackupDirectory() string {
	if c.BackupDir != "" {
		return c.BackupDir
	}
	return filepath.Dir(c.Registry)
}

// ExpandPath expands a leading ~ to the home directory
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// WriteDefaultConfig writes Defaults as YAML to path, creating parent directories.
// An existing file is left untouched.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Package config handles loading and managing application configuration
// from YAML files, .env files and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cooperunion/asset-tags/label"
)

// Fonts names the font used for each text role.
type Fonts struct {
	Regular string   `yaml:"regular"`
	Bold    string   `yaml:"bold"`
	Dirs    []string `yaml:"dirs"`
}

// Config holds all application configuration values.
type Config struct {
	TagsFrom int            `yaml:"tags_from"`
	TagsTo   int            `yaml:"tags_to"`
	SaveDir  string         `yaml:"save_dir"`
	Layout   string         `yaml:"layout"`
	Fonts    Fonts          `yaml:"fonts"`
	Layouts  []label.Layout `yaml:"layouts"`
	LogLevel string         `yaml:"log_level"`
	Port     int            `yaml:"port"`
}

// defaultFontDirs are the usual system font locations.
func defaultFontDirs() []string {
	dirs := []string{
		"/usr/share/fonts",
		"/usr/local/share/fonts",
		"/Library/Fonts",
		"/System/Library/Fonts",
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs,
			filepath.Join(home, ".local", "share", "fonts"),
			filepath.Join(home, ".fonts"),
			filepath.Join(home, "Library", "Fonts"))
	}
	if windir := os.Getenv("WINDIR"); windir != "" {
		dirs = append(dirs, filepath.Join(windir, "Fonts"))
	}
	return dirs
}

// defaults returns a Config populated with sensible default values.
func defaults() *Config {
	return &Config{
		TagsFrom: 0,
		TagsTo:   1,
		SaveDir:  ".",
		Layout:   label.Standard.Name,
		Fonts: Fonts{
			Regular: "LiberationSans-Regular",
			Bold:    "LiberationSans-Bold",
			Dirs:    defaultFontDirs(),
		},
		LogLevel: "info",
		Port:     8556,
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. A .env file in the working
// directory is loaded first; ATAG_ environment variables then override
// file and default values.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
			// File doesn't exist, proceed with defaults.
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides applies ATAG_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ATAG_SAVE_DIR"); v != "" {
		cfg.SaveDir = v
	}
	if v := os.Getenv("ATAG_LAYOUT"); v != "" {
		cfg.Layout = v
	}
	if v := os.Getenv("ATAG_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ATAG_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("ATAG_FONT_REGULAR"); v != "" {
		cfg.Fonts.Regular = v
	}
	if v := os.Getenv("ATAG_FONT_BOLD"); v != "" {
		cfg.Fonts.Bold = v
	}
	if v := os.Getenv("ATAG_FONT_DIRS"); v != "" {
		cfg.Fonts.Dirs = strings.Split(v, string(os.PathListSeparator))
	}
}

// FontSet returns the font settings in the form the renderer takes.
func (c *Config) FontSet() label.FontSet {
	return label.FontSet{
		Regular: c.Fonts.Regular,
		Bold:    c.Fonts.Bold,
		Dirs:    c.Fonts.Dirs,
	}
}

// AllLayouts returns the built-in layouts merged with those defined in the
// config file. A configured layout replaces a built-in of the same name.
func (c *Config) AllLayouts() (map[string]label.Layout, error) {
	layouts := label.Builtin()
	for i, l := range c.Layouts {
		if l.Name == "" {
			return nil, fmt.Errorf("layout %d in config has no name", i)
		}
		if err := l.Validate(); err != nil {
			return nil, err
		}
		layouts[l.Name] = l
	}
	return layouts, nil
}

// SelectedLayout returns the layout named by c.Layout.
func (c *Config) SelectedLayout() (label.Layout, error) {
	layouts, err := c.AllLayouts()
	if err != nil {
		return label.Layout{}, err
	}
	l, ok := layouts[c.Layout]
	if !ok {
		return label.Layout{}, fmt.Errorf("unknown layout %q (available: %s)",
			c.Layout, strings.Join(label.Names(layouts), ", "))
	}
	return l, nil
}

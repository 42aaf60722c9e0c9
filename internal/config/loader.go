package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/25smoking/bamparse/internal/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultName is the config file looked up under config/ and in the embedded defaults.
const DefaultName = "bam.yaml"

// ErrUnsupportedBuild means no configured BAM key covers the host build.
var ErrUnsupportedBuild = errors.New("unsupported windows build")

// Output formats.
const (
	FormatJSON   = "json"
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
	FormatHTML   = "html"
	FormatDOT    = "dot"
)

// Timezones.
const (
	TimezoneUTC   = "utc"
	TimezoneLocal = "local"
)

// ========== BAM Config ==========

type Config struct {
	BAM struct {
		Keys []KeyRule `yaml:"keys"`
	} `yaml:"bam"`

	Output struct {
		Path     string `yaml:"path"`
		Format   string `yaml:"format"`
		Timezone string `yaml:"timezone"`
	} `yaml:"output"`

	Workers int `yaml:"workers"`
}

// KeyRule binds a set of build prefixes to the UserSettings key they use.
type KeyRule struct {
	Builds []string `yaml:"builds"`
	Path   string   `yaml:"path"`
}

// KeyForBuild returns the BAM key for a build string such as
// "10.0.19045" or "10.0.19045 Build 19045".
func (c *Config) KeyForBuild(build string) (string, error) {
	for _, rule := range c.BAM.Keys {
		for _, b := range rule.Builds {
			if b != "" && strings.Contains(build, b) {
				return rule.Path, nil
			}
		}
	}
	return "", fmt.Errorf("build %q: %w", build, ErrUnsupportedBuild)
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	switch strings.ToLower(c.Output.Timezone) {
	case "", TimezoneUTC:
		return time.UTC, nil
	case TimezoneLocal:
		return time.Local, nil
	default:
		loc, err := time.LoadLocation(c.Output.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", c.Output.Timezone, err)
		}
		return loc, nil
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatCSV, FormatSQLite, FormatHTML, FormatDOT:
	default:
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output path is empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Output.Path == "" {
		c.Output.Path = "results.json"
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatJSON
	}
	c.Output.Format = strings.ToLower(c.Output.Format)
	if c.Output.Timezone == "" {
		c.Output.Timezone = TimezoneUTC
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
}

// ========== Loader Functions ==========

func loadConfigData(configPath, defaultName string) ([]byte, error) {
	// 1. 显式指定的路径必须存在
	if configPath != "" {
		return os.ReadFile(configPath)
	}

	// 2. 尝试从文件系统加载
	if data, err := os.ReadFile(GetConfigPath(defaultName)); err == nil {
		return data, nil
	}

	// 3. 回退到内嵌配置
	// 注意: embed总是使用正斜杠
	return embedded.Content.ReadFile("config/" + defaultName)
}

// Load reads the config at configPath, or config/bam.yaml, or the embedded default.
func Load(configPath string) (*Config, error) {
	data, err := loadConfigData(configPath, DefaultName)
	if err != nil {
		return nil, fmt.Errorf("failed to read bam config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data and fills defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse bam config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// GetConfigPath 获取配置文件的路径（兼容不同运行环境）
func GetConfigPath(filename string) string {
	candidates := []string{
		filepath.Join("config", filename),
		filepath.Join("..", "config", filename),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	// 默认返回第一个路径
	return candidates[0]
}

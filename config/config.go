// Package config loads and stores the on-disk configuration: which OCR
// service to use, its credentials, and output preferences. The file
// lives at ~/.rednote-pic2md/config.yaml and is written with owner-only
// permissions because it holds API secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/shuncox/rednote-pic2md/ocr"
)

// Config is the root of the configuration file.
type Config struct {
	OCR         OCRConfig         `yaml:"ocr"`
	Output      OutputConfig      `yaml:"output"`
	Performance PerformanceConfig `yaml:"performance"`
}

// OCRConfig selects the recognition service and holds per-service
// credentials. Only the selected service's section needs to be filled.
type OCRConfig struct {
	Service string        `yaml:"service"`
	Baidu   BaiduConfig   `yaml:"baidu"`
	Tencent TencentConfig `yaml:"tencent"`
	Aliyun  AliyunConfig  `yaml:"aliyun"`
	Local   LocalConfig   `yaml:"local"`
}

type BaiduConfig struct {
	APIKey    string `yaml:"api_key"`
	SecretKey string `yaml:"secret_key"`
}

type TencentConfig struct {
	SecretID  string `yaml:"secret_id"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
}

type AliyunConfig struct {
	AccessKeyID     string `yaml:"access_key_id"`
	AccessKeySecret string `yaml:"access_key_secret"`
	Region          string `yaml:"region"`
}

type LocalConfig struct {
	Languages string `yaml:"languages"`
}

// OutputConfig controls where and under what name documents land.
type OutputConfig struct {
	// Directory receives the generated documents; empty means the
	// source image's directory.
	Directory string `yaml:"directory"`

	// FilenamePattern names the output file, with {title} replaced by
	// the series title.
	FilenamePattern string `yaml:"filename_pattern"`
}

// PerformanceConfig caps the request rate per service, in requests per
// second. Zero keeps the service default.
type PerformanceConfig struct {
	BaiduQPS   int `yaml:"baidu_qps"`
	TencentQPS int `yaml:"tencent_qps"`
	AliyunQPS  int `yaml:"aliyun_qps"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		OCR: OCRConfig{Service: "baidu"},
		Output: OutputConfig{
			FilenamePattern: "{title}",
		},
		Performance: PerformanceConfig{
			BaiduQPS:   ocr.DefaultBaiduQPS,
			TencentQPS: ocr.DefaultTencentQPS,
			AliyunQPS:  ocr.DefaultAliyunQPS,
		},
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".rednote-pic2md", "config.yaml"), nil
}

// Load reads the configuration at path, layered over Default. A missing
// file is not an error; the defaults come back unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if
// needed. File and directory are owner-only: the file carries API
// secrets.
func Save(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// ServiceConfig translates the file contents into an OCR service
// configuration. An empty name selects the configured default service.
func (c Config) ServiceConfig(name string) ocr.Config {
	if name == "" {
		name = c.OCR.Service
	}
	return ocr.Config{
		Service:               name,
		BaiduAPIKey:           c.OCR.Baidu.APIKey,
		BaiduSecretKey:        c.OCR.Baidu.SecretKey,
		TencentSecretID:       c.OCR.Tencent.SecretID,
		TencentSecretKey:      c.OCR.Tencent.SecretKey,
		TencentRegion:         c.OCR.Tencent.Region,
		AliyunAccessKeyID:     c.OCR.Aliyun.AccessKeyID,
		AliyunAccessKeySecret: c.OCR.Aliyun.AccessKeySecret,
		AliyunRegion:          c.OCR.Aliyun.Region,
		LocalLanguages:        c.OCR.Local.Languages,
		QPS:                   c.QPS(name),
	}
}

// QPS returns the configured request rate for the named service, zero
// when unset.
func (c Config) QPS(name string) int {
	switch name {
	case "baidu":
		return c.Performance.BaiduQPS
	case "tencent":
		return c.Performance.TencentQPS
	case "aliyun":
		return c.Performance.AliyunQPS
	default:
		return 0
	}
}

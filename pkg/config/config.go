package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Providers   ProvidersConfig   `yaml:"providers"`
	BrandTerms  []string          `yaml:"brand_terms"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Report      ReportConfig      `yaml:"report"`
}

// LLMConfig LLM 相关配置
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// ProvidersConfig 上游数据源配置
type ProvidersConfig struct {
	SearchPerf SearchPerfConfig `yaml:"search_perf"`
	TrendWatch TrendWatchConfig `yaml:"trendwatch"`
}

// SearchPerfConfig 搜索表现数据源（关键词/页面/受众/时间序列/站点地图/展现形式）
type SearchPerfConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	SiteURL string `yaml:"site_url"`
	Days    int    `yaml:"days"` // 拉取窗口，默认 28 天
}

// TrendWatchConfig 外部趋势与竞对数据源
type TrendWatchConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Timeout int    `yaml:"timeout"` // 秒
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// ReportConfig 报告输出配置
type ReportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Validate 校验启动必需项
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return fmt.Errorf("配置错误: 未设置 llm.api_key")
	}
	if c.Providers.SearchPerf.SiteURL == "" {
		return fmt.Errorf("配置错误: 未设置 providers.search_perf.site_url")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Providers.SearchPerf.Days <= 0 {
		c.Providers.SearchPerf.Days = 28
	}
	if c.Providers.TrendWatch.Timeout <= 0 {
		c.Providers.TrendWatch.Timeout = 30
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 30
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "output"
	}
}

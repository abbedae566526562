package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
llm:
  base_url: "https://api.example.com/v1"
  api_key: "sk-test"
  model: "gpt-4o-mini"
providers:
  search_perf:
    base_url: "https://searchperf.example.com"
    api_key: "sp-token"
    site_url: "https://www.example.com"
    days: 14
  trendwatch:
    base_url: "https://trendwatch.example.com"
    api_key: "tw-token"
brand_terms:
  - "searchradar"
  - "搜索雷达"
concurrency:
  qps: 2
report:
  output_dir: "reports"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入临时配置失败: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("LLM.Model = %q", cfg.LLM.Model)
	}
	if cfg.Providers.SearchPerf.SiteURL != "https://www.example.com" {
		t.Errorf("SiteURL = %q", cfg.Providers.SearchPerf.SiteURL)
	}
	if cfg.Providers.SearchPerf.Days != 14 {
		t.Errorf("Days = %d, want 显式配置的 14", cfg.Providers.SearchPerf.Days)
	}
	if len(cfg.BrandTerms) != 2 || cfg.BrandTerms[1] != "搜索雷达" {
		t.Errorf("BrandTerms = %v", cfg.BrandTerms)
	}
	if cfg.Report.OutputDir != "reports" {
		t.Errorf("OutputDir = %q", cfg.Report.OutputDir)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

// 未显式配置的项回落到默认值
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "llm:\n  api_key: \"sk-test\"\n"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Providers.SearchPerf.Days != 28 {
		t.Errorf("Days 默认值 = %d, want 28", cfg.Providers.SearchPerf.Days)
	}
	if cfg.Providers.TrendWatch.Timeout != 30 {
		t.Errorf("Timeout 默认值 = %d, want 30", cfg.Providers.TrendWatch.Timeout)
	}
	if cfg.Concurrency.QPS != 1 || cfg.Concurrency.RPM != 30 {
		t.Errorf("并发默认值 = qps %d / rpm %d", cfg.Concurrency.QPS, cfg.Concurrency.RPM)
	}
	if cfg.Report.OutputDir != "output" {
		t.Errorf("OutputDir 默认值 = %q", cfg.Report.OutputDir)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("不存在的配置文件应返回错误")
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, "llm: [not a map")); err == nil {
		t.Errorf("非法 YAML 应返回错误")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"完整配置", func(c *Config) {}, false},
		{"缺少模型密钥", func(c *Config) { c.LLM.APIKey = "" }, true},
		{"缺少站点地址", func(c *Config) { c.Providers.SearchPerf.SiteURL = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.LLM.APIKey = "sk-test"
			cfg.Providers.SearchPerf.SiteURL = "https://www.example.com"
			tt.mutate(cfg)

			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

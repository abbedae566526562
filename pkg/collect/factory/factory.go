package factory

import (
	"fmt"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/search_radar/pkg/collect"
	"github.com/iWorld-y/search_radar/pkg/collect/searchperf"
	"github.com/iWorld-y/search_radar/pkg/collect/trendwatch"
	"github.com/iWorld-y/search_radar/pkg/config"
)

// NewCollectors 根据配置创建采集器集合。搜索表现数据源是必需的，
// 外部趋势数据源缺省时跳过，对应槽位由归一化层降级补位。
func NewCollectors(cfg *config.Config, limiter *rate.Limiter) ([]collect.Collector, error) {
	if cfg.Providers.SearchPerf.BaseURL == "" {
		return nil, fmt.Errorf("search_perf base url is missing")
	}
	if cfg.Providers.SearchPerf.SiteURL == "" {
		return nil, fmt.Errorf("search_perf site url is missing")
	}

	collectors := []collect.Collector{
		searchperf.NewClient(cfg.Providers.SearchPerf, limiter),
	}

	if cfg.Providers.TrendWatch.BaseURL != "" {
		collectors = append(collectors,
			trendwatch.NewClient(cfg.Providers.TrendWatch, cfg.Providers.SearchPerf.SiteURL, limiter))
	}

	return collectors, nil
}

package trendwatch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/search_radar/pkg/collect"
	"github.com/iWorld-y/search_radar/pkg/config"
	"github.com/iWorld-y/search_radar/pkg/logger"
	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// Client 外部趋势与竞对数据源客户端。一次 signals 调用可能同时
// 带回热度序列、上升词与竞对排名，也可能只有其中一部分。
type Client struct {
	cfg     config.TrendWatchConfig
	client  *http.Client
	limiter *rate.Limiter
	site    string
}

// NewClient 创建 trendwatch 客户端
func NewClient(cfg config.TrendWatchConfig, site string, limiter *rate.Limiter) *Client {
	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		limiter: limiter,
		site:    site,
	}
}

var _ collect.Collector = (*Client)(nil)

// Name implements collect.Collector
func (c *Client) Name() string {
	return "trendwatch"
}

type signalsResponse struct {
	Interest    []dm.InterestPoint   `json:"interest"`
	Rising      []dm.RisingQuery     `json:"rising_queries"`
	Competitors []dm.CompetitorEntry `json:"competitors"`
}

// Collect 拉取外部信号并拆分为趋势与竞对两个信封。
// 调用失败时两个槽位都标记失败；调用成功但某一子信号为空时，
// 由归一化层按子信号独立降级。
func (c *Client) Collect(ctx context.Context) map[dm.SourceKind]dm.RawPayload {
	out := map[dm.SourceKind]dm.RawPayload{}

	resp, err := c.fetchSignals(ctx)
	if err != nil {
		logger.Log.Warnf("外部信号请求失败: %v", err)
		out[dm.SourceExternalTrend] = collect.Failure(dm.SourceExternalTrend, err)
		out[dm.SourceExternalCompetitor] = collect.Failure(dm.SourceExternalCompetitor, err)
		return out
	}

	out[dm.SourceExternalTrend] = dm.RawPayload{
		Kind:      dm.SourceExternalTrend,
		Succeeded: true,
		Interest:  resp.Interest,
		Rising:    resp.Rising,
	}
	out[dm.SourceExternalCompetitor] = dm.RawPayload{
		Kind:        dm.SourceExternalCompetitor,
		Succeeded:   true,
		Competitors: resp.Competitors,
	}
	return out
}

// fetchSignals 拉取近 12 个月的外部信号
func (c *Client) fetchSignals(ctx context.Context) (*signalsResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v1/signals?site=%s&months=12",
		c.cfg.BaseURL, url.QueryEscape(c.site))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Add("Authorization", "Bearer "+c.cfg.APIKey)

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trendwatch api error (status %d): %s", res.StatusCode, string(body))
	}

	var resp signalsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response failed: %w", err)
	}
	return &resp, nil
}

package searchperf

import (
	"bytes"
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

// Client 搜索表现 API 客户端，负责关键词/页面/受众/时间序列/
// 站点地图/展现形式六类子请求
type Client struct {
	cfg     config.SearchPerfConfig
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient 创建搜索表现客户端
func NewClient(cfg config.SearchPerfConfig, limiter *rate.Limiter) *Client {
	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: 60 * time.Second},
		limiter: limiter,
	}
}

var _ collect.Collector = (*Client)(nil)

// Name implements collect.Collector
func (c *Client) Name() string {
	return "searchperf"
}

// Collect 拉取全部子维度。单个子请求失败只降级对应槽位，
// 不影响其他维度。
func (c *Client) Collect(ctx context.Context) map[dm.SourceKind]dm.RawPayload {
	end := time.Now()
	start := end.AddDate(0, 0, -c.cfg.Days)
	window := dateRange{
		StartDate: start.Format(time.DateOnly),
		EndDate:   end.Format(time.DateOnly),
	}

	out := map[dm.SourceKind]dm.RawPayload{}

	queries := []struct {
		kind      dm.SourceKind
		dimension string
		rowLimit  int
	}{
		{dm.SourceKeywords, "query", 250},
		{dm.SourcePages, "page", 250},
		{dm.SourceAudienceDevice, "device", 10},
		{dm.SourceAudienceCountry, "country", 50},
		{dm.SourceTrend, "date", 0},
		{dm.SourceAppearance, "searchAppearance", 25},
	}

	for _, q := range queries {
		rows, err := c.queryAnalytics(ctx, window, q.dimension, q.rowLimit)
		if err != nil {
			logger.Log.Warnf("搜索表现子请求失败 [%s]: %v", q.kind, err)
			out[q.kind] = collect.Failure(q.kind, err)
			continue
		}
		out[q.kind] = dm.RawPayload{Kind: q.kind, Succeeded: true, Rows: rows}
	}

	sitemaps, err := c.listSitemaps(ctx)
	if err != nil {
		logger.Log.Warnf("站点地图请求失败: %v", err)
		out[dm.SourceSitemap] = collect.Failure(dm.SourceSitemap, err)
	} else {
		out[dm.SourceSitemap] = dm.RawPayload{
			Kind:      dm.SourceSitemap,
			Succeeded: true,
			Sitemaps:  sitemaps,
		}
	}

	return out
}

type dateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type analyticsRequest struct {
	dateRange
	Dimensions []string `json:"dimensions"`
	RowLimit   int      `json:"row_limit,omitempty"`
}

type analyticsResponse struct {
	Rows []dm.MetricRow `json:"rows"`
}

// queryAnalytics 执行单维度查询
func (c *Client) queryAnalytics(ctx context.Context, window dateRange, dimension string, rowLimit int) ([]dm.MetricRow, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body := analyticsRequest{
		dateRange:  window,
		Dimensions: []string{dimension},
		RowLimit:   rowLimit,
	}

	endpoint := fmt.Sprintf("%s/sites/%s/searchAnalytics/query",
		c.cfg.BaseURL, url.PathEscape(c.cfg.SiteURL))

	var resp analyticsResponse
	if err := c.doJSON(ctx, http.MethodPost, endpoint, body, &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

type sitemapsResponse struct {
	Sitemaps []struct {
		Path          string `json:"path"`
		LastSubmitted string `json:"last_submitted"`
		IsPending     bool   `json:"is_pending"`
		Errors        int    `json:"errors"`
		Warnings      int    `json:"warnings"`
	} `json:"sitemaps"`
}

// listSitemaps 拉取站点地图提交状态
func (c *Client) listSitemaps(ctx context.Context) ([]dm.SitemapEntry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/sites/%s/sitemaps",
		c.cfg.BaseURL, url.PathEscape(c.cfg.SiteURL))

	var resp sitemapsResponse
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	entries := make([]dm.SitemapEntry, 0, len(resp.Sitemaps))
	for _, s := range resp.Sitemaps {
		entries = append(entries, dm.SitemapEntry{
			Path:          s.Path,
			LastSubmitted: s.LastSubmitted,
			Pending:       s.IsPending,
			Errors:        s.Errors,
			Warnings:      s.Warnings,
		})
	}
	return entries, nil
}

// doJSON 发起带鉴权的 JSON 请求并解析响应
func (c *Client) doJSON(ctx context.Context, method, endpoint string, reqBody, respBody any) error {
	var reader io.Reader
	if reqBody != nil {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Add("Authorization", "Bearer "+c.cfg.APIKey)
	httpReq.Header.Add("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read body failed: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("searchperf api error (status %d): %s", res.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("unmarshal response failed: %w", err)
	}
	return nil
}

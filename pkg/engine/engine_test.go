package engine

import (
	"context"
	"fmt"
	"reflect"
	"testing"

	"github.com/iWorld-y/search_radar/pkg/collect"
	"github.com/iWorld-y/search_radar/pkg/config"
	"github.com/iWorld-y/search_radar/pkg/insight"
	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// stubCollector 返回固定信封的采集器桩
type stubCollector struct {
	name     string
	payloads map[dm.SourceKind]dm.RawPayload
}

func (s *stubCollector) Name() string { return s.name }

func (s *stubCollector) Collect(_ context.Context) map[dm.SourceKind]dm.RawPayload {
	return s.payloads
}

// stubChat 返回固定回复的模型桩
type stubChat struct {
	reply dm.ModelReply
	calls int
}

func (s *stubChat) Generate(_ context.Context, _ string) dm.ModelReply {
	s.calls++
	return s.reply
}

func testConfig() *config.Config {
	cfg := &config.Config{BrandTerms: []string{"searchradar"}}
	cfg.Providers.SearchPerf.SiteURL = "https://www.example.com"
	return cfg
}

func testPayloads() map[dm.SourceKind]dm.RawPayload {
	rows := func(kind dm.SourceKind, rs []dm.MetricRow) dm.RawPayload {
		return dm.RawPayload{Kind: kind, Succeeded: true, Rows: rs}
	}
	trend := dm.RawPayload{Kind: dm.SourceTrend, Succeeded: true}
	for i := 0; i < 28; i++ {
		trend.Rows = append(trend.Rows, dm.MetricRow{
			Keys:   []string{fmt.Sprintf("2025-08-%02d", i+1)},
			Clicks: float64(100 + i),
		})
	}
	return map[dm.SourceKind]dm.RawPayload{
		dm.SourceKeywords: rows(dm.SourceKeywords, []dm.MetricRow{
			{Keys: []string{"searchradar 下载"}, Clicks: 40, Impressions: 2000, CTR: 0.02, Position: 8.4},
			{Keys: []string{"seo 工具 推荐"}, Clicks: 10, Impressions: 800, CTR: 0.0125, Position: 12.0},
		}),
		dm.SourcePages: rows(dm.SourcePages, []dm.MetricRow{
			{Keys: []string{"https://www.example.com/docs"}, Clicks: 30, Impressions: 900, CTR: 0.033, Position: 6.1},
		}),
		dm.SourceAudienceDevice: rows(dm.SourceAudienceDevice, []dm.MetricRow{
			{Keys: []string{"MOBILE"}, Clicks: 35, Impressions: 1800, CTR: 0.019},
		}),
		dm.SourceAudienceCountry: rows(dm.SourceAudienceCountry, []dm.MetricRow{
			{Keys: []string{"chn"}, Clicks: 45, Impressions: 2500, CTR: 0.018},
		}),
		dm.SourceTrend: trend,
	}
}

const replyJSON = `{
  "executive_summary": "整体表现稳中有升。",
  "keyword_clusters": {"品牌词": ["searchradar 下载"]},
  "quick_wins": [{"keyword": "seo 工具 推荐", "action": "重写标题", "expected_impact": "点击率翻倍"}],
  "competitive_gap": "竞品覆盖更多长尾词。",
  "recommendations": [{"priority": 1, "action": "补充教程内容", "impact": "高"}]
}`

func collectorsOf(cs ...collect.Collector) []collect.Collector { return cs }

// 相同输入两次运行必须产出逐字段相同的报告模型
func TestRun_Idempotent(t *testing.T) {
	sc := &stubCollector{name: "searchperf", payloads: testPayloads()}

	run := func() dm.ReportModel {
		chat := &stubChat{reply: dm.ModelReply{Succeeded: true, MessageText: replyJSON}}
		e := NewEngineWith(testConfig(), collectorsOf(sc), chat)
		rm, err := e.Run(context.Background(), RunOptions{})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return rm
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("两次运行结果不一致:\n第一次: %+v\n第二次: %+v", first, second)
	}

	if first.Insight.ExecutiveSummary != "整体表现稳中有升。" {
		t.Errorf("ExecutiveSummary = %q", first.Insight.ExecutiveSummary)
	}
	if first.Insight.ParseDegraded {
		t.Errorf("解析不应降级")
	}
	if first.Site != "https://www.example.com" {
		t.Errorf("Site = %q", first.Site)
	}
	if len(first.Annotations) != 2 {
		t.Errorf("标注数量 = %d, want 2", len(first.Annotations))
	}
	if first.Data.Trend.Direction != dm.TrendUp {
		t.Errorf("趋势方向 = %s, want up", first.Data.Trend.Direction)
	}
}

// 模型失败时报告降级而非报错
func TestRun_ModelFailureDegrades(t *testing.T) {
	chat := &stubChat{reply: dm.ModelReply{Succeeded: false, ErrorMessage: "连接超时"}}
	e := NewEngineWith(testConfig(),
		collectorsOf(&stubCollector{name: "searchperf", payloads: testPayloads()}), chat)

	rm, err := e.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rm.Insight.ExecutiveSummary != insight.UnavailableSummary {
		t.Errorf("ExecutiveSummary = %q, want 兜底文案", rm.Insight.ExecutiveSummary)
	}
	if !rm.Insight.ParseDegraded {
		t.Errorf("ParseDegraded 应为 true")
	}
	// 数据区块不受模型失败影响
	if rm.Data.Keywords.TotalClicks != 50 {
		t.Errorf("TotalClicks = %d, want 50", rm.Data.Keywords.TotalClicks)
	}
}

func TestRun_NoCollectors(t *testing.T) {
	chat := &stubChat{reply: dm.ModelReply{Succeeded: true, MessageText: replyJSON}}
	e := NewEngineWith(testConfig(), nil, chat)
	if _, err := e.Run(context.Background(), RunOptions{}); err == nil {
		t.Errorf("无采集器时应报错")
	}
	if chat.calls != 0 {
		t.Errorf("无采集器时不应调用模型")
	}
}

func TestRun_ProgressCallback(t *testing.T) {
	chat := &stubChat{reply: dm.ModelReply{Succeeded: true, MessageText: replyJSON}}
	e := NewEngineWith(testConfig(),
		collectorsOf(&stubCollector{name: "searchperf", payloads: testPayloads()}), chat)

	var statuses []string
	last := -1
	_, err := e.Run(context.Background(), RunOptions{
		ProgressCallback: func(status string, pct int) {
			statuses = append(statuses, status)
			if pct < last {
				t.Errorf("进度回退: %d -> %d", last, pct)
			}
			last = pct
		},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(statuses) == 0 || statuses[0] != "starting" || statuses[len(statuses)-1] != "completed" {
		t.Errorf("进度状态序列异常: %v", statuses)
	}
	if last != 100 {
		t.Errorf("最终进度 = %d, want 100", last)
	}
}

package normalize

import (
	"testing"

	dm "github.com/iWorld-y/search_radar/pkg/model"
)

func TestExternal_IndependentFlags(t *testing.T) {
	// 只有热度序列，没有上升词
	trendPayload := dm.RawPayload{
		Succeeded: true,
		Interest:  []dm.InterestPoint{{Month: "2025-07", Score: 62}},
	}
	competitorPayload := dm.RawPayload{
		Succeeded:   true,
		Competitors: []dm.CompetitorEntry{{Domain: "rival.com", Rank: 1}},
	}

	trend, competitor := External(trendPayload, competitorPayload)

	if !trend.HasData || !trend.External.HasInterest {
		t.Errorf("trend = %+v", trend.External)
	}
	if trend.External.HasRising {
		t.Errorf("无上升词时 HasRising 应为 false")
	}
	if !competitor.HasData || !competitor.External.HasCompetitors {
		t.Errorf("competitor = %+v", competitor.External)
	}
}

func TestExternal_OneSideFailed(t *testing.T) {
	trend, competitor := External(
		dm.RawPayload{ErrorMessage: "503 unavailable"},
		dm.RawPayload{Succeeded: true, Competitors: []dm.CompetitorEntry{{Domain: "rival.com", Rank: 1}}},
	)

	if trend.HasData {
		t.Errorf("失败侧不应有数据: %+v", trend)
	}
	if trend.ErrorMessage != "503 unavailable" {
		t.Errorf("ErrorMessage = %q", trend.ErrorMessage)
	}
	if !competitor.HasData {
		t.Errorf("另一侧不应被拖累: %+v", competitor)
	}
}

func TestSitemaps_PassThrough(t *testing.T) {
	ps := Sitemaps(dm.RawPayload{
		Succeeded: true,
		Sitemaps:  []dm.SitemapEntry{{Path: "/sitemap.xml", Errors: 2}},
	})
	if !ps.HasData || ps.Sitemaps.Submitted != 1 || ps.Sitemaps.Entries[0].Errors != 2 {
		t.Errorf("ps.Sitemaps = %+v", ps.Sitemaps)
	}

	empty := Sitemaps(dm.RawPayload{Succeeded: true})
	if empty.HasData || empty.Sitemaps.Entries == nil {
		t.Errorf("empty = %+v", empty.Sitemaps)
	}
}

func TestAppearance_PassThrough(t *testing.T) {
	ps := Appearance(dm.RawPayload{
		Succeeded: true,
		Rows:      []dm.MetricRow{{Keys: []string{"RICH_RESULT"}, Clicks: 12, Impressions: 300}},
	})
	if !ps.HasData || ps.Appearance.Entries[0].Key != "RICH_RESULT" {
		t.Errorf("ps.Appearance = %+v", ps.Appearance)
	}
}

// 固定槽位的扇出汇合：无论输入缺了多少，输出里每种数据源的键都在
func TestAll_EveryKindPresent(t *testing.T) {
	out := All(map[dm.SourceKind]dm.RawPayload{
		dm.SourceKeywords: {
			Kind:      dm.SourceKeywords,
			Succeeded: true,
			Rows:      []dm.MetricRow{{Keys: []string{"kw"}, Clicks: 1, Impressions: 30}},
		},
	})

	if len(out) != len(dm.AllSourceKinds) {
		t.Fatalf("len(out) = %d, want %d", len(out), len(dm.AllSourceKinds))
	}
	for _, kind := range dm.AllSourceKinds {
		ps, ok := out[kind]
		if !ok {
			t.Errorf("缺少槽位 %s", kind)
			continue
		}
		if ps.Kind != kind {
			t.Errorf("槽位 %s 的 Kind = %s", kind, ps.Kind)
		}
		if ps.Keywords.TopKeywords == nil || ps.Audience.Devices == nil ||
			ps.Trend.Points == nil || ps.External.Competitors == nil {
			t.Errorf("槽位 %s 集合字段为 nil", kind)
		}
	}

	if !out[dm.SourceKeywords].HasData {
		t.Errorf("有数据的槽位不应降级")
	}
	if out[dm.SourceTrend].HasData {
		t.Errorf("缺失槽位不应有数据")
	}
}

package report

import (
	"bytes"
	"strings"
	"testing"

	dm "github.com/iWorld-y/search_radar/pkg/model"
	"github.com/iWorld-y/search_radar/pkg/merge"
)

func TestAssemble_AlwaysComplete(t *testing.T) {
	// 刻意传入全零值，装配器必须补齐所有集合
	rm := Assemble(dm.PromptContext{Site: "https://www.example.com"}, dm.InsightRecord{}, dm.PeriodDelta{}, nil)

	if rm.Annotations == nil {
		t.Errorf("Annotations 为 nil")
	}
	if rm.Insight.KeywordClusters == nil || rm.Insight.QuickWins == nil || rm.Insight.Recommendations == nil {
		t.Errorf("Insight 集合字段为 nil: %+v", rm.Insight)
	}
	if rm.Data.Sources == nil {
		t.Errorf("Sources 为 nil")
	}
	if rm.Site != "https://www.example.com" {
		t.Errorf("Site = %q", rm.Site)
	}
}

func TestWriteHTML(t *testing.T) {
	ds := merge.Merge(map[dm.SourceKind]dm.ProcessedSource{})
	ins := dm.NewInsightRecord()
	ins.ExecutiveSummary = "本期表现平稳。"
	ins.Recommendations = append(ins.Recommendations, dm.Recommendation{Priority: 1, Action: "优化标题", Impact: "高"})

	rm := Assemble(dm.PromptContext{Site: "https://www.example.com", Dataset: ds}, ins,
		dm.PeriodDelta{Clicks: "+5.2", Impressions: "+5.2", Estimated: true},
		[]dm.KeywordAnnotation{{Keyword: "kw", Intent: dm.IntentProduct, PeakWindow: "工作日日间高峰", CTRLabel: "点击表现平稳"}})

	var buf bytes.Buffer
	if err := WriteHTML(&buf, rm, "2025-08-31"); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"2025-08-31", "https://www.example.com", "本期表现平稳。",
		"历史不足，按趋势估算", "优化标题", "工作日日间高峰",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML 缺少 %q", want)
		}
	}
}

// 解析降级时页面给出醒目提示
func TestWriteHTML_DegradedBanner(t *testing.T) {
	ins := dm.NewInsightRecord()
	ins.ExecutiveSummary = "原文摘要"
	ins.ParseDegraded = true

	rm := Assemble(dm.PromptContext{Site: "s", Dataset: merge.Merge(nil)}, ins, dm.PeriodDelta{Clicks: "0", Impressions: "0"}, nil)

	var buf bytes.Buffer
	if err := WriteHTML(&buf, rm, "2025-08-31"); err != nil {
		t.Fatalf("WriteHTML() error = %v", err)
	}
	if !strings.Contains(buf.String(), "解析降级") {
		t.Errorf("降级报告缺少提示横幅")
	}
}

// Package prompt 将合并数据集序列化为有界的自然语言 Prompt，
// 并附上模型必须遵守的 JSON 响应结构示例。
package prompt

import (
	"fmt"
	"strings"

	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// 各列表段的硬上限，保证 Prompt 体积有界
const (
	maxPromptKeywords    = 10
	maxPromptQuickWins   = 5
	maxPromptRising      = 5
	maxPromptCompetitors = 10
)

// 模型必须遵守的响应结构示例，原样拼进 Prompt
const responseSchema = `{
	"executive_summary": "一段话总结本期搜索表现的核心结论（150字左右）",
	"keyword_clusters": {
		"品牌词": ["关键词1", "关键词2"],
		"信息词": ["关键词3"]
	},
	"quick_wins": [
		{"keyword": "关键词", "action": "具体优化动作", "expected_impact": "预期收益"}
	],
	"competitive_gap": "与竞争对手的差距叙述（Markdown格式，100-200字）",
	"recommendations": [
		{"priority": 1, "action": "优化建议", "impact": "预期影响"}
	]
}`

var trendLabels = map[string]string{
	dm.TrendUp:     "上升",
	dm.TrendDown:   "下降",
	dm.TrendStable: "平稳",
}

// Build 构造分析 Prompt。返回的 PromptContext 需原样穿过模型调用层，
// 交给报告装配器关联本次回复。
func Build(ds dm.MergedDataset, site string) (string, dm.PromptContext) {
	var sb strings.Builder

	sb.WriteString("你是一位资深 SEO 数据分析师，请基于以下站点搜索表现数据输出结构化分析。\n\n")
	fmt.Fprintf(&sb, "站点：%s\n\n", site)

	// 整体表现
	kw := ds.Keywords
	sb.WriteString("## 整体表现\n")
	fmt.Fprintf(&sb, "- 关键词总数：%d\n", kw.TotalRows)
	fmt.Fprintf(&sb, "- 总点击：%d，总曝光：%d\n", kw.TotalClicks, kw.TotalImpressions)
	fmt.Fprintf(&sb, "- 平均点击率：%.2f%%，平均排名：%.1f\n", kw.AvgCTR, kw.AvgPosition)
	fmt.Fprintf(&sb, "- 近期流量趋势：%s\n\n", trendLabel(ds.Trend.Direction))

	// Top 关键词
	fmt.Fprintf(&sb, "## Top 关键词（前 %d）\n", maxPromptKeywords)
	for _, r := range capKeywords(kw.TopKeywords, maxPromptKeywords) {
		fmt.Fprintf(&sb, "%d. %s — 点击 %d / 曝光 %d / CTR %.2f%% / 排名 %.1f\n",
			r.Rank, r.Keyword, r.Clicks, r.Impressions, r.CTR*100, r.Position)
	}
	sb.WriteString("\n")

	// 设备分布
	sb.WriteString("## 设备分布\n")
	if len(ds.Audience.Devices) == 0 {
		sb.WriteString("（无设备数据）\n")
	}
	for _, d := range ds.Audience.Devices {
		fmt.Fprintf(&sb, "- %s：点击 %d / 曝光 %d / CTR %.2f%%\n",
			d.Key, d.Clicks, d.Impressions, d.CTR*100)
	}
	sb.WriteString("\n")

	// 速赢机会
	fmt.Fprintf(&sb, "## 速赢机会（前 %d）\n", maxPromptQuickWins)
	wins := kw.QuickWins
	if len(wins) > maxPromptQuickWins {
		wins = wins[:maxPromptQuickWins]
	}
	if len(wins) == 0 {
		sb.WriteString("（本期未发现速赢关键词）\n")
	}
	for _, w := range wins {
		fmt.Fprintf(&sb, "- %s：%s\n", w.Keyword, w.OpportunityNote)
	}
	sb.WriteString("\n")

	// 外部上升搜索词
	fmt.Fprintf(&sb, "## 外部上升搜索词（前 %d）\n", maxPromptRising)
	rising := ds.External.Rising
	if len(rising) > maxPromptRising {
		rising = rising[:maxPromptRising]
	}
	if len(rising) == 0 {
		sb.WriteString("（无外部趋势数据）\n")
	}
	for _, q := range rising {
		fmt.Fprintf(&sb, "- %s（增长 %s）\n", q.Query, q.Growth)
	}
	sb.WriteString("\n")

	// 竞争对手排名
	sb.WriteString("## 竞争对手排名\n")
	competitors := ds.External.Competitors
	if len(competitors) > maxPromptCompetitors {
		competitors = competitors[:maxPromptCompetitors]
	}
	if len(competitors) == 0 {
		sb.WriteString("（无竞争对手数据）\n")
	}
	for _, c := range competitors {
		fmt.Fprintf(&sb, "%d. %s\n", c.Rank, c.Domain)
	}
	sb.WriteString("\n")

	// 要求的五个分析部分与输出格式
	sb.WriteString(`请输出以下五个部分：
1. executive_summary：管理层摘要；
2. keyword_clusters：按搜索意图对关键词聚类；
3. quick_wins：前 3 个最值得做的速赢机会，附具体动作与预期收益；
4. competitive_gap：结合竞对排名的差距叙述；
5. recommendations：3-5 条按优先级排列的优化建议。

请务必严格按照以下 JSON 格式返回，不要包含任何 markdown 标记：
`)
	sb.WriteString(responseSchema)

	return sb.String(), dm.PromptContext{Site: site, Dataset: ds}
}

func trendLabel(direction string) string {
	if label, ok := trendLabels[direction]; ok {
		return label
	}
	return trendLabels[dm.TrendStable]
}

func capKeywords(records []dm.KeywordRecord, limit int) []dm.KeywordRecord {
	if len(records) > limit {
		return records[:limit]
	}
	return records
}

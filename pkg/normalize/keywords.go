package normalize

import (
	dm "github.com/iWorld-y/search_radar/pkg/model"
)

const maxTopKeywords = 50

// Keywords 归一化关键词维度数据：聚合总量、Top 50 关键词、速赢机会
func Keywords(p dm.RawPayload) dm.ProcessedSource {
	return keywordShaped(dm.SourceKeywords, p)
}

// Pages 归一化页面维度数据。聚合口径与关键词一致，
// 在关键词数据缺失时由合并层整体兜底使用。
func Pages(p dm.RawPayload) dm.ProcessedSource {
	return keywordShaped(dm.SourcePages, p)
}

// keywordShaped 关键词与页面共用的聚合逻辑
func keywordShaped(kind dm.SourceKind, p dm.RawPayload) dm.ProcessedSource {
	if !p.Succeeded {
		return failed(kind, p, "数据源请求失败")
	}
	if len(p.Rows) == 0 {
		return failed(kind, p, "数据源未返回任何行")
	}

	records := make([]dm.KeywordRecord, 0, len(p.Rows))
	for i, row := range p.Rows {
		records = append(records, dm.KeywordRecord{
			Rank:        i + 1,
			Keyword:     row.Key(),
			Clicks:      int(row.Clicks),
			Impressions: int(row.Impressions),
			CTR:         row.CTR,
			Position:    row.Position,
		})
	}

	ps := dm.NewProcessedSource(kind)
	ps.HasData = true
	ps.Keywords = AggregateStats(records)
	return ps
}

// AggregateStats 从关键词记录计算聚合统计。合并层在统计缺失而
// 关键词列表存在时也会直接调用它重算。
func AggregateStats(records []dm.KeywordRecord) dm.KeywordStats {
	stats := dm.KeywordStats{
		TopKeywords: []dm.KeywordRecord{},
		QuickWins:   []dm.QuickWinCandidate{},
	}
	if len(records) == 0 {
		return stats
	}

	var positionSum float64
	for _, r := range records {
		stats.TotalClicks += r.Clicks
		stats.TotalImpressions += r.Impressions
		positionSum += r.Position
	}
	stats.TotalRows = len(records)
	// 平均 CTR 为点击总量/曝光总量的百分比，保留两位小数
	if stats.TotalImpressions > 0 {
		stats.AvgCTR = round2(float64(stats.TotalClicks) / float64(stats.TotalImpressions) * 100)
	}
	stats.AvgPosition = round1(positionSum / float64(len(records)))

	top := records
	if len(top) > maxTopKeywords {
		top = top[:maxTopKeywords]
	}
	stats.TopKeywords = append(stats.TopKeywords, top...)
	stats.QuickWins = quickWins(records)
	return stats
}

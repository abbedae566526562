// Package merge 将全部归一化结果扇入为单个 MergedDataset。
// 任意数据源缺失或失败都以零值空结构补位，下游永远能读到每个键。
package merge

import (
	dm "github.com/iWorld-y/search_radar/pkg/model"
	"github.com/iWorld-y/search_radar/pkg/normalize"
)

// Merge 合并归一化结果。纯函数：输入槽位可缺可空，立即完成，
// 等待策略（超时兜底）由调用方的扇出阶段负责。
func Merge(sources map[dm.SourceKind]dm.ProcessedSource) dm.MergedDataset {
	get := func(kind dm.SourceKind) dm.ProcessedSource {
		if ps, ok := sources[kind]; ok {
			return ps
		}
		return dm.NewProcessedSource(kind)
	}

	keywords := get(dm.SourceKeywords)
	pages := get(dm.SourcePages)
	device := get(dm.SourceAudienceDevice)
	country := get(dm.SourceAudienceCountry)
	trend := get(dm.SourceTrend)
	sitemap := get(dm.SourceSitemap)
	appearance := get(dm.SourceAppearance)
	extTrend := get(dm.SourceExternalTrend)
	extCompetitor := get(dm.SourceExternalCompetitor)

	ds := dm.MergedDataset{
		Keywords:      keywords.Keywords,
		KeywordSource: dm.SourceKeywords,
		Pages:         pages.Keywords,
		Audience: dm.AudienceBreakdown{
			Devices:   device.Audience.Devices,
			Countries: country.Audience.Countries,
		},
		Trend:      trend.Trend,
		Sitemaps:   sitemap.Sitemaps,
		Appearance: appearance.Appearance,
		External: dm.ExternalSignals{
			Interest:       extTrend.External.Interest,
			HasInterest:    extTrend.External.HasInterest,
			Rising:         extTrend.External.Rising,
			HasRising:      extTrend.External.HasRising,
			Competitors:    extCompetitor.External.Competitors,
			HasCompetitors: extCompetitor.External.HasCompetitors,
		},
		Sources: map[dm.SourceKind]dm.SourceStatus{},
	}

	// 跨源兜底：关键词没有可用数据时整体换用页面维度的条目与统计
	if len(ds.Keywords.TopKeywords) == 0 && len(ds.Pages.TopKeywords) > 0 {
		ds.Keywords = ds.Pages
		ds.KeywordSource = dm.SourcePages
	}

	// 统计缺失但关键词列表存在时，直接从列表重算总量
	if ds.Keywords.TotalImpressions == 0 && ds.Keywords.TotalClicks == 0 &&
		len(ds.Keywords.TopKeywords) > 0 {
		ds.Keywords = normalize.AggregateStats(ds.Keywords.TopKeywords)
	}

	for _, kind := range dm.AllSourceKinds {
		ps := get(kind)
		ds.Sources[kind] = dm.SourceStatus{
			HasData:      ps.HasData,
			ErrorMessage: ps.ErrorMessage,
		}
	}

	return ds
}

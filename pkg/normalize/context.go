package normalize

import (
	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// Sitemaps 站点地图状态的透传归一化，仅作报告上下文，不做派生分析
func Sitemaps(p dm.RawPayload) dm.ProcessedSource {
	if !p.Succeeded {
		return failed(dm.SourceSitemap, p, "站点地图请求失败")
	}
	if len(p.Sitemaps) == 0 {
		return failed(dm.SourceSitemap, p, "未提交任何站点地图")
	}

	ps := dm.NewProcessedSource(dm.SourceSitemap)
	ps.HasData = true
	ps.Sitemaps = dm.SitemapInfo{
		Submitted: len(p.Sitemaps),
		Entries:   append([]dm.SitemapEntry{}, p.Sitemaps...),
	}
	return ps
}

// Appearance 富媒体展现形式的透传归一化
func Appearance(p dm.RawPayload) dm.ProcessedSource {
	if !p.Succeeded {
		return failed(dm.SourceAppearance, p, "展现形式请求失败")
	}
	if len(p.Rows) == 0 {
		return failed(dm.SourceAppearance, p, "无富媒体展现数据")
	}

	ps := dm.NewProcessedSource(dm.SourceAppearance)
	ps.HasData = true
	ps.Appearance = dm.AppearanceInfo{Entries: segments(p.Rows, 0)}
	return ps
}

package normalize

import (
	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// 趋势判定窗口与死区。10% 死区用来吸收单日抖动。
const (
	trendWindow    = 7
	trendUpRatio   = 1.1
	trendDownRatio = 0.9
)

// Trend 归一化每日时间序列并判定趋势方向
func Trend(p dm.RawPayload) dm.ProcessedSource {
	if !p.Succeeded {
		return failed(dm.SourceTrend, p, "时间序列请求失败")
	}
	if len(p.Rows) == 0 {
		return failed(dm.SourceTrend, p, "时间序列为空")
	}

	points := make([]dm.TrendPoint, 0, len(p.Rows))
	for _, row := range p.Rows {
		points = append(points, dm.TrendPoint{
			Date:        row.Key(),
			Clicks:      int(row.Clicks),
			Impressions: int(row.Impressions),
		})
	}

	ps := dm.NewProcessedSource(dm.SourceTrend)
	ps.HasData = true
	ps.Trend = dm.TrendSeries{
		Points:    points,
		Direction: ClassifyTrend(points),
	}
	return ps
}

// ClassifyTrend 用序列头尾各 7 个点的点击均值判定方向：
// 近期均值高于早期均值 1.1 倍为 up，低于 0.9 倍为 down，其余为 stable。
// 窗口按条目切，不做日历对齐。
func ClassifyTrend(points []dm.TrendPoint) string {
	if len(points) == 0 {
		return dm.TrendStable
	}

	n := trendWindow
	if len(points) < n {
		n = len(points)
	}
	recentAvg := meanClicks(points[len(points)-n:])
	olderAvg := meanClicks(points[:n])

	switch {
	case recentAvg > olderAvg*trendUpRatio:
		return dm.TrendUp
	case recentAvg < olderAvg*trendDownRatio:
		return dm.TrendDown
	default:
		return dm.TrendStable
	}
}

func meanClicks(points []dm.TrendPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum int
	for _, p := range points {
		sum += p.Clicks
	}
	return float64(sum) / float64(len(points))
}

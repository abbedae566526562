package normalize

import (
	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// External 归一化外部信号。一次采集可能同时带回热度序列与竞对排名，
// 也可能只有其一，所以每个子信号独立打标，互不拖累。
func External(trendPayload, competitorPayload dm.RawPayload) (trend, competitor dm.ProcessedSource) {
	trend = dm.NewProcessedSource(dm.SourceExternalTrend)
	competitor = dm.NewProcessedSource(dm.SourceExternalCompetitor)

	if trendPayload.Succeeded {
		if len(trendPayload.Interest) > 0 {
			trend.External.Interest = append([]dm.InterestPoint{}, trendPayload.Interest...)
			trend.External.HasInterest = true
		}
		if len(trendPayload.Rising) > 0 {
			trend.External.Rising = append([]dm.RisingQuery{}, trendPayload.Rising...)
			trend.External.HasRising = true
		}
	}
	trend.HasData = trend.External.HasInterest || trend.External.HasRising
	if !trend.HasData {
		trend.ErrorMessage = orMessage(trendPayload.ErrorMessage, "外部热度数据缺失")
	}

	if competitorPayload.Succeeded && len(competitorPayload.Competitors) > 0 {
		competitor.External.Competitors = append([]dm.CompetitorEntry{}, competitorPayload.Competitors...)
		competitor.External.HasCompetitors = true
		competitor.HasData = true
	} else {
		competitor.ErrorMessage = orMessage(competitorPayload.ErrorMessage, "竞争对手数据缺失")
	}

	return trend, competitor
}

func orMessage(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}

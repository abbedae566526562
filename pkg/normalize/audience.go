package normalize

import (
	"strings"

	dm "github.com/iWorld-y/search_radar/pkg/model"
)

const maxCountries = 15

// 设备维度的已知取值。上游不给来源标签，只能靠它做结构判别。
var deviceLabels = map[string]bool{
	"MOBILE":  true,
	"DESKTOP": true,
	"TABLET":  true,
}

// IsDeviceBatch 判别一批无标签的受众行是否为设备维度：
// 当且仅当首行维度值转大写后落在已知设备集合内。
// 不满足的一律按国家维度处理，没有"未知"桶。
func IsDeviceBatch(p dm.RawPayload) bool {
	if len(p.Rows) == 0 {
		return false
	}
	return deviceLabels[strings.ToUpper(p.Rows[0].Key())]
}

// Audience 归一化受众的两路输入。两批行数据到达时不带维度标签，
// 逐批用 IsDeviceBatch 判别后归位，与调用顺序无关。
func Audience(a, b dm.RawPayload) (device, country dm.ProcessedSource) {
	device = dm.NewProcessedSource(dm.SourceAudienceDevice)
	country = dm.NewProcessedSource(dm.SourceAudienceCountry)

	for _, p := range []dm.RawPayload{a, b} {
		if !p.Succeeded || len(p.Rows) == 0 {
			continue
		}
		if IsDeviceBatch(p) {
			device.HasData = true
			device.Audience.Devices = segments(p.Rows, 0)
		} else {
			country.HasData = true
			country.Audience.Countries = segments(p.Rows, maxCountries)
		}
	}

	if !device.HasData {
		device.ErrorMessage = firstError(a, b, "设备维度数据缺失")
	}
	if !country.HasData {
		country.ErrorMessage = firstError(a, b, "国家维度数据缺失")
	}
	return device, country
}

// segments 将指标行转为分段统计，limit 为 0 时不截断
func segments(rows []dm.MetricRow, limit int) []dm.SegmentStat {
	out := []dm.SegmentStat{}
	for _, r := range rows {
		out = append(out, dm.SegmentStat{
			Key:         r.Key(),
			Clicks:      int(r.Clicks),
			Impressions: int(r.Impressions),
			CTR:         r.CTR,
			Position:    r.Position,
		})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func firstError(a, b dm.RawPayload, fallback string) string {
	if a.ErrorMessage != "" {
		return a.ErrorMessage
	}
	if b.ErrorMessage != "" {
		return b.ErrorMessage
	}
	return fallback
}

package normalize

import (
	"fmt"

	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// 速赢判定阈值。固定业务规则，不是统计推断。
const (
	quickWinMinImpressions = 20   // 有曝光基础
	quickWinMaxCTR         = 0.03 // 点击率不足 3%
	quickWinMinPosition    = 5.0  // 已在前 4 名的不算机会
	quickWinMaxPosition    = 20.0 // 超出 20 名的短期内够不着
)

const maxQuickWins = 10

// IsQuickWin 判定单个关键词是否构成速赢机会：
// 曝光大于 20、点击率低于 0.03、排名在 5 到 20 之间。
func IsQuickWin(r dm.KeywordRecord) bool {
	return r.Impressions > quickWinMinImpressions &&
		r.CTR < quickWinMaxCTR &&
		r.Position >= quickWinMinPosition &&
		r.Position <= quickWinMaxPosition
}

// quickWins 按原始顺序筛选速赢关键词，最多保留 10 个
func quickWins(records []dm.KeywordRecord) []dm.QuickWinCandidate {
	wins := []dm.QuickWinCandidate{}
	for _, r := range records {
		if !IsQuickWin(r) {
			continue
		}
		wins = append(wins, dm.QuickWinCandidate{
			KeywordRecord: r,
			OpportunityNote: fmt.Sprintf(
				"曝光 %d 次但点击率仅 %.1f%%，当前排名 %.1f，优化标题与描述即可见效",
				r.Impressions, r.CTR*100, r.Position),
		})
		if len(wins) >= maxQuickWins {
			break
		}
	}
	return wins
}

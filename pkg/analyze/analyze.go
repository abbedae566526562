// Package analyze 在合并数据集上派生横切指标：环比变化与关键词标注。
// 所有标签都是可解释的启发式结果，服务于报告叙述，不是统计检验。
package analyze

import (
	"fmt"
	"strings"

	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// 环比计算至少需要的天数；不足时退化为按趋势方向估算
const minDeltaPoints = 28

// 短历史下的占位估算值
const (
	estimateUp     = "+5.2"
	estimateDown   = "-4.5"
	estimateStable = "0"
)

// PeriodDeltas 计算环比变化。序列不足 28 个点时不做真实计算，
// 按趋势方向给出固定的估算百分比并标记 Estimated。
func PeriodDeltas(series dm.TrendSeries) dm.PeriodDelta {
	if len(series.Points) < minDeltaPoints {
		var v string
		switch series.Direction {
		case dm.TrendUp:
			v = estimateUp
		case dm.TrendDown:
			v = estimateDown
		default:
			v = estimateStable
		}
		return dm.PeriodDelta{Clicks: v, Impressions: v, Estimated: true}
	}

	mid := len(series.Points) / 2
	first := series.Points[:mid]
	second := series.Points[mid:]

	var c1, c2, i1, i2 int
	for _, p := range first {
		c1 += p.Clicks
		i1 += p.Impressions
	}
	for _, p := range second {
		c2 += p.Clicks
		i2 += p.Impressions
	}

	return dm.PeriodDelta{
		Clicks:      percentChange(c1, c2),
		Impressions: percentChange(i1, i2),
	}
}

// percentChange (后半-前半)/前半×100，前半为零时返回 "0"
func percentChange(first, second int) string {
	if first == 0 {
		return "0"
	}
	pct := float64(second-first) / float64(first) * 100
	return fmt.Sprintf("%+.1f", pct)
}

// 意图分类的子串集合。命中顺序：品牌 > 交易 > 信息 > 产品。
var (
	commercialHints = []string{
		"buy", "price", "cost", "cheap", "deal", "discount", "best", "vs", "review",
		"购买", "价格", "优惠", "对比",
	}
	informationalHints = []string{
		"how", "what", "why", "when", "guide", "tutorial", "tips",
		"怎么", "如何", "什么", "教程", "攻略",
	}
)

// ClassifyIntent 按子串匹配给出关键词意图标签
func ClassifyIntent(keyword string, brandTerms []string) string {
	lower := strings.ToLower(keyword)

	for _, term := range brandTerms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" && strings.Contains(lower, term) {
			return dm.IntentBrand
		}
	}
	for _, hint := range commercialHints {
		if strings.Contains(lower, hint) {
			return dm.IntentCommercial
		}
	}
	for _, hint := range informationalHints {
		if strings.Contains(lower, hint) {
			return dm.IntentInformational
		}
	}
	return dm.IntentProduct
}

// peakWindow 按排名分桶猜测流量集中时段
func peakWindow(position float64) string {
	switch {
	case position <= 3:
		return "全天持续曝光"
	case position <= 10:
		return "工作日日间高峰"
	case position <= 20:
		return "晚间长尾时段"
	default:
		return "零星长尾流量"
	}
}

// ctrLabel 按点击率分桶给出定性标签
func ctrLabel(ctr float64) string {
	switch {
	case ctr >= 0.05:
		return "点击表现优秀"
	case ctr >= 0.02:
		return "点击表现平稳"
	case ctr > 0:
		return "点击低于基准"
	default:
		return "有曝光无点击"
	}
}

// AnnotateKeywords 为关键词生成报告叙述用的上下文标注
func AnnotateKeywords(records []dm.KeywordRecord, brandTerms []string) []dm.KeywordAnnotation {
	annotations := []dm.KeywordAnnotation{}
	for _, r := range records {
		annotations = append(annotations, dm.KeywordAnnotation{
			Keyword:    r.Keyword,
			Intent:     ClassifyIntent(r.Keyword, brandTerms),
			PeakWindow: peakWindow(r.Position),
			CTRLabel:   ctrLabel(r.CTR),
		})
	}
	return annotations
}

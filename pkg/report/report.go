// Package report 装配最终的只读报告模型并渲染 HTML。
// 装配是纯组合，不再派生新指标，只在移交渲染前最后一次
// 强制"字段永远齐全"的约束。
package report

import (
	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// Assemble 合并数据集、洞察与分析产物。核心内部不打时间戳，
// 相同输入装配出的模型逐字节一致，日期由渲染调用方注入。
func Assemble(pctx dm.PromptContext, ins dm.InsightRecord, deltas dm.PeriodDelta, annotations []dm.KeywordAnnotation) dm.ReportModel {
	rm := dm.ReportModel{
		Site:        pctx.Site,
		Data:        pctx.Dataset,
		Insight:     ins,
		Deltas:      deltas,
		Annotations: annotations,
	}

	if rm.Annotations == nil {
		rm.Annotations = []dm.KeywordAnnotation{}
	}
	if rm.Insight.KeywordClusters == nil {
		rm.Insight.KeywordClusters = map[string][]string{}
	}
	if rm.Insight.QuickWins == nil {
		rm.Insight.QuickWins = []dm.QuickWinAdvice{}
	}
	if rm.Insight.Recommendations == nil {
		rm.Insight.Recommendations = []dm.Recommendation{}
	}
	if rm.Data.Sources == nil {
		rm.Data.Sources = map[dm.SourceKind]dm.SourceStatus{}
	}

	return rm
}

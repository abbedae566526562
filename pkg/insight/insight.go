// Package insight 把模型的自由文本回复收敛为结构化 InsightRecord。
// 解析链逐级降级、每一级都是全函数，整条流水线不会因为模型回复
// 畸形而失败。
package insight

import (
	"encoding/json"
	"strings"

	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// UnavailableSummary 模型调用彻底失败时的固定摘要
const UnavailableSummary = "AI 分析不可用，请人工复核数据"

// 降级摘要保留的最大字符数
const maxFallbackSummary = 500

// Reconcile 按四级回退链解析模型回复：
//  1. 去掉代码围栏后直接按目标结构解析；
//  2. 在全文中扫出第一个配平的大括号 JSON 子串再解析；
//  3. 仍失败则取回复前 500 字作摘要，建议列表为空，标记 ParseDegraded；
//  4. 调用本身失败（无回复体）时给出固定的"不可用"摘要。
//
// 任何分支都返回字段齐全的记录，集合为空而非 nil。
func Reconcile(reply dm.ModelReply) dm.InsightRecord {
	if !reply.Succeeded || strings.TrimSpace(reply.MessageText) == "" {
		rec := dm.NewInsightRecord()
		rec.ExecutiveSummary = UnavailableSummary
		rec.ParseDegraded = true
		return rec
	}

	// 第一级：剥掉代码围栏后直接解析
	clean := stripFences(reply.MessageText)
	if rec, ok := parseInsight(clean); ok {
		return rec
	}

	// 第二级：模型把 JSON 裹在叙述或围栏里时，扫出首个配平对象
	if fragment, ok := extractJSONObject(reply.MessageText); ok {
		if rec, ok := parseInsight(fragment); ok {
			return rec
		}
	}

	// 第三级：文本兜底
	rec := dm.NewInsightRecord()
	rec.ExecutiveSummary = truncateRunes(strings.TrimSpace(reply.MessageText), maxFallbackSummary)
	rec.ParseDegraded = true
	return rec
}

// parseInsight 严格解析目标结构并把缺失的集合补为空值
func parseInsight(text string) (dm.InsightRecord, bool) {
	var rec dm.InsightRecord
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		return dm.InsightRecord{}, false
	}
	if rec.KeywordClusters == nil {
		rec.KeywordClusters = map[string][]string{}
	}
	if rec.QuickWins == nil {
		rec.QuickWins = []dm.QuickWinAdvice{}
	}
	if rec.Recommendations == nil {
		rec.Recommendations = []dm.Recommendation{}
	}
	rec.ParseDegraded = false
	return rec, true
}

// stripFences 去掉模型习惯性包裹的 markdown 代码围栏
func stripFences(text string) string {
	clean := strings.TrimSpace(text)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}

// extractJSONObject 返回文本中第一个顶层大括号配平的子串。
// 扫描时跳过字符串字面量与转义，避免被内容里的大括号骗过。
func extractJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}
	return "", false
}

// truncateRunes 按字符截断，避免切坏多字节文本
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

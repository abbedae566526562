package model

// SourceKind 数据源类型
type SourceKind string

const (
	SourceKeywords           SourceKind = "keywords"            // 搜索关键词表现
	SourcePages              SourceKind = "pages"               // 页面维度表现
	SourceAudienceDevice     SourceKind = "audience_device"     // 设备维度
	SourceAudienceCountry    SourceKind = "audience_country"    // 国家/地区维度
	SourceTrend              SourceKind = "trend_timeseries"    // 每日点击/曝光时间序列
	SourceSitemap            SourceKind = "sitemap"             // 站点地图状态
	SourceAppearance         SourceKind = "appearance"          // 富媒体展现形式
	SourceExternalTrend      SourceKind = "external_trend"      // 外部热度趋势
	SourceExternalCompetitor SourceKind = "external_competitor" // 竞争对手排名
)

// AllSourceKinds 全部数据源类型，合并阶段以此为固定槽位
var AllSourceKinds = []SourceKind{
	SourceKeywords,
	SourcePages,
	SourceAudienceDevice,
	SourceAudienceCountry,
	SourceTrend,
	SourceSitemap,
	SourceAppearance,
	SourceExternalTrend,
	SourceExternalCompetitor,
}

// MetricRow 上游 API 返回的通用指标行
// Keys 为维度值（关键词/URL/设备/国家/日期），指标字段按原样保留。
// CTR 保留服务商返回的小数形式（0.03 即 3%），展示用的百分比在聚合时另行计算。
type MetricRow struct {
	Keys        []string `json:"keys"`
	Clicks      float64  `json:"clicks"`
	Impressions float64  `json:"impressions"`
	CTR         float64  `json:"ctr"`
	Position    float64  `json:"position"`
}

// Key 返回首个维度值，缺失时返回空字符串
func (r MetricRow) Key() string {
	if len(r.Keys) == 0 {
		return ""
	}
	return r.Keys[0]
}

// SitemapEntry 单个站点地图条目
type SitemapEntry struct {
	Path          string `json:"path"`
	LastSubmitted string `json:"last_submitted"`
	Pending       bool   `json:"pending"`
	Errors        int    `json:"errors"`
	Warnings      int    `json:"warnings"`
}

// InterestPoint 外部热度趋势的月度采样点
type InterestPoint struct {
	Month string `json:"month"`
	Score int    `json:"score"`
}

// RisingQuery 外部上升搜索词
type RisingQuery struct {
	Query  string `json:"query"`
	Growth string `json:"growth"`
}

// CompetitorEntry 竞争对手条目
type CompetitorEntry struct {
	Domain string `json:"domain"`
	Rank   int    `json:"rank"`
}

// RawPayload 采集层返回的统一信封。任意数据源失败时 Succeeded 为 false，
// 归一化器据此生成空的降级结构，绝不向上抛错。
type RawPayload struct {
	Kind         SourceKind        `json:"kind"`
	Succeeded    bool              `json:"succeeded"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Rows         []MetricRow       `json:"rows,omitempty"`
	Sitemaps     []SitemapEntry    `json:"sitemaps,omitempty"`
	Interest     []InterestPoint   `json:"interest,omitempty"`
	Rising       []RisingQuery     `json:"rising,omitempty"`
	Competitors  []CompetitorEntry `json:"competitors,omitempty"`
}

// KeywordRecord 单个关键词（或页面）的表现记录
type KeywordRecord struct {
	Rank        int     `json:"rank"`
	Keyword     string  `json:"keyword"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

// QuickWinCandidate 速赢机会：有曝光、点击率偏低、排名可提升的关键词
type QuickWinCandidate struct {
	KeywordRecord
	OpportunityNote string `json:"opportunity_note"`
}

// KeywordStats 关键词（或页面）维度的聚合统计
type KeywordStats struct {
	TotalRows        int                 `json:"total_rows"`
	TotalClicks      int                 `json:"total_clicks"`
	TotalImpressions int                 `json:"total_impressions"`
	AvgCTR           float64             `json:"avg_ctr"`      // 百分比，保留两位小数
	AvgPosition      float64             `json:"avg_position"` // 保留一位小数
	TopKeywords      []KeywordRecord     `json:"top_keywords"`
	QuickWins        []QuickWinCandidate `json:"quick_wins"`
}

// SegmentStat 设备/国家/展现形式等分段统计
type SegmentStat struct {
	Key         string  `json:"key"`
	Clicks      int     `json:"clicks"`
	Impressions int     `json:"impressions"`
	CTR         float64 `json:"ctr"`
	Position    float64 `json:"position"`
}

// AudienceBreakdown 受众分布：设备全量 + 国家 Top 15
type AudienceBreakdown struct {
	Devices   []SegmentStat `json:"devices"`
	Countries []SegmentStat `json:"countries"`
}

// TrendPoint 每日时间序列采样点
type TrendPoint struct {
	Date        string `json:"date"`
	Clicks      int    `json:"clicks"`
	Impressions int    `json:"impressions"`
}

// 趋势方向
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// TrendSeries 按日期排列的时间序列及其方向判定
type TrendSeries struct {
	Points    []TrendPoint `json:"points"`
	Direction string       `json:"direction"`
}

// SitemapInfo 站点地图状态（仅作报告上下文，不参与分析）
type SitemapInfo struct {
	Submitted int            `json:"submitted"`
	Entries   []SitemapEntry `json:"entries"`
}

// AppearanceInfo 富媒体展现形式（仅作报告上下文）
type AppearanceInfo struct {
	Entries []SegmentStat `json:"entries"`
}

// ExternalSignals 外部信号：热度序列、上升词、竞对排名。
// 一次采集可能只带回其中一部分，因此各子信号独立打标。
type ExternalSignals struct {
	Interest       []InterestPoint   `json:"interest"`
	HasInterest    bool              `json:"has_interest"`
	Rising         []RisingQuery     `json:"rising"`
	HasRising      bool              `json:"has_rising"`
	Competitors    []CompetitorEntry `json:"competitors"`
	HasCompetitors bool              `json:"has_competitors"`
}

// ProcessedSource 归一化后的单数据源记录。无论 HasData 与否，
// 所有集合字段均已分配，下游不做深层判空。
type ProcessedSource struct {
	Kind         SourceKind        `json:"kind"`
	HasData      bool              `json:"has_data"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Keywords     KeywordStats      `json:"keywords"`
	Audience     AudienceBreakdown `json:"audience"`
	Trend        TrendSeries       `json:"trend"`
	Sitemaps     SitemapInfo       `json:"sitemaps"`
	Appearance   AppearanceInfo    `json:"appearance"`
	External     ExternalSignals   `json:"external"`
}

// NewProcessedSource 构造结构完整的空记录，HasData 为 false
func NewProcessedSource(kind SourceKind) ProcessedSource {
	return ProcessedSource{
		Kind: kind,
		Keywords: KeywordStats{
			TopKeywords: []KeywordRecord{},
			QuickWins:   []QuickWinCandidate{},
		},
		Audience: AudienceBreakdown{
			Devices:   []SegmentStat{},
			Countries: []SegmentStat{},
		},
		Trend:      TrendSeries{Points: []TrendPoint{}, Direction: TrendStable},
		Sitemaps:   SitemapInfo{Entries: []SitemapEntry{}},
		Appearance: AppearanceInfo{Entries: []SegmentStat{}},
		External: ExternalSignals{
			Interest:    []InterestPoint{},
			Rising:      []RisingQuery{},
			Competitors: []CompetitorEntry{},
		},
	}
}

// SourceStatus 合并数据集中每个数据源的健康状态
type SourceStatus struct {
	HasData      bool   `json:"has_data"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// MergedDataset 合并后的统一数据集。任何数据源缺失或失败时对应字段
// 为零值空结构，键永远存在，分析器与 Prompt 构造器不做存在性检查。
type MergedDataset struct {
	Keywords      KeywordStats                `json:"keywords"`
	KeywordSource SourceKind                  `json:"keyword_source"` // 关键词统计的实际来源（页面兜底时为 pages）
	Pages         KeywordStats                `json:"pages"`
	Audience      AudienceBreakdown           `json:"audience"`
	Trend         TrendSeries                 `json:"trend"`
	Sitemaps      SitemapInfo                 `json:"sitemaps"`
	Appearance    AppearanceInfo              `json:"appearance"`
	External      ExternalSignals             `json:"external"`
	Sources       map[SourceKind]SourceStatus `json:"sources"`
}

// ModelReply 模型调用层返回的统一信封
type ModelReply struct {
	Succeeded    bool   `json:"succeeded"`
	MessageText  string `json:"message_text,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// QuickWinAdvice 模型给出的速赢建议
type QuickWinAdvice struct {
	Keyword        string `json:"keyword"`
	Action         string `json:"action"`
	ExpectedImpact string `json:"expected_impact"`
}

// Recommendation 带优先级的优化建议
type Recommendation struct {
	Priority int    `json:"priority"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
}

// InsightRecord 对模型回复做容错解析后得到的结构化洞察。
// 任何降级路径都会填满全部字段，集合为空而非 nil。
type InsightRecord struct {
	ExecutiveSummary string              `json:"executive_summary"`
	KeywordClusters  map[string][]string `json:"keyword_clusters"`
	QuickWins        []QuickWinAdvice    `json:"quick_wins"`
	CompetitiveGap   string              `json:"competitive_gap"`
	Recommendations  []Recommendation    `json:"recommendations"`
	ParseDegraded    bool                `json:"parse_degraded"`
}

// NewInsightRecord 构造字段齐全的空洞察
func NewInsightRecord() InsightRecord {
	return InsightRecord{
		KeywordClusters: map[string][]string{},
		QuickWins:       []QuickWinAdvice{},
		Recommendations: []Recommendation{},
	}
}

// PeriodDelta 环比变化。历史数据不足 28 天时由趋势方向估算，
// Estimated 为 true。变化率为带符号的百分数字符串。
type PeriodDelta struct {
	Clicks      string `json:"clicks"`
	Impressions string `json:"impressions"`
	Estimated   bool   `json:"estimated"`
}

// 关键词意图分类
const (
	IntentBrand         = "Brand"
	IntentCommercial    = "Commercial"
	IntentProduct       = "Product"
	IntentInformational = "Informational"
)

// KeywordAnnotation 单个关键词的启发式标注，仅用于报告叙述
type KeywordAnnotation struct {
	Keyword    string `json:"keyword"`
	Intent     string `json:"intent"`
	PeakWindow string `json:"peak_window"`
	CTRLabel   string `json:"ctr_label"`
}

// PromptContext Prompt 构造时附带的上下文，需原样传回给报告装配器
type PromptContext struct {
	Site    string        `json:"site"`
	Dataset MergedDataset `json:"dataset"`
}

// ReportModel 最终交给渲染层的只读数据模型
type ReportModel struct {
	Site        string              `json:"site"`
	Data        MergedDataset       `json:"data"`
	Insight     InsightRecord       `json:"insight"`
	Deltas      PeriodDelta         `json:"deltas"`
	Annotations []KeywordAnnotation `json:"annotations"`
}

package report

import (
	"html/template"
	"io"

	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// HTMLData 用于模板渲染的数据
type HTMLData struct {
	Date   string
	Report dm.ReportModel
}

const htmlTpl = `
<!DOCTYPE html>
<html lang="zh-CN">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>搜索雷达 | SEO 表现报告</title>
    <style>
        :root {
            --primary-color: #2563eb;
            --bg-color: #f8fafc;
            --card-bg: #ffffff;
            --text-main: #1e293b;
            --text-secondary: #64748b;
            --border-color: #e2e8f0;
        }
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background-color: var(--bg-color);
            color: var(--text-main);
            line-height: 1.6;
            margin: 0;
            padding: 20px;
        }
        .container { max-width: 960px; margin: 0 auto; }
        header { text-align: center; margin-bottom: 40px; padding: 20px 0; }
        h1 { font-size: 2.2rem; margin: 0 0 10px 0; }
        .date-info { color: var(--text-secondary); }
        .card {
            background: var(--card-bg);
            border-radius: 12px;
            padding: 24px;
            margin-bottom: 30px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.05);
            border: 1px solid var(--border-color);
        }
        .card h2 { margin-top: 0; border-bottom: 2px solid var(--primary-color); padding-bottom: 8px; display: inline-block; }
        .stat-grid { display: grid; gap: 16px; grid-template-columns: repeat(auto-fit, minmax(160px, 1fr)); }
        .stat { background: #f8fafc; padding: 16px; border-radius: 8px; text-align: center; }
        .stat-val { font-size: 1.6rem; font-weight: bold; }
        .delta-up { color: #166534; }
        .delta-down { color: #991b1b; }
        table { border-collapse: collapse; width: 100%; margin-top: 10px; }
        th, td { padding: 8px 12px; border-bottom: 1px solid var(--border-color); text-align: left; }
        th { background: #f1f5f9; }
        .degraded { background: #fef2f2; border-left: 4px solid #ef4444; padding: 12px 16px; border-radius: 6px; color: #991b1b; }
        .cluster { margin-bottom: 12px; }
        .cluster-name { font-weight: bold; }
        .tag { display: inline-block; background: #eff6ff; color: #1d4ed8; border-radius: 12px; padding: 2px 10px; margin: 2px; font-size: 0.85em; }
        .note { color: var(--text-secondary); font-size: 0.9em; }
    </style>
</head>
<body>
    <div class="container">
        <header>
            <h1>📡 搜索雷达报告</h1>
            <div class="date-info">{{ .Date }} • {{ .Report.Site }}</div>
        </header>

        <div class="card">
            <h2>整体表现</h2>
            <div class="stat-grid">
                <div class="stat"><div>总点击</div><div class="stat-val">{{ .Report.Data.Keywords.TotalClicks }}</div></div>
                <div class="stat"><div>总曝光</div><div class="stat-val">{{ .Report.Data.Keywords.TotalImpressions }}</div></div>
                <div class="stat"><div>平均点击率</div><div class="stat-val">{{ printf "%.2f" .Report.Data.Keywords.AvgCTR }}%</div></div>
                <div class="stat"><div>平均排名</div><div class="stat-val">{{ printf "%.1f" .Report.Data.Keywords.AvgPosition }}</div></div>
                <div class="stat">
                    <div>点击环比</div>
                    <div class="stat-val {{ if eq .Report.Data.Trend.Direction "up" }}delta-up{{ else if eq .Report.Data.Trend.Direction "down" }}delta-down{{ end }}">{{ .Report.Deltas.Clicks }}%</div>
                    {{ if .Report.Deltas.Estimated }}<div class="note">历史不足，按趋势估算</div>{{ end }}
                </div>
            </div>
        </div>

        <div class="card">
            <h2>🧠 AI 洞察</h2>
            {{ if .Report.Insight.ParseDegraded }}
            <div class="degraded">模型回复解析降级，以下内容为原文摘要，建议人工复核。</div>
            {{ end }}
            <p>{{ .Report.Insight.ExecutiveSummary }}</p>

            {{ if .Report.Insight.KeywordClusters }}
            <h3>关键词聚类</h3>
            {{ range $name, $words := .Report.Insight.KeywordClusters }}
            <div class="cluster">
                <span class="cluster-name">{{ $name }}：</span>
                {{ range $words }}<span class="tag">{{ . }}</span>{{ end }}
            </div>
            {{ end }}
            {{ end }}

            {{ if .Report.Insight.QuickWins }}
            <h3>速赢建议</h3>
            <table>
                <tr><th>关键词</th><th>动作</th><th>预期收益</th></tr>
                {{ range .Report.Insight.QuickWins }}
                <tr><td>{{ .Keyword }}</td><td>{{ .Action }}</td><td>{{ .ExpectedImpact }}</td></tr>
                {{ end }}
            </table>
            {{ end }}

            {{ if .Report.Insight.CompetitiveGap }}
            <h3>竞争差距</h3>
            <p>{{ .Report.Insight.CompetitiveGap }}</p>
            {{ end }}

            {{ if .Report.Insight.Recommendations }}
            <h3>优化建议</h3>
            <table>
                <tr><th>优先级</th><th>动作</th><th>影响</th></tr>
                {{ range .Report.Insight.Recommendations }}
                <tr><td>P{{ .Priority }}</td><td>{{ .Action }}</td><td>{{ .Impact }}</td></tr>
                {{ end }}
            </table>
            {{ end }}
        </div>

        <div class="card">
            <h2>Top 关键词</h2>
            {{ if eq (printf "%s" .Report.Data.KeywordSource) "pages" }}
            <div class="note">关键词数据缺失，以下为页面维度兜底数据。</div>
            {{ end }}
            <table>
                <tr><th>#</th><th>关键词</th><th>点击</th><th>曝光</th><th>CTR</th><th>排名</th></tr>
                {{ range .Report.Data.Keywords.TopKeywords }}
                <tr>
                    <td>{{ .Rank }}</td><td>{{ .Keyword }}</td><td>{{ .Clicks }}</td>
                    <td>{{ .Impressions }}</td><td>{{ printf "%.2f" (pct .CTR) }}%</td><td>{{ printf "%.1f" .Position }}</td>
                </tr>
                {{ end }}
            </table>
        </div>

        {{ if .Report.Annotations }}
        <div class="card">
            <h2>关键词标注</h2>
            <table>
                <tr><th>关键词</th><th>意图</th><th>流量时段</th><th>点击表现</th></tr>
                {{ range .Report.Annotations }}
                <tr><td>{{ .Keyword }}</td><td>{{ .Intent }}</td><td>{{ .PeakWindow }}</td><td>{{ .CTRLabel }}</td></tr>
                {{ end }}
            </table>
        </div>
        {{ end }}

        {{ if .Report.Data.Audience.Devices }}
        <div class="card">
            <h2>设备与地区</h2>
            <table>
                <tr><th>设备</th><th>点击</th><th>曝光</th><th>CTR</th></tr>
                {{ range .Report.Data.Audience.Devices }}
                <tr><td>{{ .Key }}</td><td>{{ .Clicks }}</td><td>{{ .Impressions }}</td><td>{{ printf "%.2f" (pct .CTR) }}%</td></tr>
                {{ end }}
            </table>
            {{ if .Report.Data.Audience.Countries }}
            <table>
                <tr><th>地区</th><th>点击</th><th>曝光</th></tr>
                {{ range .Report.Data.Audience.Countries }}
                <tr><td>{{ .Key }}</td><td>{{ .Clicks }}</td><td>{{ .Impressions }}</td></tr>
                {{ end }}
            </table>
            {{ end }}
        </div>
        {{ end }}

        {{ if .Report.Data.External.HasCompetitors }}
        <div class="card">
            <h2>竞争对手排名</h2>
            <table>
                <tr><th>排名</th><th>域名</th></tr>
                {{ range .Report.Data.External.Competitors }}
                <tr><td>{{ .Rank }}</td><td>{{ .Domain }}</td></tr>
                {{ end }}
            </table>
        </div>
        {{ end }}
    </div>
</body>
</html>
`

// WriteHTML 渲染报告页面。日期由调用方注入，核心数据模型本身不含时间。
func WriteHTML(w io.Writer, rm dm.ReportModel, date string) error {
	t, err := template.New("report").Funcs(template.FuncMap{
		"pct": func(v float64) float64 { return v * 100 },
	}).Parse(htmlTpl)
	if err != nil {
		return err
	}
	return t.Execute(w, HTMLData{Date: date, Report: rm})
}

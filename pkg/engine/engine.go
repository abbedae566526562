// Package engine 串起整条流水线：采集扇出 → 归一化 → 合并 →
// 启发式分析 → Prompt 构造 → 模型调用 → 容错解析 → 报告装配。
// 任何数据源或模型环节失败都只降级对应区块，一次运行要么产出
// 完整报告，要么产出带降级标记的报告，不会中途失败。
package engine

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/time/rate"

	"github.com/iWorld-y/search_radar/pkg/analyze"
	"github.com/iWorld-y/search_radar/pkg/collect"
	"github.com/iWorld-y/search_radar/pkg/collect/factory"
	"github.com/iWorld-y/search_radar/pkg/config"
	"github.com/iWorld-y/search_radar/pkg/insight"
	"github.com/iWorld-y/search_radar/pkg/llm"
	"github.com/iWorld-y/search_radar/pkg/logger"
	"github.com/iWorld-y/search_radar/pkg/merge"
	dm "github.com/iWorld-y/search_radar/pkg/model"
	"github.com/iWorld-y/search_radar/pkg/normalize"
	"github.com/iWorld-y/search_radar/pkg/prompt"
	"github.com/iWorld-y/search_radar/pkg/report"
)

// ChatCaller 模型调用抽象，测试时注入桩实现
type ChatCaller interface {
	Generate(ctx context.Context, prompt string) dm.ModelReply
}

// Engine 核心处理引擎
type Engine struct {
	cfg        *config.Config
	collectors []collect.Collector
	chat       ChatCaller
}

// NewEngine 创建引擎实例
func NewEngine(cfg *config.Config) (*Engine, error) {
	ctx := context.Background()

	// 限流器对模型与上游调用共用
	limit := rate.Limit(float64(cfg.Concurrency.RPM) / 60.0)
	limiter := rate.NewLimiter(limit, cfg.Concurrency.QPS)

	chat, err := llm.New(ctx, cfg.LLM, limiter)
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	collectors, err := factory.NewCollectors(cfg, limiter)
	if err != nil {
		return nil, fmt.Errorf("采集器初始化失败: %w", err)
	}

	return &Engine{cfg: cfg, collectors: collectors, chat: chat}, nil
}

// NewEngineWith 注入现成的采集器与模型调用器，测试用
func NewEngineWith(cfg *config.Config, collectors []collect.Collector, chat ChatCaller) *Engine {
	return &Engine{cfg: cfg, collectors: collectors, chat: chat}
}

// RunOptions 运行选项
type RunOptions struct {
	ProgressCallback func(status string, progress int)
}

// Run 执行一次报告生成任务
func (e *Engine) Run(ctx context.Context, opts RunOptions) (dm.ReportModel, error) {
	site := e.cfg.Providers.SearchPerf.SiteURL
	logger.Log.Infof("开始为站点 [%s] 生成搜索表现报告", site)
	progress(opts, "starting", 0)

	if len(e.collectors) == 0 {
		return dm.ReportModel{}, fmt.Errorf("no collectors configured")
	}

	// 1. 采集扇出：每个采集器一个 goroutine，失败体现在信封里
	payloads := map[dm.SourceKind]dm.RawPayload{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, c := range e.collectors {
		wg.Add(1)
		go func(c collect.Collector) {
			defer wg.Done()
			logger.Log.Infof("正在采集数据源: %s", c.Name())
			result := c.Collect(ctx)

			mu.Lock()
			for kind, payload := range result {
				payloads[kind] = payload
			}
			mu.Unlock()
		}(c)
	}
	wg.Wait()
	progress(opts, "collected", 30)

	// 2. 归一化扇出 + 合并扇入
	sources := normalize.All(payloads)
	ds := merge.Merge(sources)
	logger.Log.Infof("数据合并完成: %d 个关键词，趋势 %s (来源: %s)",
		ds.Keywords.TotalRows, ds.Trend.Direction, ds.KeywordSource)
	progress(opts, "merged", 45)

	// 3. 启发式分析
	deltas := analyze.PeriodDeltas(ds.Trend)
	annotations := analyze.AnnotateKeywords(
		capRecords(ds.Keywords.TopKeywords, 10), e.cfg.BrandTerms)
	progress(opts, "analyzed", 55)

	// 4. Prompt 构造与模型调用
	promptText, pctx := prompt.Build(ds, site)
	progress(opts, "prompting", 60)

	reply := e.chat.Generate(ctx, promptText)
	if !reply.Succeeded {
		logger.Log.Errorf("模型调用失败，报告将降级: %s", reply.ErrorMessage)
	}
	progress(opts, "generated", 85)

	// 5. 容错解析与装配
	ins := insight.Reconcile(reply)
	if ins.ParseDegraded {
		logger.Log.Warn("模型回复解析降级，洞察区块为兜底内容")
	}

	rm := report.Assemble(pctx, ins, deltas, annotations)
	progress(opts, "completed", 100)
	logger.Log.Infof("报告生成完毕 [%s]", site)
	return rm, nil
}

func progress(opts RunOptions, status string, pct int) {
	if opts.ProgressCallback != nil {
		opts.ProgressCallback(status, pct)
	}
}

func capRecords(records []dm.KeywordRecord, limit int) []dm.KeywordRecord {
	if len(records) > limit {
		return records[:limit]
	}
	return records
}

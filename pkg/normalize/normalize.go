// Package normalize 将各上游数据源的原始响应归一化为结构完整的
// ProcessedSource。所有归一化器都是纯函数：不做网络调用、不共享状态、
// 对任何畸形输入都返回 HasData=false 的完整空结构，绝不 panic。
package normalize

import (
	"math"
	"sync"

	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// All 对全部数据源做固定槽位的并行归一化，是采集层与合并层之间的
// 汇合点。缺失的槽位补齐为空的 ProcessedSource，返回值保证每种
// SourceKind 的键都存在。
func All(payloads map[dm.SourceKind]dm.RawPayload) map[dm.SourceKind]dm.ProcessedSource {
	out := make(map[dm.SourceKind]dm.ProcessedSource, len(dm.AllSourceKinds))
	var mu sync.Mutex
	var wg sync.WaitGroup

	put := func(ps dm.ProcessedSource) {
		mu.Lock()
		out[ps.Kind] = ps
		mu.Unlock()
	}

	get := func(kind dm.SourceKind) dm.RawPayload {
		if p, ok := payloads[kind]; ok {
			return p
		}
		return dm.RawPayload{Kind: kind, ErrorMessage: "数据源未提供"}
	}

	wg.Add(5)
	go func() {
		defer wg.Done()
		put(Keywords(get(dm.SourceKeywords)))
	}()
	go func() {
		defer wg.Done()
		put(Pages(get(dm.SourcePages)))
	}()
	go func() {
		defer wg.Done()
		// 受众的两路输入不带来源标签，由归一化器按结构启发式分流
		device, country := Audience(get(dm.SourceAudienceDevice), get(dm.SourceAudienceCountry))
		put(device)
		put(country)
	}()
	go func() {
		defer wg.Done()
		put(Trend(get(dm.SourceTrend)))
		put(Sitemaps(get(dm.SourceSitemap)))
		put(Appearance(get(dm.SourceAppearance)))
	}()
	go func() {
		defer wg.Done()
		trend, competitor := External(get(dm.SourceExternalTrend), get(dm.SourceExternalCompetitor))
		put(trend)
		put(competitor)
	}()
	wg.Wait()

	return out
}

// failed 构造带错误信息的降级记录
func failed(kind dm.SourceKind, p dm.RawPayload, fallbackMsg string) dm.ProcessedSource {
	ps := dm.NewProcessedSource(kind)
	ps.ErrorMessage = p.ErrorMessage
	if ps.ErrorMessage == "" {
		ps.ErrorMessage = fallbackMsg
	}
	return ps
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

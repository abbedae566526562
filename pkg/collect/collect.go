// Package collect 定义采集层的通用接口。各上游客户端把网络与
// 认证失败折叠进 RawPayload 信封，核心流水线不感知 HTTP 细节。
package collect

import (
	"context"

	dm "github.com/iWorld-y/search_radar/pkg/model"
)

// Collector 单个上游数据源的采集器。Collect 不返回 error：
// 任何失败都体现在对应槽位 Succeeded=false 的信封里。
type Collector interface {
	Name() string
	Collect(ctx context.Context) map[dm.SourceKind]dm.RawPayload
}

// Failure 构造失败信封
func Failure(kind dm.SourceKind, err error) dm.RawPayload {
	return dm.RawPayload{Kind: kind, ErrorMessage: err.Error()}
}

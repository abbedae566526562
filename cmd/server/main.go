package main

import (
	"bytes"
	"encoding/json"
	"flag"
	nethttp "net/http"
	"os"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/iWorld-y/search_radar/pkg/config"
	"github.com/iWorld-y/search_radar/pkg/engine"
	"github.com/iWorld-y/search_radar/pkg/logger"
	dm "github.com/iWorld-y/search_radar/pkg/model"
	"github.com/iWorld-y/search_radar/pkg/report"
)

// Name 是服务的名称
const Name = "search_radar"

var (
	flagconf string
	flagaddr string

	id, _ = os.Hostname()
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagaddr, "addr", ":8080", "http listen address")
}

// reportHolder 保存最近一次运行的结果，供查询端点读取
type reportHolder struct {
	mu      sync.RWMutex
	running bool
	model   *dm.ReportModel
	html    []byte
}

func (h *reportHolder) set(rm dm.ReportModel, html []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.model = &rm
	h.html = html
}

func (h *reportHolder) tryStart() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.running {
		return false
	}
	h.running = true
	return true
}

func (h *reportHolder) finish() {
	h.mu.Lock()
	h.running = false
	h.mu.Unlock()
}

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		panic(err)
	}

	klogger := log.With(log.NewStdLogger(os.Stdout),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", Name,
	)
	helper := log.NewHelper(klogger)

	eng, err := engine.NewEngine(cfg)
	if err != nil {
		helper.Fatalf("引擎初始化失败: %v", err)
	}

	holder := &reportHolder{}
	srv := newHTTPServer(flagaddr, eng, holder, helper)

	app := kratos.New(
		kratos.ID(id),
		kratos.Name(Name),
		kratos.Logger(klogger),
		kratos.Server(srv),
	)
	if err := app.Run(); err != nil {
		panic(err)
	}
}

// newHTTPServer 注册 webhook 触发与报告查询路由
func newHTTPServer(addr string, eng *engine.Engine, holder *reportHolder, helper *log.Helper) *http.Server {
	srv := http.NewServer(
		http.Address(addr),
		http.Middleware(recovery.Recovery()),
	)

	// webhook 触发一次报告生成；已有任务在跑时返回 409
	srv.HandleFunc("/api/v1/report/generate", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodPost {
			w.WriteHeader(nethttp.StatusMethodNotAllowed)
			return
		}
		if !holder.tryStart() {
			w.WriteHeader(nethttp.StatusConflict)
			w.Write([]byte(`{"status":"already running"}`))
			return
		}
		defer holder.finish()

		rm, err := eng.Run(r.Context(), engine.RunOptions{
			ProgressCallback: func(status string, pct int) {
				helper.Debugf("进度 %d%%: %s", pct, status)
			},
		})
		if err != nil {
			helper.Errorf("报告生成失败: %v", err)
			w.WriteHeader(nethttp.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := report.WriteHTML(&buf, rm, time.Now().Format("2006-01-02")); err != nil {
			helper.Errorf("渲染 HTML 失败: %v", err)
			w.WriteHeader(nethttp.StatusInternalServerError)
			return
		}
		holder.set(rm, buf.Bytes())

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","degraded":` + boolJSON(rm.Insight.ParseDegraded) + `}`))
	})

	// 最近一次报告的结构化数据
	srv.HandleFunc("/api/v1/report/latest", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		holder.mu.RLock()
		defer holder.mu.RUnlock()
		if holder.model == nil {
			w.WriteHeader(nethttp.StatusNotFound)
			w.Write([]byte(`{"error":"no report generated yet"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(holder.model)
	})

	// 最近一次报告的 HTML 页面
	srv.HandleFunc("/", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		holder.mu.RLock()
		defer holder.mu.RUnlock()
		if holder.html == nil {
			w.Write([]byte("<html><body>尚未生成报告，POST /api/v1/report/generate 触发一次。</body></html>"))
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(holder.html)
	})

	return srv
}

func boolJSON(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

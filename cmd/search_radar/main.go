package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/iWorld-y/search_radar/pkg/config"
	"github.com/iWorld-y/search_radar/pkg/engine"
	"github.com/iWorld-y/search_radar/pkg/logger"
	"github.com/iWorld-y/search_radar/pkg/report"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	// 2. 初始化日志
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动搜索雷达...")

	ctx := context.Background()

	// 3. 初始化引擎并执行
	eng, err := engine.NewEngine(cfg)
	if err != nil {
		logger.Log.Fatalf("引擎初始化失败: %v", err)
	}

	rm, err := eng.Run(ctx, engine.RunOptions{
		ProgressCallback: func(status string, pct int) {
			logger.Log.Debugf("进度 %d%%: %s", pct, status)
		},
	})
	if err != nil {
		logger.Log.Fatalf("报告生成失败: %v", err)
	}

	// 4. 渲染 HTML
	if err := os.MkdirAll(cfg.Report.OutputDir, 0o755); err != nil {
		logger.Log.Fatalf("无法创建输出目录: %v", err)
	}
	outPath := filepath.Join(cfg.Report.OutputDir, "index.html")
	f, err := os.Create(outPath)
	if err != nil {
		logger.Log.Fatalf("无法创建报告文件: %v", err)
	}
	defer f.Close()

	if err := report.WriteHTML(f, rm, time.Now().Format("2006-01-02")); err != nil {
		logger.Log.Fatalf("生成 HTML 失败: %v", err)
	}

	logger.Log.Infof("✅ 搜索表现报告生成完毕: %s", outPath)
}

package main

import (
	"github.com/blues/dfs/internal/cache"
	"github.com/blues/dfs/internal/config"
	"github.com/blues/dfs/internal/database"
	"github.com/blues/dfs/internal/logger"
	"github.com/blues/dfs/internal/router"
	"github.com/blues/dfs/internal/scheduler"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	logger.Init(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化缓存
	cacheClient := cache.Init(cfg.Redis)
	defer cacheClient.Close()

	// 初始化路由
	r := router.Setup(db, cacheClient, cfg)

	// 启动定时任务
	manager := scheduler.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

package main

import (
	"log"

	"github.com/aerosite/internal/config"
	"github.com/aerosite/internal/db"
	"github.com/aerosite/internal/logging"
	"github.com/aerosite/internal/router"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// .env 文件可选，缺失时直接使用进程环境变量
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gdb, err := db.Init(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	// 引导管理员账号：仅当配置了邮箱和密码且账号不存在时创建
	if err := db.EnsureAdmin(gdb, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
		logger.Fatal("failed to ensure bootstrap admin", zap.Error(err))
	}

	r, err := router.SetupRouter(cfg, gdb, logger)
	if err != nil {
		logger.Fatal("failed to set up router", zap.Error(err))
	}

	logger.Info("server starting",
		zap.String("addr", cfg.ListenAddr),
		zap.String("environment", cfg.AppEnv),
	)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("failed to run server", zap.Error(err))
	}
}

package main

import (
	"context"

	"go-hrms/internal/config"
	"go-hrms/internal/migrate"
	"go-hrms/internal/shared/connection"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.DSN(), cfg.Database.MaxRetries)
	if err != nil {
		logger.Fatal("connect database failed", zap.Error(err))
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("get sql.DB failed", zap.Error(err))
	}
	defer sqlDB.Close()

	migrations, err := migrate.Embedded()
	if err != nil {
		logger.Fatal("load migrations failed", zap.Error(err))
	}
	applied, err := migrate.Run(context.Background(), sqlDB, migrations, logger)
	if err != nil {
		logger.Fatal("migrate failed", zap.Error(err))
	}
	logger.Info("migrations complete", zap.Int("applied", applied))
}

package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/mbramani/coders-boutique-task/config"
	"github.com/mbramani/coders-boutique-task/internal/repository"
	"github.com/mbramani/coders-boutique-task/internal/seed"
	"github.com/mbramani/coders-boutique-task/pkg/database"
	applogger "github.com/mbramani/coders-boutique-task/pkg/logger"
)

func main() {
	var (
		configPath = flag.String("config", "", "配置文件路径")
		count      = flag.Int("count", seed.DefaultCount, "生成条数")
		reset      = flag.Bool("reset", false, "写入前清空测评表")
		randSeed   = flag.Int64("seed", 0, "随机种子（0 表示按当前时间）")
	)
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log, "assessment-seed")
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 3. 连接数据库并迁移
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("数据库迁移失败", zap.Error(err))
	}

	// 4. 写入种子数据
	var rng *rand.Rand
	if *randSeed != 0 {
		rng = rand.New(rand.NewSource(*randSeed))
	}
	seeder := seed.NewSeeder(repository.NewRepository(db), logger, rng)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := seeder.Run(ctx, seed.Options{Count: *count, Reset: *reset})
	if err != nil {
		logger.Error("写入种子数据失败", zap.Error(err))
		cancel()
		database.Close(db)
		os.Exit(1)
	}
	fmt.Printf("已写入 %d 条测评数据\n", n)
}

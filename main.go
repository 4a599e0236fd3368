// @title Emotional Load Test API
// @version 1.0
// @description 情绪负荷测试微服务：逐题下发、记录作答、累计得分。

// @host localhost:8080
// @BasePath /

package main

import (
	"context"
	"emotest_backend/internal/app"
	"emotest_backend/internal/config"
	"emotest_backend/internal/repository"
	"emotest_backend/internal/seed"
	"emotest_backend/pkg/database"
	"emotest_backend/pkg/logger"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:           "emotest",
		Short:         "Emotional load test service",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configDir)
		},
	}
	root.PersistentFlags().StringVarP(&configDir, "config", "c", "configs", "配置文件目录")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "迁移数据库并启动 HTTP 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configDir)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "只执行数据库迁移，完成后退出",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configDir)
			if err != nil {
				return err
			}
			db, err := database.InitDB(&cfg.Database)
			if err != nil {
				return err
			}
			return database.Migrate(db)
		},
	})

	var seedFile string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "从 YAML 文件导入题库（按 step 覆盖）",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configDir)
			if err != nil {
				return err
			}
			logger.InitLogger(cfg)
			defer logger.Log.Sync()

			db, err := database.InitDB(&cfg.Database)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			n, err := seed.LoadFile(context.Background(), repository.NewQuestionRepository(db), seedFile)
			if err != nil {
				return err
			}
			logger.Log.Info("questions seeded", zap.Int("count", n), zap.String("file", seedFile))
			return nil
		},
	}
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "configs/questions.example.yaml", "题库文件")
	root.AddCommand(seedCmd)

	return root
}

func serve(configDir string) error {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return err
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		logger.Log.Error("Failed to initialize application", zap.Error(err))
		return err
	}

	application.Run()
	return nil
}

// @title        Stacknori API
// @version      1.0
// @description  學習路線圖與學習資源的後端 API 文件
// @host         localhost:8080
// @BasePath     /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"stacknori/internal/cache"
	"stacknori/internal/config"
	"stacknori/internal/database"
	"stacknori/internal/logger"
	appmw "stacknori/internal/middleware"
	"stacknori/internal/router"
	"stacknori/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	_ "stacknori/docs" // 引入 swag 產出的 docs

	echoSwagger "github.com/swaggo/echo-swagger"
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	loadConfig      = config.Load
	newLogger       = logger.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
	cliArgs         = func() []string { return os.Args[1:] }
)

// newEcho 建立 echo 實例並掛上全域中介層與路由
func newEcho(cfg *config.Config, lg *logger.Logger, db database.DB, cch cache.Cache) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Debug = cfg.AppEnv != "production"
	e.Use(middleware.Recover())
	e.Use(appmw.RequestLogger(lg))

	router.Setup(e, db, cch, service.NewAuthenticator(cfg, db, cch), cfg.AppEnv)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	return e
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lg, err := newLogger(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("Logger 建立失敗: %v", err)
	}
	defer lg.Sync()

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	redis, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer redis.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	e := newEcho(cfg, lg, db, redis)
	lg.Info("server starting", "addr", cfg.Addr, "env", cfg.AppEnv)
	return startServer(e, cfg.Addr)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stacknori",
		Short:         "Stacknori 學習路線圖 API 服務",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "啟動 HTTP 服務（預設）",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	})
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newCreateAdminCmd())
	return root
}

func main() {
	root := newRootCmd()
	root.SetArgs(cliArgs())
	if err := root.Execute(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}

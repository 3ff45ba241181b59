package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"photofeed_client/internal/mockapi"
	"photofeed_client/internal/pkg/config"
	"photofeed_client/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	seed := flag.Bool("seed", true, "写入示例帖子与评论")
	flag.Parse()

	config.LoadConfig()
	cfg := config.GlobalConfig

	if err := logger.Init(cfg.App.Env); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	gin.SetMode(cfg.Server.Mode)

	db := mockapi.NewDBFromConfig(cfg)
	if *seed {
		db.Seed()
	}

	router, err := mockapi.NewRouter(cfg, db)
	if err != nil {
		logger.Log.Fatal("init router failed", zap.Error(err))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Log.Info("devserver starting", zap.String("addr", srv.Addr), zap.Bool("seed", *seed))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("devserver failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("devserver shutdown error", zap.Error(err))
		return
	}
	logger.Log.Info("devserver shut down gracefully")
}

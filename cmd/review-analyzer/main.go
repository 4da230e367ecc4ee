// cmd/review-analyzer/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"review-analyzer/internal/analyzer"
	commonaws "review-analyzer/internal/common/aws"
	"review-analyzer/internal/common/config"
	"review-analyzer/internal/common/logger"
	"review-analyzer/internal/common/observability"
	"review-analyzer/internal/language"
	"review-analyzer/internal/resolver"
	"review-analyzer/internal/scoring"
	"review-analyzer/internal/server"
	"review-analyzer/internal/store"
	"review-analyzer/internal/translation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting review analyzer...",
		zap.String("region", cfg.AWS.Region),
		zap.String("modelId", cfg.AWS.Bedrock.ModelID),
		zap.String("table", cfg.AWS.DynamoDB.Table),
	)

	obs := observability.New("review-analyzer")
	defer obs.Shutdown()

	ctx := context.Background()

	// AWS clients are built once per process; the SDK handles connection
	// reuse internally.
	ddb, err := commonaws.NewDynamoDBClient(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("dynamodb client init failed", zap.Error(err))
	}
	comprehendClient, err := commonaws.NewComprehendClient(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("comprehend client init failed", zap.Error(err))
	}
	translateClient, err := commonaws.NewTranslateClient(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("translate client init failed", zap.Error(err))
	}
	bedrockClient, err := commonaws.NewBedrockClient(ctx, cfg.AWS.Region, cfg.AWS.Bedrock.ModelID)
	if err != nil {
		zapLog.Fatal("bedrock client init failed", zap.Error(err))
	}
	zapLog.Info("All AWS clients initialized")

	shopResolver := resolver.New(resolver.DefaultCanonicalNames(), resolver.DefaultAliases())
	reviewStore := store.NewScanner(ddb, cfg.AWS.DynamoDB.Table, log)
	detector := language.NewDetector(comprehendClient, log)
	chain := translation.NewChain(translateClient, bedrockClient, cfg.AWS.Translate.TargetLanguage, log, obs)
	engine := scoring.NewEngine(bedrockClient, log, obs)

	service := analyzer.New(shopResolver, reviewStore, detector, chain, engine, log, obs)

	srv, err := server.New(cfg.Server, service, log)
	if err != nil {
		zapLog.Fatal("server init failed", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("review analyzer stopped")
}

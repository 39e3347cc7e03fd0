package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpcontext "github.com/skillpass/skillpass-server/internal/api/http/context"
	"github.com/skillpass/skillpass-server/internal/api/http/handler"
	"github.com/skillpass/skillpass-server/internal/api/http/middleware"
	"github.com/skillpass/skillpass-server/internal/api/http/router"
	"github.com/skillpass/skillpass-server/internal/config"
	"github.com/skillpass/skillpass-server/internal/ledger"
	"github.com/skillpass/skillpass-server/internal/logger"
	"github.com/skillpass/skillpass-server/internal/model"
	"github.com/skillpass/skillpass-server/internal/proof"
	"github.com/skillpass/skillpass-server/internal/repository/postgres"
	"github.com/skillpass/skillpass-server/internal/server"
	"github.com/skillpass/skillpass-server/internal/service"
	storage "github.com/skillpass/skillpass-server/internal/storage/minio"
	"github.com/skillpass/skillpass-server/internal/storage/mirror"
	"github.com/skillpass/skillpass-server/internal/token"
)

const proofImageSize = 256

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	institutionRepo := postgres.NewInstitutionRepository(db)
	credentialRepo := postgres.NewCredentialRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.ExpirationHours)

	contentStore, err := newContentStore(ctx, cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to initialize content store", "error", err)
	}

	ledgerClient := ledger.NewClient(cfg.Ledger.NodeURL)
	proofGenerator := proof.NewQRGenerator(proofImageSize)

	authService := service.NewAuth(userRepo, tokenManager, logger)
	institutionService := service.NewInstitution(institutionRepo, logger)
	credentialService := service.NewCredential(credentialRepo, userRepo, institutionRepo, contentStore, ledgerClient, proofGenerator, logger)

	ctxMgr := httpcontext.NewManager()

	routes := router.New(
		handler.NewHealth(buildVersion),
		handler.NewAuth(authService, logger),
		handler.NewInstitution(institutionService, ctxMgr, logger),
		handler.NewCredential(credentialService, authService, ctxMgr, logger),
		middleware.NewAuthenticate(tokenManager, ctxMgr, logger),
		middleware.NewLogging(logger),
	)

	httpServer := server.NewHTTPServer(routes, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// newContentStore builds the object-backed content store, or the digest-only
// mirror store when mirror mode is enabled.
func newContentStore(ctx context.Context, cfg config.Storage, logger *logger.Logger) (model.ContentStore, error) {
	if cfg.MirrorMode {
		logger.Info("content store running in mirror mode, documents are not persisted")
		return mirror.NewStore(), nil
	}

	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return storage.NewClient(ctx, minioClient, cfg.Bucket)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/snapgram/backend/internal/auth"
	"github.com/anonto42/snapgram/backend/internal/handlers"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"github.com/anonto42/snapgram/backend/internal/router"
	"github.com/anonto42/snapgram/backend/internal/validators"
	"github.com/anonto42/snapgram/backend/pkg/config"
	"github.com/anonto42/snapgram/backend/pkg/firebase"
	"github.com/anonto42/snapgram/backend/pkg/payment"
	"github.com/anonto42/snapgram/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions holds flags for the serve command
type ServeOptions struct {
	*RootOptions
	AutoMigrate bool
}

// NewServeCommand creates the serve command
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.AutoMigrate, "migrate", false, "run migrations before serving")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg := opts.Config
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable not set")
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize databases: %w", err)
	}
	defer db.CloseDB()

	if opts.AutoMigrate {
		if err := Migrate(db.Postgres, cfg.GiftsSeedPath, false); err != nil {
			return err
		}
	}

	deps := router.Dependencies{
		DB:            db.Postgres,
		Tokens:        auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		CoinsPerRupee: cfg.CoinsPerRupee,
	}

	switch cfg.MediaBackend {
	case "s3":
		store, err := storage.NewS3Store(ctx, cfg.S3Bucket, cfg.AWSRegion)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 media store: %w", err)
		}
		deps.Media = store
		log.Printf("Media stored in S3 bucket %s", cfg.S3Bucket)
	case "local":
		store, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize local media store: %w", err)
		}
		deps.Media = store
		deps.UploadDir = cfg.UploadDir
		log.Printf("Media stored under %s", cfg.UploadDir)
	default:
		return fmt.Errorf("unsupported MEDIA_BACKEND %q", cfg.MediaBackend)
	}

	if db.Mongo != nil {
		stories := repositories.NewStoryRepository(db.Mongo.Database(cfg.MongoDatabase), db.Postgres)
		if err := stories.EnsureIndexes(ctx); err != nil {
			log.Printf("Failed to ensure story indexes: %v", err)
		}
		deps.Stories = stories
	}

	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		return fmt.Errorf("failed to initialize Firebase: %w", err)
	}
	if firebaseApp != nil {
		deps.Firebase = firebaseApp.AuthClient
	}

	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		deps.Payments = payment.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	} else {
		log.Println("Razorpay keys not set, coin purchases are disabled.")
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	config.SetupMiddleware(e, cfg)
	router.SetupRoutes(e, deps)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting server on :%s", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

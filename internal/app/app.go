package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/MikhailRaia/shortlink/internal/config"
	"github.com/MikhailRaia/shortlink/internal/generator"
	"github.com/MikhailRaia/shortlink/internal/handler"
	"github.com/MikhailRaia/shortlink/internal/middleware"
	"github.com/MikhailRaia/shortlink/internal/proto"
	"github.com/MikhailRaia/shortlink/internal/service"
	"github.com/MikhailRaia/shortlink/internal/storage/memory"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config     *config.Config
	storage    *memory.Storage
	handler    http.Handler
	grpcServer *grpc.Server
}

// NewApp wires the storage, service and transports. The storage is created
// here once and shared by every transport.
func NewApp(cfg *config.Config) (*App, error) {
	gen, err := generator.New(cfg.IDAlphabet, cfg.IDLength)
	if err != nil {
		return nil, fmt.Errorf("creating identifier generator: %w", err)
	}

	storage := memory.NewStorage(gen, memory.Config{
		MaxAttempts: cfg.MaxAttempts,
		GrowAfter:   cfg.GrowAfter,
	})

	urlService := service.NewURLService(storage, cfg.BaseURL)

	httpHandler := handler.NewHandler(urlService)

	a := &App{
		config:  cfg,
		storage: storage,
		handler: httpHandler.RegisterRoutes(),
	}

	if cfg.GRPCAddress != "" {
		a.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(middleware.UnaryLogger))
		proto.RegisterShortenerServer(a.grpcServer, handler.NewShortenerGRPCServer(urlService))
	}

	return a, nil
}

// Run serves until ctx is cancelled or a server fails, then shuts every
// server down.
func (a *App) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().
			Str("address", a.config.ServerAddress).
			Str("base_url", a.config.BaseURL).
			Msg("Starting HTTP server")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if a.grpcServer != nil {
		g.Go(func() error {
			lis, err := net.Listen("tcp", a.config.GRPCAddress)
			if err != nil {
				return fmt.Errorf("grpc listen: %w", err)
			}

			log.Info().Str("address", a.config.GRPCAddress).Msg("Starting gRPC server")
			if err := a.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
				return fmt.Errorf("grpc server: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if a.grpcServer != nil {
			a.grpcServer.GracefulStop()
		}

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}

		log.Info().Int("mappings", a.storage.Len()).Msg("Server stopped")
		return nil
	})

	return g.Wait()
}

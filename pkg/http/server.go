package http

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/evacx/pkg/http/router"
	"github.com/lintang-b-s/evacx/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/evacx/pkg/http/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. serve the results API with viper settings and block until ctx is cancelled
func (s *Server) Use(
	ctx context.Context,
	useRateLimit bool,
	resultsService controllers.ResultsService,
) error {
	config := http_server.ConfigFromViper()
	api := http_router.NewAPI(s.Log)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Run(ctx, config, useRateLimit, resultsService)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// GracefulShutdown. context cancelled on SIGINT or SIGTERM
func GracefulShutdown(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

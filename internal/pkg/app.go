package pkg

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"custody/internal/app/config"
	"custody/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

type Application struct {
	Config  *config.Config
	Router  *gin.Engine
	Sweeper *service.Sweeper
}

// NewApp accepts a nil sweeper when the background re-render is disabled.
func NewApp(c *config.Config, r *gin.Engine, sweeper *service.Sweeper) *Application {
	return &Application{
		Config:  c,
		Router:  r,
		Sweeper: sweeper,
	}
}

// RunApp serves until ctx is cancelled or a termination signal arrives, then drains
// in-flight requests and stops the sweeper.
func (a *Application) RunApp(ctx context.Context) error {
	logrus.Info("Server start up")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	srv := &http.Server{Addr: serverAddress, Handler: a.Router, ReadHeaderTimeout: 5 * time.Second}

	if a.Sweeper != nil {
		a.Sweeper.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Starting server on %s", serverAddress)
		errCh <- srv.ListenAndServe()
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logrus.Info("shutdown requested")
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if a.Sweeper != nil {
		a.Sweeper.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		serveErr = err
	}
	return serveErr
}

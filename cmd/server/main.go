package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Psyborgs-git/coddle.ai-demo/internal"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/api"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/auth"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/config"
	"github.com/Psyborgs-git/coddle.ai-demo/internal/storage"
)

// app wires the repositories and logger behind the api.App interface.
type app struct {
	logger internal.Logger
	repos  *storage.Repositories
}

func (a *app) Logger() internal.Logger                   { return a.logger }
func (a *app) SessionRepo() storage.SessionRepository    { return a.repos.Sessions }
func (a *app) ProfileRepo() storage.ProfileRepository    { return a.repos.Profiles }
func (a *app) StateRepo() storage.LearnerStateRepository { return a.repos.States }

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.StorageBackend == "file" {
		if err := os.MkdirAll(filepath.Dir(cfg.SessionsFile), 0o755); err != nil {
			logger.Fatalf("failed to create data dir: %v", err)
		}
	}

	repos, err := storage.New(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}
	defer repos.Close()

	a := &app{logger: logger, repos: repos}

	var provider auth.Provider
	if cfg.Env == "development" {
		provider = auth.NewLocalAuthProvider(cfg.AuthToken, logger)
	} else {
		provider = auth.NewRemoteAuthProvider(cfg.AuthServiceURL, logger)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(api.RequestIDMiddleware())
	r.Use(auth.AuthMiddleware(provider, cfg))

	r.POST("/profiles", api.PostProfile(a))
	r.GET("/profiles", api.GetProfiles(a))

	r.POST("/sessions", api.PostSession(a))
	r.GET("/sessions", api.GetSessions(a))
	r.PATCH("/sessions/:id", api.PatchSession(a))
	r.DELETE("/sessions/:id", api.DeleteSession(a))

	r.GET("/schedule", api.GetSchedule(a))
	r.GET("/schedule/whatif", api.GetScheduleWhatIf(a))
	r.GET("/schedule/notifications", api.GetScheduleNotifications(a))
	r.GET("/tips", api.GetTips(a))
	r.GET("/learner", api.GetLearnerState(a))

	srv := &http.Server{Addr: cfg.Addr, Handler: r}

	go func() {
		logger.Infof("server listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("forced shutdown: %v", err)
	}
}

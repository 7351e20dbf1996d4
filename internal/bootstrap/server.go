package bootstrap

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/mkharitonov/spacetrips/api"
	"github.com/mkharitonov/spacetrips/config"
	"github.com/mkharitonov/spacetrips/internal/repository"
	"github.com/mkharitonov/spacetrips/internal/service/launches"
	"github.com/mkharitonov/spacetrips/internal/service/trips"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails. Shutdown drains in-flight requests for up to five seconds.
func Run(ctx context.Context, cfg *config.Config, users repository.UserRepository, launchSvc launches.LaunchUseCase, tripSvc trips.TripUseCase) error {
	router := newRouter(cfg, users, launchSvc, tripSvc)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	}
}

func newRouter(cfg *config.Config, users repository.UserRepository, launchSvc launches.LaunchUseCase, tripSvc trips.TripUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), api.RequestID(), api.Auth(users))

	root := router.Group("/api")
	api.NewAuthHandler(users, launchSvc).Register(root)
	api.NewLaunchHandler(launchSvc).Register(root.Group("/launches"))
	api.NewTripHandler(tripSvc, launchSvc).Register(root.Group("/trips"))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFile("/docs/swagger.json", cfg.HTTP.SwaggerDir+"/swagger.json")
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/docs/swagger.json"),
		)))
	}

	return router
}

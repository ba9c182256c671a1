package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/carousell/ct-go/pkg/logger"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/labstack/echo/v4"
	echomdw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"

	"github.com/Emansafdar26/buysmart-client/internal/config"
	pkgmdw "github.com/Emansafdar26/buysmart-client/internal/server/middleware"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	handler Controller,
) {
	e := echo.New()
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(logger.MustNamed("http"))

	logConfig := pkgmdw.LogRequestConfig{
		Logger: logger.MustNamed("http"),
		Enabled: func(c echo.Context) bool {
			uri := c.Request().RequestURI
			return uri != "/health" && uri != "/metrics"
		},
		// login bodies carry credentials
		RequestBody: func(c echo.Context) bool {
			return c.Request().RequestURI != "/api/v1/auth/login"
		},
	}

	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.LogRequest(logConfig))
	if conf.Server.CORSPattern != "" {
		e.Use(pkgmdw.CORS(regexp.MustCompile(conf.Server.CORSPattern)))
	}
	e.Use(echomdw.RecoverWithConfig(echomdw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return nil
		},
	}))

	e.GET("/health", handler.Health)

	api := e.Group("/api/v1")
	api.GET("/home", handler.Home)
	api.GET("/products", handler.ListProducts)
	api.GET("/products/:id", handler.GetProduct)

	api.GET("/favorites", handler.ListFavorites)
	api.POST("/favorites/toggle", handler.ToggleFavorite)
	api.POST("/favorites/remove", handler.RemoveFavorite)
	api.GET("/favorites/price-alerts", handler.ListPriceAlerts)
	api.POST("/favorites/price-alert", handler.SetPriceAlert)
	api.POST("/favorites/price-alert/update", handler.UpdatePriceAlert)
	api.POST("/favorites/price-alert/remove", handler.RemovePriceAlert)

	api.GET("/preferences", handler.GetPreferences)
	api.POST("/preferences", handler.SavePreferences)
	api.POST("/preferences/remove", handler.RemovePreference)

	api.POST("/auth/login", handler.Login)
	api.POST("/auth/logout", handler.Logout)
	api.GET("/auth/me", handler.Me)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Infow(ctx, "starting HTTP server", "addr", conf.Server.Addr)
				if err := e.Start(conf.Server.Addr); !errors.Is(err, http.ErrServerClosed) {
					sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
}

package app

import (
	"fmt"

	"github.com/carousell/ct-go/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"github.com/Emansafdar26/buysmart-client/internal/catalog"
	"github.com/Emansafdar26/buysmart-client/internal/config"
	"github.com/Emansafdar26/buysmart-client/internal/favorites"
	"github.com/Emansafdar26/buysmart-client/internal/gateway"
	"github.com/Emansafdar26/buysmart-client/internal/repo/storefront"
	"github.com/Emansafdar26/buysmart-client/internal/server"
	"github.com/Emansafdar26/buysmart-client/internal/session"
	"github.com/Emansafdar26/buysmart-client/internal/usecase"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newSessionStore,
			session.New,
			newEngine,
			newReconcilerAPI,
			favorites.NewReconciler,

			gateway.NewClient,
			storefront.NewClient,

			usecase.NewHomeUsecase,
			usecase.NewBrowseUsecase,
			usecase.NewDetailUsecase,
			usecase.NewProfileUsecase,
			usecase.NewAuthUsecase,

			server.NewController,
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}

// newSessionStore picks file persistence when a path is configured,
// memory otherwise.
func newSessionStore(conf *config.Config) (session.Store, error) {
	if conf.Session.FilePath == "" {
		return session.NewMemoryStore(), nil
	}
	store, err := session.NewFileStore(conf.Session.FilePath, conf.Session.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return store, nil
}

func newEngine(conf *config.Config) *catalog.Engine {
	tag, err := language.Parse(conf.Catalog.Locale)
	if err != nil {
		tag = language.English
	}
	return catalog.NewEngine(tag, conf.Catalog.PageSize)
}

// newReconcilerAPI narrows the storefront client to the slice the
// reconciler consumes.
func newReconcilerAPI(client storefront.Client) favorites.API {
	return client
}

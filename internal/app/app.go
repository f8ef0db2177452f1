package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/shopbot/core/bootstrap"
	corecmd "github.com/m3rciful/shopbot/core/cmd"
	tg "github.com/m3rciful/shopbot/core/telegram"
	"github.com/m3rciful/shopbot/core/telegram/router"
	"github.com/m3rciful/shopbot/internal/bot"
	"github.com/m3rciful/shopbot/internal/catalog"
	"github.com/m3rciful/shopbot/internal/checkout"
	"github.com/m3rciful/shopbot/internal/session"
	"github.com/m3rciful/shopbot/internal/users"
)

// App owns the assembled storefront: infrastructure plus handlers.
type App struct {
	cfg      *Config
	db       *sqlx.DB
	sessions *session.Manager
	handlers *bot.Handlers
}

// Bootstrap initializes logging, storage, and the domain services, then
// returns the app ready to produce Telegram run options.
func Bootstrap(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*Config)
	if !ok {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	modules := bootstrap.Modules{
		Seeders: []bootstrap.Seeder{
			catalog.NewSeeder(cfg.Shop.SeedSection, cfg.Shop.Seed),
		},
	}
	if err := modules.RunSeeders(context.Background(), res.DB); err != nil {
		_ = res.DB.Close()
		return nil, fmt.Errorf("app: seed failed: %w", err)
	}

	store := catalog.NewSQLStore(res.DB)
	userStore := users.NewStore(res.DB)
	sessions := session.NewManager()
	checkoutSvc := checkout.NewService(sessions, store, cfg.Shop.Currency)

	handlers := bot.New(bot.Options{
		Store:      store,
		Users:      userStore,
		Sessions:   sessions,
		Checkout:   checkoutSvc,
		OperatorID: cfg.Core.Telegram.AdminID,
		Currency:   cfg.Shop.Currency,
		Greeting:   cfg.Shop.Greeting,
		About:      cfg.Shop.About,
	})

	return &App{
		cfg:      cfg,
		db:       res.DB,
		sessions: sessions,
		handlers: handlers,
	}, nil
}

// TelegramRunOptions builds the registry, routes, and middleware chain.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	reg := tg.NewRegistry()
	if err := a.handlers.Register(reg); err != nil {
		return tg.RunOptions{}, err
	}

	fb := bot.Fallbacks{}
	reg.SetTextFallback(fb.UnknownText())
	reg.SetCallbackNotFound(fb.UnknownCallback())

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes, router.TextRoutes(a.sessions, reg, router.TextOptions{
		UnknownText:     fb.UnknownText(),
		UnknownDocument: fb.UnknownDocument(),
	})...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{
		NotFound: fb.UnknownCallback(),
	}))

	return tg.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg.CoreConfig(), nil),
		Routes:      routes,
		OnStop: func(ctx context.Context, rt tg.Runtime) error {
			return a.db.Close()
		},
	}, nil
}

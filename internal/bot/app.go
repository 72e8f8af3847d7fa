// Package bot wires the application together and runs the update loop in
// webhook or polling mode.
package bot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/ttradingco/eventbot/internal/auth"
	"github.com/ttradingco/eventbot/internal/broadcast"
	"github.com/ttradingco/eventbot/internal/bot/config"
	"github.com/ttradingco/eventbot/internal/catalog"
	"github.com/ttradingco/eventbot/internal/delivery"
	"github.com/ttradingco/eventbot/internal/logging"
	"github.com/ttradingco/eventbot/internal/prelaunch"
	"github.com/ttradingco/eventbot/internal/roster"
	"github.com/ttradingco/eventbot/internal/session"
	"github.com/ttradingco/eventbot/internal/storage"
	"github.com/ttradingco/eventbot/internal/telegram"
)

type App struct {
	cfg      *config.Config
	log      logging.Logger
	db       *sql.DB
	bot      *tgbot.Bot
	handlers *Handlers
}

// NewApp builds the full dependency graph: datastore, roster, sessions,
// services, transport adapter, and handlers.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := storage.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	// The roster is (re)loaded after datastore init so a roster file dropped
	// in alongside a fresh deployment is picked up on the same start.
	directory := roster.Load(cfg.RosterPath)
	log.Info(ctx, "roster loaded", "entries", directory.Len())

	var sessions session.Store
	if cfg.SessionBackend == "redis" {
		redisStore, err := session.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("session backend error: %w", err)
		}
		sessions = redisStore
	} else {
		sessions = session.NewMemoryStore()
	}

	users := storage.NewUsers(db)
	authSvc := auth.NewService(directory, sessions, users)
	gate := prelaunch.New(cfg.LaunchDate, cfg.PrelaunchDays)
	cat := catalog.New(cfg.DataDir)

	app := &App{cfg: cfg, log: log, db: db}

	b, err := tgbot.New(cfg.BotToken, tgbot.WithDefaultHandler(app.defaultHandler))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bot init error: %w", err)
	}
	app.bot = b

	client := telegram.NewBotClient(b)
	sender := delivery.NewSender(client, log, delivery.DefaultPolicy())
	bcast := broadcast.NewController(cfg.AdminIDs, users, client, log)
	app.handlers = NewHandlers(cfg, log, client, gate, authSvc, users, cat, sender, bcast)
	app.registerHandlers()

	return app, nil
}

func (a *App) registerHandlers() {
	message := func(fn func(context.Context, *models.Message)) tgbot.HandlerFunc {
		return func(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
			if update.Message != nil {
				fn(ctx, update.Message)
			}
		}
	}

	a.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypePrefix, message(a.handlers.OnStart))
	a.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/help", tgbot.MatchTypePrefix, message(a.handlers.OnHelp))
	a.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/menu", tgbot.MatchTypePrefix, message(a.handlers.OnMenu))
	a.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/miid", tgbot.MatchTypePrefix, message(a.handlers.OnMyID))
	a.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/broadcast", tgbot.MatchTypePrefix, message(a.handlers.OnBroadcastCommand))
	a.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/cancel", tgbot.MatchTypePrefix, message(a.handlers.OnCancel))
	a.bot.RegisterHandler(tgbot.HandlerTypeCallbackQueryData, "", tgbot.MatchTypePrefix, func(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
		if update.CallbackQuery != nil {
			a.handlers.OnCallback(ctx, update.CallbackQuery)
		}
	})
}

// defaultHandler catches everything the registered handlers did not: plain
// text and non-text messages (the latter only matter to an armed admin).
func (a *App) defaultHandler(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
	if update.Message != nil {
		a.handlers.OnMessage(ctx, update.Message)
	}
}

func (a *App) initSignalHandler(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancel()
	}()
}

// Run blocks until the context is cancelled or a fatal transport error.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.initSignalHandler(cancel)
	defer a.db.Close()

	if a.cfg.WebhookEnabled() {
		return a.runWebhook(ctx)
	}
	return a.runPolling(ctx)
}

func (a *App) runPolling(ctx context.Context) error {
	// Updates queued while the bot was down are stale; drop them.
	if _, err := a.bot.DeleteWebhook(ctx, &tgbot.DeleteWebhookParams{DropPendingUpdates: true}); err != nil {
		a.log.Warn(ctx, "webhook delete failed", "error", err)
	}
	a.log.Info(ctx, "starting in polling mode")
	a.bot.Start(ctx)
	return nil
}

func (a *App) runWebhook(ctx context.Context) error {
	if _, err := a.bot.SetWebhook(ctx, &tgbot.SetWebhookParams{URL: a.cfg.WebhookURL()}); err != nil {
		return fmt.Errorf("webhook registration error: %w", err)
	}

	router := chi.NewRouter()
	router.Post(a.cfg.WebhookPath(), a.bot.WebhookHandler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.cfg.Port),
		Handler: router,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.bot.StartWebhook(ctx)
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	a.log.Info(ctx, "starting in webhook mode", "port", a.cfg.Port)
	err := server.ListenAndServe()
	wg.Wait()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Package app wires the bot together: config, logging, transport, the poll
// loop and the optional status server, all running under one supervisor.
package app

import (
	"context"

	"github.com/coreos/go-systemd/v22/daemon"

	"github.com/YanaYugai/homework-bot/internal/config"
	"github.com/YanaYugai/homework-bot/internal/health"
	"github.com/YanaYugai/homework-bot/internal/notify"
	"github.com/YanaYugai/homework-bot/internal/poller"
	"github.com/YanaYugai/homework-bot/internal/practicum"
	"github.com/YanaYugai/homework-bot/internal/runtime/supervisor"
	"github.com/YanaYugai/homework-bot/internal/storage"
	"github.com/YanaYugai/homework-bot/internal/transport/telegram"
	"github.com/YanaYugai/homework-bot/pkg/logx"
)

type App struct {
	cfgMgr *config.Manager

	logSvc *logx.Service
	log    logx.Logger

	store    storage.Store
	notifier *notify.Service
	poller   *poller.Poller
	health   *health.Server

	sup *supervisor.Supervisor
}

// New builds the whole application from the config file path and the
// environment. Missing secrets abort here, before anything starts.
func New(cfgPath string) (*App, error) {
	boot := logx.NewConsole("info")

	secrets, err := config.LoadSecrets()
	if err != nil {
		// The loop must never start without all three secrets.
		boot.Fatal("startup configuration invalid", logx.Err(err))
		return nil, err
	}

	mgr := config.NewManager(cfgPath)
	cfg, err := mgr.Load()
	if err != nil {
		boot.Error("config file unreadable", logx.Err(err), logx.String("path", cfgPath))
		return nil, err
	}

	logSvc, log := logx.New(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.ConsoleEnabled(),
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	mgr.SetLogger(log.With(logx.String("comp", "config")))

	spec, err := poller.ParseSchedule(cfg.Schedule)
	if err != nil {
		return nil, err
	}
	timeout, err := config.ParseDurationOrDefault("request_timeout", cfg.RequestTimeout, config.DefaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	adapter, err := telegram.New(telegram.Config{Token: secrets.TelegramToken}, log.With(logx.String("comp", "telegram")))
	if err != nil {
		return nil, err
	}

	var store storage.Store
	if cfg.Storage != nil {
		busy, err := config.ParseDurationField("storage.busy_timeout", cfg.Storage.BusyTimeout)
		if err != nil {
			return nil, err
		}
		store, err = storage.Open(storage.Config{
			Driver:      cfg.Storage.Driver,
			Path:        cfg.Storage.Path,
			BusyTimeout: busy,
		}, log.With(logx.String("comp", "storage")))
		if err != nil {
			return nil, err
		}
	}

	notifier := notify.New(notify.Config{
		ChatID:     secrets.ChatID,
		RatePerSec: cfg.Notifier.RatePerSec,
	}, adapter, log.With(logx.String("comp", "notify")), store)

	client := practicum.NewClient(cfg.Endpoint, secrets.PracticumToken, timeout)

	p := poller.New(poller.Config{Spec: spec}, client, notifier, log.With(logx.String("comp", "poller")))

	a := &App{
		cfgMgr:   mgr,
		logSvc:   logSvc,
		log:      log,
		store:    store,
		notifier: notifier,
		poller:   p,
	}

	if cfg.Health.Enabled {
		a.health = health.New(health.Config{Addr: cfg.Health.Addr},
			p.Snapshot, notifier, log.With(logx.String("comp", "health")))
	}

	return a, nil
}

func (a *App) Start(ctx context.Context) error {
	if err := a.notifier.LoadHistory(ctx); err != nil {
		a.log.Warn("notification history restore failed", logx.Err(err))
	}

	a.sup = supervisor.New(ctx, supervisor.WithLogger(a.log))

	a.sup.Go0("poller", a.poller.Run)
	if a.health != nil {
		a.sup.Go("health", a.health.Run)
	}
	a.sup.Go("config.watch", func(ctx context.Context) error {
		return a.cfgMgr.Watch(ctx, a.applyConfig)
	})

	// Best-effort: tells systemd (when present) that the unit is up.
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)

	a.log.Info("homework bot started")
	return nil
}

// applyConfig handles runtime config edits. Only logging settings take
// effect without a restart; the rest is logged so the operator knows a
// restart is needed.
func (a *App) applyConfig(cfg *config.Config) {
	a.logSvc.Apply(logx.Config{
		Level:   cfg.Logging.Level,
		Console: cfg.Logging.ConsoleEnabled(),
		File: logx.FileConfig{
			Enabled: cfg.Logging.File.Enabled,
			Path:    cfg.Logging.File.Path,
		},
	})
	a.log.Info("logging configuration applied; other changes need a restart")
}

func (a *App) Stop(ctx context.Context) error {
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	var err error
	if a.sup != nil {
		err = a.sup.Stop(ctx)
	}
	if a.store != nil {
		_ = a.store.Close()
	}
	_ = a.logSvc.Close()
	return err
}

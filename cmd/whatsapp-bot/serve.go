package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ThomasRogersF/whatsapp-bot/bot"
	"github.com/ThomasRogersF/whatsapp-bot/greenapi"
	"github.com/ThomasRogersF/whatsapp-bot/guard"
	"github.com/ThomasRogersF/whatsapp-bot/httpapi"
	"github.com/ThomasRogersF/whatsapp-bot/internal/logutil"
	"github.com/ThomasRogersF/whatsapp-bot/internal/worker"
	"github.com/ThomasRogersF/whatsapp-bot/notify"
	"github.com/ThomasRogersF/whatsapp-bot/outbound"
	"github.com/ThomasRogersF/whatsapp-bot/screening"
	"github.com/ThomasRogersF/whatsapp-bot/session"
	"github.com/ThomasRogersF/whatsapp-bot/store"
	"github.com/ThomasRogersF/whatsapp-bot/store/gormstore"
	"github.com/ThomasRogersF/whatsapp-bot/store/redisstore"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logutil.LoggerFromViper()
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			backend, closeStore, err := openStore(ctx, logger)
			if err != nil {
				return err
			}
			if closeStore != nil {
				defer closeStore()
			}
			st := store.NewResilient(backend, logger)

			client, err := greenapi.New(greenapi.ClientOptions{
				HTTPClient: &http.Client{Timeout: viper.GetDuration("greenapi.request_timeout")},
				BaseURL:    viper.GetString("greenapi.base_url"),
				InstanceID: viper.GetString("greenapi.instance_id"),
				APIToken:   viper.GetString("greenapi.api_token"),
				Logger:     logger,
			})
			if err != nil {
				return err
			}

			sender, err := outbound.NewSender(outbound.SenderOptions{
				Provider:   client,
				Store:      st,
				Logger:     logger,
				MinDelay:   viper.GetDuration("outbound.min_delay"),
				MaxDelay:   viper.GetDuration("outbound.max_delay"),
				UseButtons: viper.GetBool("outbound.use_buttons"),
			})
			if err != nil {
				return err
			}

			deduper := guard.NewDeduper(st)
			processor, err := bot.NewProcessor(bot.ProcessorOptions{
				Sessions: session.NewManager(session.ManagerOptions{Store: st}),
				Deduper:  deduper,
				Limiter:  guard.NewLimiter(guard.LimiterOptions{Store: st}),
				OptOuts:  guard.NewOptOutRegistry(st),
				Sender:   sender,
				Notifier: notify.NewNotifier(notify.NotifierOptions{
					URL:    viper.GetString("notify.result_url"),
					Logger: logger,
				}),
				Screening: screening.Config{
					MinWeeklyHours: viper.GetInt("screening.min_weekly_hours"),
					MaxAge:         viper.GetInt("screening.max_age"),
				},
				HandoffLink: viper.GetString("screening.handoff_link"),
				Logger:      logger,
			})
			if err != nil {
				return err
			}

			queueSize := viper.GetInt("worker.queue_size")
			if queueSize <= 0 {
				queueSize = 128
			}
			maxConcurrency := viper.GetInt("worker.max_concurrency")
			if maxConcurrency <= 0 {
				maxConcurrency = 8
			}
			jobTimeout := viper.GetDuration("worker.job_timeout")
			if jobTimeout <= 0 {
				jobTimeout = 2 * time.Minute
			}

			jobs := make(chan httpapi.Job, queueSize)
			worker.Start(worker.StartOptions[httpapi.Job]{
				Ctx:  ctx,
				Sem:  make(chan struct{}, maxConcurrency),
				Jobs: jobs,
				Handle: func(ctx context.Context, job httpapi.Job) {
					jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
					defer cancel()
					processor.Process(jobCtx, job.ChatID, job.Text)
				},
			})

			handler, err := httpapi.NewHandler(httpapi.HandlerOptions{
				Deduper: deduper,
				Enqueue: func(reqCtx context.Context, job httpapi.Job) error {
					return worker.Enqueue(reqCtx, ctx, jobs, job)
				},
				Logger: logger,
			})
			if err != nil {
				return err
			}

			bind := strings.TrimSpace(viper.GetString("server.bind"))
			if bind == "" {
				bind = "0.0.0.0"
			}
			port := viper.GetInt("server.port")
			if port <= 0 {
				port = 8080
			}
			addr := bind + ":" + strconv.Itoa(port)
			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewRouter(handler),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server_start", "addr", addr, "store_backend", viper.GetString("store.backend"))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			logger.Info("server_shutdown")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	return cmd
}

// openStore builds the configured store backend. The returned close func is
// nil for backends with nothing to release.
func openStore(ctx context.Context, logger *slog.Logger) (store.Store, func(), error) {
	backend := strings.ToLower(strings.TrimSpace(viper.GetString("store.backend")))
	switch backend {
	case "", "memory":
		logger.Warn("store_memory_backend", "hint", "state is lost on restart; use redis or sqlite in production")
		return store.NewMemory(), nil, nil
	case "redis":
		s, err := redisstore.New(redisstore.Config{
			Addr:      viper.GetString("store.redis.addr"),
			Password:  viper.GetString("store.redis.password"),
			DB:        viper.GetInt("store.redis.db"),
			KeyPrefix: viper.GetString("store.redis.key_prefix"),
		})
		if err != nil {
			return nil, nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.Ping(pingCtx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return s, func() { _ = s.Close() }, nil
	case "sqlite":
		cfg := gormstore.DefaultConfig()
		cfg.DSN = viper.GetString("store.sqlite.path")
		cfg.SweepInterval = viper.GetDuration("store.sqlite.sweep_interval")
		s, err := gormstore.Open(cfg)
		if err != nil {
			return nil, nil, err
		}
		if cfg.SweepInterval > 0 {
			s.StartSweeper(ctx, cfg.SweepInterval)
		}
		return s, func() { _ = s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store.backend: %s (expected memory, redis or sqlite)", backend)
	}
}

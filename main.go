package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/MontecalvoAm/portfolio/internal/config"
	"github.com/MontecalvoAm/portfolio/internal/contact"
	"github.com/MontecalvoAm/portfolio/internal/content"
	"github.com/MontecalvoAm/portfolio/internal/db"
	"github.com/MontecalvoAm/portfolio/internal/schedule"
	"github.com/MontecalvoAm/portfolio/internal/session"
	"github.com/MontecalvoAm/portfolio/internal/tracking"
	"github.com/MontecalvoAm/portfolio/internal/tui"
	"github.com/MontecalvoAm/portfolio/internal/view"
	"github.com/MontecalvoAm/portfolio/internal/web"
)

type rootOptions struct {
	configPath string
	envFile    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Personal portfolio site",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "dotenv file (default ./.env when present)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newContentCmd())
	root.AddCommand(newMessagesCmd(opts))
	root.AddCommand(newVisitorsCmd(opts))
	return root
}

func (o *rootOptions) load() (*config.Config, error) {
	return config.Load(o.configPath, o.envFile)
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("watch") {
				cfg.Server.Watch = watch
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the content file when it changes")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger := cfg.Log.Logger(os.Stderr)
	slog.SetDefault(logger)
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := content.NewStore(cfg.Server.ContentPath, logger)
	if err != nil {
		return err
	}
	if cfg.Server.Watch {
		go func() {
			if err := store.Watch(ctx); err != nil {
				logger.Warn("content watcher stopped", "error", err)
			}
		}()
	}

	database, err := db.OpenDB(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	var tracker *tracking.Tracker
	if cfg.Server.TrackVisitors {
		tracker, err = tracking.New(database, logger)
		if err != nil {
			return err
		}
		go cleanupVisits(ctx, tracker, logger)
		logger.Info("visitor tracking enabled with hashed IP addresses")
	}

	svc := contact.NewService(contact.NewSQLiteRepo(database), newRelay(cfg, logger), cfg.Contact.Timeout, logger)

	pageOpts := cfg.PageOptions()
	pageOpts.VideoExists = assetExists(cfg.Server.AssetsDir)
	clock := schedule.Real()
	sessions := session.NewRegistry(func() *view.Page {
		return view.Mount(store.Get(), clock, pageOpts, logger)
	}, cfg.Server.SessionTTL, logger)
	go sessions.Run(ctx, time.Minute)

	srv, err := web.New(web.Deps{
		Config:   cfg,
		Content:  store,
		Sessions: sessions,
		Contact:  svc,
		Tracker:  tracker,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	if cfg.Admin.Enabled {
		logger.Info("admin access available at /admin/login")
	}
	return srv.Run(ctx)
}

// newRelay picks the contact relay. A web3forms relay without an access key
// would be rejected on every submission, so it degrades to storing only.
func newRelay(cfg *config.Config, logger *slog.Logger) contact.Relay {
	c := cfg.Contact
	switch c.Relay {
	case config.RelayWeb3Forms:
		if c.AccessKey == "" {
			logger.Warn("WEB3FORMS_ACCESS_KEY is not set, contact messages are stored but not relayed")
			return contact.NoopRelay{}
		}
		return &contact.Web3FormsRelay{
			Endpoint:  c.Endpoint,
			AccessKey: c.AccessKey,
			Client:    &http.Client{Timeout: c.Timeout},
		}
	case config.RelaySMTP:
		return &contact.SMTPRelay{
			Host: c.SMTP.Host,
			Port: c.SMTP.Port,
			User: c.SMTP.User,
			Pass: c.SMTP.Pass,
			To:   c.SMTP.To,
		}
	}
	return contact.NoopRelay{}
}

// assetExists maps a site path such as /Video/IMS.mp4 into the assets
// directory and reports whether the file is there.
func assetExists(dir string) func(string) bool {
	return func(p string) bool {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(p, "/"))))
		return err == nil
	}
}

// cleanupVisits drops visits past the retention period once a day.
func cleanupVisits(ctx context.Context, tracker *tracking.Tracker, logger *slog.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		if n, err := tracker.Cleanup(ctx); err != nil {
			logger.Warn("visitor cleanup failed", "error", err)
		} else if n > 0 {
			logger.Info("privacy cleanup removed old visitor records", "count", n)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

var errNotTerminal = errors.New("tui needs an interactive terminal on stdin")

// isInteractive reports whether stdin is a terminal.
var isInteractive = func() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the portfolio in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractive() {
				return errNotTerminal
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			c, err := content.Load(cfg.Server.ContentPath)
			if err != nil {
				return err
			}
			// Log output would corrupt the terminal.
			logger := slog.New(slog.DiscardHandler)
			page := view.Mount(c, schedule.Real(), cfg.PageOptions(), logger)
			defer page.Unmount()
			if err := tui.Run(tui.New(page, c), tea.WithAltScreen()); err != nil {
				return fmt.Errorf("running tui: %w", err)
			}
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/techflow-ai/pitchdeck/internal/config"
	"github.com/techflow-ai/pitchdeck/internal/deck"
	"github.com/techflow-ai/pitchdeck/internal/server"
	"github.com/techflow-ai/pitchdeck/internal/watch"
)

const shutdownTimeout = 5 * time.Second

// serveParams holds the parsed flags for the serve command.
type serveParams struct {
	addr       string
	watch      bool
	configPath string
}

// applyAddr overrides the configured listen address with host:port.
func applyAddr(cfg *config.Config, addr string) error {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 0 || port > 65535 {
		return fmt.Errorf("invalid address %q: port must be in [0, 65535]", addr)
	}
	cfg.Server.Host = host
	cfg.Server.Port = port
	return nil
}

// runServe is the extracted, testable body of the serve command. It
// serves until ctx is canceled.
func runServe(ctx context.Context, p serveParams) error {
	cfg, err := loadConfig(p.configPath)
	if err != nil {
		return err
	}
	if p.addr != "" {
		if err := applyAddr(cfg, p.addr); err != nil {
			return err
		}
	}

	srv := server.New(deck.Default(), cfg,
		server.WithLogger(logger),
		server.WithVersion(version))

	var w *watch.Watcher
	if p.watch {
		path := p.configPath
		if path == "" {
			path = config.DefaultFile
		}
		w, err = watch.New(path, func() {
			next, err := config.Load(p.configPath)
			if err != nil {
				logger.Error("config reload failed, keeping previous", "err", err)
				return
			}
			srv.SetConfig(next)
		}, watch.WithOnError(func(err error) {
			logger.Warn("config watch", "err", err)
		}))
		if err != nil {
			return err
		}
		logger.Info("watching configuration", "path", w.Path())
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if w != nil {
		g.Go(func() error { return w.Run(ctx) })
	}

	return g.Wait()
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	var (
		addr      string
		watchFile bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deck over HTTP",
		Long: `Serve the deck as HTML pages with a JSON API, chart images,
/healthz and Prometheus /metrics. With --watch the config file is
reloaded when it changes; the listen address is fixed at start.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, serveParams{
				addr:       addr,
				watch:      watchFile,
				configPath: flags.configPath,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "",
		"listen address host:port (default from config, 127.0.0.1:8501)")
	cmd.Flags().BoolVar(&watchFile, "watch", false,
		"reload the config file when it changes")

	return cmd
}

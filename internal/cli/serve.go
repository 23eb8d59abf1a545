package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pkgevent/internal/httpapi"
	"pkgevent/internal/scenario"
)

func buildServeCmd(a *app) *cobra.Command {
	var (
		addr    string
		input   string
		replay  string
		backlog int
		buffer  int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve event pipe lines over HTTP",
		Example: "  pkg install foo 3>&1 | pkgevent serve --input -\n" +
			"  pkgevent serve --replay upgrade.yaml",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.live.Load()
			if !cmd.Flags().Changed("addr") {
				addr = cfg.Addr
			}
			var sc *scenario.File
			if replay != "" {
				f, err := scenario.Load(replay)
				if err != nil {
					return err
				}
				sc = f
			}

			httpapi.SetStreamBuffer(buffer)
			hub := httpapi.NewHub(backlog)
			defer hub.Close()
			httpapi.SetCORSOptions(len(cfg.CORSOrigins) > 0, cfg.CORSOrigins)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			httpapi.SetBaseContext(ctx)
			defer httpapi.SetBaseContext(nil)
			a.watchReload(ctx)

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			srv := &http.Server{Handler: httpapi.NewMux(hub), ReadHeaderTimeout: 10 * time.Second}
			a.log.Info().Str("addr", ln.Addr().String()).Msg("pkgevent listening")
			errCh := make(chan error, 1)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			if input == "-" {
				go func() {
					if err := hub.Consume(ctx, cmd.InOrStdin()); err != nil && ctx.Err() == nil {
						a.log.Error().Err(err).Msg("reading event lines")
					}
				}()
			}
			if sc != nil {
				em := a.newEmitter(hub, true)
				defer a.syslog.Close()
				if err := sc.Run(em); err != nil {
					a.log.Error().Err(err).Str("scenario", replay).Msg("replay failed")
				}
			}

			var serveErr error
			select {
			case <-ctx.Done():
			case serveErr = <-errCh:
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.log.Warn().Err(err).Msg("graceful shutdown error")
			}
			return serveErr
		},
	}
	f := cmd.Flags()
	f.StringVar(&addr, "addr", ":8080", "HTTP listen address (defaults config addr)")
	f.StringVar(&input, "input", "", "Read event lines from stdin when set to -")
	f.StringVar(&replay, "replay", "", "Scenario file to emit in-process")
	f.IntVar(&backlog, "backlog", 1024, "Event lines kept for /events/recent")
	f.IntVar(&buffer, "stream-buffer", 256, "Lines queued per /events client before lines are dropped for it")
	return cmd
}

// watchReload re-reads the config file on SIGHUP until ctx is done.
func (a *app) watchReload(ctx context.Context) {
	if a.configPath == "" {
		return
	}
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		defer signal.Stop(hup)
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				if err := a.live.Reload(a.configPath); err != nil {
					a.log.Error().Err(err).Msg("config reload failed")
					continue
				}
				a.log.Info().Str("config", a.configPath).Msg("config reloaded")
			}
		}
	}()
}

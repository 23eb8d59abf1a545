// Package cli implements the pkgevent command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pkgevent/internal/config"
	"pkgevent/internal/console"
	"pkgevent/internal/event"
	"pkgevent/internal/httpapi"
	"pkgevent/internal/metrics"
	"pkgevent/internal/plugin"
	"pkgevent/internal/sink"
)

// EnvConfig names the environment variable holding the default config path.
const EnvConfig = "PKGEVENT_CONFIG"

// collector is registered once with the default registry, which /metrics serves.
var collector = sync.OnceValue(func() *metrics.Collector {
	return metrics.NewCollector(prometheus.DefaultRegisterer)
})

// app is the state shared by every subcommand after flag resolution.
type app struct {
	configPath string
	live       *config.Live
	syslog     *lazySyslog
	log        zerolog.Logger
	stdout     io.Writer
	stderr     io.Writer
}

// Execute runs the command tree with args (without the program name).
func Execute(args []string) error {
	root := buildRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(args)
	return root.ExecuteContext(context.Background())
}

func buildRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "pkgevent",
		Short:         "Package event emission, replay and monitoring",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (.yaml, .json or .toml; defaults "+EnvConfig+")")
	pf.String("log-level", "", "Log level: debug|info|warn|error (defaults config log_level or info)")
	pf.String("event-pipe", "", "Event pipe target: -, fd:N or a path")
	pf.Int64("debug-level", 0, "Highest debug level that is emitted")
	pf.Bool("syslog", false, "Log finished install/deinstall/upgrade to syslog")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return a.resolve(cmd)
	}

	root.AddCommand(buildReplayCmd(a), buildServeCmd(a), buildKindsCmd(a))
	return root
}

// resolve loads the config file and applies flag overrides.
func (a *app) resolve(cmd *cobra.Command) error {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	cfg := config.Config{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("event-pipe") {
		cfg.EventPipe, _ = flags.GetString("event-pipe")
	}
	if flags.Changed("debug-level") {
		cfg.DebugLevel, _ = flags.GetInt64("debug-level")
	}
	if flags.Changed("syslog") {
		cfg.Syslog, _ = flags.GetBool("syslog")
	}
	cfg = cfg.Defaults()

	lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("invalid log level %q", cfg.LogLevel)
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: a.stderr, NoColor: true}).
		Level(lvl).With().Timestamp().Logger()
	plugin.SetLogger(a.log)
	sink.SetLogger(a.log)
	httpapi.SetLogger(a.log)

	a.configPath = path
	a.live = config.NewLive(cfg)
	a.syslog = newLazySyslog(openSyslog, a.log)
	return nil
}

// newEmitter wires the plugin host, the console callback and, when pipe is
// non-nil, the pipe sink.
func (a *app) newEmitter(pipe io.Writer, quiet bool) *event.Emitter {
	host := plugin.NewHost(collector())
	names := make([]string, 0, len(host.Plugins()))
	for _, p := range host.Plugins() {
		names = append(names, p.Name())
	}
	a.log.Debug().Strs("plugins", names).Msg("plugins loaded")
	opts := []event.Option{
		event.WithPlugins(host),
		event.WithSettings(a.live),
		event.WithSyslog(a.syslog),
	}
	if pipe != nil {
		opts = append(opts, event.WithPipe(pipe))
	}
	em := event.New(opts...)
	em.Register(console.Callback, console.NewPrinter(a.stdout, a.log, quiet))
	return em
}

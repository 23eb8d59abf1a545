package cli

import (
	"github.com/spf13/cobra"

	"pkgevent/internal/scenario"
	"pkgevent/internal/sink"
)

func buildReplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "replay <scenario>",
		Short:   "Emit the events described by a scenario file",
		Example: "  pkgevent replay upgrade.yaml --event-pipe -",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := scenario.Load(args[0])
			if err != nil {
				return err
			}
			cfg := a.live.Load()
			pipe, err := sink.Open(cfg.EventPipe)
			if err != nil {
				return err
			}
			// Progress text would interleave with pipe lines on stdout.
			quiet := cfg.EventPipe == "-"
			em := a.newEmitter(nil, quiet)
			defer a.syslog.Close()
			if pipe != nil {
				defer pipe.Close()
				em.SetPipe(pipe)
			}
			if err := f.Run(em); err != nil {
				return err
			}
			if pipe != nil && pipe.Failures() > 0 {
				a.log.Warn().Int64("failures", pipe.Failures()).Str("target", pipe.Target()).Msg("event pipe writes failed")
			}
			return nil
		},
	}
}

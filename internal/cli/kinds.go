package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"pkgevent/internal/event"
	"pkgevent/pkg/types"
)

func buildKindsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List event kinds and the type tag written to the event pipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := event.Kinds()
			if asJSON {
				out := make([]types.KindInfo, 0, len(kinds))
				for _, k := range kinds {
					out = append(out, types.KindInfo{Kind: k.String(), Tag: k.Tag()})
				}
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			for _, k := range kinds {
				tag := k.Tag()
				if tag == "" {
					tag = "-"
				}
				if _, err := fmt.Fprintf(a.stdout, "%-24s %s\n", k, tag); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

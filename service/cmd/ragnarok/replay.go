package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Dhenz14/norse-mythos-card-game-sub013/service/internal/game"
)

func newReplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <match-id>",
		Short: "Re-run a journaled match and check every recorded digest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("match id: %w", err)
			}
			if err := a.requireDatabase(); err != nil {
				return err
			}
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			st, err := a.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			report, err := game.Replay(cmd.Context(), st.journal, cat, id)
			if err != nil {
				return err
			}
			if err := renderReplay(report); err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("%d of %d actions did not reproduce", len(report.Mismatches), report.Actions)
			}
			pterm.Success.Printfln("all %d actions reproduced", report.Actions)
			return nil
		},
	}
}

package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Dhenz14/norse-mythos-card-game-sub013/service/internal/config"
	"github.com/Dhenz14/norse-mythos-card-game-sub013/service/internal/game"
)

func newResumeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resume <match-id>",
		Short: "Reload a journaled match and let the agent finish it for absent players",
		Long: "Reload a journaled match from the snapshot cache or, when that is cold, from the journal. " +
			"Every seat is played by the agent once its turn window runs out.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("match id: %w", err)
			}
			if err := a.requireDatabase(); err != nil {
				return err
			}
			if a.cfg.TurnTimeout <= 0 {
				return errors.New("resume needs a turn timeout, set " + config.KeyTurnTimeout)
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

			ctx := cmd.Context()
			m, err := game.Resume(ctx, st.journal, st.cache, cat, a.log, id)
			if err != nil {
				return err
			}

			done := make(chan uuid.UUID, 1)
			m.Mu.Lock()
			if m.GameOver {
				done <- m.Winner()
			} else {
				m.OnGameEnd = func(_ uuid.UUID, winner uuid.UUID) { done <- winner }
			}
			m.Mu.Unlock()
			m.SetTurnDuration(a.cfg.TurnTimeout)

			pterm.Info.Printfln("match %s resumed at seq %d, turn window %s", id, m.Seq, a.cfg.TurnTimeout)
			select {
			case winner := <-done:
				m.SetTurnDuration(0)
				name := "draw"
				for _, p := range m.Players {
					if p.ID == winner {
						name = p.Name
					}
				}
				pterm.Success.Printfln("match %s over, winner: %s", id, name)
				return nil
			case <-ctx.Done():
				m.SetTurnDuration(0)
				return ctx.Err()
			}
		},
	}
}

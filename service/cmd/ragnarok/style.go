package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	engine "github.com/Dhenz14/norse-mythos-card-game-sub013/engine"
	"github.com/Dhenz14/norse-mythos-card-game-sub013/engine/poker"
	"github.com/Dhenz14/norse-mythos-card-game-sub013/service/internal/game"
)

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

func renderReplay(r *game.ReplayReport) error {
	box := pterm.DefaultBox.WithHorizontalPadding(4).WithTitle(pterm.LightYellow("|REPLAY|")).WithTitleTopCenter()
	box.Println(fmt.Sprintf("match   %s\nseed    %d\nactions %d\ndigest  %s", r.MatchID, r.Seed, r.Actions, r.FinalHash))
	if r.OK() {
		return nil
	}
	data := pterm.TableData{{"Seq", "Action", "Journaled", "Replayed", "Success"}}
	for _, m := range r.Mismatches {
		data = append(data, []string{
			strconv.Itoa(m.Seq),
			m.Action,
			short(m.WantHash),
			short(m.GotHash),
			fmt.Sprintf("%t -> %t", m.WantSuccess, m.GotSuccess),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()
}

func renderCatalog(cat *engine.Catalog) error {
	data := pterm.TableData{{"ID", "Name", "Type", "Cost", "Atk", "HP", "Class", "Keywords"}}
	for _, id := range cat.IDs() {
		d, _ := cat.Lookup(id)
		data = append(data, []string{
			strconv.Itoa(d.ID),
			d.Name,
			d.Type.String(),
			strconv.Itoa(d.ManaCost),
			strconv.Itoa(d.Attack),
			strconv.Itoa(d.Health),
			d.Class.String(),
			strings.Join(d.Keywords, ", "),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func renderSimulation(results []simResult, combat bool) error {
	pterm.DefaultSection.Println("Matches")
	data := pterm.TableData{{"Seed", "Match", "Winner", "Turns", "Actions", "Digest"}}
	for _, r := range results {
		data = append(data, []string{
			strconv.FormatUint(uint64(r.Seed), 10),
			r.Match.ID.String(),
			r.Winner,
			strconv.Itoa(r.Match.State.TurnNumber),
			strconv.Itoa(r.Match.Seq),
			short(engine.Hash(r.Match.State)),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render(); err != nil {
		return err
	}
	if !combat {
		return nil
	}

	pterm.DefaultSection.Println("Poker combat")
	var panels pterm.Panels
	for _, r := range results {
		panels = append(panels, []pterm.Panel{{Data: combatPanel(r)}})
	}
	return pterm.DefaultPanel.WithPanels(panels).Render()
}

func combatPanel(r simResult) string {
	o := r.Combat
	if o == nil {
		return "combat did not resolve"
	}
	var b strings.Builder
	for side, name := range r.Players {
		fmt.Fprintf(&b, "%-5s %s\n", name, o.Hands[side].Rank.DisplayName())
	}
	switch {
	case o.Winner == poker.SideNone:
		b.WriteString("draw, nobody is hurt")
	case o.Folded != poker.SideNone:
		fmt.Fprintf(&b, "%s folds and loses %d HP", r.Players[o.Folded], o.Damage)
	default:
		fmt.Fprintf(&b, "%s wins the showdown: %d HP lost, strike %d, pot %d",
			r.Players[o.Winner], o.Damage, o.Strike, o.Pot)
	}
	title := pterm.LightGreen(fmt.Sprintf("|SEED %d|", r.Seed))
	return pterm.DefaultBox.WithHorizontalPadding(2).WithTitle(title).WithTitleTopCenter().Sprint(b.String())
}

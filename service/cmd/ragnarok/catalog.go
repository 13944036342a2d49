package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/Dhenz14/norse-mythos-card-game-sub013/service/internal/catalog"
)

func newCatalogCmd(a *app) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "catalog [cards.json]",
		Short: "Validate a card catalog and list its cards",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.CatalogPath
			if len(args) == 1 {
				path = args[0]
			}
			cat, unused, err := catalog.LoadFile(path)
			if err != nil {
				return err
			}
			for _, f := range unused {
				pterm.Warning.Printfln("field %q is not part of a card definition and was ignored", f)
			}
			if !quiet {
				if err := renderCatalog(cat); err != nil {
					return err
				}
			}
			pterm.Success.Printfln("%d cards loaded from %s", cat.Len(), path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "validate only, do not list cards")
	return cmd
}

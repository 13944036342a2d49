package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	engine "github.com/Dhenz14/norse-mythos-card-game-sub013/engine"
)

func newHashCmd(a *app) *cobra.Command {
	var text, canonical bool
	cmd := &cobra.Command{
		Use:   "hash [state.json]",
		Short: "Print the canonical digest of a game state",
		Long: "Reads a JSON game state from the named file or stdin and prints the\n" +
			"SHA-256 digest of its canonical encoding. With --text the input is\n" +
			"hashed verbatim instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if text {
				fmt.Fprintln(out, engine.HashString(string(data)))
				return nil
			}
			var g engine.GameState
			if err := json.Unmarshal(data, &g); err != nil {
				return fmt.Errorf("decoding state: %w", err)
			}
			if canonical {
				fmt.Fprintln(out, string(engine.Canonical(&g)))
			}
			fmt.Fprintln(out, engine.Hash(&g))
			return nil
		},
	}
	cmd.Flags().BoolVar(&text, "text", false, "hash the raw input text")
	cmd.Flags().BoolVar(&canonical, "canonical", false, "also print the canonical encoding")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(args[0])
}

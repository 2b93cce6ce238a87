package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match commands",
	}

	cmd.AddCommand(newMatchCreateCmd())
	cmd.AddCommand(newMatchListCmd())
	cmd.AddCommand(newMatchGetCmd())
	cmd.AddCommand(newMatchJoinCmd())
	cmd.AddCommand(newMatchPlaceCmd())
	cmd.AddCommand(newMatchFireCmd())
	cmd.AddCommand(newMatchBoardCmd())
	cmd.AddCommand(newMatchTargetCmd())
	cmd.AddCommand(newMatchAbandonCmd())

	return cmd
}

func newMatchCreateCmd() *cobra.Command {
	var mode, difficulty string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new match",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"mode": mode}
			if difficulty != "" {
				req["difficulty"] = difficulty
			}

			var result Match

			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "solo", "Match mode: solo, pvp")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Computer difficulty for solo matches: easy, hard")

	return cmd
}

func newMatchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open matches waiting for an opponent",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchList

			if err := client.Get("/api/v1/matches/open", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get match details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			var result Match

			if err := client.Get(fmt.Sprintf("/api/v1/matches/%s", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join an open match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			var result Match

			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/join", id), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchPlaceCmd() *cobra.Command {
	var start, orientation, cells string

	cmd := &cobra.Command{
		Use:   "place <id> <ship>",
		Short: "Place a ship on your board",
		Long: `Place a ship on your board, either from a starting coordinate and an
orientation or as an explicit list of cells:

  bsgame match place a1b2c3d4 Carrier --start B3 --orientation east
  bsgame match place a1b2c3d4 Destroyer --cells A1,A2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			ship := args[1]

			req := map[string]any{"ship": ship}
			switch {
			case cells != "":
				req["cells"] = strings.Split(cells, ",")
			case start != "":
				req["start"] = start
				req["orientation"] = orientation
			default:
				return fmt.Errorf("either --cells or --start and --orientation are required")
			}

			var result PlaceResult

			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/ships", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Starting coordinate, e.g. B3")
	cmd.Flags().StringVar(&orientation, "orientation", "east", "Direction the ship runs: north, east, south, west")
	cmd.Flags().StringVar(&cells, "cells", "", "Comma-separated cell list, e.g. A1,A2")

	return cmd
}

func newMatchFireCmd() *cobra.Command {
	var auto bool

	cmd := &cobra.Command{
		Use:   "fire <id> [coord]",
		Short: "Fire a shot at the opponent's board",
		Long: `Fire a shot at a coordinate on the opponent's board, or let the server
pick a target with --auto:

  bsgame match fire a1b2c3d4 B7
  bsgame match fire a1b2c3d4 --auto`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			req := map[string]any{}
			switch {
			case len(args) == 2:
				req["coord"] = strings.ToUpper(args[1])
			case auto:
				req["auto"] = true
			default:
				return fmt.Errorf("a coordinate or --auto is required")
			}

			var result FireResult

			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/shots", id), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&auto, "auto", false, "Let the server pick the target")

	return cmd
}

func newMatchBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board <id>",
		Short: "Show your own board with ships and incoming shots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			var result FleetView

			if err := client.Get(fmt.Sprintf("/api/v1/matches/%s/board", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchTargetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "target <id>",
		Short: "Show what you know of the opponent's board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			var result TargetView

			if err := client.Get(fmt.Sprintf("/api/v1/matches/%s/target", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <id>",
		Short: "Abandon a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			var result Match

			if err := client.Delete(fmt.Sprintf("/api/v1/matches/%s", id), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

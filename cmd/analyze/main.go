// Command analyze plays seeded games for every preset in the configs
// directory and prints how the computer fares against a simple pip-dumping
// player. It is a quick way to see whether a preset is lopsided before
// shipping it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/domino-duel/game/config"
	"github.com/wricardo/domino-duel/game/engine"
)

// maxActions bounds a single simulated game. Every action either places a
// tile, draws one or passes, so real games end far below this.
const maxActions = 10000

// PresetStats aggregates the outcome of simulated games for one preset
type PresetStats struct {
	Preset     string
	Games      int
	PlayerWins int
	BotWins    int
	Draws      int
	TotalMoves int
}

// BotWinRate returns the share of games won by the computer
func (s PresetStats) BotWinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.BotWins) / float64(s.Games)
}

// AverageMoves returns the mean history length per game
func (s PresetStats) AverageMoves() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Games)
}

// choosePlayerMove picks the heaviest playable tile from the snapshot, taking
// the first legal side when the tile fits both ends.
func choosePlayerMove(s *engine.Snapshot) (int, engine.Side, bool) {
	best := -1
	for i, p := range s.PlayerPlayable {
		if best < 0 || p.Tile.Pips() > s.PlayerPlayable[best].Tile.Pips() {
			best = i
		}
	}
	if best < 0 {
		return 0, engine.SideNone, false
	}

	choice := s.PlayerPlayable[best]
	side := engine.SideNone
	if len(choice.Sides) > 1 {
		side = choice.Sides[0]
	}
	return choice.TileID, side, true
}

// playOut runs one game to completion and returns the final snapshot
func playOut(cfg *engine.GameConfig, seed int64) (*engine.Snapshot, error) {
	c := *cfg
	c.Seed = &seed

	e, err := engine.NewEngine(&c)
	if err != nil {
		return nil, err
	}

	for actions := 0; e.Phase() == engine.PhaseInProgress; actions++ {
		if actions >= maxActions {
			return nil, fmt.Errorf("seed %d: game did not finish after %d actions", seed, maxActions)
		}

		if e.BotTurnPending() {
			if _, err := e.RunBotTurn(); err != nil {
				return nil, fmt.Errorf("seed %d: bot turn: %w", seed, err)
			}
			continue
		}

		snap := e.Snapshot()
		if id, side, ok := choosePlayerMove(snap); ok {
			_, err = e.SubmitPlayerPlay(id, side)
		} else if snap.CanDraw {
			_, err = e.SubmitPlayerDraw()
		} else {
			err = e.SubmitPlayerPass()
		}
		if err != nil {
			return nil, fmt.Errorf("seed %d: player action: %w", seed, err)
		}
	}

	if err := e.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("seed %d: %w", seed, err)
	}
	return e.Snapshot(), nil
}

// simulate plays games seeded baseSeed, baseSeed+1, ... for one preset
func simulate(name string, cfg *engine.GameConfig, games int, baseSeed int64) (PresetStats, error) {
	stats := PresetStats{Preset: name}
	for i := 0; i < games; i++ {
		final, err := playOut(cfg, baseSeed+int64(i))
		if err != nil {
			return stats, err
		}

		stats.Games++
		stats.TotalMoves += final.TotalMoves
		switch final.Phase {
		case engine.PhasePlayerWon:
			stats.PlayerWins++
		case engine.PhaseBotWon:
			stats.BotWins++
		case engine.PhaseDraw:
			stats.Draws++
		}
	}
	return stats, nil
}

func writeReport(w io.Writer, all []PresetStats) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PRESET\tGAMES\tPLAYER\tBOT\tDRAW\tBOT WIN %\tAVG MOVES")
	for _, s := range all {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.1f\t%.1f\n",
			s.Preset, s.Games, s.PlayerWins, s.BotWins, s.Draws, 100*s.BotWinRate(), s.AverageMoves())
	}
	return tw.Flush()
}

func run(ctx context.Context, cmd *cli.Command) error {
	configs, err := config.NewManager(cmd.String("dir"))
	if err != nil {
		return err
	}

	infos, err := configs.ListConfigs()
	if err != nil {
		return err
	}

	games := int(cmd.Int("games"))
	var all []PresetStats
	for _, info := range infos {
		cfg, err := configs.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "⚠️  skipping %s: %v\n", info.ConfigID, err)
			continue
		}

		stats, err := simulate(info.ConfigID, cfg, games, cmd.Int64("seed"))
		if err != nil {
			return fmt.Errorf("%s: %w", info.ConfigID, err)
		}
		all = append(all, stats)
	}

	return writeReport(os.Stdout, all)
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Simulate seeded games for every rule preset",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: "configs", Usage: "Directory containing rule presets"},
			&cli.IntFlag{Name: "games", Value: 500, Usage: "Games to simulate per preset"},
			&cli.Int64Flag{Name: "seed", Value: 1, Usage: "Seed of the first game"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

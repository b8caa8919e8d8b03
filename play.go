package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/wricardo/domino-duel/game/engine"
	"github.com/wricardo/domino-duel/game/service"
)

const terminalHelp = `Commands:
  p <id> [l|r]   play tile <id>, on the left or right end
  d              draw from the boneyard
  pass           pass (boneyard empty, nothing playable)
  n              deal a new game
  h              show the last moves
  ?              show this help
  q              quit`

// terminalCommand is one parsed line of user input
type terminalCommand struct {
	name   string
	tileID int
	side   engine.Side
}

var errUnknownCommand = errors.New("unknown command, type ? for help")

func parseCommand(line string) (terminalCommand, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return terminalCommand{}, errUnknownCommand
	}

	switch fields[0] {
	case "p", "play":
		if len(fields) < 2 || len(fields) > 3 {
			return terminalCommand{}, errors.New("usage: p <id> [l|r]")
		}
		id, err := strconv.Atoi(strings.Trim(fields[1], "#"))
		if err != nil {
			return terminalCommand{}, fmt.Errorf("tile id must be a number: %q", fields[1])
		}
		cmd := terminalCommand{name: "play", tileID: id}
		if len(fields) == 3 {
			side, ok := engine.ParseSide(fields[2])
			if !ok {
				return terminalCommand{}, fmt.Errorf("side must be l or r: %q", fields[2])
			}
			cmd.side = side
		}
		return cmd, nil
	case "d", "draw":
		return terminalCommand{name: "draw"}, nil
	case "pass":
		return terminalCommand{name: "pass"}, nil
	case "n", "new":
		return terminalCommand{name: "new"}, nil
	case "h", "history":
		return terminalCommand{name: "history"}, nil
	case "?", "help":
		return terminalCommand{name: "help"}, nil
	case "q", "quit", "exit":
		return terminalCommand{name: "quit"}, nil
	}
	return terminalCommand{}, errUnknownCommand
}

// terminalGame plays one session against the computer over line based I/O
type terminalGame struct {
	svc      service.GameService
	in       *bufio.Scanner
	out      io.Writer
	botDelay time.Duration

	sessionID string
}

func newTerminalGame(svc service.GameService, in io.Reader, out io.Writer, botDelay time.Duration) *terminalGame {
	return &terminalGame{
		svc:      svc,
		in:       bufio.NewScanner(in),
		out:      out,
		botDelay: botDelay,
	}
}

// Run deals a game with the given preset and reads commands until the input
// ends or the user quits.
func (g *terminalGame) Run(ctx context.Context, preset string, opts *service.NewGameOptions) error {
	info, err := g.svc.CreateSession(ctx, preset, opts)
	if err != nil {
		return err
	}
	g.sessionID = info.ID
	defer g.svc.DeleteSession(context.Background(), g.sessionID)

	fmt.Fprintf(g.out, "Domino Duel - %s (session %s)\n", info.ConfigName, info.ID)
	fmt.Fprintln(g.out, terminalHelp)

	state := info.GameState
	if state.BotTurnPending {
		if state, err = g.botTurns(ctx, info.GameID); err != nil {
			return err
		}
	}
	g.render(state)

	for {
		fmt.Fprint(g.out, "> ")
		if !g.in.Scan() {
			fmt.Fprintln(g.out)
			return g.in.Err()
		}

		cmd, err := parseCommand(g.in.Text())
		if err != nil {
			fmt.Fprintf(g.out, "%v\n", err)
			continue
		}

		var result *service.PlayResult
		switch cmd.name {
		case "quit":
			fmt.Fprintln(g.out, "Bye!")
			return nil
		case "help":
			fmt.Fprintln(g.out, terminalHelp)
			continue
		case "history":
			g.showHistory(ctx)
			continue
		case "play":
			result, err = g.svc.PlayTile(ctx, g.sessionID, cmd.tileID, cmd.side)
		case "draw":
			result, err = g.svc.DrawTile(ctx, g.sessionID)
		case "pass":
			result, err = g.svc.Pass(ctx, g.sessionID)
		case "new":
			result, err = g.svc.NewGame(ctx, g.sessionID, nil)
		}
		if err != nil {
			fmt.Fprintf(g.out, "Can't do that: %v\n", err)
			continue
		}

		fmt.Fprintln(g.out, result.Message)
		state = result.GameState
		if result.BotTurnPending {
			if state, err = g.botTurns(ctx, result.GameID); err != nil {
				return err
			}
		}
		g.render(state)
	}
}

// botTurns lets the computer move until the turn comes back or the game ends
func (g *terminalGame) botTurns(ctx context.Context, gameID string) (*engine.Snapshot, error) {
	for {
		if g.botDelay > 0 {
			fmt.Fprintln(g.out, "Computer is thinking...")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(g.botDelay):
			}
		}

		result, err := g.svc.RunBotTurn(ctx, g.sessionID, gameID)
		if err != nil {
			return nil, fmt.Errorf("computer turn failed: %w", err)
		}
		fmt.Fprintf(g.out, "Computer: %s\n", result.Message)

		if !result.BotTurnPending {
			return result.GameState, nil
		}
	}
}

func (g *terminalGame) render(s *engine.Snapshot) {
	var b strings.Builder

	b.WriteString("\nBoard: ")
	if len(s.Board) == 0 {
		b.WriteString("(empty)")
	}
	for _, t := range s.Board {
		fmt.Fprintf(&b, "[%d|%d]", t.A, t.B)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Boneyard: %d   Computer holds: %d\n", s.DeckRemaining, s.BotHandSize)

	b.WriteString("Your hand:")
	for _, t := range s.PlayerHand {
		fmt.Fprintf(&b, " #%d[%d|%d]", t.ID, t.A, t.B)
	}
	b.WriteString("\n")

	switch s.Phase {
	case engine.PhasePlayerWon:
		b.WriteString("*** You won! Type n for a new game. ***\n")
	case engine.PhaseBotWon:
		b.WriteString("*** The computer won. Type n for a new game. ***\n")
	case engine.PhaseDraw:
		b.WriteString("*** Blocked game, it's a draw. Type n for a new game. ***\n")
	default:
		if len(s.PlayerPlayable) > 0 {
			b.WriteString("Playable:")
			for _, p := range s.PlayerPlayable {
				fmt.Fprintf(&b, " #%d", p.TileID)
				if len(p.Sides) == 1 {
					fmt.Fprintf(&b, "(%s)", p.Sides[0])
				}
			}
			b.WriteString("\n")
		} else if s.CanDraw {
			b.WriteString("Nothing fits, draw a tile (d).\n")
		} else if s.CanPass {
			b.WriteString("Nothing fits and the boneyard is empty, pass.\n")
		}
	}

	fmt.Fprint(g.out, b.String())
}

func (g *terminalGame) showHistory(ctx context.Context) {
	history, err := g.svc.GetMoveHistory(ctx, g.sessionID, service.HistoryOptions{Page: 1, Limit: 10, Order: "desc"})
	if err != nil {
		fmt.Fprintf(g.out, "Can't load history: %v\n", err)
		return
	}
	if len(history.Moves) == 0 {
		fmt.Fprintln(g.out, "No moves yet.")
		return
	}
	for _, m := range history.Moves {
		line := fmt.Sprintf("%3d. %-6s %s", m.MoveNumber, m.Actor, m.Action)
		if m.Tile != nil {
			line += fmt.Sprintf(" [%d|%d]", m.Tile.A, m.Tile.B)
		}
		if m.Side != engine.SideNone {
			line += " " + string(m.Side)
		}
		fmt.Fprintln(g.out, line)
	}
}

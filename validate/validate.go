// Command validate checks the rule preset JSON files in the configs
// directory. For every file it checks:
//   - JSON structure, rejecting unknown fields so typos are caught
//   - the rules themselves (pip range, hand size vs. set size, enum values)
//   - that a game can actually be dealt and passes the engine invariants
//
// It exits with a non-zero status if any preset is invalid.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/domino-duel/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single preset file
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config engine.GameConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "name is required")
	}

	normalized := config.Normalized()
	if err := engine.ValidateGameConfig(normalized); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, strings.TrimPrefix(err.Error(), "config validation: "))
		return result
	}

	// Deal once to make sure the rules produce a consistent game
	if result.Valid {
		dealResult := validateDeal(normalized)
		if !dealResult.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, dealResult.Errors...)
	}

	if result.Valid {
		total := engine.TileCount(normalized.MaxPip)
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", normalized.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Set: double-%d, %d tiles", normalized.MaxPip, total))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Hands: %d tiles each, boneyard %d", normalized.HandSize, total-2*normalized.HandSize))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Starts: %s, deal %s", normalized.StartingPlayer, normalized.DealOrder))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Bot: %s (%s, %s)", normalized.BotStrategy, normalized.Scoring, normalized.SidePolicy))
		if normalized.Seed != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Fixed seed: %d", *normalized.Seed))
		}
	}

	return result
}

// validateDeal deals a game from config and checks the engine invariants on
// the fresh position.
func validateDeal(config *engine.GameConfig) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	e, err := engine.NewEngine(config)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Deal failed: %v", err))
		return result
	}

	if err := e.CheckInvariants(); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Dealt game is inconsistent: %v", err))
		return result
	}

	snap := e.Snapshot()
	if len(snap.PlayerHand) != config.HandSize || snap.BotHandSize != config.HandSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Deal gave %d/%d tiles, expected %d each",
			len(snap.PlayerHand), snap.BotHandSize, config.HandSize))
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Deal: %s to move, %d in boneyard", snap.TurnOwner, snap.DeckRemaining))
	return result
}

// validateDir validates every *.json file in dir and prints a report. It
// returns false if any file is invalid.
func validateDir(dir string) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return false, fmt.Errorf("error finding config files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no presets found in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	return allValid, nil
}

func main() {
	cmd := &cli.Command{
		Name:  "validate",
		Usage: "Validate rule presets",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "../configs",
				Usage:   "Directory containing rule presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			allValid, err := validateDir(cmd.String("dir"))
			if err != nil {
				return err
			}
			if !allValid {
				return cli.Exit("❌ Some configurations have errors", 1)
			}
			fmt.Println("✅ All configurations are valid!")
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

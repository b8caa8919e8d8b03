// Package config provides rule preset management for Domino Duel.
//
// The config package handles:
//   - Loading presets from JSON files in a config directory
//   - Filling unset fields with the double-six defaults and validating
//   - Default preset selection and preset listing
//   - Saving new presets
//
// Preset Format:
//
// Each preset is an engine.GameConfig stored as <config_id>.json:
//
//	{
//	  "name": "Double Nine",
//	  "description": "Bigger set, ten tiles each",
//	  "max_pip": 9,
//	  "hand_size": 10,
//	  "starting_player": "player",
//	  "deal_order": "player_first",
//	  "bot_strategy": "greedy",
//	  "scoring": "pip_sum",
//	  "side_policy": "left_first",
//	  "opening_orientation": "as_played"
//	}
//
// An optional "seed" pins the shuffle so every deal of that preset is the
// same.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("double-nine")
//	defaultConfig := manager.GetDefault()
//	presets, err := manager.ListConfigs()
package config

// Package state persists the small bits of local client state that must
// survive between CLI invocations, most importantly the active session
// identifier so the upload side-channel can target the same conversation
// as an ongoing chat.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State is the local canvas state.
type State struct {
	ActiveSession string `yaml:"active_session,omitempty"`
}

// stateFilePath returns the path to the state file under the user config
// directory, falling back to the working directory when that is
// unavailable.
func stateFilePath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return "", fmt.Errorf("locate state directory: %w", err)
		}
		base = cwd
	}
	return filepath.Join(base, "canvas", "state.yml"), nil
}

// Load reads the state file, returning empty state when none exists.
func Load() (*State, error) {
	path, err := stateFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse state file: %w", err)
	}
	return &state, nil
}

// Save writes the state file, creating its directory if needed.
func Save(state *State) error {
	path, err := stateFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	return nil
}

// ActiveSession returns the persisted session ID, empty when none is set.
func ActiveSession() (string, error) {
	state, err := Load()
	if err != nil {
		return "", err
	}
	return state.ActiveSession, nil
}

// SetActiveSession records the session ID used by the most recent chat so
// follow-up commands can share it.
func SetActiveSession(sessionID string) error {
	state, err := Load()
	if err != nil {
		return err
	}
	state.ActiveSession = sessionID
	return Save(state)
}

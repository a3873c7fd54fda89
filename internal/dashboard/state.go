package dashboard

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"BoomDoomRadar/internal/model"
)

// State is the part of the dashboard that survives a restart.
type State struct {
	Symbol    string          `json:"symbol"`
	TimeFrame model.TimeFrame `json:"time_frame"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LoadState reads the state file. A missing file yields a zero State.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("read state: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &st, nil
}

// SaveState writes st to path, replacing the previous file atomically.
func SaveState(path string, st *State) error {
	st.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return os.Rename(tmp, path)
}

// persist saves the current selection when a state path is configured.
func (d *Dashboard) persist() {
	if d.statePath == "" {
		return
	}
	d.mu.Lock()
	st := &State{TimeFrame: d.frame}
	if d.selected {
		st.Symbol = d.coin.Symbol
	}
	d.mu.Unlock()
	if err := SaveState(d.statePath, st); err != nil {
		log.Printf("[ERROR] save dashboard state: %v", err)
	}
}

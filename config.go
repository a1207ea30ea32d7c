// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package crystal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/golang/geo/s1"
)

// Config tunes the growth process. Values are not validated; out of range
// values give odd shapes, not failures.
type Config struct {
	// Iterations is the number of steps per Tick.
	Iterations int `json:"iterations"`
	// Randomness in [0, 1] widens the spread of split points around edge midpoints.
	Randomness float64 `json:"randomness"`
	// OppositeBias in [0, 1] is the probability of cutting towards the opposite edge.
	OppositeBias float64 `json:"oppositeBias"`
	// MinAngle rejects splits producing a smaller vertex angle.
	MinAngle s1.Angle `json:"minAngle"`
	// MinSide rejects splits producing a shorter edge, in canvas units.
	MinSide float64 `json:"minSide"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:   50,
		Randomness:   0.25,
		OppositeBias: 0.1,
		MinAngle:     0.4 * s1.Radian,
		MinSide:      2,
	}
}

// ReadConfig decodes JSON from r over DefaultConfig, so absent fields keep
// their defaults.
func ReadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("crystal: parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads the config file at path. A missing file yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("crystal: load config: %w", err)
	}
	defer f.Close()

	return ReadConfig(f)
}

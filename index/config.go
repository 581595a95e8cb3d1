// Copyright (C) 2022 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package index

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Config carries the tunables of the byte-pool/int-pool arenas and the
// intern hash.
type Config struct {
	// ByteBlockSize is the size, in bytes, of one buffer in a ByteBlockPool.
	ByteBlockSize int `json:"byteBlockSize"`
	// IntBlockSize is the number of int32s in one buffer of an IntBlockPool.
	IntBlockSize int `json:"intBlockSize"`
	// HashInitSize is the initial bucket count of a BytesRefHash.
	HashInitSize int `json:"hashInitSize"`
	// LevelSizes is the ten-level geometric slice growth schedule.
	LevelSizes [10]int `json:"levelSizes"`
	// MaxBuffers caps how many buffers a single ByteBlockPool or
	// IntBlockPool may allocate before reporting ErrPoolExhausted. Zero
	// (the default) means unbounded.
	MaxBuffers int `json:"maxBuffers"`
}

// FirstLevelSize is the size, in bytes, of the first slice allocated for
// any stream.
func (c *Config) FirstLevelSize() int { return c.LevelSizes[0] }

// DefaultConfig returns the arena/hash tunables used when a caller does
// not load its own Config.
func DefaultConfig() Config {
	return Config{
		ByteBlockSize: 1 << 15, // 32768
		IntBlockSize:  1 << 13, // 8192
		HashInitSize:  4,
		LevelSizes:    [10]int{5, 14, 20, 30, 40, 40, 80, 80, 120, 200},
	}
}

// LoadConfig reads a yaml-encoded Config from path. A field the file does
// not set keeps its DefaultConfig value; a field the file sets explicitly
// (even to zero) takes the file's value.
func LoadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("index: reading config %q: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("index: parsing config %q: %w", path, err)
	}
	if cfg.ByteBlockSize <= 0 || cfg.IntBlockSize <= 0 {
		return nil, fmt.Errorf("index: config %q: block sizes must be positive", path)
	}
	return &cfg, nil
}

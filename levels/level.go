// Package levels loads the embedded demo maps.
package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/collision"
	"github.com/milk9111/platformer/fix"
)

const Default = "demo.json"

var (
	ErrDimensions = errors.New("levels: invalid dimensions")
	ErrLayerSize  = errors.New("levels: layer size does not match dimensions")
	ErrTileSize   = errors.New("levels: unsupported tile size")
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a tile map stored as JSON. Each layer is a flat row-major array
// of Width*Height tile ids; 0 is empty.
type Level struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  int         `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
}

type LayerMeta struct {
	HasPhysics bool   `json:"has_physics"`
	Color      string `json:"color"`
}

// Load reads a level by name. A path that exists on disk wins over the
// embedded copy.
func Load(name string) (*Level, error) {
	if data, err := os.ReadFile(name); err == nil {
		return Parse(data)
	}
	clean := strings.TrimPrefix(filepath.ToSlash(name), "levels/")
	data, err := fs.ReadFile(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return lvl, nil
}

// Names lists the embedded levels.
func Names() []string {
	matches, err := fs.Glob(LevelsFS, "*.json")
	if err != nil {
		return nil
	}
	sort.Strings(matches)
	return matches
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, lvl.Width, lvl.Height)
	}
	if lvl.TileSize == 0 {
		lvl.TileSize = collision.TileSize
	}
	if lvl.TileSize != collision.TileSize {
		return nil, fmt.Errorf("%w: %d", ErrTileSize, lvl.TileSize)
	}
	if w, h := lvl.Width*lvl.TileSize, lvl.Height*lvl.TileSize; w > fix.MaxInt || h > fix.MaxInt {
		return nil, fmt.Errorf("levels: %w: %dx%d px", camera.ErrMapTooLarge, w, h)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("%w: layer %d has %d tiles", ErrLayerSize, i, len(layer))
		}
	}
	for len(lvl.LayerMeta) < len(lvl.Layers) {
		lvl.LayerMeta = append(lvl.LayerMeta, LayerMeta{Color: "#3c78ff"})
	}
	return &lvl, nil
}

func (l *Level) Map() *camera.Map {
	return &camera.Map{WidthTiles: l.Width, HeightTiles: l.Height, TileSize: l.TileSize}
}

// CollisionTable flattens every physics layer into one solidity byte per
// tile.
func (l *Level) CollisionTable() []byte {
	table := make([]byte, l.Width*l.Height)
	for i, layer := range l.Layers {
		if !l.LayerMeta[i].HasPhysics {
			continue
		}
		for j, id := range layer {
			if id != 0 {
				table[j] = 1
			}
		}
	}
	return table
}

// Collision builds the query named by kind: "none", "table" or "shapes".
func (l *Level) Collision(kind string) (collision.Query, error) {
	switch kind {
	case "", "none":
		return collision.NoCollision{}, nil
	case "table", "shapes":
		table, err := collision.NewTable(l.CollisionTable(), l.Width)
		if err != nil {
			return nil, fmt.Errorf("levels: collision: %w", err)
		}
		if kind == "table" {
			return table, nil
		}
		return collision.NewShapes(table), nil
	}
	return nil, fmt.Errorf("levels: unknown collision kind %q", kind)
}

// Tile returns the tile id on layer at (tx, ty), or 0 outside the map.
func (l *Level) Tile(layer, tx, ty int) int {
	if layer < 0 || layer >= len(l.Layers) || tx < 0 || ty < 0 || tx >= l.Width || ty >= l.Height {
		return 0
	}
	return l.Layers[layer][ty*l.Width+tx]
}

package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level places prefabs in world space. Positions are body centers.
type Level struct {
	Name     string   `json:"name"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Entities []Entity `json:"entities"`
}

// Entity is one prefab placement. W and H, when set, resize the prefab's body
// and sprite.
type Entity struct {
	Prefab string  `json:"prefab"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w,omitempty"`
	H      float64 `json:"h,omitempty"`
}

// LoadLevelFromFS reads a level by base name; the .json suffix is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	return LoadLevel(LevelsFS, name)
}

func LoadLevel(fsys fs.FS, name string) (*Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	for i, e := range l.Entities {
		if strings.TrimSpace(e.Prefab) == "" {
			return fmt.Errorf("%w: entity %d has no prefab", ErrInvalidLevel, i)
		}
		if e.W < 0 || e.H < 0 {
			return fmt.Errorf("%w: entity %d (%s) has negative size", ErrInvalidLevel, i, e.Prefab)
		}
	}
	return nil
}

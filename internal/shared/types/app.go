package types

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DimensionMode selects how a default window dimension is resolved.
type DimensionMode int

const (
	DimensionUnset DimensionMode = iota
	DimensionPixels
	DimensionHalf
	DimensionMax
)

// Dimension is a default window width or height.
type Dimension struct {
	Mode   DimensionMode
	Pixels int
}

var (
	// Half resolves to half of the available layout size.
	Half = Dimension{Mode: DimensionHalf}
	// Max resolves to the full available layout size.
	Max = Dimension{Mode: DimensionMax}
)

// Pixels returns a fixed pixel dimension.
func Pixels(n int) Dimension {
	return Dimension{Mode: DimensionPixels, Pixels: n}
}

// ParseDimension converts a decoded manifest or request value into a Dimension.
// Accepts nil, numbers, numeric strings, "half" and "max".
func ParseDimension(v interface{}) (Dimension, error) {
	switch val := v.(type) {
	case nil:
		return Dimension{}, nil
	case Dimension:
		return val, nil
	case int:
		return pixelsFrom(int64(val))
	case int64:
		return pixelsFrom(val)
	case uint64:
		if val > math.MaxInt32 {
			return Dimension{}, fmt.Errorf("dimension %d out of range", val)
		}
		return pixelsFrom(int64(val))
	case float64:
		if val != math.Trunc(val) {
			return Dimension{}, fmt.Errorf("dimension %v must be a whole number", val)
		}
		return pixelsFrom(int64(val))
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return Dimension{}, fmt.Errorf("invalid dimension %q: %w", val.String(), err)
		}
		return pixelsFrom(n)
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "":
			return Dimension{}, nil
		case "half":
			return Half, nil
		case "max":
			return Max, nil
		}
		n, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64)
		if err != nil {
			return Dimension{}, fmt.Errorf("invalid dimension %q", val)
		}
		return pixelsFrom(n)
	default:
		return Dimension{}, fmt.Errorf("unsupported dimension type %T", v)
	}
}

func pixelsFrom(n int64) (Dimension, error) {
	if n <= 0 || n > math.MaxInt32 {
		return Dimension{}, fmt.Errorf("dimension %d out of range", n)
	}
	return Pixels(int(n)), nil
}

// IsSet reports whether the dimension carries a value.
func (d Dimension) IsSet() bool {
	return d.Mode != DimensionUnset
}

// Resolve returns the pixel size for the given layout maximum, using
// fallback when the dimension is unset.
func (d Dimension) Resolve(max, fallback int) int {
	switch d.Mode {
	case DimensionPixels:
		return d.Pixels
	case DimensionHalf:
		return max / 2
	case DimensionMax:
		return max
	default:
		return fallback
	}
}

// String returns the manifest spelling of the dimension.
func (d Dimension) String() string {
	switch d.Mode {
	case DimensionPixels:
		return strconv.Itoa(d.Pixels)
	case DimensionHalf:
		return "half"
	case DimensionMax:
		return "max"
	default:
		return ""
	}
}

// MarshalJSON encodes the dimension as a number, a keyword, or null.
func (d Dimension) MarshalJSON() ([]byte, error) {
	switch d.Mode {
	case DimensionPixels:
		return []byte(strconv.Itoa(d.Pixels)), nil
	case DimensionHalf, DimensionMax:
		return []byte(strconv.Quote(d.String())), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts the same spellings as ParseDimension.
func (d *Dimension) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDimension(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// WindowInfo identifies the window a lifecycle hook fires for.
type WindowInfo struct {
	ID        int    `json:"id"`
	PackageID string `json:"package_id"`
}

// CloseHook runs once for every window of an app that closes.
type CloseHook func(WindowInfo)

// AppDescriptor is the static registration record of a launchable app.
// It is never mutated after registration.
type AppDescriptor struct {
	PackageID        string                 `json:"package_id"`
	Name             string                 `json:"name"`
	Icon             string                 `json:"icon"`
	DefaultWidth     Dimension              `json:"default_width"`
	DefaultHeight    Dimension              `json:"default_height"`
	DefaultMaximized bool                   `json:"default_maximized"`
	HiddenInDesktop  bool                   `json:"hidden_in_desktop"`
	Props            map[string]interface{} `json:"props,omitempty"`

	OnClose CloseHook `json:"-"`
}

// ToLauncherEntry extracts the launcher projection of a descriptor.
func (d *AppDescriptor) ToLauncherEntry() LauncherEntry {
	return LauncherEntry{
		PackageID: d.PackageID,
		Name:      d.Name,
		Icon:      d.Icon,
	}
}

// LauncherEntry is the lightweight app projection shown on the desktop.
type LauncherEntry struct {
	PackageID string `json:"package_id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
}

// RegistryStats contains registry statistics
type RegistryStats struct {
	TotalApps  int `json:"total_apps"`
	HiddenApps int `json:"hidden_apps"`
}

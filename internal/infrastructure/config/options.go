package config

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/webdesk/internal/shared/codec"
)

// Options is the free-form installation bag handed to renderers
// (wallpaper, windowBar, leftPanel and so on). The desktop never reads it.
type Options map[string]interface{}

// LoadOptions reads an options file. The format follows the extension.
// An empty path yields an empty bag.
func LoadOptions(path string) (Options, error) {
	opts := Options{}
	if path == "" {
		return opts, nil
	}

	if !codec.Supported(path) {
		return nil, fmt.Errorf("unsupported options format: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	if err := codec.Decode(path, data, &opts); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = Options{}
	}
	return opts, nil
}

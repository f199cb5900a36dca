package registry

import (
	"fmt"

	"github.com/GriffinCanCode/webdesk/internal/shared/types"
	"github.com/GriffinCanCode/webdesk/internal/shared/utils"
)

// Manifest is the on-disk (or HTTP) description of an app. Dimensions
// accept a pixel number, "half" or "max".
type Manifest struct {
	PackageID        string                 `json:"package_id" yaml:"package_id" toml:"package_id"`
	Name             string                 `json:"name" yaml:"name" toml:"name"`
	Icon             string                 `json:"icon" yaml:"icon" toml:"icon"`
	DefaultWidth     interface{}            `json:"default_width" yaml:"default_width" toml:"default_width"`
	DefaultHeight    interface{}            `json:"default_height" yaml:"default_height" toml:"default_height"`
	DefaultMaximized bool                   `json:"default_maximized" yaml:"default_maximized" toml:"default_maximized"`
	HiddenInDesktop  bool                   `json:"hidden_in_desktop" yaml:"hidden_in_desktop" toml:"hidden_in_desktop"`
	Props            map[string]interface{} `json:"props" yaml:"props" toml:"props"`
	OnClose          string                 `json:"on_close" yaml:"on_close" toml:"on_close"`
}

// ManifestFromRequest converts an HTTP registration request
func ManifestFromRequest(req types.RegisterAppRequest) Manifest {
	return Manifest{
		PackageID:        req.PackageID,
		Name:             req.Name,
		Icon:             req.Icon,
		DefaultWidth:     req.DefaultWidth,
		DefaultHeight:    req.DefaultHeight,
		DefaultMaximized: req.DefaultMaximized,
		HiddenInDesktop:  req.HiddenInDesktop,
		Props:            req.Props,
		OnClose:          req.OnCloseScript,
	}
}

// Request converts the manifest into an HTTP registration request
func (m Manifest) Request() types.RegisterAppRequest {
	return types.RegisterAppRequest{
		PackageID:        m.PackageID,
		Name:             m.Name,
		Icon:             m.Icon,
		DefaultWidth:     m.DefaultWidth,
		DefaultHeight:    m.DefaultHeight,
		DefaultMaximized: m.DefaultMaximized,
		HiddenInDesktop:  m.HiddenInDesktop,
		Props:            m.Props,
		OnCloseScript:    m.OnClose,
	}
}

// Descriptor builds the app descriptor. An on_close script needs hooks.
func (m Manifest) Descriptor(hooks HookFactory) (types.AppDescriptor, error) {
	width, err := types.ParseDimension(m.DefaultWidth)
	if err != nil {
		return types.AppDescriptor{}, fmt.Errorf("default_width: %w", err)
	}
	height, err := types.ParseDimension(m.DefaultHeight)
	if err != nil {
		return types.AppDescriptor{}, fmt.Errorf("default_height: %w", err)
	}

	desc := types.AppDescriptor{
		PackageID:        m.PackageID,
		Name:             m.Name,
		Icon:             m.Icon,
		DefaultWidth:     width,
		DefaultHeight:    height,
		DefaultMaximized: m.DefaultMaximized,
		HiddenInDesktop:  m.HiddenInDesktop,
		Props:            m.Props,
	}

	if m.OnClose != "" {
		if err := utils.ValidateScript(m.OnClose); err != nil {
			return types.AppDescriptor{}, err
		}
		if hooks == nil {
			return types.AppDescriptor{}, fmt.Errorf("on_close: scripted hooks are disabled")
		}
		hook, err := hooks.CloseHook(m.PackageID, m.OnClose)
		if err != nil {
			return types.AppDescriptor{}, fmt.Errorf("on_close: %w", err)
		}
		desc.OnClose = hook
	}

	return desc, nil
}

package registry

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/GriffinCanCode/webdesk/internal/shared/codec"
	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// ManifestPattern matches app manifests anywhere below the apps directory
const ManifestPattern = "**/*.{yaml,yml,toml,json}"

// SeedResult counts the outcome of a seeding run
type SeedResult struct {
	Loaded int `json:"loaded"`
	Failed int `json:"failed"`
}

// Seeder handles loading app manifests from disk
type Seeder struct {
	registry *Registry
	appsDir  string
	fsys     fs.FS
	logger   *zap.Logger
}

// NewSeeder creates a new app seeder
func NewSeeder(registry *Registry, appsDir string) *Seeder {
	return &Seeder{
		registry: registry,
		appsDir:  appsDir,
		fsys:     os.DirFS(appsDir),
		logger:   zap.NewNop(),
	}
}

// WithFS reads manifests from fsys instead of the apps directory
func (s *Seeder) WithFS(fsys fs.FS) *Seeder {
	s.fsys = fsys
	return s
}

// WithLogger adds logging to the seeder
func (s *Seeder) WithLogger(logger *zap.Logger) *Seeder {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// SeedApps registers every manifest found. A missing apps directory is
// not an error; a broken manifest is counted and skipped.
func (s *Seeder) SeedApps() (SeedResult, error) {
	var result SeedResult

	if _, err := fs.Stat(s.fsys, "."); err != nil {
		s.logger.Warn("apps directory not found", zap.String("dir", s.appsDir))
		return result, nil
	}

	matches, err := doublestar.Glob(s.fsys, ManifestPattern)
	if err != nil {
		return result, fmt.Errorf("failed to scan %s: %w", s.appsDir, err)
	}
	sort.Strings(matches)

	for _, name := range matches {
		if err := s.loadManifest(name); err != nil {
			s.logger.Warn("failed to load manifest", zap.String("file", name), zap.Error(err))
			result.Failed++
			continue
		}
		s.logger.Debug("manifest loaded", zap.String("file", name))
		result.Loaded++
	}

	s.logger.Info("seeding complete",
		zap.String("dir", s.appsDir),
		zap.Int("loaded", result.Loaded),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// loadManifest decodes and registers one manifest file
func (s *Seeder) loadManifest(name string) error {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return err
	}

	var m Manifest
	if err := codec.Decode(name, data, &m); err != nil {
		return err
	}

	m.Icon = ResolveIcon(s.fsys, path.Dir(name), m.Icon)
	return s.registry.RegisterManifest(m)
}

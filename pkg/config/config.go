// Package config loads the saveward games manifest.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"saveward/pkg/utils/fileutils"
	"saveward/pkg/version"
)

const (
	dirName      = "saveward"
	manifestFile = "saveward.toml"
	storeDir     = "store"
	envStoreDir  = "SAVEWARD_STORE_DIR"
	envManifest  = "SAVEWARD_MANIFEST"
)

type Config struct {
	Saveward Saveward `toml:"saveward"` // application metadata
	Store    Store    `toml:"store"`
	Cloud    Cloud    `toml:"cloud"`
	Games    []Game   `toml:"games"`
}

type Saveward struct {
	Version string `toml:"version"`
}

type Store struct {
	Path string `toml:"path"` // backup store root; empty means the default location
}

type Cloud struct {
	Path string `toml:"path"` // remote directory mirrored by cloud sync; empty disables it
}

type Game struct {
	Name      string     `toml:"name"`
	Paths     []string   `toml:"paths"`
	Redirects []Redirect `toml:"redirects"`
}

// Redirect remaps a save path prefix between the game's real location
// and its backup location.
type Redirect struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
}

// DefaultManifestPath resolves the manifest location, honoring the
// SAVEWARD_MANIFEST override.
func DefaultManifestPath() (string, error) {
	if custom := strings.TrimSpace(os.Getenv(envManifest)); custom != "" {
		return fileutils.AbsPath(custom)
	}

	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}
	return filepath.Join(cfgDir, dirName, manifestFile), nil
}

// Load decodes and validates a manifest. An empty path means the
// default location.
func Load(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		resolved, err := DefaultManifestPath()
		if err != nil {
			return Config{}, err
		}
		path = resolved
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := version.EnsureCompatible(c.Saveward.Version); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(c.Games))
	for _, g := range c.Games {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			return fmt.Errorf("game with empty name")
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("duplicate game name %q", name)
		}
		seen[name] = struct{}{}

		if len(g.Paths) == 0 {
			return fmt.Errorf("game %q has no save paths", name)
		}
		for _, p := range g.Paths {
			if strings.TrimSpace(p) == "" {
				return fmt.Errorf("game %q has an empty save path", name)
			}
		}
	}
	return nil
}

// StorePath resolves the backup store root, honoring the
// SAVEWARD_STORE_DIR override.
func (c Config) StorePath() (string, error) {
	if custom := strings.TrimSpace(os.Getenv(envStoreDir)); custom != "" {
		return fileutils.AbsPath(custom)
	}
	if strings.TrimSpace(c.Store.Path) != "" {
		return fileutils.AbsPath(c.Store.Path)
	}

	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config directory: %w", err)
	}
	return filepath.Join(cfgDir, dirName, storeDir), nil
}

// FindGame looks a game up by exact name.
func (c Config) FindGame(name string) (Game, bool) {
	for _, g := range c.Games {
		if g.Name == name {
			return g, true
		}
	}
	return Game{}, false
}

// FindTitles returns the names of games matching the query as a
// case-insensitive substring, in lexical order. An empty query matches
// every game.
func (c Config) FindTitles(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))

	var names []string
	for _, g := range c.Games {
		if query == "" || strings.Contains(strings.ToLower(g.Name), query) {
			names = append(names, g.Name)
		}
	}
	sort.Strings(names)
	return names
}

// RedirectFor returns the path's alternate location, or "" when no
// redirect applies. The first matching redirect wins.
func (g Game) RedirectFor(path string) string {
	for _, r := range g.Redirects {
		source, err := fileutils.AbsPath(r.Source)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(source, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}

		target, err := fileutils.AbsPath(r.Target)
		if err != nil {
			continue
		}
		if rel == "." {
			return target
		}
		return filepath.Join(target, rel)
	}
	return ""
}

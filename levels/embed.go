package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

//go:embed *.yaml
var LevelsFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

var ErrNotFound = errors.New("levels: not found")

// Store loads levels and starter scripts, preferring files under Dir on disk
// over the embedded copies so levels can be edited while the game runs.
type Store struct {
	Dir string
}

// DefaultStore reads overrides from ./levels.
var DefaultStore = &Store{Dir: "levels"}

// Load reads and parses the level called name (".yaml" optional).
func (s *Store) Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := s.read(LevelsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: load %s: %w", clean, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parse %s: %w", clean, err)
	}
	lvl.Name = strings.TrimSuffix(clean, path.Ext(clean))
	return lvl, nil
}

// LoadScript reads a starter program from scripts/.
func (s *Store) LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	data, err := s.read(ScriptsFS, clean)
	if err != nil {
		return nil, fmt.Errorf("levels: load script %s: %w", clean, err)
	}
	return data, nil
}

// List returns the names of every available level, embedded or on disk, sorted.
func (s *Store) List() ([]string, error) {
	seen := map[string]struct{}{}
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: list embedded: %w", err)
	}
	for _, e := range entries {
		if isLevelFile(e.Name()) {
			seen[strings.TrimSuffix(e.Name(), path.Ext(e.Name()))] = struct{}{}
		}
	}
	if s != nil && s.Dir != "" {
		if disk, err := os.ReadDir(s.Dir); err == nil {
			for _, e := range disk {
				if !e.IsDir() && isLevelFile(e.Name()) {
					seen[strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))] = struct{}{}
				}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// ModTime reports the modification time of the on-disk override of name.
func (s *Store) ModTime(name string) (time.Time, bool) {
	if s == nil || s.Dir == "" {
		return time.Time{}, false
	}
	info, err := os.Stat(s.diskPath(cleanLevelPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func (s *Store) read(embedded embed.FS, clean string) ([]byte, error) {
	if s != nil && s.Dir != "" {
		if data, err := os.ReadFile(s.diskPath(clean)); err == nil {
			return data, nil
		}
	}
	data, err := embedded.ReadFile(clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *Store) diskPath(clean string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(clean))
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(strings.TrimSpace(name))
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if !isLevelFile(s) {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(name string) string {
	s := filepath.ToSlash(strings.TrimSpace(name))
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	if !isScriptFile(s) {
		s += ".tengo"
	}
	return "scripts/" + s
}

func isLevelFile(p string) bool {
	ext := strings.ToLower(path.Ext(p))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(p string) bool {
	return strings.ToLower(path.Ext(p)) == ".tengo"
}

package levels

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/hexpath/maze"
)

func TestEmbeddedLevelsParse(t *testing.T) {
	store := &Store{}
	names, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) < 4 {
		t.Fatalf("expected the shipped levels, got %v", names)
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			lvl, err := store.Load(name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if lvl.Name != name {
				t.Fatalf("expected name %q, got %q", name, lvl.Name)
			}
			if lvl.Maze() == nil {
				t.Fatalf("expected a parsed maze")
			}
			if lvl.Starter != "" {
				if _, err := store.LoadScript(lvl.Starter); err != nil {
					t.Fatalf("LoadScript(%q): %v", lvl.Starter, err)
				}
			}
		})
	}
}

func TestLoadHeadlessLevel(t *testing.T) {
	lvl, err := (&Store{}).Load("04_briefing.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lvl.UsesViewport() {
		t.Fatalf("expected briefing level to hide the viewport")
	}
	if lvl.DisplayTitle() != "Briefing" {
		t.Fatalf("unexpected title %q", lvl.DisplayTitle())
	}
}

func TestParseDefaultsAndErrors(t *testing.T) {
	lvl, err := Parse([]byte("map: [\"S.G\"]\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !lvl.Toolbox.Has(CmdMove) || lvl.Toolbox.Has(CmdAtGoal) {
		t.Fatalf("unexpected default toolbox %v", lvl.Toolbox)
	}
	if lvl.Maze().Facing() != maze.East {
		t.Fatalf("expected default east facing")
	}

	cases := []struct {
		name string
		doc  string
	}{
		{"bad_yaml", "map: [\n"},
		{"no_goal", "map: [\"S..\"]\n"},
		{"bad_facing", "facing: up\nmap: [\"S.G\"]\n"},
		{"unknown_command", "toolbox: [jump]\nmap: [\"S.G\"]\n"},
		{"negative_steps", "max_steps: -1\nmap: [\"S.G\"]\n"},
		{"unknown_key", "headless: true\nmap: [\"S.G\"]\n"},
		{"misspelled_key", "veiwport: false\nmap: [\"S.G\"]\n"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.doc)); !errors.Is(err, ErrInvalidLevel) {
				t.Fatalf("expected ErrInvalidLevel, got %v", err)
			}
		})
	}
}

func TestParseViewportKey(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want bool
	}{
		{"default", "title: x\nmap: [\"S.G\"]\n", true},
		{"shown", "title: x\nviewport: true\nmap: [\"S.G\"]\n", true},
		{"hidden", "title: x\nviewport: false\nmap: [\"S.G\"]\n", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lvl, err := Parse([]byte(tc.doc))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := lvl.UsesViewport(); got != tc.want {
				t.Fatalf("expected UsesViewport()=%v, got %v", tc.want, got)
			}
		})
	}
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	doc := "title: Edited\nmap: [\"SG\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "02_corners.yaml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "99_custom.yml"), []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store := &Store{Dir: dir}

	lvl, err := store.Load("levels/02_corners")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if lvl.Title != "Edited" {
		t.Fatalf("expected disk copy, got title %q", lvl.Title)
	}
	if _, ok := store.ModTime("02_corners"); !ok {
		t.Fatalf("expected a mod time for the override")
	}
	if _, ok := store.ModTime("01_first_steps"); ok {
		t.Fatalf("expected no mod time for an embedded-only level")
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if names[len(names)-1] != "99_custom" {
		t.Fatalf("expected disk-only level in list, got %v", names)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := (&Store{Dir: t.TempDir()}).Load("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	_, err = (&Store{}).LoadScript("nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for script, got %v", err)
	}
}

func TestPathCleaning(t *testing.T) {
	if got := cleanLevelPath(" levels/02_corners "); got != "02_corners.yaml" {
		t.Fatalf("unexpected level path %q", got)
	}
	if got := cleanScriptPath("levels/scripts/x.tengo"); got != "scripts/x.tengo" {
		t.Fatalf("unexpected script path %q", got)
	}
	if got := LevelName("/tmp/levels/03_walls.yaml"); got != "03_walls" {
		t.Fatalf("unexpected level name %q", got)
	}
	if got := LevelName("/tmp/levels/scripts/a.tengo"); got != "" {
		t.Fatalf("expected scripts to map to no level, got %q", got)
	}
}

func TestWatcherReportsLevelWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "05_new.yaml"), []byte("map: [\"SG\"]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case name := <-w.Events:
		if !strings.HasSuffix(name, "05_new.yaml") {
			t.Fatalf("expected the level file, got %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
}

func TestWatcherWaitsForLastWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	file := filepath.Join(dir, "06_saved.yaml")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if err := os.WriteFile(file, []byte("map: [\"SG\"]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	lastWrite := time.Now()

	select {
	case name := <-w.Events:
		if name != file {
			t.Fatalf("expected %q, got %q", file, name)
		}
		if since := time.Since(lastWrite); since < debounce/2 {
			t.Fatalf("event arrived %v after the last write, expected the debounce to wait", since)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}

	select {
	case name := <-w.Events:
		t.Fatalf("expected one event for both writes, got another for %q", name)
	case <-time.After(3 * debounce):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir: "/home/user/.local/share/coursecal",
		LogDir:  "/home/user/.local/share/coursecal/log",
		Origin:  "https://schedule.example.edu",
		Catalog: CatalogConfig{Type: "file", Path: "/data/master_courses.json"},
		Store:   StoreConfig{Type: "json", Path: "/data/calendars.json"},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.BaseDir != original.BaseDir {
		t.Errorf("BaseDir = %q, want %q", got.BaseDir, original.BaseDir)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Origin != original.Origin {
		t.Errorf("Origin = %q, want %q", got.Origin, original.Origin)
	}
	if got.Catalog.Type != "file" {
		t.Errorf("Catalog.Type = %q, want %q", got.Catalog.Type, "file")
	}
	if got.Catalog.Path != "/data/master_courses.json" {
		t.Errorf("Catalog.Path = %q, want %q", got.Catalog.Path, "/data/master_courses.json")
	}
	if got.Store.Type != "json" {
		t.Errorf("Store.Type = %q, want %q", got.Store.Type, "json")
	}
	if got.Store.Path != "/data/calendars.json" {
		t.Errorf("Store.Path = %q, want %q", got.Store.Path, "/data/calendars.json")
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/coursecal")

	if cfg.BaseDir != "/data/coursecal" {
		t.Errorf("BaseDir = %q, want %q", cfg.BaseDir, "/data/coursecal")
	}
	if cfg.LogDir != "/data/coursecal/log" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/data/coursecal/log")
	}
	if cfg.Origin != DefaultOrigin {
		t.Errorf("Origin = %q, want %q", cfg.Origin, DefaultOrigin)
	}
	if cfg.Catalog.Type != "file" {
		t.Errorf("Catalog.Type = %q, want %q", cfg.Catalog.Type, "file")
	}
	if cfg.Catalog.Path != "/data/coursecal/master_courses.json" {
		t.Errorf("Catalog.Path = %q, want %q", cfg.Catalog.Path, "/data/coursecal/master_courses.json")
	}
	if cfg.Store.Path != "/data/coursecal/calendars.json" {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, "/data/coursecal/calendars.json")
	}
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "coursecal.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "coursecal.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		err := Init(path, cfg)
		if err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile(t *testing.T) {
	t.Run("reads valid config", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "coursecal.toml")
		cfg := NewConfig(dir)
		cfg.Store = StoreConfig{Type: "memory"}

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.Store.Type != "memory" {
			t.Errorf("Store.Type = %q, want %q", got.Store.Type, "memory")
		}
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		_, err := ReadFromFile("/nonexistent/path/coursecal.toml")
		if err == nil {
			t.Fatal("ReadFromFile() expected error for missing file")
		}
	})
}

package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestReadManifest(t *testing.T) {
	path := writeManifest(t, "run_id,file,wind_speed,wind_dir\ncase-001,runs/001.csv,3,90\ncase-002,runs/002.csv,5,270\n")

	entries, err := readManifest(path)
	if err != nil {
		t.Fatalf("readManifest: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].RunID != "case-001" || entries[0].File != "runs/001.csv" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[0].WindSpeed != 3 || entries[0].WindDir != 90 {
		t.Errorf("unexpected first condition: %+v", entries[0])
	}
	if entries[1].WindDir != 270 {
		t.Errorf("unexpected second direction: %g", entries[1].WindDir)
	}
}

func TestReadManifestColumnOrderIndependent(t *testing.T) {
	path := writeManifest(t, "wind_dir,run_id,wind_speed,file\n90,case-001,3,a.csv\n")

	entries, err := readManifest(path)
	if err != nil {
		t.Fatalf("readManifest: %v", err)
	}
	if entries[0].RunID != "case-001" || entries[0].File != "a.csv" || entries[0].WindDir != 90 {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

func TestReadManifestErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing column", "run_id,file,wind_speed\na,b,1\n"},
		{"no data rows", "run_id,file,wind_speed,wind_dir\n"},
		{"bad speed", "run_id,file,wind_speed,wind_dir\na,b,fast,90\n"},
		{"bad direction", "run_id,file,wind_speed,wind_dir\na,b,3,north\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, tc.content)
			if _, err := readManifest(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

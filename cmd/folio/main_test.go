package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("folio %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func tempConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "folio.yml")
}

func TestVersion(t *testing.T) {
	if got := run(t, "version"); got != "folio dev\n" {
		t.Errorf("version: %q", got)
	}
}

func TestMailto(t *testing.T) {
	got := run(t, "mailto", "--config", tempConfig(t),
		"--name", "Jo Ann", "--email", "jo@example.com", "--message", "Hi!")

	want := "mailto:ambatimokeshreddy@gmail.com?subject=Portfolio%20message%20from%20Jo%20Ann&body="
	if !strings.HasPrefix(got, want) {
		t.Errorf("mailto: %q", got)
	}
	if !strings.Contains(got, "Hi!") {
		t.Errorf("message not carried: %q", got)
	}
}

func TestProjects(t *testing.T) {
	got := run(t, "projects", "--config", tempConfig(t))

	for _, want := range []string{"ID", "CATEGORY", "travel-eazy", "img-features"} {
		if !strings.Contains(got, want) {
			t.Errorf("projects output missing %q:\n%s", want, got)
		}
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := tempConfig(t)

	if got := run(t, "config", "init", "--config", path); !strings.Contains(got, "wrote") {
		t.Errorf("init: %q", got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	got := run(t, "config", "show", "--config", path)
	for _, want := range []string{"recipient: ambatimokeshreddy@gmail.com", "driver: memory"} {
		if !strings.Contains(got, want) {
			t.Errorf("show missing %q:\n%s", want, got)
		}
	}

	rootCmd.SetArgs([]string{"config", "init", "--config", path})
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err == nil {
		t.Error("init should refuse to overwrite an existing file")
	}
}

func TestFlags_Empty(t *testing.T) {
	got := run(t, "flags", "--config", tempConfig(t))
	if strings.TrimSpace(got) != "VISITOR  THEME  UPDATED" {
		t.Errorf("flags: %q", got)
	}
}

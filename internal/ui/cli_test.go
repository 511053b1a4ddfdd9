package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/javiermolinar/calgrid/internal/config"
)

type testApp struct {
	cfg    *config.Config
	copied []string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	prevNoColor, prevProfile := color.NoColor, lipgloss.ColorProfile()
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = prevNoColor
		lipgloss.SetColorProfile(prevProfile)
	})

	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "calgrid.db")
	return &testApp{cfg: cfg}
}

// run executes args on a fresh App, since cobra keeps flag values between
// executions, and returns stdout.
func (ta *testApp) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := NewApp(nil, ta.cfg)
	a.now = func() time.Time { return time.Date(2025, 1, 8, 10, 0, 0, 0, time.Local) }
	a.copy = func(s string) error {
		ta.copied = append(ta.copied, s)
		return nil
	}
	defer func() { _ = a.Close() }()

	var out, errOut bytes.Buffer
	a.root.SetArgs(args)
	a.root.SetOut(&out)
	a.root.SetErr(&errOut)
	err := a.root.Execute()
	return out.String(), err
}

func (ta *testApp) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := ta.run(t, args...)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestVersion(t *testing.T) {
	ta := newTestApp(t)
	if got := ta.mustRun(t, "version"); got != "calgrid dev (commit: none)\n" {
		t.Errorf("got %q", got)
	}
}

func TestAddListDelete(t *testing.T) {
	ta := newTestApp(t)

	out := ta.mustRun(t, "add", "Standup", "--date=2025-01-08", "--start=09:00", "--end=09:15")
	if !strings.HasPrefix(out, "Created event #1: Standup 2025-01-08 09:00-09:15") {
		t.Errorf("got %q", out)
	}
	ta.mustRun(t, "add", "Offsite", "--date=2025-01-09", "--all-day", "--days=2", "--location=Lisbon")

	t.Run("timed events need times", func(t *testing.T) {
		if _, err := ta.run(t, "add", "Broken", "--date=2025-01-08", "--start=09:00"); err == nil {
			t.Error("expected error without --end")
		}
	})

	out = ta.mustRun(t, "list", "--start=2025-01-06", "--end=2025-01-12")
	for _, want := range []string{
		"=== Wed 2025-01-08 ===",
		"#1    09:00-09:15  Standup  15m",
		"=== Thu 2025-01-09 ===",
		"all day, 2 days  Offsite @ Lisbon",
		"2 events",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}

	t.Run("events started earlier are listed under the first day", func(t *testing.T) {
		out := ta.mustRun(t, "list", "--start=2025-01-10")
		if !strings.Contains(out, "=== Fri 2025-01-10 ===") || !strings.Contains(out, "Offsite") {
			t.Errorf("got:\n%s", out)
		}
	})

	if _, err := ta.run(t, "list", "--start=2025-01-10", "--end=2025-01-09"); err == nil {
		t.Error("expected error for an inverted range")
	}

	if got := ta.mustRun(t, "delete", "1"); got != "Deleted event #1\n" {
		t.Errorf("got %q", got)
	}
	if _, err := ta.run(t, "delete", "1"); err == nil {
		t.Error("expected error deleting a missing event")
	}
	if out := ta.mustRun(t, "list"); !strings.Contains(out, "No events found") {
		t.Errorf("got %q", out)
	}
}

func TestImportExport(t *testing.T) {
	ta := newTestApp(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "team.ics")
	if err := os.WriteFile(path, []byte(teamCalendar), 0o644); err != nil {
		t.Fatalf("writing calendar: %v", err)
	}

	if out := ta.mustRun(t, "import", path); !strings.HasPrefix(out, "Imported 2 events") {
		t.Errorf("got %q", out)
	}
	if out := ta.mustRun(t, "import", path); !strings.Contains(out, "(2 already present)") {
		t.Errorf("got %q", out)
	}
	if _, err := ta.run(t, "import", filepath.Join(dir, "missing.ics")); err == nil {
		t.Error("expected error for a missing file")
	}

	out := ta.mustRun(t, "export", "--start=2025-01-13", "--end=2025-01-13")
	if !strings.Contains(out, "SUMMARY:Summit") || strings.Contains(out, "SUMMARY:Review") {
		t.Errorf("range export got:\n%s", out)
	}

	file := filepath.Join(dir, "out.ics")
	ta.mustRun(t, "export", "-o", file)
	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	for _, want := range []string{"UID:review@example.com", "UID:summit@example.com"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %q in export", want)
		}
	}
}

func TestViews(t *testing.T) {
	ta := newTestApp(t)
	ta.mustRun(t, "add", "Offsite", "--date=2025-01-09", "--all-day", "--days=2")
	ta.mustRun(t, "add", "Standup", "--date=2025-01-08", "--start=09:00", "--end=10:00")

	t.Run("week", func(t *testing.T) {
		out := ta.mustRun(t, "week", "--width=140", "--no-color", "--copy")
		for _, want := range []string{"Week of January 6 2025", "Offsite", "09:00 Standup"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in:\n%s", want, out)
			}
		}
		if strings.Contains(out, "\x1b[") {
			t.Error("expected no escape sequences with --no-color")
		}
		if len(ta.copied) != 1 || !strings.Contains(ta.copied[0], "Offsite") {
			t.Errorf("got clipboard %q", ta.copied)
		}
	})

	t.Run("day", func(t *testing.T) {
		out := ta.mustRun(t, "day", "--width=60", "--no-color", "--days=2")
		for _, want := range []string{"Jan 8 - Jan 9 2025", "│Offsite", "│Standup", "09:00"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in:\n%s", want, out)
			}
		}
		if _, err := ta.run(t, "day", "--days=11"); err == nil {
			t.Error("expected error for too many days")
		}
	})

	t.Run("month", func(t *testing.T) {
		out := ta.mustRun(t, "month", "--width=70", "--no-color", "--date=2025-01-20", "--weeks=6")
		if !strings.HasPrefix(out, "January 2025") {
			t.Errorf("got:\n%s", out)
		}
		if _, err := ta.run(t, "month", "--weeks=7"); err == nil {
			t.Error("expected error for too many weeks")
		}
	})
}

func TestRunConfigInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	answers := strings.Join([]string{
		"y",      // edit
		"sunday", // week start
		"", "", "", "", "", "", "",
		"n",     // compress weekend
		"",      // db path
		"latte", // theme
	}, "\n") + "\n"

	var out bytes.Buffer
	if err := runConfigInteractive(path, strings.NewReader(answers), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Configuration saved!") {
		t.Errorf("got:\n%s", out.String())
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if cfg.View.WeekStart != "sunday" || cfg.View.CompressWeekend || cfg.UI.Theme != "latte" {
		t.Errorf("got week start %q compress %v theme %q", cfg.View.WeekStart, cfg.View.CompressWeekend, cfg.UI.Theme)
	}
	if cfg.View.MinutesPerRow != 30 {
		t.Errorf("got %d minutes per row, want the default", cfg.View.MinutesPerRow)
	}
}

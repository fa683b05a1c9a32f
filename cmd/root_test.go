package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/xvierd/tempo-cli/internal/adapters/storage"
	"github.com/xvierd/tempo-cli/internal/config"
	"github.com/xvierd/tempo-cli/internal/domain"
)

// tempoEnv is an isolated home directory and data file for one test.
type tempoEnv struct {
	t     *testing.T
	home  string
	file  string
	stdin string
}

func newTempoEnv(t *testing.T) *tempoEnv {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	old := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = old })

	cfg := config.DefaultConfig()
	cfg.Notifications.Enabled = false
	if err := config.SaveTo(filepath.Join(home, ".tempo", "config.toml"), cfg); err != nil {
		t.Fatalf("write config: %v", err)
	}

	return &tempoEnv{t: t, home: home, file: filepath.Join(home, "projects.json")}
}

func resetFlags() {
	dataFile = ""
	backendFlag = ""
	jsonOutput = false
	debugLog = false
	listFavorites = false
	deleteYes = false
	reportPeriod = "today"
	exportFormat = "md"
	exportPeriod = "all"
	exportCopy = false
}

// run executes the root command with the given arguments against the env's data file.
func (e *tempoEnv) run(args ...string) (string, error) {
	e.t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(e.stdin))
	rootCmd.SetArgs(append([]string{"--file", e.file}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	if cerr := cleanupServices(); err == nil {
		err = cerr
	}
	return out.String(), err
}

func (e *tempoEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	if err != nil {
		e.t.Fatalf("tempo %v: %v\n%s", args, err, out)
	}
	return out
}

func (e *tempoEnv) seed(projects ...domain.Project) {
	e.t.Helper()
	store := storage.NewJSON(context.Background(), e.file)
	if err := store.Save(context.Background(), projects, nil); err != nil {
		e.t.Fatalf("seed: %v", err)
	}
}

func TestRootCmd_Structure(t *testing.T) {
	if rootCmd.Use != "tempo" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "tempo")
	}

	for _, name := range []string{"file", "backend", "json", "debug"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("--%s flag should be registered", name)
		}
	}

	want := []string{"list", "add", "rename", "delete", "start", "stop", "status", "favorite", "report", "export", "mcp", "config"}
	for _, name := range want {
		if c, _, err := rootCmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCmd_RequiresTerminal(t *testing.T) {
	e := newTempoEnv(t)
	if _, err := e.run(); !errors.Is(err, errNoTTY) {
		t.Errorf("bare tempo without a TTY error = %v, want errNoTTY", err)
	}
}

func TestConfigCommands(t *testing.T) {
	e := newTempoEnv(t)
	out := e.mustRun("config", "path")

	configPath := filepath.Join(e.home, ".tempo", "config.toml")
	if !strings.Contains(out, configPath) || !strings.Contains(out, e.file) {
		t.Errorf("config path output = %q", out)
	}

	out = e.mustRun("config", "show")
	if !strings.Contains(out, "Daily goal:     8h") {
		t.Errorf("config show output = %q", out)
	}
}

func TestProjectCommands(t *testing.T) {
	e := newTempoEnv(t)

	out := e.mustRun("add", "Website", "redesign")
	if !strings.Contains(out, "Project added: Website redesign") {
		t.Errorf("add output = %q", out)
	}
	if _, err := e.run("add", "   "); !errors.Is(err, domain.ErrEmptyProjectName) {
		t.Errorf("add blank error = %v, want ErrEmptyProjectName", err)
	}

	out = e.mustRun("--json", "list")
	var listed struct {
		Projects []struct {
			ID   uint32 `json:"id"`
			Name string `json:"name"`
		} `json:"projects"`
		Count int `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("list --json output %q: %v", out, err)
	}
	if listed.Count != 1 || listed.Projects[0].Name != "Website redesign" {
		t.Errorf("listed = %+v", listed)
	}

	out = e.mustRun("rename", "Website", "Site")
	if !strings.Contains(out, `Renamed "Website redesign" to "Site"`) {
		t.Errorf("rename output = %q", out)
	}

	e.stdin = "n\n"
	out = e.mustRun("delete", "Site")
	if !strings.Contains(out, "Deletion cancelled.") {
		t.Errorf("delete prompt output = %q", out)
	}

	e.stdin = ""
	e.mustRun("delete", "--yes", "Site")
	if out = e.mustRun("list"); !strings.Contains(out, "No projects yet") {
		t.Errorf("list after delete = %q", out)
	}

	if _, err := e.run("delete", "--yes", "Site"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("delete missing error = %v, want ErrProjectNotFound", err)
	}
}

func TestFavoriteCommand(t *testing.T) {
	e := newTempoEnv(t)
	e.seed(domain.Project{ID: 1, Name: "Alpha"}, domain.Project{ID: 2, Name: "Beta"})

	if out := e.mustRun("favorite", "beta"); !strings.Contains(out, "Beta added to favorites") {
		t.Errorf("favorite output = %q", out)
	}

	out := e.mustRun("list", "--favorites")
	if !strings.Contains(out, "Beta") || strings.Contains(out, "Alpha") {
		t.Errorf("list --favorites = %q", out)
	}

	if out := e.mustRun("favorite", "2"); !strings.Contains(out, "removed from favorites") {
		t.Errorf("second favorite output = %q", out)
	}
	if out := e.mustRun("list", "--favorites"); !strings.Contains(out, "No favorite projects.") {
		t.Errorf("list --favorites after toggle = %q", out)
	}
}

func TestTimerCommands(t *testing.T) {
	e := newTempoEnv(t)
	e.seed(domain.Project{ID: 1, Name: "Alpha"})

	if out := e.mustRun("start", "alpha"); !strings.Contains(out, "Timer started on Alpha") {
		t.Errorf("start output = %q", out)
	}
	if _, err := e.run("start", "Alpha"); !errors.Is(err, domain.ErrTimerAlreadyRunning) {
		t.Errorf("second start error = %v, want ErrTimerAlreadyRunning", err)
	}

	out := e.mustRun("status")
	if !strings.Contains(out, "Running") || !strings.Contains(out, "Alpha") {
		t.Errorf("status output = %q", out)
	}

	if out := e.mustRun("stop"); !strings.Contains(out, "Timer stopped on Alpha") {
		t.Errorf("stop output = %q", out)
	}
	if _, err := e.run("stop"); !errors.Is(err, domain.ErrNoRunningTimer) {
		t.Errorf("stop with nothing running error = %v", err)
	}
	if _, err := e.run("stop", "Alpha"); !errors.Is(err, domain.ErrNoRunningTimer) {
		t.Errorf("stop Alpha error = %v", err)
	}

	if out := e.mustRun("status"); !strings.Contains(out, "No timer running.") {
		t.Errorf("status after stop = %q", out)
	}
}

func TestStartUsesGitRepository(t *testing.T) {
	e := newTempoEnv(t)
	repoDir := filepath.Join(t.TempDir(), "website")
	if _, err := git.PlainInit(repoDir, false); err != nil {
		t.Fatalf("Failed to init git repo: %v", err)
	}
	sub := filepath.Join(repoDir, "src")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(sub)

	out := e.mustRun("start")
	if !strings.Contains(out, "Project added: website") || !strings.Contains(out, "Timer started on website") {
		t.Errorf("start in repo output = %q", out)
	}

	e.mustRun("stop")
	out = e.mustRun("start")
	if strings.Contains(out, "Project added") {
		t.Errorf("second start should reuse the project, got %q", out)
	}
}

func TestStartWithoutProject(t *testing.T) {
	e := newTempoEnv(t)
	if _, err := e.run("start"); !errors.Is(err, errNoProject) {
		t.Errorf("start outside a repo error = %v, want errNoProject", err)
	}
}

func TestReportAndExport(t *testing.T) {
	e := newTempoEnv(t)
	start := uint64(time.Date(2026, 1, 5, 9, 0, 0, 0, time.Local).Unix())
	end := start + 90*60
	e.seed(
		domain.Project{ID: 1, Name: "Alpha", Timers: []domain.Timer{{ID: 1, StartTime: start, EndTime: &end}}},
		domain.Project{ID: 2, Name: "Idle"},
	)

	out := e.mustRun("report", "--period", "all")
	if !strings.Contains(out, "All time") || !strings.Contains(out, "Alpha") || !strings.Contains(out, "1h 30m") {
		t.Errorf("report output = %q", out)
	}
	if strings.Contains(out, "Idle") {
		t.Errorf("report should omit projects without time, got %q", out)
	}
	if _, err := e.run("report", "--period", "decade"); err == nil {
		t.Error("report with an unknown period should fail")
	}

	out = e.mustRun("export", "--format", "csv")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "project_id,project,timer_id") {
		t.Fatalf("csv export = %q", out)
	}
	if !strings.HasPrefix(lines[1], "1,Alpha,1,") || !strings.HasSuffix(lines[1], ",5400") {
		t.Errorf("csv row = %q", lines[1])
	}

	out = e.mustRun("export")
	for _, want := range []string{"# Tempo Export", "## Alpha", "| 2026-01-05 09:00:00 | 2026-01-05 10:30:00 | 01:30:00 |", "Total: 01:30:00"} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown export missing %q:\n%s", want, out)
		}
	}

	if _, err := e.run("export", "--format", "xml"); err == nil {
		t.Error("export with an unknown format should fail")
	}
}

func TestSQLiteBackend(t *testing.T) {
	e := newTempoEnv(t)
	e.file = filepath.Join(e.home, "tempo.db")

	e.mustRun("--backend", "sqlite", "add", "Alpha")
	out := e.mustRun("--backend", "sqlite", "list")
	if !strings.Contains(out, "Alpha") {
		t.Errorf("sqlite list = %q", out)
	}
}

func TestMCPDisabled(t *testing.T) {
	e := newTempoEnv(t)
	cfg := config.DefaultConfig()
	cfg.Notifications.Enabled = false
	cfg.MCP.Enabled = false
	if err := config.SaveTo(filepath.Join(e.home, ".tempo", "config.toml"), cfg); err != nil {
		t.Fatal(err)
	}

	if _, err := e.run("mcp"); err == nil || !strings.Contains(err.Error(), "disabled") {
		t.Errorf("mcp with mcp.enabled=false error = %v", err)
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "0m"},
		{"minutes", 25 * time.Minute, "25m"},
		{"hours", 2 * time.Hour, "2h"},
		{"mixed", 90 * time.Minute, "1h 30m"},
		{"rounds up to the hour", time.Hour + 59*time.Minute + 50*time.Second, "2h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatHours(tt.d.Hours()); got != tt.want {
				t.Errorf("formatHours(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestReportLabel(t *testing.T) {
	since := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	tests := map[string]string{
		"week":  "Week of Mar 2",
		"month": "March 2026",
		"all":   "All time",
		"today": "Today, Mon Mar 2",
	}
	for period, want := range tests {
		if got := reportLabel(period, since); got != want {
			t.Errorf("reportLabel(%q) = %q, want %q", period, got, want)
		}
	}
}

func TestTruncateName(t *testing.T) {
	if got := truncateName("Backend services", 10); got != "Backend s…" {
		t.Errorf("truncateName() = %q", got)
	}
	if got := truncateName("Alpha", 16); got != "Alpha" {
		t.Errorf("truncateName() = %q", got)
	}
}

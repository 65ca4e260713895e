package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("packed")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).Match(buf.Bytes()) {
		t.Errorf("log line %q should start with a 15:04:05.00 timestamp", buf.String())
	}
}

func TestPlanLogsProgress(t *testing.T) {
	c, logs := newTestCLI(t)
	input := writeDoc(t, t.TempDir(), "page.json", testDocJSON)

	if err := c.runPlan(testContext(c), input, planOpts{output: filepath.Join(t.TempDir(), "p.json")}); err != nil {
		t.Fatalf("runPlan: %v", err)
	}

	out := logs.String()
	for _, want := range []string{
		"rail article",       // rail logger prefix
		"packed rail",        // per-rail pipeline debug line
		"intersected=true",   // hero figure splits the article
		"Laid out 1 rails (", // progress with elapsed time
	} {
		if !strings.Contains(out, want) {
			t.Errorf("logs missing %q:\n%s", want, out)
		}
	}
}

func TestPlanLogLevels(t *testing.T) {
	dir := t.TempDir()
	input := writeDoc(t, dir, "page.json", testDocJSON)
	cfg := writeDoc(t, dir, "config.toml", "log_level = \"warn\"\n[cache]\nbackend = \"none\"\n")

	tests := []struct {
		name         string
		flags        []string
		wantProgress bool
		wantDebug    bool
	}{
		{"warn from config", nil, false, false},
		{"verbose overrides config", []string{"-v"}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			c := New(&logs, LogInfo)
			root := c.RootCommand()

			args := append([]string{"--config", cfg}, tt.flags...)
			args = append(args, "plan", input, "--table=false", "-o", filepath.Join(t.TempDir(), "p.json"))
			root.SetArgs(args)
			root.SetOut(&bytes.Buffer{})
			if err := root.Execute(); err != nil {
				t.Fatalf("Execute: %v", err)
			}

			out := logs.String()
			if got := strings.Contains(out, "Laid out"); got != tt.wantProgress {
				t.Errorf("progress logged = %v, want %v:\n%s", got, tt.wantProgress, out)
			}
			if got := strings.Contains(out, "packed rail"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v:\n%s", got, tt.wantDebug, out)
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	attached := newLogger(&bytes.Buffer{}, log.DebugLevel)

	tests := []struct {
		name string
		ctx  context.Context
		want *log.Logger
	}{
		{"attached", withLogger(context.Background(), attached), attached},
		{"none", context.Background(), log.Default()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := loggerFromContext(tt.ctx); got != tt.want {
				t.Errorf("loggerFromContext() = %p, want %p", got, tt.want)
			}
		})
	}
}

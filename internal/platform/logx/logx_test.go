// internal/platform/logx/logx_test.go
package logx

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestNew(t *testing.T) {
	logger := New()
	if logger == nil {
		t.Fatal("New() should return a logger, got nil")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"dbg", LevelDebug},
		{"  debug  ", LevelDebug},
		{"info", LevelInfo},
		{"inf", LevelInfo},
		{"", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"err", LevelError},
		{"ERROR", LevelError},
		{"invalid", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPairs(t *testing.T) {
	got := pairs("a", 1, "b")
	if len(got) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(got))
	}
	if got[0].key != "a" || got[0].val != 1 {
		t.Errorf("unexpected first pair: %+v", got[0])
	}
	if got[1].val != "(missing)" {
		t.Errorf("odd kv list should mark missing value, got %v", got[1].val)
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		log   func(Logger)
		tag   string
		msg   string
		field string
	}{
		{"debug", func(l Logger) { l.Debug("debug message", "key", "value") }, "DBG", "debug message", "key=value"},
		{"info", func(l Logger) { l.Info("info message", "count", 42) }, "INF", "info message", "count=42"},
		{"warn", func(l Logger) { l.Warn("warning message", "enabled", true) }, "WRN", "warning message", "enabled=true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewWriter(&buf, LevelDebug))

			output := buf.String()
			if !strings.Contains(output, tt.tag) {
				t.Errorf("output should contain %q, got: %s", tt.tag, output)
			}
			if !strings.Contains(output, tt.msg) {
				t.Errorf("output should contain message, got: %s", output)
			}
			if !strings.Contains(output, tt.field) {
				t.Errorf("output should contain %q, got: %s", tt.field, output)
			}
		})
	}
}

func TestLogger_Err(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelError)

	logger.Err(errors.New("test error"), "site", "github")

	output := buf.String()
	if !strings.Contains(output, "ERR") {
		t.Errorf("output should contain 'ERR', got: %s", output)
	}
	if !strings.Contains(output, "test error") {
		t.Errorf("output should contain error, got: %s", output)
	}
	if !strings.Contains(output, "site=github") {
		t.Errorf("output should contain kv pair, got: %s", output)
	}
}

func TestLogger_Err_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewWriter(&buf, LevelDebug).Err(nil, "site", "github")

	if buf.Len() != 0 {
		t.Errorf("nil error should not log anything, got: %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelDebug)

	scoped := logger.With("component", "engine", "run_id", "abc")
	scoped.Info("scoped message")
	logger.Info("plain message")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "component=engine") || !strings.Contains(lines[0], "run_id=abc") {
		t.Errorf("scoped line should carry fields, got: %s", lines[0])
	}
	if strings.Contains(lines[1], "component=engine") {
		t.Errorf("original logger should not carry scope, got: %s", lines[1])
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, LevelWarn)

	logger.Debug("hidden debug")
	logger.Info("hidden info")
	logger.Warn("visible warn")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("messages below warn should be filtered, got: %s", output)
	}
	if !strings.Contains(output, "visible warn") {
		t.Errorf("warn should pass, got: %s", output)
	}

	// SetLevel afecta también a los clones
	scoped := logger.With("k", "v")
	logger.SetLevel(LevelDebug)
	scoped.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("SetLevel should apply to scoped loggers, got: %s", buf.String())
	}
}

func TestLogger_FileReceivesDebug(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "blackbird.log")

	logger, closeFn, err := NewWithOptions(Options{
		Level:    LevelError,
		Console:  &console,
		FilePath: path,
		NoColor:  true,
	})
	if err != nil {
		t.Fatalf("NewWithOptions: %v", err)
	}

	logger.Debug("file only", "site", "github")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "file only") {
		t.Errorf("log file should contain debug entry, got: %s", data)
	}
	if console.Len() != 0 {
		t.Errorf("console should filter debug, got: %s", console.String())
	}
}

func TestLogger_ThreadSafety(t *testing.T) {
	var buf safeBuffer
	logger := NewWriter(&buf, LevelDebug)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.With("worker", n).Info("concurrent")
		}(i)
	}
	wg.Wait()

	if got := strings.Count(buf.String(), "concurrent"); got != 20 {
		t.Errorf("expected 20 lines, got %d", got)
	}
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *safeBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *safeBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

package ecszap

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ecsfmt/ecslog/core"
	"github.com/ecsfmt/ecslog/logger"
)

func newTestLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.NewBuilder().WithFilter("trace").WithWriter(buf).Build()
}

func parseLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		if line == "" {
			continue
		}
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(line), &data); err != nil {
			t.Fatalf("Invalid JSON line %q: %v", line, err)
		}
		out = append(out, data)
	}
	return out
}

func TestCore_Basic(t *testing.T) {
	var buf bytes.Buffer
	z := zap.New(NewCore(newTestLogger(&buf), zapcore.DebugLevel))

	z.Info("zap says hi", zap.String("user", "alice"), zap.Int("attempts", 3))

	lines := parseLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}

	line := lines[0]
	if line["log.level"] != "INFO" {
		t.Errorf("log.level = %v", line["log.level"])
	}
	if line["message"] != "zap says hi" {
		t.Errorf("message = %v", line["message"])
	}
	if line["ecs.version"] != "1.12.1" {
		t.Errorf("ecs.version = %v", line["ecs.version"])
	}
	if line["user"] != "alice" {
		t.Errorf("user = %v", line["user"])
	}
	if line["attempts"] != float64(3) {
		t.Errorf("attempts = %v", line["attempts"])
	}
}

func TestCore_Caller(t *testing.T) {
	var buf bytes.Buffer
	z := zap.New(NewCore(newTestLogger(&buf), zapcore.DebugLevel), zap.AddCaller())

	z.Warn("locate me")

	lines := parseLines(t, &buf)
	origin := lines[0]["log.origin"].(map[string]interface{})
	file := origin["file"].(map[string]interface{})
	if file["name"] != "core_test.go" {
		t.Errorf("file.name = %v", file["name"])
	}
	g := origin["go"].(map[string]interface{})
	if g["target"] != "github.com/ecsfmt/ecslog/ecszap" {
		t.Errorf("target = %v", g["target"])
	}
}

func TestCore_NamedLoggerTarget(t *testing.T) {
	var buf bytes.Buffer
	z := zap.New(NewCore(newTestLogger(&buf), zapcore.DebugLevel))

	z.Named("billing").Info("charged")

	lines := parseLines(t, &buf)
	g := lines[0]["log.origin"].(map[string]interface{})["go"].(map[string]interface{})
	if g["target"] != "billing" {
		t.Errorf("target = %v", g["target"])
	}
}

func TestCore_With(t *testing.T) {
	var buf bytes.Buffer
	z := zap.New(NewCore(newTestLogger(&buf), zapcore.DebugLevel))

	z.With(zap.String("request_id", "r-1")).Info("handled", zap.Int("status", 200))

	lines := parseLines(t, &buf)
	line := lines[0]
	if line["request_id"] != "r-1" {
		t.Errorf("request_id = %v", line["request_id"])
	}
	if line["status"] != float64(200) {
		t.Errorf("status = %v", line["status"])
	}
}

func TestCore_LevelEnabler(t *testing.T) {
	var buf bytes.Buffer
	z := zap.New(NewCore(newTestLogger(&buf), zapcore.WarnLevel))

	z.Info("dropped")
	z.Error("kept")

	lines := parseLines(t, &buf)
	if len(lines) != 1 || lines[0]["message"] != "kept" {
		t.Errorf("Unexpected lines: %v", lines)
	}
}

func TestZapLevelToCore(t *testing.T) {
	tests := []struct {
		level zapcore.Level
		want  core.Level
	}{
		{zapcore.DebugLevel, core.DebugLevel},
		{zapcore.InfoLevel, core.InfoLevel},
		{zapcore.WarnLevel, core.WarnLevel},
		{zapcore.ErrorLevel, core.ErrorLevel},
		{zapcore.DPanicLevel, core.ErrorLevel},
		{zapcore.PanicLevel, core.ErrorLevel},
		{zapcore.FatalLevel, core.ErrorLevel},
	}

	for _, tt := range tests {
		if got := zapLevelToCore(tt.level); got != tt.want {
			t.Errorf("zapLevelToCore(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestCore_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	z := zap.New(NewCore(newTestLogger(&buf), zapcore.DebugLevel))

	z.Info("m", zap.Int("zz", 1), zap.Int("aa", 2))

	line := strings.TrimRight(buf.String(), "\n")
	if !(strings.Index(line, `"aa"`) < strings.Index(line, `"zz"`)) {
		t.Errorf("Fields not sorted: %s", line)
	}
}

package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestLogger_WritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf).With("component", "fetch")

	logger.Info("request audited", "api_id", int64(1), "error", errors.New("boom"))
	logger.Debug("dropped below level")

	out := buf.String()
	if !strings.Contains(out, `"msg":"request audited"`) {
		t.Fatalf("expected message in output, got %s", out)
	}
	if !strings.Contains(out, `"component":"fetch"`) || !strings.Contains(out, `"api_id":1`) {
		t.Fatalf("expected fields in output, got %s", out)
	}
	if !strings.Contains(out, `"error":"boom"`) {
		t.Fatalf("expected named error in output, got %s", out)
	}
	if strings.Contains(out, "dropped below level") {
		t.Fatalf("debug record must be filtered at info level")
	}
}

func TestLogger_MirrorReceivesRecords(t *testing.T) {
	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
		if len(args) != 4 {
			t.Errorf("expected inherited and call fields, got %v", args)
		}
	})
	t.Cleanup(func() { SetMirror(nil) })

	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf).With("component", "scheduler")
	logger.WarnContext(context.Background(), "refresh skipped", "reason", "busy")
	logger.Debug("not mirrored")

	if len(got) != 1 || got[0] != "warn:refresh skipped" {
		t.Fatalf("unexpected mirrored records: %v", got)
	}
}

func TestLogger_NilSafe(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("a", 1) == nil || logger.Named("x") == nil {
		t.Fatalf("expected nop loggers from nil receiver")
	}
}

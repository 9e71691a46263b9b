package dial

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func debugSession(t *testing.T, debug bool) (*Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := linearConfig()
	cfg.Debug = debug
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s, err := NewSession(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s, &buf
}

func TestDebugLogsTicks(t *testing.T) {
	s, buf := debugSession(t, true)
	s.Tick(0)
	if strings.Contains(buf.String(), "msg=tick") {
		t.Error("idle tick was logged")
	}

	startRotation(s, 0)
	s.Tick(0)
	out := buf.String()
	if !strings.Contains(out, "msg=tick") {
		t.Fatalf("tick not logged:\n%s", out)
	}
	if !strings.Contains(out, "component=dial") {
		t.Errorf("missing component attribute:\n%s", out)
	}
}

func TestDebugWarnsOnCatchUp(t *testing.T) {
	s, buf := debugSession(t, true)
	startRotation(s, 0)
	s.Tick(0)
	s.Tick(100)
	if !strings.Contains(buf.String(), "frames skipped by catch-up") {
		t.Errorf("catch-up not reported:\n%s", buf.String())
	}
}

func TestDebugOff(t *testing.T) {
	s, buf := debugSession(t, false)
	startRotation(s, 0)
	s.Tick(0)
	s.Tick(100)
	if strings.Contains(buf.String(), "msg=tick") {
		t.Errorf("tick logged with debug off:\n%s", buf.String())
	}
	// Lifecycle messages are still logged at debug level.
	if !strings.Contains(buf.String(), "calibration began") {
		t.Errorf("lifecycle not logged:\n%s", buf.String())
	}
}

package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	cases := []struct {
		level string
		debug bool
		info  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"warn", false, false},
		{"", false, true},
		{"chatty", false, true},
	}
	for _, tc := range cases {
		l := New(Config{Level: tc.level, Format: "console"})
		if got := l.Core().Enabled(zapcore.DebugLevel); got != tc.debug {
			t.Fatalf("level %q: debug enabled = %v, want %v", tc.level, got, tc.debug)
		}
		if got := l.Core().Enabled(zapcore.InfoLevel); got != tc.info {
			t.Fatalf("level %q: info enabled = %v, want %v", tc.level, got, tc.info)
		}
	}
}

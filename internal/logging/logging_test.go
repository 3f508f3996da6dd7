// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"debug", zerolog.DebugLevel, true},
		{" WARNING ", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"", zerolog.InfoLevel, false},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvLogNoColor, "1")
	var buf bytes.Buffer
	logger := New(&buf, "wdctl", "warn")
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "app=wdctl") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestEnvOverridesLevel(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	var buf bytes.Buffer
	logger := New(&buf, "wdctl", "debug")
	logger.Warn().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("warn message logged with %s=error: %q", EnvLogLevel, buf.String())
	}
}

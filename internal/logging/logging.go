// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel   = "WDCTL_LOG_LEVEL"
	EnvLogNoColor = "WDCTL_LOG_NOCOLOR"
)

var configureOnce sync.Once

//Init installs a console logger tagged with app as the global logger.
//level is used unless WDCTL_LOG_LEVEL is set. Only the first call has an
//effect.
func Init(app, level string) zerolog.Logger {
	configureOnce.Do(func() {
		log.Logger = New(os.Stderr, app, level)
	})
	return log.Logger
}

//New builds the console logger without installing it.
func New(out io.Writer, app, level string) zerolog.Logger {
	lvl, ok := ParseLevel(os.Getenv(EnvLogLevel))
	if !ok {
		lvl, _ = ParseLevel(level)
	}
	_, noColor := os.LookupEnv(EnvLogNoColor)
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    noColor,
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Str("app", app).Logger()
}

//ParseLevel maps a level name to a zerolog level. ok is false for an empty
//or unknown name, in which case the level is info.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

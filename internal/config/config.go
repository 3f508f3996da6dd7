// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads wdctl settings from a TOML file.
//
//	capabilities_file = "caps.jsonc"
//
//	[remote]
//	url = "http://127.0.0.1:9515"
//
//	[driver]
//	kind = "chrome"
//	path = "/usr/bin/chromedriver"
//	port = 0
//	log_path = "chromedriver.log"
//
//	[timeouts]
//	script = "30s"
//	page_load = "5m"
//	implicit = "0s"
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tailscale/hujson"

	webdriver "github.com/fedesog/w3cwebdriver"
)

const DefaultRemoteURL = "http://127.0.0.1:9515"

type Config struct {
	Remote           RemoteConfig   `toml:"remote"`
	Driver           DriverConfig   `toml:"driver"`
	Timeouts         TimeoutsConfig `toml:"timeouts"`
	CapabilitiesFile string         `toml:"capabilities_file"`
}

//Remote end to connect to when no driver is launched.
type RemoteConfig struct {
	URL string `toml:"url"`
}

//Local driver executable to launch. Kind is empty, "chrome" or "firefox".
type DriverConfig struct {
	Kind    string `toml:"kind"`
	Path    string `toml:"path"`
	Port    int    `toml:"port"`
	LogPath string `toml:"log_path"`
}

//Session timeouts as Go durations. Empty values are left to the remote end.
type TimeoutsConfig struct {
	Script   string `toml:"script"`
	PageLoad string `toml:"page_load"`
	Implicit string `toml:"implicit"`
}

func Default() Config {
	return Config{Remote: RemoteConfig{URL: DefaultRemoteURL}}
}

//Load reads path on top of the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if meta.IsDefined("remote", "url") {
		cfg.Remote.URL = strings.TrimSpace(raw.Remote.URL)
	}
	if meta.IsDefined("driver") {
		cfg.Driver = raw.Driver
		cfg.Driver.Kind = strings.ToLower(strings.TrimSpace(raw.Driver.Kind))
	}
	if meta.IsDefined("timeouts") {
		cfg.Timeouts = raw.Timeouts
	}
	if meta.IsDefined("capabilities_file") {
		cfg.CapabilitiesFile = strings.TrimSpace(raw.CapabilitiesFile)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %s", path, undecoded[0])
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Driver.Kind {
	case "":
		u, err := url.Parse(c.Remote.URL)
		if err != nil {
			return fmt.Errorf("remote url: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("remote url %q must be http or https", c.Remote.URL)
		}
		if u.Host == "" {
			return fmt.Errorf("remote url %q has no host", c.Remote.URL)
		}
	case "chrome", "firefox":
		if strings.TrimSpace(c.Driver.Path) == "" {
			return fmt.Errorf("driver path is required for kind %q", c.Driver.Kind)
		}
		if c.Driver.Port < 0 || c.Driver.Port > 65535 {
			return fmt.Errorf("driver port %d out of range", c.Driver.Port)
		}
	default:
		return fmt.Errorf("unknown driver kind %q", c.Driver.Kind)
	}
	if _, err := c.Timeouts.Timeouts(); err != nil {
		return err
	}
	return nil
}

//Timeouts converts the configured durations. Unset fields stay nil.
func (t TimeoutsConfig) Timeouts() (webdriver.Timeouts, error) {
	var out webdriver.Timeouts
	fields := []struct {
		name string
		raw  string
		dst  **time.Duration
	}{
		{"script", t.Script, &out.Script},
		{"page_load", t.PageLoad, &out.PageLoad},
		{"implicit", t.Implicit, &out.Implicit},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return webdriver.Timeouts{}, fmt.Errorf("parse timeouts.%s: %w", f.name, err)
		}
		if d < 0 {
			return webdriver.Timeouts{}, fmt.Errorf("timeouts.%s must not be negative", f.name)
		}
		*f.dst = webdriver.Duration(d)
	}
	return out, nil
}

//IsZero reports whether no timeout is configured.
func (t TimeoutsConfig) IsZero() bool {
	return strings.TrimSpace(t.Script) == "" &&
		strings.TrimSpace(t.PageLoad) == "" &&
		strings.TrimSpace(t.Implicit) == ""
}

//LoadCapabilities reads a session request from a JSON file that may hold
//comments and trailing commas. The file is either a full
//{"alwaysMatch":..., "firstMatch":[...]} object or a plain capabilities
//object, taken as alwaysMatch.
func LoadCapabilities(path string) (webdriver.SessionRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return webdriver.SessionRequest{}, fmt.Errorf("capabilities load failed (%s): %w", path, err)
	}
	return ParseCapabilities(data)
}

func ParseCapabilities(data []byte) (webdriver.SessionRequest, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return webdriver.SessionRequest{}, fmt.Errorf("capabilities parse failed: %w", err)
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(std, &probe); err != nil {
		return webdriver.SessionRequest{}, fmt.Errorf("capabilities must be a JSON object: %w", err)
	}
	_, always := probe["alwaysMatch"]
	_, first := probe["firstMatch"]
	var req webdriver.SessionRequest
	if always || first {
		err = json.Unmarshal(std, &req)
	} else {
		err = json.Unmarshal(std, &req.AlwaysMatch)
	}
	if err != nil {
		return webdriver.SessionRequest{}, fmt.Errorf("capabilities parse failed: %w", err)
	}
	return req, nil
}

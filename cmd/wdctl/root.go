// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	webdriver "github.com/fedesog/w3cwebdriver"
	"github.com/fedesog/w3cwebdriver/internal/config"
	"github.com/fedesog/w3cwebdriver/internal/logging"
)

const (
	envConfig  = "WDCTL_CONFIG"
	envSession = "WDCTL_SESSION"
)

//state shared by the commands of one invocation
type app struct {
	configPath string
	remote     string
	sessionID  string
	format     string
	logLevel   string

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "wdctl",
		Short:         "Send W3C WebDriver commands to a remote end",
		Long:          "wdctl creates sessions on a WebDriver remote end (chromedriver, geckodriver, a grid) and sends commands to them.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", os.Getenv(envConfig), "TOML config file (env "+envConfig+")")
	flags.StringVar(&a.remote, "remote", "", "URL of the remote end, overrides the config")
	flags.StringVar(&a.sessionID, "session", os.Getenv(envSession), "Session id (env "+envSession+")")
	flags.StringVar(&a.format, "format", "yaml", "Output format: yaml or json")
	flags.StringVar(&a.logLevel, "log-level", "warn", "Log level: trace, debug, info, warn, error")

	root.AddCommand(
		newStatusCmd(a),
		newSessionCmd(a),
		newNavigateCmd(a),
		newTitleCmd(a),
		newURLCmd(a),
		newExecCmd(a),
		newFindCmd(a),
		newCookiesCmd(a),
		newTimeoutsCmd(a),
		newScreenshotCmd(a),
		newCdpCmd(a),
		newFirefoxContextCmd(a),
		newRenderCmd(a),
		newDriverCmd(a),
	)
	return root
}

func (a *app) setup() error {
	logging.Init("wdctl", a.logLevel)
	switch a.format {
	case formatYAML, formatJSON:
	default:
		return fmt.Errorf("unsupported format: %s (use yaml or json)", a.format)
	}
	a.cfg = config.Default()
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.cfg = cfg
	}
	if a.remote != "" {
		a.cfg.Remote.URL = a.remote
	}
	log.Debug().Str("remote", a.cfg.Remote.URL).Str("session", a.sessionID).Msg("configured")
	return nil
}

func (a *app) client() *webdriver.Client {
	return webdriver.NewClient(a.cfg.Remote.URL)
}

//session attaches to the session named by --session.
func (a *app) session() (*webdriver.Session, error) {
	if a.sessionID == "" {
		return nil, errors.New("no session: pass --session or set " + envSession)
	}
	return a.client().AttachSession(webdriver.SessionID(a.sessionID)), nil
}

// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	webdriver "github.com/fedesog/w3cwebdriver"
)

//DriverResult is printed once the driver accepts connections.
type DriverResult struct {
	Kind string `yaml:"kind" json:"kind"`
	URL  string `yaml:"url"  json:"url"`
	PID  int    `yaml:"pid"  json:"pid"`
}

func newDriverCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "driver",
		Short: "Run the driver configured in [driver] until interrupted",
		Long:  "Start the chromedriver or geckodriver executable named by the config, print its URL and keep it running until Ctrl-C. Point --remote at that URL from another shell.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.cfg.Driver
			var (
				start, stop func() error
				port        func() int
				pid         func() int
			)
			switch d.Kind {
			case "chrome":
				cd := webdriver.NewChromeDriver(d.Path)
				cd.Port = d.Port
				if d.LogPath != "" {
					cd.LogPath = d.LogPath
				}
				start, stop, port, pid = cd.Start, cd.Stop, func() int { return cd.Port }, cd.Pid
			case "firefox":
				gd := webdriver.NewGeckoDriver(d.Path)
				gd.Port = d.Port
				gd.LogFile = d.LogPath
				start, stop, port, pid = gd.Start, gd.Stop, func() int { return gd.Port }, gd.Pid
			default:
				return fmt.Errorf("no driver configured: set [driver] kind to chrome or firefox")
			}
			if err := start(); err != nil {
				return err
			}
			defer func() {
				if err := stop(); err != nil {
					log.Warn().Err(err).Msg("driver stop failed")
				}
			}()
			url := fmt.Sprintf("http://127.0.0.1:%d", port())
			log.Info().Str("kind", d.Kind).Str("url", url).Msg("driver running")
			if err := a.print(cmd, DriverResult{Kind: d.Kind, URL: url, PID: pid()}); err != nil {
				return err
			}
			<-cmd.Context().Done()
			return nil
		},
	}
}

// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fedesog/w3cwebdriver/chromium"
	"github.com/fedesog/w3cwebdriver/firefox"
)

func newCdpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cdp METHOD [PARAMS]",
		Short: "Run a Chrome DevTools Protocol command (chromium drivers only)",
		Long:  "Run METHOD, e.g. Browser.getVersion, with PARAMS given as a JSON object. PARAMS are sent as they are.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var params json.RawMessage
			if len(args) == 2 {
				params = json.RawMessage(args[1])
				if !json.Valid(params) {
					return fmt.Errorf("params are not valid JSON")
				}
			}
			s, err := a.session()
			if err != nil {
				return err
			}
			raw, err := chromium.NewDevTools(s).ExecuteCdpRaw(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}
			value, err := plain(raw)
			if err != nil {
				return err
			}
			return a.print(cmd, ScriptResult{value})
		},
	}
}

func newFirefoxContextCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "firefox-context [content|chrome]",
		Short: "Print or change the context commands run in (geckodriver only)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			tools := firefox.NewTools(s)
			if len(args) == 1 {
				if err := tools.SetContext(cmd.Context(), firefox.Context(args[0])); err != nil {
					return err
				}
			}
			c, err := tools.Context(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, ValueResult{string(c)})
		},
	}
}

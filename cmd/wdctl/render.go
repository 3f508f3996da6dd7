// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	webdriver "github.com/fedesog/w3cwebdriver"
	"github.com/fedesog/w3cwebdriver/chromium"
	"github.com/fedesog/w3cwebdriver/firefox"
)

//placeholder used in rendered paths when no --session is given
const renderSessionID = "SESSION_ID"

//RequestResult describes a request without sending it.
type RequestResult struct {
	Method string `yaml:"method"         json:"method"`
	Path   string `yaml:"path"           json:"path"`
	Body   any    `yaml:"body,omitempty" json:"body,omitempty"`
}

type renderer struct {
	args  int
	build func(args []string) (webdriver.Command, error)
}

func fixed(cmd webdriver.Command) renderer {
	return renderer{0, func([]string) (webdriver.Command, error) { return cmd, nil }}
}

var renderers = map[string]renderer{
	"status":          fixed(webdriver.GetStatus{}),
	"delete-session":  fixed(webdriver.DeleteSession{}),
	"timeouts":        fixed(webdriver.GetTimeouts{}),
	"url":             fixed(webdriver.GetCurrentURL{}),
	"back":            fixed(webdriver.Back{}),
	"forward":         fixed(webdriver.Forward{}),
	"refresh":         fixed(webdriver.Refresh{}),
	"title":           fixed(webdriver.GetTitle{}),
	"window":          fixed(webdriver.GetWindowHandle{}),
	"windows":         fixed(webdriver.GetWindowHandles{}),
	"source":          fixed(webdriver.GetPageSource{}),
	"cookies":         fixed(webdriver.GetAllCookies{}),
	"screenshot":      fixed(webdriver.TakeScreenshot{}),
	"network":         fixed(chromium.GetNetworkConditions{}),
	"sinks":           fixed(chromium.GetSinks{}),
	"moz-context":     fixed(firefox.GetContext{}),
	"full-screenshot": fixed(firefox.TakeFullScreenshot{}),
	"navigate": {1, func(args []string) (webdriver.Command, error) {
		return webdriver.NavigateTo{URL: args[0]}, nil
	}},
	"cookie": {1, func(args []string) (webdriver.Command, error) {
		return webdriver.GetNamedCookie{Name: args[0]}, nil
	}},
	"find": {2, func(args []string) (webdriver.Command, error) {
		by, err := locator(args[0], args[1])
		return webdriver.FindElement{By: by}, err
	}},
	"exec": {1, func(args []string) (webdriver.Command, error) {
		return webdriver.ExecuteScript{Script: args[0], Args: []any{}}, nil
	}},
	"cdp": {2, func(args []string) (webdriver.Command, error) {
		if !json.Valid([]byte(args[1])) {
			return nil, fmt.Errorf("params are not valid JSON")
		}
		return chromium.ExecuteCdpCommand{Command: args[0], Params: json.RawMessage(args[1])}, nil
	}},
}

func renderNames() []string {
	names := make([]string, 0, len(renderers))
	for name := range renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

//render formats cmd for id and encodes its body the way it would be sent.
func render(cmd webdriver.Command, id webdriver.SessionID) (RequestResult, error) {
	req := cmd.FormatRequest(id)
	if err := req.Validate(); err != nil {
		return RequestResult{}, err
	}
	result := RequestResult{Method: string(req.Method), Path: req.Path}
	if req.Body == nil {
		return result, nil
	}
	wire, err := webdriver.EncodeValue(req.Body)
	if err != nil {
		return RequestResult{}, err
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return RequestResult{}, err
	}
	result.Body, err = plain(data)
	return result, err
}

func newRenderCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render COMMAND [ARGS]",
		Short: "Print the request a command would send, without sending it",
		Long:  "Print method, path and body of COMMAND. Known commands: " + strings.Join(renderNames(), ", ") + ".",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, ok := renderers[args[0]]
			if !ok {
				return fmt.Errorf("unknown command %q", args[0])
			}
			if len(args)-1 != r.args {
				return fmt.Errorf("%s takes %d argument(s), got %d", args[0], r.args, len(args)-1)
			}
			c, err := r.build(args[1:])
			if err != nil {
				return err
			}
			id := webdriver.SessionID(a.sessionID)
			if id == "" {
				id = renderSessionID
			}
			result, err := render(c, id)
			if err != nil {
				return err
			}
			return a.print(cmd, result)
		},
	}
}

// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	webdriver "github.com/fedesog/w3cwebdriver"
)

//ScriptResult is the output of exec.
type ScriptResult struct {
	Value any `yaml:"value" json:"value"`
}

//parseArgs decodes each --arg as JSON. "@ID" stands for the element with
//reference ID.
func parseArgs(s *webdriver.Session, raw []string) ([]any, error) {
	args := make([]any, len(raw))
	for i, r := range raw {
		if len(r) > 1 && r[0] == '@' {
			args[i] = s.WebElementFromId(r[1:])
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(r), &v); err != nil {
			return nil, fmt.Errorf("arg %d is not JSON: %w", i, err)
		}
		args[i] = v
	}
	return args, nil
}

func newExecCmd(a *app) *cobra.Command {
	var rawArgs []string
	var async bool
	cmd := &cobra.Command{
		Use:   "exec SCRIPT",
		Short: "Run a script in the current browsing context",
		Long:  "Run SCRIPT as a function body. Each --arg is a JSON value, or @ID for an element reference; with --async the script must call the callback passed as its last argument.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			scriptArgs, err := parseArgs(s, rawArgs)
			if err != nil {
				return err
			}
			var ret *webdriver.ScriptRet
			if async {
				ret, err = s.ExecuteScriptAsync(cmd.Context(), args[0], scriptArgs)
			} else {
				ret, err = s.ExecuteScript(cmd.Context(), args[0], scriptArgs)
			}
			if err != nil {
				return err
			}
			value, err := plain(ret.Raw())
			if err != nil {
				return err
			}
			return a.print(cmd, ScriptResult{value})
		},
	}
	cmd.Flags().StringArrayVar(&rawArgs, "arg", nil, "Script argument (JSON, or @ID for an element)")
	cmd.Flags().BoolVar(&async, "async", false, "Run as an asynchronous script")
	return cmd
}

// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	formatYAML = "yaml"
	formatJSON = "json"
)

//print writes v to the command's output in the selected format.
func (a *app) print(cmd *cobra.Command, v any) error {
	return printValue(cmd.OutOrStdout(), a.format, v)
}

func printValue(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("yaml encode: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

//plain turns a raw JSON value into maps, slices and scalars that both
//encoders print the same way.
func plain(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

//OKResult is printed by commands without a value.
type OKResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
}

func (a *app) ok(cmd *cobra.Command, action string) error {
	return a.print(cmd, OKResult{OK: true, Action: action})
}

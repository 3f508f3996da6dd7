// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fedesog/w3cwebdriver/firefox"
)

//ScreenshotResult is the output of screenshot.
type ScreenshotResult struct {
	File  string `yaml:"file"  json:"file"`
	Bytes int    `yaml:"bytes" json:"bytes"`
}

func newScreenshotCmd(a *app) *cobra.Command {
	var element string
	var full bool
	cmd := &cobra.Command{
		Use:   "screenshot FILE",
		Short: "Save a PNG screenshot of the viewport, an element or the full page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if full && element != "" {
				return fmt.Errorf("--full and --element are exclusive")
			}
			s, err := a.session()
			if err != nil {
				return err
			}
			var png []byte
			switch {
			case full:
				png, err = firefox.NewTools(s).FullScreenshot(cmd.Context())
			case element != "":
				png, err = s.WebElementFromId(element).Screenshot(cmd.Context())
			default:
				png, err = s.Screenshot(cmd.Context())
			}
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], png, 0644); err != nil {
				return err
			}
			return a.print(cmd, ScreenshotResult{File: args[0], Bytes: len(png)})
		},
	}
	cmd.Flags().StringVar(&element, "element", "", "Reference of the element to capture")
	cmd.Flags().BoolVar(&full, "full", false, "Capture the whole document (geckodriver only)")
	return cmd
}

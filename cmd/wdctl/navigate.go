// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"
)

//ValueResult wraps a single string value.
type ValueResult struct {
	Value string `yaml:"value" json:"value"`
}

func newNavigateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "navigate URL",
		Short: "Load URL in the current browsing context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			if err := s.Url(cmd.Context(), args[0]); err != nil {
				return err
			}
			return a.ok(cmd, "navigate")
		},
	}
}

func newTitleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "title",
		Short: "Print the document title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			title, err := s.Title(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, ValueResult{title})
		},
	}
}

func newURLCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "url",
		Short: "Print the URL of the current document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			url, err := s.GetUrl(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, ValueResult{url})
		},
	}
}

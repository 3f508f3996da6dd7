// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	webdriver "github.com/fedesog/w3cwebdriver"
	"github.com/fedesog/w3cwebdriver/internal/config"
)

//TimeoutsResult prints durations; an absent script timeout is "never".
type TimeoutsResult struct {
	Script   string `yaml:"script"   json:"script"`
	PageLoad string `yaml:"pageLoad" json:"pageLoad"`
	Implicit string `yaml:"implicit" json:"implicit"`
}

func formatTimeout(d *time.Duration) string {
	if d == nil {
		return "never"
	}
	return d.String()
}

func timeoutsResult(t webdriver.Timeouts) TimeoutsResult {
	return TimeoutsResult{
		Script:   formatTimeout(t.Script),
		PageLoad: formatTimeout(t.PageLoad),
		Implicit: formatTimeout(t.Implicit),
	}
}

func newTimeoutsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeouts",
		Short: "Read and change the session timeouts",
	}

	getCmd := &cobra.Command{
		Use:   "get",
		Short: "Print the session timeouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			t, err := s.Timeouts(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, timeoutsResult(t))
		},
	}

	var set config.TimeoutsConfig
	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Change some timeouts and keep the others",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if set.IsZero() {
				return errors.New("specify at least one of --script, --page-load, --implicit")
			}
			partial, err := set.Timeouts()
			if err != nil {
				return err
			}
			s, err := a.session()
			if err != nil {
				return err
			}
			if err := s.UpdateTimeouts(cmd.Context(), partial); err != nil {
				return err
			}
			t, err := s.Timeouts(cmd.Context())
			if err != nil {
				return err
			}
			return a.print(cmd, timeoutsResult(t))
		},
	}
	setCmd.Flags().StringVar(&set.Script, "script", "", "Script timeout, e.g. 30s")
	setCmd.Flags().StringVar(&set.PageLoad, "page-load", "", "Page load timeout, e.g. 5m")
	setCmd.Flags().StringVar(&set.Implicit, "implicit", "", "Implicit wait, e.g. 0s")

	cmd.AddCommand(getCmd, setCmd)
	return cmd
}

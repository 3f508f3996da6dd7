// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	webdriver "github.com/fedesog/w3cwebdriver"
	"github.com/fedesog/w3cwebdriver/internal/config"
)

//StatusResult is the output of status.
type StatusResult struct {
	Ready   bool   `yaml:"ready"             json:"ready"`
	Message string `yaml:"message"           json:"message"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
}

//SessionResult is the output of session new.
type SessionResult struct {
	SessionID    string         `yaml:"sessionId"    json:"sessionId"`
	Capabilities map[string]any `yaml:"capabilities" json:"capabilities"`
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Ask whether the remote end can create sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := a.client().Status(cmd.Context())
			if err != nil {
				return err
			}
			result := StatusResult{Ready: status.Ready, Message: status.Message}
			if status.Build != nil {
				result.Version = status.Build.Version
			}
			return a.print(cmd, result)
		},
	}
}

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Create and delete sessions",
	}

	var capsFile string
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Create a session and print its id",
		Long:  "Create a session. Capabilities come from --caps or the config's capabilities_file; configured timeouts are applied to the new session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := webdriver.SessionRequest{}
			if capsFile == "" {
				capsFile = a.cfg.CapabilitiesFile
			}
			if capsFile != "" {
				var err error
				if req, err = config.LoadCapabilities(capsFile); err != nil {
					return err
				}
			}
			s, err := a.client().NewSession(cmd.Context(), req)
			if err != nil {
				return err
			}
			log.Info().Str("session", string(s.ID)).Msg("session created")
			if !a.cfg.Timeouts.IsZero() {
				timeouts, err := a.cfg.Timeouts.Timeouts()
				if err != nil {
					return err
				}
				if err := s.UpdateTimeouts(cmd.Context(), timeouts); err != nil {
					return err
				}
			}
			return a.print(cmd, SessionResult{SessionID: string(s.ID), Capabilities: s.Capabilities})
		},
	}
	newCmd.Flags().StringVar(&capsFile, "caps", "", "Capabilities file (JSON with comments)")

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the session named by --session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			if err := s.Delete(cmd.Context()); err != nil {
				return err
			}
			return a.ok(cmd, "session delete")
		},
	}

	cmd.AddCommand(newCmd, deleteCmd)
	return cmd
}

// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	webdriver "github.com/fedesog/w3cwebdriver"
)

//CookieResult is a cookie as printed by wdctl.
type CookieResult struct {
	Name     string `yaml:"name"               json:"name"`
	Value    string `yaml:"value"              json:"value"`
	Path     string `yaml:"path,omitempty"     json:"path,omitempty"`
	Domain   string `yaml:"domain,omitempty"   json:"domain,omitempty"`
	Secure   bool   `yaml:"secure,omitempty"   json:"secure,omitempty"`
	HTTPOnly bool   `yaml:"httpOnly,omitempty" json:"httpOnly,omitempty"`
	Expiry   *int64 `yaml:"expiry,omitempty"   json:"expiry,omitempty"`
	SameSite string `yaml:"sameSite,omitempty" json:"sameSite,omitempty"`
}

func cookieResult(c webdriver.Cookie) CookieResult {
	return CookieResult{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Domain:   c.Domain,
		Secure:   c.Secure,
		HTTPOnly: c.HTTPOnly,
		Expiry:   c.Expiry,
		SameSite: string(c.SameSite),
	}
}

func parseSameSite(raw string) (webdriver.SameSite, error) {
	switch raw {
	case "":
		return "", nil
	case "Strict", "strict":
		return webdriver.SameSiteStrict, nil
	case "Lax", "lax":
		return webdriver.SameSiteLax, nil
	case "None", "none":
		return webdriver.SameSiteNone, nil
	}
	return "", fmt.Errorf("invalid same-site %q (use Strict, Lax or None)", raw)
}

func newCookiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cookies",
		Short: "List, add and delete cookies of the current page",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print every cookie visible to the current page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			cookies, err := s.GetCookies(cmd.Context())
			if err != nil {
				return err
			}
			out := make([]CookieResult, len(cookies))
			for i, c := range cookies {
				out[i] = cookieResult(c)
			}
			return a.print(cmd, out)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get NAME",
		Short: "Print the cookie NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			c, err := s.GetNamedCookie(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.print(cmd, cookieResult(c))
		},
	}

	var cookie webdriver.Cookie
	var sameSite string
	var expiry int64
	addCmd := &cobra.Command{
		Use:   "add NAME VALUE",
		Short: "Set a cookie on the current page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session()
			if err != nil {
				return err
			}
			cookie.Name, cookie.Value = args[0], args[1]
			if cookie.SameSite, err = parseSameSite(sameSite); err != nil {
				return err
			}
			if cmd.Flags().Changed("expiry") {
				cookie.Expiry = &expiry
			}
			if err := s.SetCookie(cmd.Context(), cookie); err != nil {
				return err
			}
			return a.ok(cmd, "cookies add")
		},
	}
	addCmd.Flags().StringVar(&cookie.Path, "path", "", "Cookie path")
	addCmd.Flags().StringVar(&cookie.Domain, "domain", "", "Cookie domain")
	addCmd.Flags().BoolVar(&cookie.Secure, "secure", false, "Secure cookie")
	addCmd.Flags().BoolVar(&cookie.HTTPOnly, "http-only", false, "HTTP-only cookie")
	addCmd.Flags().Int64Var(&expiry, "expiry", 0, "Expiry, seconds since the Unix epoch")
	addCmd.Flags().StringVar(&sameSite, "same-site", "", "Strict, Lax or None")

	var all bool
	deleteCmd := &cobra.Command{
		Use:   "delete [NAME]",
		Short: "Delete the cookie NAME, or every cookie with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("specify either NAME or --all")
			}
			s, err := a.session()
			if err != nil {
				return err
			}
			if all {
				err = s.DeleteCookies(cmd.Context())
			} else {
				err = s.DeleteCookieByName(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return a.ok(cmd, "cookies delete")
		},
	}
	deleteCmd.Flags().BoolVar(&all, "all", false, "Delete every cookie")

	cmd.AddCommand(listCmd, getCmd, addCmd, deleteCmd)
	return cmd
}

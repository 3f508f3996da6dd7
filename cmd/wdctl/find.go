// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	webdriver "github.com/fedesog/w3cwebdriver"
)

//FindResult lists the references of the matched elements.
type FindResult struct {
	Elements []string `yaml:"elements" json:"elements"`
}

func locator(using, value string) (webdriver.By, error) {
	switch strings.ToLower(using) {
	case "css":
		return webdriver.ByCSS(value), nil
	case "xpath":
		return webdriver.ByXPath(value), nil
	case "link":
		return webdriver.ByLinkText(value), nil
	case "partial-link":
		return webdriver.ByPartialLinkText(value), nil
	case "tag":
		return webdriver.ByTagName(value), nil
	case "id":
		return webdriver.ByID(value), nil
	case "name":
		return webdriver.ByName(value), nil
	case "class":
		return webdriver.ByClassName(value), nil
	}
	return webdriver.By{}, fmt.Errorf("unknown locator strategy %q (use css, xpath, link, partial-link, tag, id, name or class)", using)
}

func newFindCmd(a *app) *cobra.Command {
	var using, from string
	var all bool
	cmd := &cobra.Command{
		Use:   "find VALUE",
		Short: "Find elements and print their references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			by, err := locator(using, args[0])
			if err != nil {
				return err
			}
			s, err := a.session()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var found []webdriver.WebElement
			switch {
			case from != "" && all:
				found, err = s.WebElementFromId(from).FindElements(ctx, by)
			case from != "":
				var el webdriver.WebElement
				el, err = s.WebElementFromId(from).FindElement(ctx, by)
				found = []webdriver.WebElement{el}
			case all:
				found, err = s.FindElements(ctx, by)
			default:
				var el webdriver.WebElement
				el, err = s.FindElement(ctx, by)
				found = []webdriver.WebElement{el}
			}
			if errors.Is(err, webdriver.ErrNoSuchElement) {
				return fmt.Errorf("no element matches %s %q", by.Using, by.Value)
			}
			if err != nil {
				return err
			}
			result := FindResult{Elements: make([]string, len(found))}
			for i, el := range found {
				result.Elements[i] = el.ID()
			}
			return a.print(cmd, result)
		},
	}
	cmd.Flags().StringVar(&using, "using", "css", "Locator strategy")
	cmd.Flags().StringVar(&from, "from", "", "Search below the element with this reference")
	cmd.Flags().BoolVar(&all, "all", false, "Print every match instead of the first")
	return cmd
}

// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package firefox holds the commands geckodriver adds to the W3C protocol
// under the moz/ prefix.
package firefox

import (
	"encoding/base64"

	webdriver "github.com/fedesog/w3cwebdriver"
)

//Context in which script and element commands run.
type Context string

const (
	ContextContent = Context("content")
	ContextChrome  = Context("chrome")
)

//Install an add-on from a path on the machine running geckodriver.
type InstallAddon struct {
	Path      string
	Temporary bool
}

func (c InstallAddon) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return webdriver.NewRequest(webdriver.MethodPost, webdriver.SessionPath(id, "/moz/addon/install")).
		WithBody(map[string]any{"path": c.Path, "temporary": c.Temporary})
}

//Install an add-on sent with the request, for remote ends that can't read
//the client's filesystem.
type InstallAddonData struct {
	Data      []byte
	Temporary bool
}

func (c InstallAddonData) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return webdriver.NewRequest(webdriver.MethodPost, webdriver.SessionPath(id, "/moz/addon/install")).
		WithBody(map[string]any{"addon": base64.StdEncoding.EncodeToString(c.Data), "temporary": c.Temporary})
}

type UninstallAddon struct {
	ID string
}

func (c UninstallAddon) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return webdriver.NewRequest(webdriver.MethodPost, webdriver.SessionPath(id, "/moz/addon/uninstall")).
		WithBody(map[string]any{"id": c.ID})
}

type GetContext struct{}

func (GetContext) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return webdriver.NewRequest(webdriver.MethodGet, webdriver.SessionPath(id, "/moz/context"))
}

type SetContext struct {
	Context Context
}

func (c SetContext) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return webdriver.NewRequest(webdriver.MethodPost, webdriver.SessionPath(id, "/moz/context")).
		WithBody(map[string]any{"context": string(c.Context)})
}

//Screenshot of the whole document, not only the viewport.
type TakeFullScreenshot struct{}

func (TakeFullScreenshot) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return webdriver.NewRequest(webdriver.MethodGet, webdriver.SessionPath(id, "/moz/screenshot/full"))
}

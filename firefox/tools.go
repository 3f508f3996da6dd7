// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package firefox

import (
	"context"
	"encoding/base64"
	"fmt"

	webdriver "github.com/fedesog/w3cwebdriver"
)

//Tools sends the moz/ commands on a session.
type Tools struct {
	s *webdriver.Session
}

func NewTools(s *webdriver.Session) *Tools {
	return &Tools{s: s}
}

//Install an add-on and return its id.
func (t *Tools) InstallAddon(ctx context.Context, path string, temporary bool) (string, error) {
	var id string
	err := t.s.Decode(ctx, InstallAddon{path, temporary}, &id)
	return id, err
}

func (t *Tools) InstallAddonData(ctx context.Context, data []byte, temporary bool) (string, error) {
	var id string
	err := t.s.Decode(ctx, InstallAddonData{data, temporary}, &id)
	return id, err
}

func (t *Tools) UninstallAddon(ctx context.Context, id string) error {
	_, err := t.s.Do(ctx, UninstallAddon{id})
	return err
}

func (t *Tools) Context(ctx context.Context) (Context, error) {
	var c Context
	err := t.s.Decode(ctx, GetContext{}, &c)
	return c, err
}

func (t *Tools) SetContext(ctx context.Context, c Context) error {
	if c != ContextContent && c != ContextChrome {
		return &webdriver.EncodingError{Op: "context", Err: fmt.Errorf("invalid context %q", c)}
	}
	_, err := t.s.Do(ctx, SetContext{c})
	return err
}

//FullScreenshot returns the PNG bytes of the whole document.
func (t *Tools) FullScreenshot(ctx context.Context) ([]byte, error) {
	var encoded string
	if err := t.s.Decode(ctx, TakeFullScreenshot{}, &encoded); err != nil {
		return nil, err
	}
	buf, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &webdriver.DecodeError{Target: "screenshot", Err: err}
	}
	return buf, nil
}

// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chromium

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	webdriver "github.com/fedesog/w3cwebdriver"
)

//DevTools sends the chromium commands on a session. It holds no state of
//its own.
type DevTools struct {
	s *webdriver.Session
}

func NewDevTools(s *webdriver.Session) *DevTools {
	return &DevTools{s: s}
}

func (d *DevTools) LaunchApp(ctx context.Context, appID string) error {
	_, err := d.s.Do(ctx, LaunchApp{appID})
	return err
}

func (d *DevTools) NetworkConditions(ctx context.Context) (NetworkConditions, error) {
	var nc NetworkConditions
	err := d.s.Decode(ctx, GetNetworkConditions{}, &nc)
	return nc, err
}

func (d *DevTools) SetNetworkConditions(ctx context.Context, nc NetworkConditions) error {
	_, err := d.s.Do(ctx, SetNetworkConditions{nc})
	return err
}

//ExecuteCdp runs a DevTools Protocol command. params is marshalled to JSON
//(nil sends {}) and the command result is returned undecoded.
func (d *DevTools) ExecuteCdp(ctx context.Context, cmd string, params any) (json.RawMessage, error) {
	var raw json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return nil, &webdriver.EncodingError{Op: "cdp " + cmd, Err: err}
		}
		raw = data
	}
	return d.ExecuteCdpRaw(ctx, cmd, raw)
}

//ExecuteCdpRaw is ExecuteCdp with params forwarded verbatim.
func (d *DevTools) ExecuteCdpRaw(ctx context.Context, cmd string, params json.RawMessage) (json.RawMessage, error) {
	log.Debug().Str("session", d.s.ID.String()).Str("cmd", cmd).Msg("cdp execute")
	return d.s.Do(ctx, ExecuteCdpCommand{Command: cmd, Params: params})
}

//Sink is a Cast receiver.
type Sink struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Session string `json:"session,omitempty"`
}

func (d *DevTools) Sinks(ctx context.Context) ([]Sink, error) {
	var sinks []Sink
	err := d.s.Decode(ctx, GetSinks{}, &sinks)
	return sinks, err
}

func (d *DevTools) IssueMessage(ctx context.Context) (string, error) {
	var msg *string
	if err := d.s.Decode(ctx, GetIssueMessage{}, &msg); err != nil {
		return "", err
	}
	if msg == nil {
		return "", nil
	}
	return *msg, nil
}

func (d *DevTools) SetSinkToUse(ctx context.Context, sink string) error {
	_, err := d.s.Do(ctx, SetSinkToUse{sink})
	return err
}

func (d *DevTools) StartTabMirroring(ctx context.Context, sink string) error {
	_, err := d.s.Do(ctx, StartTabMirroring{sink})
	return err
}

func (d *DevTools) StopCasting(ctx context.Context, sink string) error {
	_, err := d.s.Do(ctx, StopCasting{sink})
	return err
}

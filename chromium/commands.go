// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chromium holds the commands chromedriver adds to the W3C
// protocol: app launching, network emulation, DevTools passthrough and
// Cast. Each is a webdriver.Command and is sent with Session.Do like any
// standard command.
package chromium

import (
	"encoding/json"

	webdriver "github.com/fedesog/w3cwebdriver"
)

//Network conditions emulated by the browser. Latency is in milliseconds,
//throughputs in bytes per second; a negative throughput means unlimited.
type NetworkConditions struct {
	Offline            bool  `json:"offline"`
	Latency            int64 `json:"latency"`
	DownloadThroughput int64 `json:"download_throughput"`
	UploadThroughput   int64 `json:"upload_throughput"`
}

//NewNetworkConditions returns conditions with no emulation applied.
func NewNetworkConditions() NetworkConditions {
	return NetworkConditions{DownloadThroughput: -1, UploadThroughput: -1}
}

//Launch a Chrome app by id.
type LaunchApp struct {
	ID string
}

func (c LaunchApp) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return webdriver.NewRequest(webdriver.MethodPost, webdriver.SessionPath(id, "/chromium/launch_app")).
		WithBody(map[string]any{"id": c.ID})
}

type GetNetworkConditions struct{}

func (GetNetworkConditions) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return webdriver.NewRequest(webdriver.MethodGet, webdriver.SessionPath(id, "/chromium/network_conditions"))
}

type SetNetworkConditions struct {
	Conditions NetworkConditions
}

func (c SetNetworkConditions) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return webdriver.NewRequest(webdriver.MethodPost, webdriver.SessionPath(id, "/chromium/network_conditions")).
		WithBody(map[string]any{"network_conditions": c.Conditions})
}

//Execute a Chrome DevTools Protocol command. Params is sent as it is; nil
//sends an empty object.
type ExecuteCdpCommand struct {
	Command string
	Params  json.RawMessage
}

func (c ExecuteCdpCommand) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	params := c.Params
	if len(params) == 0 {
		params = json.RawMessage("{}")
	}
	name, _ := json.Marshal(c.Command)
	body := make(json.RawMessage, 0, len(name)+len(params)+20)
	body = append(body, `{"cmd":`...)
	body = append(body, name...)
	body = append(body, `,"params":`...)
	body = append(body, params...)
	body = append(body, '}')
	return webdriver.NewRequest(webdriver.MethodPost, webdriver.SessionPath(id, "/goog/cdp/execute")).
		WithBody(body)
}

//List the Cast sinks (receivers) available to the browser.
type GetSinks struct{}

func (GetSinks) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return webdriver.NewRequest(webdriver.MethodGet, webdriver.SessionPath(id, "/goog/cast/get_sinks"))
}

//Get the current Cast issue message, if any.
type GetIssueMessage struct{}

func (GetIssueMessage) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return webdriver.NewRequest(webdriver.MethodGet, webdriver.SessionPath(id, "/goog/cast/get_issue_message"))
}

//Select the sink used by the next Cast session.
type SetSinkToUse struct {
	SinkName string
}

func (c SetSinkToUse) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return sinkRequest(id, "/goog/cast/set_sink_to_use", c.SinkName)
}

//Mirror the current tab to a sink.
type StartTabMirroring struct {
	SinkName string
}

func (c StartTabMirroring) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return sinkRequest(id, "/goog/cast/start_tab_mirroring", c.SinkName)
}

type StopCasting struct {
	SinkName string
}

func (c StopCasting) FormatRequest(id webdriver.SessionID) *webdriver.Request {
	return sinkRequest(id, "/goog/cast/stop_casting", c.SinkName)
}

func sinkRequest(id webdriver.SessionID, path, sink string) *webdriver.Request {
	return webdriver.NewRequest(webdriver.MethodPost, webdriver.SessionPath(id, path)).
		WithBody(map[string]any{"sinkName": sink})
}

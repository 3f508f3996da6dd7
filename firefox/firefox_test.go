// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package firefox_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"testing"

	webdriver "github.com/fedesog/w3cwebdriver"
	"github.com/fedesog/w3cwebdriver/firefox"
	"github.com/fedesog/w3cwebdriver/internal/testutil/fakeremote"
)

func TestFormatRequest(t *testing.T) {
	const sid = webdriver.SessionID("ff-1")
	tests := []struct {
		name   string
		cmd    webdriver.Command
		method webdriver.Method
		path   string
		body   map[string]any
	}{
		{"install", firefox.InstallAddon{Path: "/tmp/a.xpi", Temporary: true}, webdriver.MethodPost, "/session/ff-1/moz/addon/install", map[string]any{"path": "/tmp/a.xpi", "temporary": true}},
		{"install data", firefox.InstallAddonData{Data: []byte("xpi")}, webdriver.MethodPost, "/session/ff-1/moz/addon/install", map[string]any{"addon": "eHBp", "temporary": false}},
		{"uninstall", firefox.UninstallAddon{ID: "a@b"}, webdriver.MethodPost, "/session/ff-1/moz/addon/uninstall", map[string]any{"id": "a@b"}},
		{"get context", firefox.GetContext{}, webdriver.MethodGet, "/session/ff-1/moz/context", nil},
		{"set context", firefox.SetContext{Context: firefox.ContextChrome}, webdriver.MethodPost, "/session/ff-1/moz/context", map[string]any{"context": "chrome"}},
		{"full screenshot", firefox.TakeFullScreenshot{}, webdriver.MethodGet, "/session/ff-1/moz/screenshot/full", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.cmd.FormatRequest(sid)
			if req.Method != tt.method || req.Path != tt.path {
				t.Fatalf("got %s, want %s %s", req, tt.method, tt.path)
			}
			if tt.body == nil {
				if req.Body != nil {
					t.Fatalf("unexpected body %v", req.Body)
				}
				return
			}
			data, err := json.Marshal(req.Body)
			if err != nil {
				t.Fatal(err)
			}
			var got map[string]any
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.body) {
				t.Fatalf("body: got %v, want %v", got, tt.body)
			}
		})
	}
}

func newTools(t *testing.T) (*fakeremote.Server, *webdriver.Session, *firefox.Tools) {
	t.Helper()
	remote := fakeremote.New(t)
	session, err := webdriver.NewClient(remote.URL).NewSession(context.Background(), webdriver.SessionRequest{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	remote.Reset()
	return remote, session, firefox.NewTools(session)
}

func TestToolsInstallAddon(t *testing.T) {
	remote, session, tools := newTools(t)
	remote.Stub("POST", "/session/"+string(session.ID)+"/moz/addon/install", http.StatusOK, `{"value":"addon@example.org"}`)
	id, err := tools.InstallAddon(context.Background(), "/tmp/addon.xpi", true)
	if err != nil || id != "addon@example.org" {
		t.Fatalf("got %q, %v", id, err)
	}
	var sent struct {
		Path      string `json:"path"`
		Temporary bool   `json:"temporary"`
	}
	if err := remote.Last(t).Decode(&sent); err != nil || sent.Path != "/tmp/addon.xpi" || !sent.Temporary {
		t.Fatalf("sent %+v, %v", sent, err)
	}
}

func TestToolsContext(t *testing.T) {
	remote, session, tools := newTools(t)
	ctx := context.Background()
	if err := tools.SetContext(ctx, firefox.ContextChrome); err != nil {
		t.Fatal(err)
	}
	if got := string(remote.Last(t).Body); got != `{"context":"chrome"}` {
		t.Fatalf("sent %s", got)
	}
	remote.Stub("GET", "/session/"+string(session.ID)+"/moz/context", http.StatusOK, `{"value":"chrome"}`)
	c, err := tools.Context(ctx)
	if err != nil || c != firefox.ContextChrome {
		t.Fatalf("got %q, %v", c, err)
	}
}

func TestToolsSetContextRejectsUnknown(t *testing.T) {
	remote, _, tools := newTools(t)
	err := tools.SetContext(context.Background(), firefox.Context("page"))
	var eerr *webdriver.EncodingError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
	if n := len(remote.Requests()); n != 0 {
		t.Fatalf("expected nothing sent, got %d requests", n)
	}
}

func TestToolsFullScreenshot(t *testing.T) {
	remote, session, tools := newTools(t)
	remote.Stub("GET", "/session/"+string(session.ID)+"/moz/screenshot/full", http.StatusOK, `{"value":"iVBORw0KGgo="}`)
	buf, err := tools.FullScreenshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if string(buf[1:4]) != "PNG" {
		t.Fatalf("unexpected bytes %v", buf)
	}

	remote.Stub("GET", "/session/"+string(session.ID)+"/moz/screenshot/full", http.StatusOK, `{"value":"not base64!"}`)
	_, err = tools.FullScreenshot(context.Background())
	var derr *webdriver.DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

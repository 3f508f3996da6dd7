// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/fedesog/w3cwebdriver/internal/testutil/fakeremote"
)

func newFakeSession(t *testing.T) (*fakeremote.Server, *Session) {
	t.Helper()
	remote := fakeremote.New(t)
	s, err := NewClient(remote.URL).NewSession(context.Background(), SessionRequest{
		AlwaysMatch: Capabilities{"acceptInsecureCerts": true},
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	remote.Reset()
	return remote, s
}

func TestNewSession(t *testing.T) {
	remote := fakeremote.New(t)
	s, err := NewClient(remote.URL).NewSession(context.Background(), SessionRequest{
		AlwaysMatch: Capabilities{"browserName": "fake"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if s.ID == "" || s.Capabilities["browserName"] != "fake" {
		t.Fatalf("unexpected session %+v", s)
	}
	var sent struct {
		Capabilities struct {
			AlwaysMatch map[string]any   `json:"alwaysMatch"`
			FirstMatch  []map[string]any `json:"firstMatch"`
		} `json:"capabilities"`
	}
	if err := remote.Last(t).Decode(&sent); err != nil || sent.Capabilities.AlwaysMatch["browserName"] != "fake" {
		t.Fatalf("sent %+v, %v", sent, err)
	}
}

func TestNewSessionLegacyReply(t *testing.T) {
	remote := fakeremote.New(t)
	remote.Stub("POST", "/session", http.StatusOK, `{"status":0,"sessionId":"legacy-1","value":{"browserName":"old"}}`)
	s, err := NewClient(remote.URL).NewSession(context.Background(), SessionRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != "legacy-1" || s.Capabilities["browserName"] != "old" {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestNewSessionLegacyBadCapabilities(t *testing.T) {
	remote := fakeremote.New(t)
	remote.Stub("POST", "/session", http.StatusOK, `{"status":0,"sessionId":"legacy-2","value":"ready"}`)
	_, err := NewClient(remote.URL).NewSession(context.Background(), SessionRequest{})
	var derr *DecodeError
	if !errors.As(err, &derr) || derr.Target != "capabilities" {
		t.Fatalf("expected capabilities DecodeError, got %v", err)
	}
}

func TestNewSessionPrefersW3CReply(t *testing.T) {
	remote := fakeremote.New(t)
	remote.Stub("POST", "/session", http.StatusOK,
		`{"sessionId":"outer","value":{"sessionId":"inner","capabilities":{"browserName":"new"}}}`)
	s, err := NewClient(remote.URL).NewSession(context.Background(), SessionRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if s.ID != "inner" || s.Capabilities["browserName"] != "new" {
		t.Fatalf("unexpected session %+v", s)
	}
}

func TestNewSessionWithoutID(t *testing.T) {
	remote := fakeremote.New(t)
	remote.Stub("POST", "/session", http.StatusOK, `{"value":{"capabilities":{}}}`)
	_, err := NewClient(remote.URL).NewSession(context.Background(), SessionRequest{})
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestClientStatus(t *testing.T) {
	remote := fakeremote.New(t)
	status, err := NewClient(remote.URL).Status(context.Background())
	if err != nil || !status.Ready {
		t.Fatalf("got %+v, %v", status, err)
	}
}

func TestNavigation(t *testing.T) {
	remote, s := newFakeSession(t)
	ctx := context.Background()
	if err := s.Url(ctx, "https://example.com/a"); err != nil {
		t.Fatal(err)
	}
	url, err := s.GetUrl(ctx)
	if err != nil || url != "https://example.com/a" {
		t.Fatalf("got %q, %v", url, err)
	}
	title, err := s.Title(ctx)
	if err != nil || title != "fake https://example.com/a" {
		t.Fatalf("got %q, %v", title, err)
	}
	if err := s.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	last := remote.Last(t)
	if last.Method != "POST" || last.Path != "/session/"+string(s.ID)+"/refresh" || string(last.Body) != "{}" {
		t.Fatalf("bodiless POST sent as %s %s %q", last.Method, last.Path, last.Body)
	}
}

func TestUpdateTimeoutsWritesFullObject(t *testing.T) {
	remote, s := newFakeSession(t)
	ctx := context.Background()
	err := s.UpdateTimeouts(ctx, NewTimeouts(Duration(60*time.Second), Duration(60*time.Second), Duration(30*time.Second)))
	if err != nil {
		t.Fatal(err)
	}
	steps := []struct {
		implicit time.Duration
		want     string
	}{
		{0, `{"script":60000,"pageLoad":60000,"implicit":0}`},
		{10 * time.Second, `{"script":60000,"pageLoad":60000,"implicit":10000}`},
	}
	for _, step := range steps {
		remote.Reset()
		if err := s.SetImplicitWaitTimeout(ctx, step.implicit); err != nil {
			t.Fatal(err)
		}
		reqs := remote.Requests()
		if len(reqs) != 2 || reqs[0].Method != "GET" || reqs[1].Method != "POST" {
			t.Fatalf("expected GET then POST, got %+v", reqs)
		}
		var got, want map[string]any
		json.Unmarshal(reqs[1].Body, &got)
		json.Unmarshal([]byte(step.want), &want)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("wrote %s, want %s", reqs[1].Body, step.want)
		}
		current, err := s.Timeouts(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if *current.Implicit != step.implicit || *current.Script != time.Minute || *current.PageLoad != time.Minute {
			t.Fatalf("remote holds %+v", current)
		}
	}
}

func TestUpdateTimeoutsKeepsEarlierFields(t *testing.T) {
	remote, s := newFakeSession(t)
	ctx := context.Background()
	steps := []struct {
		partial Timeouts
		want    string
	}{
		{Timeouts{Implicit: Duration(0)}, `{"script":30000,"pageLoad":300000,"implicit":0}`},
		{Timeouts{PageLoad: Duration(10 * time.Second)}, `{"script":30000,"pageLoad":10000,"implicit":0}`},
		{Timeouts{Script: Duration(10 * time.Second)}, `{"script":10000,"pageLoad":10000,"implicit":0}`},
	}
	for i, step := range steps {
		remote.Reset()
		if err := s.UpdateTimeouts(ctx, step.partial); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		reqs := remote.Requests()
		if len(reqs) != 2 || reqs[0].Method != "GET" || reqs[1].Method != "POST" {
			t.Fatalf("step %d: expected GET then POST, got %+v", i, reqs)
		}
		var got, want map[string]any
		json.Unmarshal(reqs[1].Body, &got)
		json.Unmarshal([]byte(step.want), &want)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("step %d: wrote %s, want %s", i, reqs[1].Body, step.want)
		}
		current, err := s.Timeouts(ctx)
		if err != nil {
			t.Fatal(err)
		}
		var expected Timeouts
		if err := json.Unmarshal([]byte(step.want), &expected); err != nil {
			t.Fatal(err)
		}
		if !current.Equal(expected) {
			t.Fatalf("step %d: remote holds %+v, want %+v", i, current, expected)
		}
	}
}

func TestCookieLifecycle(t *testing.T) {
	_, s := newFakeSession(t)
	ctx := context.Background()
	cookie := NewCookie("cookietest", "fr")
	cookie.Domain = ".wikipedia.org"
	cookie.Path = "/"
	cookie.SameSite = SameSiteLax
	if err := s.SetCookie(ctx, cookie); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetNamedCookie(ctx, "cookietest")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, cookie) {
		t.Fatalf("got %+v, want %+v", got, cookie)
	}
	all, err := s.GetCookies(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("got %+v, %v", all, err)
	}
	if err := s.DeleteCookieByName(ctx, "cookietest"); err != nil {
		t.Fatal(err)
	}
	_, err = s.GetNamedCookie(ctx, "cookietest")
	if !errors.Is(err, ErrNoSuchCookie) {
		t.Fatalf("expected no such cookie, got %v", err)
	}
	if err := s.DeleteCookies(ctx); err != nil {
		t.Fatal(err)
	}
}

func TestScriptReturnsUsableElement(t *testing.T) {
	remote, s := newFakeSession(t)
	ctx := context.Background()
	eid := remote.AddElement("#main")
	remote.SetProperty(eid, "id", "main")
	remote.OnExecute(func(script string, args []any) (any, *fakeremote.Error) {
		return fakeremote.ElementRef(eid), nil
	})
	ret, err := s.ExecuteScript(ctx, "return document.getElementById('main');", nil)
	if err != nil {
		t.Fatal(err)
	}
	el, err := ret.Element()
	if err != nil {
		t.Fatal(err)
	}
	id, err := el.GetProperty(ctx, "id")
	if err != nil || id != "main" {
		t.Fatalf("got %v, %v", id, err)
	}
	if want := "/session/" + string(s.ID) + "/element/" + eid + "/property/id"; remote.Last(t).Path != want {
		t.Fatalf("read %s, want %s", remote.Last(t).Path, want)
	}
}

func TestScriptArgumentsEncodeHandles(t *testing.T) {
	remote, s := newFakeSession(t)
	ctx := context.Background()
	eid := remote.AddElement("#a")
	el, err := s.FindElement(ctx, ByCSS("#a"))
	if err != nil {
		t.Fatal(err)
	}
	if el.ID() != eid {
		t.Fatalf("got %s, want %s", el.ID(), eid)
	}
	//the fake echoes the arguments back
	ret, err := s.ExecuteScript(ctx, "return arguments;", []any{el, map[string]any{"nested": []any{el}}, 7})
	if err != nil {
		t.Fatal(err)
	}
	var sent struct {
		Args []any `json:"args"`
	}
	remote.Last(t).Decode(&sent)
	want := []any{
		map[string]any{ElementKey: eid},
		map[string]any{"nested": []any{map[string]any{ElementKey: eid}}},
		float64(7),
	}
	if !reflect.DeepEqual(sent.Args, want) {
		t.Fatalf("sent %v", sent.Args)
	}
	echoed := ret.Value().([]any)
	if back, ok := echoed[0].(WebElement); !ok || !back.Equal(el) {
		t.Fatalf("echoed %#v", echoed[0])
	}
	nested := echoed[1].(map[string]any)["nested"].([]any)
	if back, ok := nested[0].(WebElement); !ok || !back.Equal(el) {
		t.Fatalf("echoed nested %#v", nested[0])
	}
}

func TestStaleElementFailsOnUse(t *testing.T) {
	remote, s := newFakeSession(t)
	ctx := context.Background()
	eid := remote.AddElement("p")
	els, err := s.FindElements(ctx, ByTagName("p"))
	if err != nil || len(els) != 1 {
		t.Fatalf("got %v, %v", els, err)
	}
	remote.RemoveElement(eid)
	//the handle is still a valid value
	if els[0].ID() != eid {
		t.Fatal("handle changed")
	}
	if _, err := els[0].Text(ctx); !errors.Is(err, ErrStaleElementReference) {
		t.Fatalf("expected stale element reference, got %v", err)
	}
}

func TestFindElementNotFound(t *testing.T) {
	_, s := newFakeSession(t)
	_, err := s.FindElement(context.Background(), ByXPath("//nothing"))
	if !errors.Is(err, ErrNoSuchElement) {
		t.Fatalf("expected no such element, got %v", err)
	}
	els, err := s.FindElements(context.Background(), ByXPath("//nothing"))
	if err != nil || len(els) != 0 {
		t.Fatalf("got %v, %v", els, err)
	}
}

func TestEncodingErrorSendsNothing(t *testing.T) {
	remote, s := newFakeSession(t)
	_, err := s.ExecuteScript(context.Background(), "return 1", []any{math.NaN()})
	var eerr *EncodingError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
	if n := len(remote.Requests()); n != 0 {
		t.Fatalf("expected no request, got %d", n)
	}
}

func TestInvalidFrameID(t *testing.T) {
	remote, s := newFakeSession(t)
	err := s.FocusOnFrame(context.Background(), "frame-name")
	var eerr *EncodingError
	if !errors.As(err, &eerr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
	if n := len(remote.Requests()); n != 0 {
		t.Fatalf("expected no request, got %d", n)
	}
	if err := s.FocusOnFrame(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if got := string(remote.Last(t).Body); got != `{"id":null}` {
		t.Fatalf("sent %s", got)
	}
	el := s.WebElementFromId("e-7")
	var noElement *WebElement
	accepted := []struct {
		id   any
		want string
	}{
		{int64(1), `{"id":1}`},
		{uint16(2), `{"id":2}`},
		{json.Number("3"), `{"id":3}`},
		{el, `{"id":{"element-6066-11e4-a52e-4f735466cecf":"e-7"}}`},
		{&el, `{"id":{"element-6066-11e4-a52e-4f735466cecf":"e-7"}}`},
		{noElement, `{"id":null}`},
	}
	for _, tt := range accepted {
		if err := s.FocusOnFrame(context.Background(), tt.id); err != nil {
			t.Fatalf("%T %v: %v", tt.id, tt.id, err)
		}
		if got := string(remote.Last(t).Body); got != tt.want {
			t.Fatalf("%T: sent %s, want %s", tt.id, got, tt.want)
		}
	}
	remote.Reset()
	for _, id := range []any{-1, 65536, json.Number("1.5"), 2.0, ShadowRoot{s, "r"}} {
		if err := s.FocusOnFrame(context.Background(), id); !errors.As(err, &eerr) {
			t.Fatalf("%T %v: expected EncodingError, got %v", id, id, err)
		}
	}
	if n := len(remote.Requests()); n != 0 {
		t.Fatalf("expected no request, got %d", n)
	}
}

func TestDeletedSession(t *testing.T) {
	_, s := newFakeSession(t)
	ctx := context.Background()
	if err := s.Delete(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Title(ctx); !errors.Is(err, ErrInvalidSessionID) {
		t.Fatalf("expected invalid session id, got %v", err)
	}
}

func TestWindowHandles(t *testing.T) {
	_, s := newFakeSession(t)
	ctx := context.Background()
	h, err := s.WindowHandle(ctx)
	if err != nil {
		t.Fatal(err)
	}
	hv, err := s.WindowHandles(ctx)
	if err != nil || len(hv) != 1 || !hv[0].Equal(h) {
		t.Fatalf("got %v, %v", hv, err)
	}
}

func TestDecodeMismatch(t *testing.T) {
	remote, s := newFakeSession(t)
	remote.Stub("GET", "/session/"+string(s.ID)+"/title", http.StatusOK, `{"value":{"not":"a string"}}`)
	_, err := s.Title(context.Background())
	var derr *DecodeError
	if !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestScreenshotDecoding(t *testing.T) {
	remote, s := newFakeSession(t)
	remote.Stub("GET", "/session/"+string(s.ID)+"/screenshot", http.StatusOK, `{"value":"iVBORw0KGgo="}`)
	buf, err := s.Screenshot(context.Background())
	if err != nil || len(buf) != 8 || string(buf[1:4]) != "PNG" {
		t.Fatalf("got %v, %v", buf, err)
	}
}

type failingTransport struct{ err error }

func (f failingTransport) Do(context.Context, *Request, []byte) (*Response, error) {
	return nil, f.err
}

func TestTransportErrorPassesThrough(t *testing.T) {
	down := errors.New("link down")
	s := NewClientWithTransport(failingTransport{down}).AttachSession("s1")
	_, err := s.Do(context.Background(), GetTitle{})
	if err != down {
		t.Fatalf("expected the transport error unchanged, got %v", err)
	}
}

func TestHTTPTransportError(t *testing.T) {
	remote := fakeremote.New(t)
	url := remote.URL
	s := NewClient(url).AttachSession("s1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Title(ctx)
	var terr *TransportError
	if !errors.As(err, &terr) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled TransportError, got %v", err)
	}
}

func TestAttachSession(t *testing.T) {
	remote := fakeremote.New(t)
	client := NewClient(remote.URL)
	created, err := client.NewSession(context.Background(), SessionRequest{})
	if err != nil {
		t.Fatal(err)
	}
	attached := client.AttachSession(created.ID)
	if _, err := attached.GetUrl(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestStorage(t *testing.T) {
	remote, s := newFakeSession(t)
	ctx := context.Background()
	items := map[string]string{}
	remote.OnExecute(func(script string, args []any) (any, *fakeremote.Error) {
		if args[0] != "localStorage" {
			return nil, &fakeremote.Error{Status: 500, Code: "javascript error", Message: "wrong storage"}
		}
		switch len(args) {
		case 3:
			items[args[1].(string)] = args[2].(string)
			return nil, nil
		case 2:
			v, ok := items[args[1].(string)]
			if !ok {
				return nil, nil
			}
			return v, nil
		}
		return len(items), nil
	})
	st := s.LocalStorage()
	if err := st.Set(ctx, "lang", "fr"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := st.Get(ctx, "lang")
	if err != nil || !ok || v != "fr" {
		t.Fatalf("got %q %v %v", v, ok, err)
	}
	if _, ok, err := st.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("got %v %v", ok, err)
	}
	if n, err := st.Size(ctx); err != nil || n != 1 {
		t.Fatalf("got %d %v", n, err)
	}
	var sent struct {
		Args []any `json:"args"`
	}
	remote.Last(t).Decode(&sent)
	if !reflect.DeepEqual(sent.Args, []any{"localStorage"}) {
		t.Fatalf("sent %v", sent.Args)
	}
	if _, err := s.SessionStorage().Size(ctx); !errors.Is(err, ErrJavascript) {
		t.Fatalf("expected javascript error, got %v", err)
	}
}

// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
)

type WebDriver interface {
	//Start webdriver service
	Start() error
	//Stop webdriver service
	Stop() error
	//Query the server's status.
	Status(ctx context.Context) (*Status, error)
	//Create a new session.
	NewSession(ctx context.Context, caps SessionRequest) (*Session, error)
}

//Server status.
type Status struct {
	Ready   bool   `json:"ready"`
	Message string `json:"message"`
	Build   *Build `json:"build,omitempty"`
	OS      *OS    `json:"os,omitempty"`
}

//Server built details.
type Build struct {
	Version  string `json:"version"`
	Revision string `json:"revision,omitempty"`
	Time     string `json:"time,omitempty"`
}

//Server OS details
type OS struct {
	Arch    string `json:"arch"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

//Capabilities is a map that stores capabilities of a session.
type Capabilities map[string]any

//Capabilities requested for a new session. The remote end merges
//AlwaysMatch with each FirstMatch entry in turn and uses the first that it
//can satisfy.
type SessionRequest struct {
	AlwaysMatch Capabilities   `json:"alwaysMatch,omitempty"`
	FirstMatch  []Capabilities `json:"firstMatch,omitempty"`
}

//A session.
//
//A Session is immutable once created and may be used from several
//goroutines; ordering between concurrent commands is up to the transport.
type Session struct {
	ID           SessionID
	Capabilities Capabilities
	transport    Transport
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

//Client talks to a remote end through a Transport.
type Client struct {
	transport Transport
}

func NewClient(baseURL string) *Client {
	return &Client{transport: NewHTTPTransport(baseURL)}
}

func NewClientWithTransport(t Transport) *Client {
	return &Client{transport: t}
}

func (c *Client) SetUrl(u *url.URL) {
	c.transport = NewHTTPTransport(u.String())
}

func (c *Client) Transport() Transport { return c.transport }

func (c *Client) Start() error { return nil }
func (c *Client) Stop() error  { return nil }

//send validates and marshals req, hands it to t and parses the reply.
//Transport errors are returned unchanged.
func send(ctx context.Context, t Transport, req *Request) (*Response, json.RawMessage, error) {
	if t == nil {
		return nil, nil, errors.New("webdriver: no transport")
	}
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	body, err := marshalBody(req)
	if err != nil {
		return nil, nil, err
	}
	resp, err := t.Do(ctx, req, body)
	if err != nil {
		return nil, nil, err
	}
	value, err := parseResponse(resp.StatusCode, resp.Body)
	return resp, value, err
}

func decodeInto(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return &DecodeError{Target: fmt.Sprintf("%T", v), Err: err}
	}
	return nil
}

//Query the server's status.
func (c *Client) Status(ctx context.Context) (*Status, error) {
	_, data, err := send(ctx, c.transport, GetStatus{}.FormatRequest(""))
	if err != nil {
		return nil, err
	}
	status := &Status{}
	err = decodeInto(data, status)
	return status, err
}

//Create a new session.
func (c *Client) NewSession(ctx context.Context, caps SessionRequest) (*Session, error) {
	if caps.AlwaysMatch == nil {
		caps.AlwaysMatch = Capabilities{}
	}
	resp, data, err := send(ctx, c.transport, NewSession{caps}.FormatRequest(""))
	if err != nil {
		return nil, err
	}
	var created struct {
		SessionID    SessionID    `json:"sessionId"`
		Capabilities Capabilities `json:"capabilities"`
	}
	w3cErr := decodeInto(data, &created)
	//legacy remote ends put the id beside the value, which holds the capabilities
	var legacy struct {
		SessionID SessionID `json:"sessionId"`
	}
	if created.SessionID == "" && json.Unmarshal(resp.Body, &legacy) == nil && legacy.SessionID != "" {
		created.SessionID = legacy.SessionID
		created.Capabilities = nil
		if err := json.Unmarshal(data, &created.Capabilities); err != nil {
			return nil, &DecodeError{Target: "capabilities", Err: err}
		}
	} else if w3cErr != nil {
		return nil, w3cErr
	}
	if created.SessionID == "" {
		return nil, &DecodeError{Target: "session", Err: errors.New("no session id in response")}
	}
	return &Session{ID: created.SessionID, Capabilities: created.Capabilities, transport: c.transport}, nil
}

//AttachSession returns a handle to an existing session, e.g. one created by
//another process.
func (c *Client) AttachSession(id SessionID) *Session {
	return &Session{ID: id, Capabilities: Capabilities{}, transport: c.transport}
}

//Do renders cmd for this session, sends it and returns the "value" member
//of the reply. It is the single path every command goes through, standard
//or vendor.
func (s *Session) Do(ctx context.Context, cmd Command) (json.RawMessage, error) {
	_, value, err := send(ctx, s.transport, cmd.FormatRequest(s.ID))
	return value, err
}

func (s *Session) doDecode(ctx context.Context, cmd Command, v any) error {
	data, err := s.Do(ctx, cmd)
	if err != nil {
		return err
	}
	return decodeInto(data, v)
}

//Decode is Do followed by unmarshalling the value into v. A value that
//doesn't fit v is reported as *DecodeError.
func (s *Session) Decode(ctx context.Context, cmd Command, v any) error {
	return s.doDecode(ctx, cmd, v)
}

func (s *Session) doString(ctx context.Context, cmd Command) (string, error) {
	var str string
	err := s.doDecode(ctx, cmd, &str)
	return str, err
}

func (s *Session) doElement(ctx context.Context, cmd Command) (WebElement, error) {
	data, err := s.Do(ctx, cmd)
	if err != nil {
		return WebElement{}, err
	}
	return s.decodeElement(data)
}

func (s *Session) doElements(ctx context.Context, cmd Command) ([]WebElement, error) {
	data, err := s.Do(ctx, cmd)
	if err != nil {
		return nil, err
	}
	ret, err := newScriptRet(s, data)
	if err != nil {
		return nil, err
	}
	return ret.Elements()
}

func (s *Session) decodeElement(data json.RawMessage) (WebElement, error) {
	ret, err := newScriptRet(s, data)
	if err != nil {
		return WebElement{}, err
	}
	return ret.Element()
}

func (s *Session) String() string { return "session " + string(s.ID) }

////////////////////////////////////////////////////////////////////////////////
// SESSION COMMANDS
////////////////////////////////////////////////////////////////////////////////

//Retrieve the capabilities of the specified session.
func (s *Session) GetCapabilities() Capabilities {
	return s.Capabilities
}

//Delete the session.
func (s *Session) Delete(ctx context.Context) error {
	_, err := s.Do(ctx, DeleteSession{})
	return err
}

//Navigate to a new URL.
func (s *Session) Url(ctx context.Context, url string) error {
	_, err := s.Do(ctx, NavigateTo{url})
	return err
}

//Retrieve the URL of the current page.
func (s *Session) GetUrl(ctx context.Context) (string, error) {
	return s.doString(ctx, GetCurrentURL{})
}

//Navigate forwards in the browser history, if possible.
func (s *Session) Forward(ctx context.Context) error {
	_, err := s.Do(ctx, Forward{})
	return err
}

//Navigate backwards in the browser history, if possible.
func (s *Session) Back(ctx context.Context) error {
	_, err := s.Do(ctx, Back{})
	return err
}

//Refresh the current page.
func (s *Session) Refresh(ctx context.Context) error {
	_, err := s.Do(ctx, Refresh{})
	return err
}

//Get the current page title.
func (s *Session) Title(ctx context.Context) (string, error) {
	return s.doString(ctx, GetTitle{})
}

//Get the current page source.
func (s *Session) Source(ctx context.Context) (string, error) {
	return s.doString(ctx, GetPageSource{})
}

//Retrieve the current window handle.
func (s *Session) WindowHandle(ctx context.Context) (WindowHandle, error) {
	handle, err := s.doString(ctx, GetWindowHandle{})
	if err != nil {
		return WindowHandle{}, err
	}
	return WindowHandle{s, handle}, nil
}

//Retrieve the list of all window handles available to the session.
func (s *Session) WindowHandles(ctx context.Context) ([]WindowHandle, error) {
	var hv []string
	if err := s.doDecode(ctx, GetWindowHandles{}, &hv); err != nil {
		return nil, err
	}
	return s.windowHandles(hv), nil
}

func (s *Session) windowHandles(hv []string) []WindowHandle {
	var handles = make([]WindowHandle, len(hv))
	for i, h := range hv {
		handles[i] = WindowHandle{s, h}
	}
	return handles
}

//Change focus to another window, given its server assigned handle.
func (s *Session) FocusOnWindow(ctx context.Context, handle string) error {
	_, err := s.Do(ctx, SwitchToWindow{handle})
	return err
}

//Close the current window and return the handles of the windows left.
func (s *Session) CloseCurrentWindow(ctx context.Context) ([]WindowHandle, error) {
	var hv []string
	if err := s.doDecode(ctx, CloseWindow{}, &hv); err != nil {
		return nil, err
	}
	return s.windowHandles(hv), nil
}

//Open a new tab or window and return its handle. The focus doesn't change.
func (s *Session) NewWindow(ctx context.Context, typ WindowType) (WindowHandle, error) {
	var created struct {
		Handle string `json:"handle"`
	}
	if err := s.doDecode(ctx, NewWindow{typ}, &created); err != nil {
		return WindowHandle{}, err
	}
	return WindowHandle{s, created.Handle}, nil
}

//Get the position and size of the current window.
func (s *Session) GetWindowRect(ctx context.Context) (Rect, error) {
	var rect Rect
	err := s.doDecode(ctx, GetWindowRect{}, &rect)
	return rect, err
}

//Change the position and size of the current window.
func (s *Session) SetWindowRect(ctx context.Context, rect Rect) (Rect, error) {
	var out Rect
	err := s.doDecode(ctx, SetWindowRect{rect}, &out)
	return out, err
}

//Maximize the current window if not already maximized.
func (s *Session) MaximizeWindow(ctx context.Context) (Rect, error) {
	var rect Rect
	err := s.doDecode(ctx, MaximizeWindow{}, &rect)
	return rect, err
}

func (s *Session) MinimizeWindow(ctx context.Context) (Rect, error) {
	var rect Rect
	err := s.doDecode(ctx, MinimizeWindow{}, &rect)
	return rect, err
}

func (s *Session) FullscreenWindow(ctx context.Context) (Rect, error) {
	var rect Rect
	err := s.doDecode(ctx, FullscreenWindow{}, &rect)
	return rect, err
}

//Change focus to another frame on the page. frameId is nil for the top
//level context, a frame index in [0, 65535] or an element handle.
func (s *Session) FocusOnFrame(ctx context.Context, frameId any) error {
	if err := checkFrameID(frameId); err != nil {
		return err
	}
	_, err := s.Do(ctx, SwitchToFrame{frameId})
	return err
}

func checkFrameID(frameId any) error {
	wire, err := EncodeValue(frameId)
	if err != nil {
		return err
	}
	switch x := wire.(type) {
	case nil:
		return nil
	case map[string]any:
		if _, ok := x[ElementRef.Key()]; ok && len(x) == 1 {
			return nil
		}
	case json.Number:
		if n, err := x.Int64(); err == nil && n >= 0 && n <= math.MaxUint16 {
			return nil
		}
	default:
		rv := reflect.ValueOf(x)
		switch {
		case rv.CanInt() && rv.Int() >= 0 && rv.Int() <= math.MaxUint16:
			return nil
		case rv.CanUint() && rv.Uint() <= math.MaxUint16:
			return nil
		}
	}
	return &EncodingError{Op: "frame", Err: fmt.Errorf("invalid frame %v, must be nil, an index in [0, 65535] or a WebElement", frameId)}
}

// Change focus back to parent frame
func (s *Session) FocusParentFrame(ctx context.Context) error {
	_, err := s.Do(ctx, SwitchToParentFrame{})
	return err
}

//WebElementFromId returns a handle for an element reference obtained
//elsewhere. The reference is not checked until the handle is used.
func (s *Session) WebElementFromId(id string) WebElement {
	return WebElement{s, id}
}

//Search for an element on the page, starting from the document root.
func (s *Session) FindElement(ctx context.Context, by By) (WebElement, error) {
	return s.doElement(ctx, FindElement{by})
}

//Search for multiple elements on the page, starting from the document root.
func (s *Session) FindElements(ctx context.Context, by By) ([]WebElement, error) {
	return s.doElements(ctx, FindElements{by})
}

//Get the element on the page that currently has focus.
func (s *Session) GetActiveElement(ctx context.Context) (WebElement, error) {
	return s.doElement(ctx, GetActiveElement{})
}

// Inject a snippet of JavaScript into the page for execution in the context of the currently selected frame. The executed script is assumed to be synchronous and the result of evaluating the script is returned to the client.
// The script argument defines the script to execute in the form of a function body. The value returned by that function will be returned to the client. The function will be invoked with the provided args array and the values may be accessed via the arguments object in the order specified.
// Arguments may be any JSON-primitive, array, or JSON object, and may contain handles at any depth. Likewise, any element in the script result is returned as a WebElement bound to this session.
func (s *Session) ExecuteScript(ctx context.Context, script string, args []any) (*ScriptRet, error) {
	data, err := s.Do(ctx, ExecuteScript{script, args})
	if err != nil {
		return nil, err
	}
	return newScriptRet(s, data)
}

// Inject a snippet of JavaScript into the page for execution in the context of the currently selected frame. The executed script is assumed to be asynchronous and must signal that is done by invoking the provided callback, which is always provided as the final argument to the function. The value to this callback will be returned to the client.
func (s *Session) ExecuteScriptAsync(ctx context.Context, script string, args []any) (*ScriptRet, error) {
	data, err := s.Do(ctx, ExecuteAsyncScript{script, args})
	if err != nil {
		return nil, err
	}
	return newScriptRet(s, data)
}

//Take a screenshot of the current page. Returns PNG bytes.
func (s *Session) Screenshot(ctx context.Context) ([]byte, error) {
	return s.doScreenshot(ctx, TakeScreenshot{})
}

func (s *Session) doScreenshot(ctx context.Context, cmd Command) ([]byte, error) {
	encoded, err := s.doString(ctx, cmd)
	if err != nil {
		return nil, err
	}
	buf, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &DecodeError{Target: "screenshot", Err: err}
	}
	return buf, nil
}

//Dispatch a sequence of actions. See the W3C actions section for the
//shape of each input source.
func (s *Session) PerformActions(ctx context.Context, actions []any) error {
	_, err := s.Do(ctx, PerformActions{actions})
	return err
}

func (s *Session) ReleaseActions(ctx context.Context) error {
	_, err := s.Do(ctx, ReleaseActions{})
	return err
}

//Gets the text of the currently displayed JavaScript alert(), confirm(), or prompt() dialog.
func (s *Session) GetAlertText(ctx context.Context) (string, error) {
	return s.doString(ctx, GetAlertText{})
}

//Sends keystrokes to a JavaScript prompt() dialog.
func (s *Session) SetAlertText(ctx context.Context, text string) error {
	_, err := s.Do(ctx, SendAlertText{text})
	return err
}

//Accepts the currently displayed alert dialog.
func (s *Session) AcceptAlert(ctx context.Context) error {
	_, err := s.Do(ctx, AcceptAlert{})
	return err
}

//Dismisses the currently displayed alert dialog.
func (s *Session) DismissAlert(ctx context.Context) error {
	_, err := s.Do(ctx, DismissAlert{})
	return err
}

// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

////////////////////////////////////////////////////////////////////////////////
// COMMAND LIST
// Commands, paths and bodies are from:
// https://www.w3.org/TR/webdriver2/#endpoints
////////////////////////////////////////////////////////////////////////////////

//Create a new session. The session id argument is ignored.
type NewSession struct {
	Capabilities SessionRequest
}

func (c NewSession) FormatRequest(SessionID) *Request {
	return NewRequest(MethodPost, "/session").WithBody(params{"capabilities": c.Capabilities})
}

//Query the server's status. The session id argument is ignored.
type GetStatus struct{}

func (GetStatus) FormatRequest(SessionID) *Request {
	return NewRequest(MethodGet, "/status")
}

//Delete the session.
type DeleteSession struct{}

func (DeleteSession) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodDelete, sessionPath(id, ""))
}

type GetTimeouts struct{}

func (GetTimeouts) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/timeouts"))
}

//Write the timeouts. Fields left nil are omitted from the body.
type SetTimeouts struct {
	Timeouts Timeouts
}

func (c SetTimeouts) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/timeouts")).WithBody(c.Timeouts)
}

//Navigate to a new URL.
type NavigateTo struct {
	URL string
}

func (c NavigateTo) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/url")).WithBody(params{"url": c.URL})
}

//Retrieve the URL of the current page.
type GetCurrentURL struct{}

func (GetCurrentURL) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/url"))
}

//Navigate backwards in the browser history, if possible.
type Back struct{}

func (Back) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/back"))
}

//Navigate forwards in the browser history, if possible.
type Forward struct{}

func (Forward) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/forward"))
}

//Refresh the current page.
type Refresh struct{}

func (Refresh) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/refresh"))
}

type GetTitle struct{}

func (GetTitle) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/title"))
}

//Retrieve the current window handle.
type GetWindowHandle struct{}

func (GetWindowHandle) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/window"))
}

//Close the current window.
type CloseWindow struct{}

func (CloseWindow) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodDelete, sessionPath(id, "/window"))
}

//Change focus to another window.
type SwitchToWindow struct {
	Handle string
}

func (c SwitchToWindow) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/window")).WithBody(params{"handle": c.Handle})
}

//Retrieve the list of all window handles available to the session.
type GetWindowHandles struct{}

func (GetWindowHandles) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/window/handles"))
}

type WindowType string

const (
	TabWindow    = WindowType("tab")
	NormalWindow = WindowType("window")
)

//Open a new top-level browsing context.
type NewWindow struct {
	Type WindowType
}

func (c NewWindow) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/window/new")).WithBody(params{"type": c.Type})
}

//Change focus to another frame on the page. ID is nil (top level), an
//index or a WebElement.
type SwitchToFrame struct {
	ID any
}

func (c SwitchToFrame) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/frame")).WithBody(params{"id": c.ID})
}

//Change focus back to parent frame
type SwitchToParentFrame struct{}

func (SwitchToParentFrame) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/frame/parent"))
}

type GetWindowRect struct{}

func (GetWindowRect) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/window/rect"))
}

//Change the position and size of the current window.
type SetWindowRect struct {
	Rect Rect
}

func (c SetWindowRect) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/window/rect")).WithBody(c.Rect)
}

type MaximizeWindow struct{}

func (MaximizeWindow) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/window/maximize"))
}

type MinimizeWindow struct{}

func (MinimizeWindow) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/window/minimize"))
}

type FullscreenWindow struct{}

func (FullscreenWindow) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/window/fullscreen"))
}

//Get the element on the page that currently has focus.
type GetActiveElement struct{}

func (GetActiveElement) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/active"))
}

type GetElementShadowRoot struct {
	ElementID string
}

func (c GetElementShadowRoot) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/shadow", c.ElementID))
}

//Search for an element on the page, starting from the document root.
type FindElement struct {
	By By
}

func (c FindElement) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/element")).WithBody(c.By)
}

//Search for multiple elements on the page, starting from the document root.
type FindElements struct {
	By By
}

func (c FindElements) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/elements")).WithBody(c.By)
}

//Search for an element on the page, starting from the identified element.
type FindElementFromElement struct {
	ElementID string
	By        By
}

func (c FindElementFromElement) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/element/%s/element", c.ElementID)).WithBody(c.By)
}

//Search for multiple elements on the page, starting from the identified element.
type FindElementsFromElement struct {
	ElementID string
	By        By
}

func (c FindElementsFromElement) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/element/%s/elements", c.ElementID)).WithBody(c.By)
}

type FindElementFromShadowRoot struct {
	ShadowID string
	By       By
}

func (c FindElementFromShadowRoot) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/shadow/%s/element", c.ShadowID)).WithBody(c.By)
}

type FindElementsFromShadowRoot struct {
	ShadowID string
	By       By
}

func (c FindElementsFromShadowRoot) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/shadow/%s/elements", c.ShadowID)).WithBody(c.By)
}

//Determine if an OPTION element, or an INPUT element of type checkbox or radiobutton is currently selected.
type IsElementSelected struct {
	ElementID string
}

func (c IsElementSelected) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/selected", c.ElementID))
}

//Determine if an element is currently displayed. Not part of W3C but
//served by chromedriver and geckodriver.
type IsElementDisplayed struct {
	ElementID string
}

func (c IsElementDisplayed) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/displayed", c.ElementID))
}

//Determine if an element is currently enabled.
type IsElementEnabled struct {
	ElementID string
}

func (c IsElementEnabled) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/enabled", c.ElementID))
}

//Get the value of an element's attribute.
type GetElementAttribute struct {
	ElementID string
	Name      string
}

func (c GetElementAttribute) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/attribute/%s", c.ElementID, c.Name))
}

//Get the value of an element's DOM property.
type GetElementProperty struct {
	ElementID string
	Name      string
}

func (c GetElementProperty) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/property/%s", c.ElementID, c.Name))
}

//Query the value of an element's computed CSS property.
type GetElementCSSValue struct {
	ElementID string
	Name      string
}

func (c GetElementCSSValue) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/css/%s", c.ElementID, c.Name))
}

//Returns the visible text for the element.
type GetElementText struct {
	ElementID string
}

func (c GetElementText) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/text", c.ElementID))
}

//Query for an element's tag name.
type GetElementTagName struct {
	ElementID string
}

func (c GetElementTagName) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/name", c.ElementID))
}

type GetElementRect struct {
	ElementID string
}

func (c GetElementRect) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/rect", c.ElementID))
}

type GetComputedRole struct {
	ElementID string
}

func (c GetComputedRole) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/computedrole", c.ElementID))
}

type GetComputedLabel struct {
	ElementID string
}

func (c GetComputedLabel) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/computedlabel", c.ElementID))
}

//Click on an element.
type ElementClick struct {
	ElementID string
}

func (c ElementClick) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/element/%s/click", c.ElementID))
}

//Clear a TEXTAREA or text INPUT element's value.
type ElementClear struct {
	ElementID string
}

func (c ElementClear) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/element/%s/clear", c.ElementID))
}

//Send a sequence of key strokes to an element.
type ElementSendKeys struct {
	ElementID string
	Text      string
}

func (c ElementSendKeys) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/element/%s/value", c.ElementID)).WithBody(params{"text": c.Text})
}

//Get the current page source.
type GetPageSource struct{}

func (GetPageSource) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/source"))
}

//Run a synchronous script in the current browsing context. Args may hold
//handles at any depth; they are sent as references.
type ExecuteScript struct {
	Script string
	Args   []any
}

func (c ExecuteScript) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/execute/sync")).WithBody(scriptBody(c.Script, c.Args))
}

//Run an asynchronous script. The script signals completion by calling the
//callback passed as its last argument.
type ExecuteAsyncScript struct {
	Script string
	Args   []any
}

func (c ExecuteAsyncScript) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/execute/async")).WithBody(scriptBody(c.Script, c.Args))
}

func scriptBody(script string, args []any) params {
	if args == nil {
		args = []any{}
	}
	return params{"script": script, "args": args}
}

//Retrieve all cookies visible to the current page.
type GetAllCookies struct{}

func (GetAllCookies) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/cookie"))
}

type GetNamedCookie struct {
	Name string
}

func (c GetNamedCookie) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/cookie/%s", c.Name))
}

//Set a cookie.
type AddCookie struct {
	Cookie Cookie
}

func (c AddCookie) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/cookie")).WithBody(params{"cookie": c.Cookie})
}

//Delete the cookie with the given name.
type DeleteCookie struct {
	Name string
}

func (c DeleteCookie) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodDelete, sessionPath(id, "/cookie/%s", c.Name))
}

//Delete all cookies visible to the current page.
type DeleteAllCookies struct{}

func (DeleteAllCookies) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodDelete, sessionPath(id, "/cookie"))
}

//Dispatch input source action sequences. Actions is sent as is, with
//handles used as pointer origins encoded as references.
type PerformActions struct {
	Actions []any
}

func (c PerformActions) FormatRequest(id SessionID) *Request {
	actions := c.Actions
	if actions == nil {
		actions = []any{}
	}
	return NewRequest(MethodPost, sessionPath(id, "/actions")).WithBody(params{"actions": actions})
}

//Release all keys and pointer buttons currently depressed.
type ReleaseActions struct{}

func (ReleaseActions) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodDelete, sessionPath(id, "/actions"))
}

//Dismisses the currently displayed alert dialog.
type DismissAlert struct{}

func (DismissAlert) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/alert/dismiss"))
}

//Accepts the currently displayed alert dialog.
type AcceptAlert struct{}

func (AcceptAlert) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/alert/accept"))
}

//Gets the text of the currently displayed JavaScript alert(), confirm(), or prompt() dialog.
type GetAlertText struct{}

func (GetAlertText) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/alert/text"))
}

//Sends keystrokes to a JavaScript prompt() dialog.
type SendAlertText struct {
	Text string
}

func (c SendAlertText) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodPost, sessionPath(id, "/alert/text")).WithBody(params{"text": c.Text})
}

//Take a screenshot of the current page.
type TakeScreenshot struct{}

func (TakeScreenshot) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/screenshot"))
}

type TakeElementScreenshot struct {
	ElementID string
}

func (c TakeElementScreenshot) FormatRequest(id SessionID) *Request {
	return NewRequest(MethodGet, sessionPath(id, "/element/%s/screenshot", c.ElementID))
}

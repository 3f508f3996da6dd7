// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"context"
	"fmt"
)

//WebElement is a handle to an element of the remote document. It is a
//weak reference: the element may go away, after which commands on the
//handle fail with ErrStaleElementReference.
type WebElement struct {
	s  *Session
	id string
}

//A shadow root attached to an element.
type ShadowRoot struct {
	s  *Session
	id string
}

//A top-level browsing context (window or tab).
type WindowHandle struct {
	s  *Session
	id string
}

//A child browsing context, as returned by scripts reading window.frames.
type FrameHandle struct {
	s  *Session
	id string
}

func (e WebElement) RefKind() RefKind   { return ElementRef }
func (e WebElement) RefID() string      { return e.id }
func (r ShadowRoot) RefKind() RefKind   { return ShadowRootRef }
func (r ShadowRoot) RefID() string      { return r.id }
func (w WindowHandle) RefKind() RefKind { return WindowRef }
func (w WindowHandle) RefID() string    { return w.id }
func (f FrameHandle) RefKind() RefKind  { return FrameRef }
func (f FrameHandle) RefID() string     { return f.id }

func (e WebElement) MarshalJSON() ([]byte, error)   { return marshalRef(e) }
func (r ShadowRoot) MarshalJSON() ([]byte, error)   { return marshalRef(r) }
func (w WindowHandle) MarshalJSON() ([]byte, error) { return marshalRef(w) }
func (f FrameHandle) MarshalJSON() ([]byte, error)  { return marshalRef(f) }

func sameSession(a, b *Session) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

//Equal reports whether both handles carry the same reference in the same
//session. It does not ask the remote end.
func (e WebElement) Equal(o WebElement) bool {
	return e.id == o.id && sameSession(e.s, o.s)
}

func (w WindowHandle) Equal(o WindowHandle) bool {
	return w.id == o.id && sameSession(w.s, o.s)
}

//ID returns the reference string assigned by the remote end.
func (e WebElement) ID() string   { return e.id }
func (r ShadowRoot) ID() string   { return r.id }
func (w WindowHandle) ID() string { return w.id }
func (f FrameHandle) ID() string  { return f.id }

func (e WebElement) Session() *Session { return e.s }

func (e WebElement) String() string { return "element " + e.id }

//Search for an element on the page, starting from the identified element.
func (e WebElement) FindElement(ctx context.Context, by By) (WebElement, error) {
	return e.s.doElement(ctx, FindElementFromElement{e.id, by})
}

//Search for multiple elements on the page, starting from the identified element.
func (e WebElement) FindElements(ctx context.Context, by By) ([]WebElement, error) {
	return e.s.doElements(ctx, FindElementsFromElement{e.id, by})
}

//Click on an element.
func (e WebElement) Click(ctx context.Context) error {
	_, err := e.s.Do(ctx, ElementClick{e.id})
	return err
}

//Submit a FORM element, or the form the element belongs to.
func (e WebElement) Submit(ctx context.Context) error {
	script := `var el = arguments[0]; var form = el.form || el;
form.dispatchEvent(new Event("submit", {bubbles: true, cancelable: true})) && form.submit();`
	_, err := e.s.ExecuteScript(ctx, script, []any{e})
	return err
}

//Returns the visible text for the element.
func (e WebElement) Text(ctx context.Context) (string, error) {
	return e.s.doString(ctx, GetElementText{e.id})
}

//Send a sequence of key strokes to an element.
func (e WebElement) SendKeys(ctx context.Context, sequence string) error {
	_, err := e.s.Do(ctx, ElementSendKeys{e.id, sequence})
	return err
}

//Query for an element's tag name.
func (e WebElement) Name(ctx context.Context) (string, error) {
	return e.s.doString(ctx, GetElementTagName{e.id})
}

//Clear a TEXTAREA or text INPUT element's value.
func (e WebElement) Clear(ctx context.Context) error {
	_, err := e.s.Do(ctx, ElementClear{e.id})
	return err
}

//Determine if an OPTION element, or an INPUT element of type checkbox or radiobutton is currently selected.
func (e WebElement) IsSelected(ctx context.Context) (bool, error) {
	var isSelected bool
	err := e.s.doDecode(ctx, IsElementSelected{e.id}, &isSelected)
	return isSelected, err
}

//Determine if an element is currently enabled.
func (e WebElement) IsEnabled(ctx context.Context) (bool, error) {
	var isEnabled bool
	err := e.s.doDecode(ctx, IsElementEnabled{e.id}, &isEnabled)
	return isEnabled, err
}

//Determine if an element is currently displayed.
func (e WebElement) IsDisplayed(ctx context.Context) (bool, error) {
	var isDisplayed bool
	err := e.s.doDecode(ctx, IsElementDisplayed{e.id}, &isDisplayed)
	return isDisplayed, err
}

//Get the value of an element's attribute. ok is false when the attribute
//is not set.
func (e WebElement) GetAttribute(ctx context.Context, name string) (value string, ok bool, err error) {
	var attribute *string
	if err := e.s.doDecode(ctx, GetElementAttribute{e.id, name}, &attribute); err != nil {
		return "", false, err
	}
	if attribute == nil {
		return "", false, nil
	}
	return *attribute, true, nil
}

//Get the value of an element's DOM property. Elements held by the property
//are returned as handles.
func (e WebElement) GetProperty(ctx context.Context, name string) (any, error) {
	data, err := e.s.Do(ctx, GetElementProperty{e.id, name})
	if err != nil {
		return nil, err
	}
	return DecodeValue(e.s, data)
}

//Query the value of an element's computed CSS property.
func (e WebElement) GetCssProperty(ctx context.Context, name string) (string, error) {
	return e.s.doString(ctx, GetElementCSSValue{e.id, name})
}

//Determine the element's position and size in CSS pixels.
func (e WebElement) Rect(ctx context.Context) (Rect, error) {
	var rect Rect
	err := e.s.doDecode(ctx, GetElementRect{e.id}, &rect)
	return rect, err
}

func (e WebElement) ComputedRole(ctx context.Context) (string, error) {
	return e.s.doString(ctx, GetComputedRole{e.id})
}

func (e WebElement) ComputedLabel(ctx context.Context) (string, error) {
	return e.s.doString(ctx, GetComputedLabel{e.id})
}

//Get the shadow root attached to the element.
func (e WebElement) ShadowRoot(ctx context.Context) (ShadowRoot, error) {
	data, err := e.s.Do(ctx, GetElementShadowRoot{e.id})
	if err != nil {
		return ShadowRoot{}, err
	}
	value, err := DecodeValue(e.s, data)
	if err != nil {
		return ShadowRoot{}, err
	}
	root, ok := value.(ShadowRoot)
	if !ok {
		return ShadowRoot{}, &DecodeError{Target: "shadow root", Err: fmt.Errorf("remote end returned %T", value)}
	}
	return root, nil
}

//Take a screenshot of the element's bounding box. Returns PNG bytes.
func (e WebElement) Screenshot(ctx context.Context) ([]byte, error) {
	return e.s.doScreenshot(ctx, TakeElementScreenshot{e.id})
}

//Scroll the element into view.
func (e WebElement) ScrollIntoView(ctx context.Context) error {
	_, err := e.s.ExecuteScript(ctx, "arguments[0].scrollIntoView({block: 'center', inline: 'center'});", []any{e})
	return err
}

//Parent returns the parent element.
func (e WebElement) Parent(ctx context.Context) (WebElement, error) {
	ret, err := e.s.ExecuteScript(ctx, "return arguments[0].parentElement;", []any{e})
	if err != nil {
		return WebElement{}, err
	}
	return ret.Element()
}

//Get the innerHTML or outerHTML of the element.
func (e WebElement) InnerHTML(ctx context.Context) (string, error) {
	return e.htmlProperty(ctx, "innerHTML")
}

func (e WebElement) OuterHTML(ctx context.Context) (string, error) {
	return e.htmlProperty(ctx, "outerHTML")
}

func (e WebElement) htmlProperty(ctx context.Context, name string) (string, error) {
	var html string
	err := e.s.doDecode(ctx, GetElementProperty{e.id, name}, &html)
	return html, err
}

//Search for an element inside the shadow root.
func (r ShadowRoot) FindElement(ctx context.Context, by By) (WebElement, error) {
	return r.s.doElement(ctx, FindElementFromShadowRoot{r.id, by})
}

func (r ShadowRoot) FindElements(ctx context.Context, by By) ([]WebElement, error) {
	return r.s.doElements(ctx, FindElementsFromShadowRoot{r.id, by})
}

func (w WindowHandle) String() string { return "window " + w.id }

//Make this window the current one.
func (w WindowHandle) Focus(ctx context.Context) error {
	return w.s.FocusOnWindow(ctx, w.id)
}

//Focus this window and close it.
func (w WindowHandle) Close(ctx context.Context) ([]WindowHandle, error) {
	if err := w.Focus(ctx); err != nil {
		return nil, err
	}
	return w.s.CloseCurrentWindow(ctx)
}

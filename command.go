// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

//Command is anything that can render itself into a Request for a session.
//
//The standard commands of this package implement it, and so can any vendor
//command set defined elsewhere (see the chromium and firefox packages):
//Session.Do accepts every Command the same way.
type Command interface {
	FormatRequest(id SessionID) *Request
}

//CommandFunc adapts a function to the Command interface.
type CommandFunc func(id SessionID) *Request

func (f CommandFunc) FormatRequest(id SessionID) *Request { return f(id) }

//typing saver
type params map[string]any

//Locator strategy of the find commands.
type FindElementStrategy string

const (
	//Returns an element matching a CSS selector.
	CSS_Selector = FindElementStrategy("css selector")
	//Returns an anchor element whose visible text matches the search value.
	LinkText = FindElementStrategy("link text")
	//Returns an anchor element whose visible text partially matches the search value.
	PartialLinkText = FindElementStrategy("partial link text")
	//Returns an element whose tag name matches the search value.
	TagName = FindElementStrategy("tag name")
	//Returns an element matching an XPath expression.
	XPath = FindElementStrategy("xpath")
)

//By is a locator: a strategy and its value.
type By struct {
	Using FindElementStrategy `json:"using"`
	Value string              `json:"value"`
}

func ByCSS(selector string) By { return By{CSS_Selector, selector} }

func ByXPath(expr string) By { return By{XPath, expr} }

func ByLinkText(text string) By { return By{LinkText, text} }

func ByPartialLinkText(text string) By { return By{PartialLinkText, text} }

func ByTagName(name string) By { return By{TagName, name} }

//The W3C protocol has no id, name or class strategies; they are expressed
//as CSS selectors.
func ByID(id string) By { return By{CSS_Selector, "[id=\"" + cssEscape(id) + "\"]"} }

func ByName(name string) By { return By{CSS_Selector, "[name=\"" + cssEscape(name) + "\"]"} }

func ByClassName(name string) By { return By{CSS_Selector, "." + cssIdent(name)} }

func cssEscape(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

func cssIdent(s string) string {
	out := make([]rune, 0, len(s))
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == '-', r >= 0x80:
		case r >= '0' && r <= '9':
			if i == 0 {
				out = append(out, '\\', '3', r, ' ')
				continue
			}
		default:
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

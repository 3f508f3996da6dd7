// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package webdriver is a client for the W3C WebDriver protocol.
//
// Every protocol command is a value implementing Command: it renders itself
// into a Request (method, path, optional JSON body) for a session id and
// does no I/O. Session.Do sends any Command through a Transport and returns
// the "value" member of the reply, so vendor command sets (see the chromium
// and firefox packages) go through the same path as the standard ones.
//
// Handles to remote objects (WebElement, ShadowRoot, WindowHandle,
// FrameHandle) are encoded to their reserved-key wire form wherever they
// appear in a body, and reference objects in replies are decoded back into
// handles bound to the session.
//
// See https://www.w3.org/TR/webdriver2/
//
// Example:
//	chromeDriver := webdriver.NewChromeDriver("/path/to/chromedriver")
//	if err := chromeDriver.Start(); err != nil {
//		log.Fatal(err)
//	}
//	defer chromeDriver.Stop()
//	ctx := context.Background()
//	session, err := chromeDriver.NewSession(ctx, webdriver.SessionRequest{
//		AlwaysMatch: webdriver.Capabilities{"browserName": "chrome"},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer session.Delete(ctx)
//	if err := session.Url(ctx, "http://golang.org"); err != nil {
//		log.Println(err)
//	}
//	link, err := session.FindElement(ctx, webdriver.ByLinkText("Packages"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	link.Click(ctx)
//
package webdriver

// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command wdctl drives a W3C WebDriver remote end from the shell.
//
//	wdctl session new
//	wdctl --session $ID navigate https://example.com
//	wdctl --session $ID find --using css 'h1'
//	wdctl render title
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

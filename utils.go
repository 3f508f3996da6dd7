// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/phayes/freeport"
	"github.com/rs/zerolog/log"
)

//probe port until it accepts a connection or ctx is done
func probePort(ctx context.Context, port int) error {
	address := fmt.Sprintf("127.0.0.1:%d", port)
	var dialer net.Dialer
	for {
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err == nil {
			return conn.Close()
		}
		log.Debug().Str("address", address).Err(err).Msg("driver not listening yet")
		select {
		case <-ctx.Done():
			return fmt.Errorf("start failed: %w", ctx.Err())
		case <-time.After(250 * time.Millisecond):
		}
	}
}

//pickPort returns port, or a free one when port is zero.
func pickPort(port int) (int, error) {
	if port != 0 {
		return port, nil
	}
	return freeport.GetFreePort()
}

//outputs returns where the child process writes stdout and stderr: LogFile
//when set, the process streams otherwise. The returned closer may be nil.
func outputs(logFile string) (stdout, stderr io.Writer, closer io.Closer, err error) {
	if logFile == "" {
		return os.Stdout, os.Stderr, nil, nil
	}
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	f, err := os.OpenFile(logFile, flags, 0640)
	if err != nil {
		return nil, nil, nil, err
	}
	return f, f, f, nil
}

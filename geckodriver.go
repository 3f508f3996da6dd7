// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"fmt"
	"strconv"
	"time"
)

//GeckoDriver runs a geckodriver executable, the remote end for Firefox.
type GeckoDriver struct {
	Client
	//The port geckodriver listens on. Default: a free port
	Port int
	//Log level of geckodriver: fatal, error, warn, info, config, debug or trace. Default: info
	LogLevel string
	// Log file to dump geckodriver stdout/stderr. If "" send to terminal. Default: ""
	LogFile string
	// Start method fails if geckodriver doesn't start in less than StartTimeout. Default 20s.
	StartTimeout time.Duration
	//Extra arguments, passed as they are.
	Args []string

	path string
	svc  service
}

func NewGeckoDriver(path string) *GeckoDriver {
	d := &GeckoDriver{}
	d.path = path
	d.LogLevel = "info"
	d.StartTimeout = 20 * time.Second
	d.svc.name = "geckodriver"
	return d
}

func (d *GeckoDriver) args() []string {
	args := []string{"--port", strconv.Itoa(d.Port)}
	if d.LogLevel != "" {
		args = append(args, "--log", d.LogLevel)
	}
	return append(args, d.Args...)
}

func (d *GeckoDriver) Start() error {
	port, err := pickPort(d.Port)
	if err != nil {
		return fmt.Errorf("geckodriver start failed: %w", err)
	}
	d.Port = port
	if err := d.svc.start(d.path, d.args(), d.Port, d.LogFile, d.StartTimeout); err != nil {
		return err
	}
	d.Client = Client{transport: NewHTTPTransport(fmt.Sprintf("http://127.0.0.1:%d", d.Port))}
	return nil
}

func (d *GeckoDriver) Stop() error {
	d.Client = Client{}
	return d.svc.stop()
}

//Pid of the driver process, 0 when not running.
func (d *GeckoDriver) Pid() int { return d.svc.pid() }

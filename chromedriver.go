// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

//ChromeDriver runs a chromedriver executable and talks to it. Once started
//it is a Client for the local remote end.
type ChromeDriver struct {
	Client
	//The port that ChromeDriver listens on. Default: a free port
	Port int
	//The URL path prefix to use for all incoming WebDriver REST requests. Default: ""
	BaseUrl string
	//The path to use for the ChromeDriver server log. Default: ./chromedriver.log
	LogPath string
	// Log file to dump chromedriver stdout/stderr. If "" send to terminal. Default: ""
	LogFile string
	// Start method fails if Chromedriver doesn't start in less than StartTimeout. Default 20s.
	StartTimeout time.Duration
	//Extra switches, passed as they are.
	Args []string

	path string
	svc  service
}

func NewChromeDriver(path string) *ChromeDriver {
	d := &ChromeDriver{}
	d.path = path
	d.LogPath = "chromedriver.log"
	d.StartTimeout = 20 * time.Second
	d.svc.name = "chromedriver"
	return d
}

func (d *ChromeDriver) switches() []string {
	var switches []string
	switches = append(switches, "--port="+strconv.Itoa(d.Port))
	if d.LogPath != "" {
		switches = append(switches, "--log-path="+d.LogPath)
	}
	if d.BaseUrl != "" {
		switches = append(switches, "--url-base="+d.BaseUrl)
	}
	return append(switches, d.Args...)
}

func (d *ChromeDriver) Start() error {
	if d.svc.running() {
		return fmt.Errorf("chromedriver start failed: chromedriver already running")
	}
	if d.LogPath != "" {
		//check if log-path is writable
		file, err := os.OpenFile(d.LogPath, os.O_WRONLY|os.O_CREATE, 0664)
		if err != nil {
			return fmt.Errorf("chromedriver start failed: unable to write in log path: %w", err)
		}
		file.Close()
	}
	port, err := pickPort(d.Port)
	if err != nil {
		return fmt.Errorf("chromedriver start failed: %w", err)
	}
	d.Port = port
	if err := d.svc.start(d.path, d.switches(), d.Port, d.LogFile, d.StartTimeout); err != nil {
		return err
	}
	d.Client = Client{transport: NewHTTPTransport(fmt.Sprintf("http://127.0.0.1:%d%s", d.Port, d.BaseUrl))}
	return nil
}

func (d *ChromeDriver) Stop() error {
	d.Client = Client{}
	return d.svc.stop()
}

//Pid of the driver process, 0 when not running.
func (d *ChromeDriver) Pid() int { return d.svc.pid() }

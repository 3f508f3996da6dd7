// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog/log"
)

//service runs a driver executable as a child process.
type service struct {
	name    string
	cmd     *exec.Cmd
	logFile io.Closer
	exited  chan struct{}
	waitErr error
}

func (s *service) running() bool { return s.cmd != nil }

//pid of the running process, 0 when stopped.
func (s *service) pid() int {
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

//start launches path with args and waits until port accepts connections,
//the process exits, or timeout expires.
func (s *service) start(path string, args []string, port int, logFile string, timeout time.Duration) error {
	failed := s.name + " start failed: "
	if s.cmd != nil {
		return errors.New(failed + s.name + " already running")
	}
	stdout, stderr, closer, err := outputs(logFile)
	if err != nil {
		return errors.New(failed + err.Error())
	}
	cmd := exec.Command(path, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	log.Info().Str("driver", s.name).Str("path", path).Strs("args", args).Msg("starting driver")
	if err := cmd.Start(); err != nil {
		if closer != nil {
			closer.Close()
		}
		return errors.New(failed + err.Error())
	}
	s.cmd = cmd
	s.logFile = closer
	s.exited = make(chan struct{})
	go func() {
		s.waitErr = cmd.Wait()
		close(s.exited)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	go func() {
		select {
		case <-s.exited:
			cancel()
		case <-ctx.Done():
		}
	}()
	if err := probePort(ctx, port); err != nil {
		select {
		case <-s.exited:
			err = fmt.Errorf("%s exited: %v", s.name, s.waitErr)
		default:
		}
		s.stop()
		return errors.New(failed + err.Error())
	}
	log.Info().Str("driver", s.name).Int("port", port).Int("pid", cmd.Process.Pid).Msg("driver ready")
	return nil
}

//stop interrupts the process and kills it if it doesn't exit in time.
func (s *service) stop() error {
	if s.cmd == nil {
		return errors.New("stop failed: " + s.name + " not running")
	}
	defer func() {
		s.cmd = nil
		if s.logFile != nil {
			s.logFile.Close()
			s.logFile = nil
		}
	}()
	if err := s.cmd.Process.Signal(os.Interrupt); err != nil {
		log.Debug().Err(err).Str("driver", s.name).Msg("interrupt failed")
	}
	select {
	case <-s.exited:
	case <-time.After(5 * time.Second):
		log.Warn().Str("driver", s.name).Msg("driver did not exit, killing it")
		if err := s.cmd.Process.Kill(); err != nil {
			return err
		}
		<-s.exited
	}
	log.Info().Str("driver", s.name).Msg("driver stopped")
	return nil
}

// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

//HTTP method of a protocol command.
type Method string

const (
	MethodGet    = Method("GET")
	MethodPost   = Method("POST")
	MethodDelete = Method("DELETE")
)

//Identifier assigned by the remote end when a session is created.
type SessionID string

func (id SessionID) String() string { return string(id) }

//Request describes a single protocol exchange: the HTTP method, the path
//relative to the remote end URL and an optional JSON body.
//
//Building a Request does no I/O. Body is marshalled by the session right
//before the request is handed to the transport.
type Request struct {
	Method Method
	Path   string
	Body   any
}

func NewRequest(method Method, path string) *Request {
	return &Request{Method: method, Path: path}
}

//Attach a JSON body to the request.
func (r *Request) WithBody(body any) *Request {
	r.Body = body
	return r
}

//Validate reports a request that can't be put on the wire: a path still
//holding template placeholders, or a body on a method that doesn't take one.
func (r *Request) Validate() error {
	switch r.Method {
	case MethodGet, MethodDelete:
		if r.Body != nil {
			return &EncodingError{Op: string(r.Method) + " " + r.Path, Err: errors.New("body not allowed")}
		}
	case MethodPost:
	default:
		return &EncodingError{Op: r.Path, Err: errors.New("invalid method: " + string(r.Method))}
	}
	if !strings.HasPrefix(r.Path, "/") {
		return &EncodingError{Op: r.Path, Err: errors.New("path must be absolute")}
	}
	if strings.ContainsAny(r.Path, "{}") || strings.Contains(r.Path, "%!") {
		return &EncodingError{Op: r.Path, Err: errors.New("unsubstituted path placeholder")}
	}
	return nil
}

func (r *Request) String() string {
	return string(r.Method) + " " + r.Path
}

//sessionPath renders "/session/{id}" followed by format. Every argument is
//escaped as a single path segment.
func sessionPath(id SessionID, format string, args ...string) string {
	escaped := make([]any, len(args))
	for i, a := range args {
		escaped[i] = url.PathEscape(a)
	}
	return "/session/" + url.PathEscape(string(id)) + fmt.Sprintf(format, escaped...)
}

//SessionPath is sessionPath for command sets defined outside this package.
func SessionPath(id SessionID, format string, args ...string) string {
	return sessionPath(id, format, args...)
}

// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

//Raw reply of the remote end.
type Response struct {
	StatusCode int
	Body       []byte
}

//Transport sends a Request to the remote end. The request body, if any,
//is already marshalled to JSON.
//
//Implementations own connection management, retries and cancellation.
type Transport interface {
	Do(ctx context.Context, req *Request, body []byte) (*Response, error)
}

//HTTPTransport is the default Transport, talking HTTP to a driver or grid.
type HTTPTransport struct {
	//URL of the remote end, e.g. http://127.0.0.1:9515
	BaseURL string
	//Default: http.DefaultClient
	Client *http.Client
}

func NewHTTPTransport(baseURL string) *HTTPTransport {
	return &HTTPTransport{BaseURL: strings.TrimRight(baseURL, "/")}
}

func isRedirect(response *http.Response) bool {
	r := response.StatusCode
	return r == 302 || r == 303
}

func newHTTPRequest(ctx context.Context, method Method, url string, data []byte) (*http.Request, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}
	request, err := http.NewRequestWithContext(ctx, string(method), url, body)
	if err != nil {
		return nil, err
	}
	if method == MethodPost {
		request.Header.Add("Content-Type", "application/json;charset=utf-8")
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Accept-charset", "utf-8")
	return request, nil
}

func (t *HTTPTransport) client() *http.Client {
	if t.Client != nil {
		return t.Client
	}
	return http.DefaultClient
}

func (t *HTTPTransport) Do(ctx context.Context, req *Request, body []byte) (*Response, error) {
	//remote ends reject a POST without a JSON object
	if req.Method == MethodPost && body == nil {
		body = []byte("{}")
	}
	return t.do(ctx, req.Method, t.BaseURL+req.Path, body)
}

func (t *HTTPTransport) do(ctx context.Context, method Method, url string, body []byte) (*Response, error) {
	log.Debug().Str("method", string(method)).Str("url", url).Msg(">>")
	request, err := newHTTPRequest(ctx, method, url, body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	response, err := t.client().Do(request)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer response.Body.Close()
	//http.Client doesn't follow POST redirects (legacy /session)
	if method == MethodPost && isRedirect(response) {
		location, err := response.Location()
		if err != nil {
			return nil, &TransportError{Method: method, URL: url, Err: err}
		}
		log.Debug().Str("location", location.String()).Msg("redirected")
		return t.do(ctx, MethodGet, location.String(), nil)
	}
	buf, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	head := string(buf)
	if len(buf) > 1024 {
		head = fmt.Sprintf("%s ...%d more bytes", string(buf[0:1024]), len(buf)-1024)
	}
	log.Debug().Int("status", response.StatusCode).Str("body", head).Msg("<<")
	return &Response{StatusCode: response.StatusCode, Body: buf}, nil
}

//marshalBody encodes the request body, rewriting any handle found in it to
//its reference form.
func marshalBody(req *Request) ([]byte, error) {
	if req.Body == nil {
		return nil, nil
	}
	if raw, ok := req.Body.(json.RawMessage); ok {
		if !json.Valid(raw) {
			return nil, &EncodingError{Op: req.String(), Err: errors.New("invalid raw JSON body")}
		}
		return raw, nil
	}
	wire, err := EncodeValue(req.Body)
	if err != nil {
		var eerr *EncodingError
		if errors.As(err, &eerr) {
			return nil, &EncodingError{Op: req.String() + ": " + eerr.Op, Err: eerr.Err}
		}
		return nil, &EncodingError{Op: req.String(), Err: err}
	}
	data, err := json.Marshal(wire)
	if err != nil {
		return nil, &EncodingError{Op: req.String(), Err: err}
	}
	return data, nil
}

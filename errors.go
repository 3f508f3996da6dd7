// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"encoding/json"
	"errors"
	"fmt"
)

//Error code reported by the remote end, as defined by the W3C specification.
type ErrorCode string

const (
	CodeElementClickIntercepted = ErrorCode("element click intercepted")
	CodeElementNotInteractable  = ErrorCode("element not interactable")
	CodeInsecureCertificate     = ErrorCode("insecure certificate")
	CodeInvalidArgument         = ErrorCode("invalid argument")
	CodeInvalidCookieDomain     = ErrorCode("invalid cookie domain")
	CodeInvalidElementState     = ErrorCode("invalid element state")
	CodeInvalidSelector         = ErrorCode("invalid selector")
	CodeInvalidSessionID        = ErrorCode("invalid session id")
	CodeJavascriptError         = ErrorCode("javascript error")
	CodeMoveTargetOutOfBounds   = ErrorCode("move target out of bounds")
	CodeNoSuchAlert             = ErrorCode("no such alert")
	CodeNoSuchCookie            = ErrorCode("no such cookie")
	CodeNoSuchElement           = ErrorCode("no such element")
	CodeNoSuchFrame             = ErrorCode("no such frame")
	CodeNoSuchWindow            = ErrorCode("no such window")
	CodeNoSuchShadowRoot        = ErrorCode("no such shadow root")
	CodeScriptTimeout           = ErrorCode("script timeout")
	CodeSessionNotCreated       = ErrorCode("session not created")
	CodeStaleElementReference   = ErrorCode("stale element reference")
	CodeDetachedShadowRoot      = ErrorCode("detached shadow root")
	CodeTimeout                 = ErrorCode("timeout")
	CodeUnableToSetCookie       = ErrorCode("unable to set cookie")
	CodeUnableToCaptureScreen   = ErrorCode("unable to capture screen")
	CodeUnexpectedAlertOpen     = ErrorCode("unexpected alert open")
	CodeUnknownCommand          = ErrorCode("unknown command")
	CodeUnknownError            = ErrorCode("unknown error")
	CodeUnknownMethod           = ErrorCode("unknown method")
	CodeUnsupportedOperation    = ErrorCode("unsupported operation")
)

//Status codes of the legacy JSON Wire Protocol, still returned by some
//drivers, mapped to their W3C error code.
var legacyStatusCodes = map[int]ErrorCode{
	6:  CodeInvalidSessionID,
	7:  CodeNoSuchElement,
	8:  CodeNoSuchFrame,
	9:  CodeUnknownCommand,
	10: CodeStaleElementReference,
	11: CodeElementNotInteractable,
	12: CodeInvalidElementState,
	13: CodeUnknownError,
	15: CodeElementNotInteractable,
	17: CodeJavascriptError,
	19: CodeInvalidSelector,
	21: CodeTimeout,
	23: CodeNoSuchWindow,
	24: CodeInvalidCookieDomain,
	25: CodeUnableToSetCookie,
	26: CodeUnexpectedAlertOpen,
	27: CodeNoSuchAlert,
	28: CodeScriptTimeout,
	29: CodeInvalidArgument,
	32: CodeInvalidSelector,
	33: CodeSessionNotCreated,
	34: CodeMoveTargetOutOfBounds,
}

var (
	ErrNoSuchElement         = &CommandError{Code: CodeNoSuchElement}
	ErrNoSuchCookie          = &CommandError{Code: CodeNoSuchCookie}
	ErrNoSuchWindow          = &CommandError{Code: CodeNoSuchWindow}
	ErrNoSuchAlert           = &CommandError{Code: CodeNoSuchAlert}
	ErrStaleElementReference = &CommandError{Code: CodeStaleElementReference}
	ErrInvalidSessionID      = &CommandError{Code: CodeInvalidSessionID}
	ErrScriptTimeout         = &CommandError{Code: CodeScriptTimeout}
	ErrJavascript            = &CommandError{Code: CodeJavascriptError}
)

//CommandError is a failure reported by the remote end in a well formed
//response.
type CommandError struct {
	HTTPStatus int
	Code       ErrorCode
	Message    string
	Stacktrace string
	Data       json.RawMessage
}

func (e *CommandError) Error() string {
	m := string(e.Code)
	if m == "" {
		m = "unknown error"
	}
	if e.HTTPStatus != 0 {
		m = fmt.Sprintf("%d %s", e.HTTPStatus, m)
	}
	if e.Message != "" {
		m += ": " + e.Message
	}
	return "webdriver: " + m
}

//Is matches any CommandError carrying the same code, so the Err* values can
//be used with errors.Is.
func (e *CommandError) Is(target error) bool {
	t, ok := target.(*CommandError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

//EncodingError reports caller input that can't be put on the wire. It is
//returned before anything is sent.
type EncodingError struct {
	Op  string
	Err error
}

func (e *EncodingError) Error() string {
	return "webdriver: encode " + e.Op + ": " + e.Err.Error()
}

func (e *EncodingError) Unwrap() error { return e.Err }

//DecodeError reports a response that doesn't have the shape the command
//expects. It points to a client/server mismatch, not to a failed operation.
type DecodeError struct {
	Target string
	Err    error
}

func (e *DecodeError) Error() string {
	return "webdriver: decode " + e.Target + ": " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

//TransportError wraps connection and HTTP level failures of HTTPTransport.
type TransportError struct {
	Method Method
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return "webdriver: " + string(e.Method) + " " + e.URL + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

//ErrorCodeOf returns the remote error code carried by err, if any.
func ErrorCodeOf(err error) (ErrorCode, bool) {
	var cerr *CommandError
	if errors.As(err, &cerr) {
		return cerr.Code, true
	}
	return "", false
}

//type matching the structure of both W3C and legacy responses.
type jsonResponse struct {
	Status   *int            `json:"status"`
	RawValue json.RawMessage `json:"value"`
}

type jsonError struct {
	Error      string          `json:"error"`
	Message    string          `json:"message"`
	Stacktrace string          `json:"stacktrace"`
	Data       json.RawMessage `json:"data"`
}

//parseResponse extracts the "value" member of a response body or the
//CommandError it encodes.
func parseResponse(statusCode int, body []byte) (json.RawMessage, error) {
	jr := &jsonResponse{}
	if err := json.Unmarshal(body, jr); err != nil {
		if statusCode >= 400 {
			return nil, &CommandError{HTTPStatus: statusCode, Code: httpStatusCode(statusCode), Message: string(body)}
		}
		return nil, &DecodeError{Target: "response", Err: errors.New("response must be a JSON object")}
	}
	legacyFailure := jr.Status != nil && *jr.Status != 0
	if statusCode < 400 && !legacyFailure {
		if len(jr.RawValue) == 0 {
			return json.RawMessage("null"), nil
		}
		return jr.RawValue, nil
	}
	return nil, parseError(statusCode, *jr)
}

func parseError(statusCode int, jr jsonResponse) error {
	commandError := &CommandError{HTTPStatus: statusCode}
	var je jsonError
	if err := json.Unmarshal(jr.RawValue, &je); err != nil {
		// workaround: some drivers return a bare string instead of an object
		var s string
		if json.Unmarshal(jr.RawValue, &s) == nil {
			commandError.Message = s
		} else {
			commandError.Message = string(jr.RawValue)
		}
	} else {
		commandError.Code = ErrorCode(je.Error)
		commandError.Message = je.Message
		commandError.Stacktrace = je.Stacktrace
		commandError.Data = je.Data
	}
	if commandError.Code == "" && jr.Status != nil {
		if code, found := legacyStatusCodes[*jr.Status]; found {
			commandError.Code = code
		} else {
			commandError.Code = CodeUnknownError
		}
	}
	if commandError.Code == "" {
		commandError.Code = httpStatusCode(statusCode)
	}
	return commandError
}

func httpStatusCode(c int) ErrorCode {
	switch c {
	case 400:
		return CodeInvalidArgument
	case 404:
		return CodeUnknownCommand
	case 405:
		return CodeUnknownMethod
	case 408:
		return CodeTimeout
	default:
		return CodeUnknownError
	}
}

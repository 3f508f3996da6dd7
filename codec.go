// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
)

//Kind of object a remote reference points to.
type RefKind int

const (
	ElementRef RefKind = iota
	ShadowRootRef
	WindowRef
	FrameRef
)

//Reserved keys identifying a remote reference on the wire. A reference is
//an object with exactly one of these keys mapped to the reference string.
const (
	ElementKey    = "element-6066-11e4-a52e-4f735466cecf"
	ShadowRootKey = "shadow-6066-11e4-a52e-4f735466cecf"
	WindowKey     = "window-fcc6-11e5-b4f8-330a88ab9d7f"
	FrameKey      = "frame-075b-4da1-b6ba-e579c2d3230a"
)

var refKeys = map[string]RefKind{
	ElementKey:    ElementRef,
	ShadowRootKey: ShadowRootRef,
	WindowKey:     WindowRef,
	FrameKey:      FrameRef,
}

//Key returns the reserved wire key of the kind.
func (k RefKind) Key() string {
	switch k {
	case ElementRef:
		return ElementKey
	case ShadowRootRef:
		return ShadowRootKey
	case WindowRef:
		return WindowKey
	case FrameRef:
		return FrameKey
	}
	return ""
}

func (k RefKind) String() string {
	switch k {
	case ElementRef:
		return "element"
	case ShadowRootRef:
		return "shadow root"
	case WindowRef:
		return "window"
	case FrameRef:
		return "frame"
	}
	return fmt.Sprintf("RefKind(%d)", int(k))
}

//Reference is a handle to a live object in the remote document. Handles
//are immutable and hold no lock; the remote end may invalidate the object
//at any time, which is only noticed when a command uses the handle.
type Reference interface {
	RefKind() RefKind
	RefID() string
}

func marshalRef(r Reference) ([]byte, error) {
	return json.Marshal(map[string]string{r.RefKind().Key(): r.RefID()})
}

//newRef binds a decoded reference to the session it was received on.
func newRef(s *Session, kind RefKind, id string) Reference {
	switch kind {
	case ShadowRootRef:
		return ShadowRoot{s, id}
	case WindowRef:
		return WindowHandle{s, id}
	case FrameRef:
		return FrameHandle{s, id}
	default:
		return WebElement{s, id}
	}
}

//EncodeValue converts v into a tree of maps, slices and scalars ready to be
//marshalled, rewriting every Reference found at any depth to its wire
//object. Values that JSON can't represent are reported as *EncodingError.
func EncodeValue(v any) (any, error) {
	return encodeValue(v, map[visit]bool{})
}

//visit identifies a map or slice on the path being encoded.
type visit struct {
	ptr uintptr
	len int
}

func enter(seen map[visit]bool, x any, n int) (visit, error) {
	key := visit{reflect.ValueOf(x).Pointer(), n}
	if key.ptr != 0 && seen[key] {
		return key, &EncodingError{Op: "value", Err: fmt.Errorf("encountered a cycle via %T", x)}
	}
	seen[key] = true
	return key, nil
}

func encodeValue(v any, seen map[visit]bool) (any, error) {
	switch x := v.(type) {
	case nil, string, bool, json.Number, json.RawMessage:
		return x, nil
	case Reference:
		if isNilPointer(x) {
			return nil, nil
		}
		return map[string]any{x.RefKind().Key(): x.RefID()}, nil
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, &EncodingError{Op: "value", Err: fmt.Errorf("unsupported number %v", x)}
		}
		return x, nil
	case float32:
		return encodeValue(float64(x), seen)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return x, nil
	case params:
		return encodeValue(map[string]any(x), seen)
	case map[string]any:
		key, err := enter(seen, x, -1)
		if err != nil {
			return nil, err
		}
		defer delete(seen, key)
		out := make(map[string]any, len(x))
		for k, e := range x {
			ev, err := encodeValue(e, seen)
			if err != nil {
				return nil, wrapPath(err, k)
			}
			out[k] = ev
		}
		return out, nil
	case []any:
		key, err := enter(seen, x, len(x))
		if err != nil {
			return nil, err
		}
		defer delete(seen, key)
		out := make([]any, len(x))
		for i, e := range x {
			ev, err := encodeValue(e, seen)
			if err != nil {
				return nil, wrapPath(err, fmt.Sprintf("[%d]", i))
			}
			out[i] = ev
		}
		return out, nil
	}
	//structs, typed maps and slices: handles inside them marshal themselves
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &EncodingError{Op: fmt.Sprintf("%T", v), Err: err}
	}
	return parseTree(data)
}

func wrapPath(err error, elem string) error {
	var eerr *EncodingError
	if errors.As(err, &eerr) {
		return &EncodingError{Op: elem + "." + eerr.Op, Err: eerr.Err}
	}
	return err
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func parseTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var tree any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return tree, nil
}

//DecodeValue parses a JSON value received on session s and resolves every
//remote reference in it to a handle bound to s. Only an object whose single
//key is one of the reserved keys, mapped to a string, is a reference;
//anything else decodes as plain JSON. Numbers are kept as json.Number.
//
//Decoding is structural: it never checks that the referenced object still
//exists.
func DecodeValue(s *Session, raw json.RawMessage) (any, error) {
	tree, err := parseTree(raw)
	if err != nil {
		return nil, &DecodeError{Target: "value", Err: err}
	}
	return ResolveReferences(s, tree), nil
}

//ResolveReferences walks an already parsed JSON tree and replaces reference
//objects with handles bound to s. The input is not modified.
func ResolveReferences(s *Session, tree any) any {
	switch x := tree.(type) {
	case map[string]any:
		if len(x) == 1 {
			for k, v := range x {
				if kind, ok := refKeys[k]; ok {
					if id, ok := v.(string); ok {
						return newRef(s, kind, id)
					}
				}
			}
		}
		out := make(map[string]any, len(x))
		for k, v := range x {
			out[k] = ResolveReferences(s, v)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, v := range x {
			out[i] = ResolveReferences(s, v)
		}
		return out
	default:
		return x
	}
}

//ScriptRet is the decoded result of a script execution.
type ScriptRet struct {
	raw   json.RawMessage
	value any
}

func newScriptRet(s *Session, raw json.RawMessage) (*ScriptRet, error) {
	value, err := DecodeValue(s, raw)
	if err != nil {
		return nil, err
	}
	return &ScriptRet{raw: raw, value: value}, nil
}

//JSON returned by the remote end, unmodified.
func (r *ScriptRet) Raw() json.RawMessage { return r.raw }

//Decoded value with references resolved to handles.
func (r *ScriptRet) Value() any { return r.value }

//Element returns the value as a single element.
func (r *ScriptRet) Element() (WebElement, error) {
	e, ok := r.value.(WebElement)
	if !ok {
		return WebElement{}, &DecodeError{Target: "element", Err: fmt.Errorf("script returned %T", r.value)}
	}
	return e, nil
}

//Elements returns the value as a list of elements.
func (r *ScriptRet) Elements() ([]WebElement, error) {
	list, ok := r.value.([]any)
	if !ok {
		return nil, &DecodeError{Target: "elements", Err: fmt.Errorf("script returned %T", r.value)}
	}
	elements := make([]WebElement, len(list))
	for i, v := range list {
		e, ok := v.(WebElement)
		if !ok {
			return nil, &DecodeError{Target: "elements", Err: fmt.Errorf("item %d is %T", i, v)}
		}
		elements[i] = e
	}
	return elements, nil
}

//Decode unmarshals the raw value into v. Handles can't be restored this
//way; use Value, Element or Elements for results holding references.
func (r *ScriptRet) Decode(v any) error {
	if err := json.Unmarshal(r.raw, v); err != nil {
		return &DecodeError{Target: fmt.Sprintf("%T", v), Err: err}
	}
	return nil
}

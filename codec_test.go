// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"
)

func normalize(t *testing.T, data []byte) any {
	t.Helper()
	v, err := parseTree(data)
	if err != nil {
		t.Fatalf("invalid JSON %s: %v", data, err)
	}
	return v
}

func encodeJSON(t *testing.T, v any) []byte {
	t.Helper()
	wire, err := EncodeValue(v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	data, err := json.Marshal(wire)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return data
}

func TestEncodeReferencesAtAnyDepth(t *testing.T) {
	s := &Session{ID: "s1"}
	var noElement *WebElement
	in := []any{
		WebElement{s, "e1"},
		map[string]any{
			"root":  ShadowRoot{s, "r1"},
			"list":  []any{WindowHandle{s, "w1"}, map[string]any{"frame": FrameHandle{s, "f1"}}},
			"plain": "text",
		},
		noElement,
		3,
	}
	want := `[
		{"element-6066-11e4-a52e-4f735466cecf":"e1"},
		{"root":{"shadow-6066-11e4-a52e-4f735466cecf":"r1"},
		 "list":[{"window-fcc6-11e5-b4f8-330a88ab9d7f":"w1"},{"frame":{"frame-075b-4da1-b6ba-e579c2d3230a":"f1"}}],
		 "plain":"text"},
		null,
		3
	]`
	if got := normalize(t, encodeJSON(t, in)); !reflect.DeepEqual(got, normalize(t, []byte(want))) {
		t.Fatalf("got %v", got)
	}
}

func TestEncodeStructWithHandle(t *testing.T) {
	s := &Session{ID: "s1"}
	type origin struct {
		Type   string     `json:"type"`
		Origin WebElement `json:"origin"`
		X      int        `json:"x"`
	}
	got := normalize(t, encodeJSON(t, []any{origin{"pointerMove", WebElement{s, "e9"}, 4}}))
	want := normalize(t, []byte(`[{"type":"pointerMove","origin":{"element-6066-11e4-a52e-4f735466cecf":"e9"},"x":4}]`))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v", got)
	}
}

func TestEncodeRejectsUnrepresentable(t *testing.T) {
	selfMap := map[string]any{}
	selfMap["self"] = selfMap
	selfList := []any{1, nil}
	selfList[1] = selfList
	tests := []struct {
		name string
		v    any
	}{
		{"nan", map[string]any{"a": []any{math.NaN()}}},
		{"inf", math.Inf(1)},
		{"chan", []any{make(chan int)}},
		{"func", map[string]any{"f": func() {}}},
		{"map cycle", []any{selfMap}},
		{"slice cycle", map[string]any{"list": selfList}},
		{"indirect cycle", map[string]any{"a": map[string]any{"b": []any{selfMap}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeValue(tt.v)
			var eerr *EncodingError
			if !errors.As(err, &eerr) {
				t.Fatalf("expected EncodingError, got %v", err)
			}
		})
	}
}

func TestEncodingErrorNamesThePath(t *testing.T) {
	_, err := EncodeValue(map[string]any{"a": []any{1, math.NaN()}})
	var eerr *EncodingError
	if !errors.As(err, &eerr) || eerr.Op != "a.[1].value" {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestEncodeSharedValueIsNotACycle(t *testing.T) {
	shared := map[string]any{"n": 1}
	list := []any{"x"}
	in := map[string]any{"a": shared, "b": shared, "c": []any{list, list}}
	got := normalize(t, encodeJSON(t, in))
	want := normalize(t, []byte(`{"a":{"n":1},"b":{"n":1},"c":[["x"],["x"]]}`))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v", got)
	}
}

func TestDecodeReference(t *testing.T) {
	s := &Session{ID: "s1"}
	v, err := DecodeValue(s, json.RawMessage(`{"element-6066-11e4-a52e-4f735466cecf":"abc"}`))
	if err != nil {
		t.Fatal(err)
	}
	el, ok := v.(WebElement)
	if !ok {
		t.Fatalf("expected WebElement, got %T", v)
	}
	if el.ID() != "abc" || el.Session() != s {
		t.Fatalf("unexpected element %+v", el)
	}
}

func TestDecodeKinds(t *testing.T) {
	s := &Session{ID: "s1"}
	tests := []struct {
		raw  string
		want any
	}{
		{`{"shadow-6066-11e4-a52e-4f735466cecf":"r"}`, ShadowRoot{s, "r"}},
		{`{"window-fcc6-11e5-b4f8-330a88ab9d7f":"w"}`, WindowHandle{s, "w"}},
		{`{"frame-075b-4da1-b6ba-e579c2d3230a":"f"}`, FrameHandle{s, "f"}},
	}
	for _, tt := range tests {
		got, err := DecodeValue(s, json.RawMessage(tt.raw))
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("%s: got %#v, want %#v", tt.raw, got, tt.want)
		}
	}
}

func TestDecodeOnlyPureSentinelObjects(t *testing.T) {
	s := &Session{ID: "s1"}
	tests := []struct {
		name string
		raw  string
	}{
		{"extra key", `{"element-6066-11e4-a52e-4f735466cecf":"abc","extra":1}`},
		{"non string id", `{"element-6066-11e4-a52e-4f735466cecf":42}`},
		{"similar key", `{"element-6066":"abc"}`},
		{"legacy key", `{"ELEMENT":"abc"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := DecodeValue(s, json.RawMessage(tt.raw))
			if err != nil {
				t.Fatal(err)
			}
			if _, ok := v.(map[string]any); !ok {
				t.Fatalf("expected a plain map, got %T", v)
			}
			if got := normalize(t, encodeJSON(t, v)); !reflect.DeepEqual(got, normalize(t, []byte(tt.raw))) {
				t.Fatalf("map changed: %v", got)
			}
		})
	}
}

func TestDecodeNested(t *testing.T) {
	s := &Session{ID: "s1"}
	v, err := DecodeValue(s, json.RawMessage(`{"a":{"b":[1.5,{"element-6066-11e4-a52e-4f735466cecf":"deep"},"x"]}}`))
	if err != nil {
		t.Fatal(err)
	}
	list := v.(map[string]any)["a"].(map[string]any)["b"].([]any)
	if list[0] != json.Number("1.5") || list[2] != "x" {
		t.Fatalf("scalars changed: %v", list)
	}
	if el, ok := list[1].(WebElement); !ok || el.ID() != "deep" {
		t.Fatalf("expected element, got %#v", list[1])
	}
}

func TestDecodeDoesNotCheckLiveness(t *testing.T) {
	//no transport: any I/O would fail
	s := &Session{ID: "gone"}
	v, err := DecodeValue(s, json.RawMessage(`[{"element-6066-11e4-a52e-4f735466cecf":"removed-long-ago"}]`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := v.([]any)[0].(WebElement); !ok {
		t.Fatalf("expected element, got %#v", v)
	}
}

func TestRoundTrip(t *testing.T) {
	s := &Session{ID: "s1"}
	docs := []string{
		`null`,
		`"text"`,
		`12345678901234567890`,
		`[1,2.50,-0.1,true,null]`,
		`{"element-6066-11e4-a52e-4f735466cecf":"e"}`,
		`{"list":[{"shadow-6066-11e4-a52e-4f735466cecf":"r"},{"window-fcc6-11e5-b4f8-330a88ab9d7f":"w"}],"n":{"m":{}}}`,
		`{"element-6066-11e4-a52e-4f735466cecf":"abc","extra":1}`,
	}
	for _, doc := range docs {
		v, err := DecodeValue(s, json.RawMessage(doc))
		if err != nil {
			t.Fatalf("%s: %v", doc, err)
		}
		if got, want := normalize(t, encodeJSON(t, v)), normalize(t, []byte(doc)); !reflect.DeepEqual(got, want) {
			t.Errorf("round trip of %s gave %v", doc, got)
		}
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	docs := []string{
		`{"a":`,
		`{"a":1} trailing`,
		`{"a":1} {"b":2}`,
		`[1] ]`,
	}
	for _, doc := range docs {
		v, err := DecodeValue(&Session{}, json.RawMessage(doc))
		var derr *DecodeError
		if !errors.As(err, &derr) {
			t.Errorf("%s: expected DecodeError, got %v, %v", doc, v, err)
		}
	}
	if _, err := DecodeValue(&Session{}, json.RawMessage(" {\"a\":1}\n")); err != nil {
		t.Fatalf("surrounding whitespace rejected: %v", err)
	}
}

func TestScriptRet(t *testing.T) {
	s := &Session{ID: "s1"}
	ret, err := newScriptRet(s, json.RawMessage(`[{"element-6066-11e4-a52e-4f735466cecf":"a"},{"element-6066-11e4-a52e-4f735466cecf":"b"}]`))
	if err != nil {
		t.Fatal(err)
	}
	els, err := ret.Elements()
	if err != nil || len(els) != 2 || els[1].ID() != "b" {
		t.Fatalf("elements: %v, %v", els, err)
	}
	var derr *DecodeError
	if _, err := ret.Element(); !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError for a list, got %v", err)
	}

	ret, err = newScriptRet(s, json.RawMessage(`{"n":3}`))
	if err != nil {
		t.Fatal(err)
	}
	var out struct{ N int }
	if err := ret.Decode(&out); err != nil || out.N != 3 {
		t.Fatalf("decode: %+v, %v", out, err)
	}
	var wrong []string
	if err := ret.Decode(&wrong); !errors.As(err, &derr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
}

func TestHandleEquality(t *testing.T) {
	s1, s1b, s2 := &Session{ID: "s1"}, &Session{ID: "s1"}, &Session{ID: "s2"}
	if !(WebElement{s1, "e"}).Equal(WebElement{s1b, "e"}) {
		t.Error("same session id and reference must be equal")
	}
	if (WebElement{s1, "e"}).Equal(WebElement{s2, "e"}) {
		t.Error("different sessions must not be equal")
	}
	if (WebElement{s1, "e"}).Equal(WebElement{s1, "f"}) {
		t.Error("different references must not be equal")
	}
}

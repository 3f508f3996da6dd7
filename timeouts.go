// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import (
	"context"
	"encoding/json"
	"time"
)

//Timeouts of a session. A nil field is unspecified: it is left out of the
//wire object and never overwrites a value when merged. A nil Script read
//from the remote end means scripts never time out.
type Timeouts struct {
	Script   *time.Duration
	PageLoad *time.Duration
	Implicit *time.Duration
}

func NewTimeouts(script, pageLoad, implicit *time.Duration) Timeouts {
	return Timeouts{Script: script, PageLoad: pageLoad, Implicit: implicit}
}

//Duration returns a pointer to d, for building Timeouts literals.
func Duration(d time.Duration) *time.Duration {
	return &d
}

//Merge returns t with every non-nil field of partial applied on top.
func (t Timeouts) Merge(partial Timeouts) Timeouts {
	if partial.Script != nil {
		t.Script = Duration(*partial.Script)
	}
	if partial.PageLoad != nil {
		t.PageLoad = Duration(*partial.PageLoad)
	}
	if partial.Implicit != nil {
		t.Implicit = Duration(*partial.Implicit)
	}
	return t
}

//Equal compares the values of the fields, not the pointers.
func (t Timeouts) Equal(o Timeouts) bool {
	return durationEqual(t.Script, o.Script) &&
		durationEqual(t.PageLoad, o.PageLoad) &&
		durationEqual(t.Implicit, o.Implicit)
}

func durationEqual(a, b *time.Duration) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

type jsonTimeouts struct {
	Script   *int64 `json:"script,omitempty"`
	PageLoad *int64 `json:"pageLoad,omitempty"`
	Implicit *int64 `json:"implicit,omitempty"`
}

func toMillis(d *time.Duration) *int64 {
	if d == nil {
		return nil
	}
	ms := d.Milliseconds()
	return &ms
}

func fromMillis(ms *int64) *time.Duration {
	if ms == nil {
		return nil
	}
	return Duration(time.Duration(*ms) * time.Millisecond)
}

func (t Timeouts) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonTimeouts{
		Script:   toMillis(t.Script),
		PageLoad: toMillis(t.PageLoad),
		Implicit: toMillis(t.Implicit),
	})
}

func (t *Timeouts) UnmarshalJSON(data []byte) error {
	var jt jsonTimeouts
	if err := json.Unmarshal(data, &jt); err != nil {
		return err
	}
	*t = Timeouts{
		Script:   fromMillis(jt.Script),
		PageLoad: fromMillis(jt.PageLoad),
		Implicit: fromMillis(jt.Implicit),
	}
	return nil
}

//Get the timeouts of the session.
func (s *Session) Timeouts(ctx context.Context) (Timeouts, error) {
	var timeouts Timeouts
	err := s.doDecode(ctx, GetTimeouts{}, &timeouts)
	return timeouts, err
}

//Apply the specified fields of partial and leave the others as they are.
//
//The remote end only accepts complete objects, so the current values are
//read first and the merged configuration is written back in full.
func (s *Session) UpdateTimeouts(ctx context.Context, partial Timeouts) error {
	current, err := s.Timeouts(ctx)
	if err != nil {
		return err
	}
	_, err = s.Do(ctx, SetTimeouts{current.Merge(partial)})
	return err
}

//Set the amount of time the driver should wait when searching for elements.
func (s *Session) SetImplicitWaitTimeout(ctx context.Context, d time.Duration) error {
	return s.UpdateTimeouts(ctx, Timeouts{Implicit: &d})
}

//Set the amount of time to wait for a page load to complete.
func (s *Session) SetPageLoadTimeout(ctx context.Context, d time.Duration) error {
	return s.UpdateTimeouts(ctx, Timeouts{PageLoad: &d})
}

//Set the amount of time scripts are permitted to run before they are
//aborted with a script timeout error.
func (s *Session) SetScriptTimeout(ctx context.Context, d time.Duration) error {
	return s.UpdateTimeouts(ctx, Timeouts{Script: &d})
}

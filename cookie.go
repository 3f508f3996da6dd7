// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import "context"

type SameSite string

const (
	SameSiteStrict = SameSite("Strict")
	SameSiteLax    = SameSite("Lax")
	SameSiteNone   = SameSite("None")
)

//A cookie as exchanged with the remote end. Optional fields are omitted
//from the wire object when empty.
type Cookie struct {
	Name     string   `json:"name"`
	Value    string   `json:"value"`
	Path     string   `json:"path,omitempty"`
	Domain   string   `json:"domain,omitempty"`
	Secure   bool     `json:"secure,omitempty"`
	HTTPOnly bool     `json:"httpOnly,omitempty"`
	Expiry   *int64   `json:"expiry,omitempty"`
	SameSite SameSite `json:"sameSite,omitempty"`
}

func NewCookie(name, value string) Cookie {
	return Cookie{Name: name, Value: value}
}

//Retrieve all cookies visible to the current page.
func (s *Session) GetCookies(ctx context.Context) ([]Cookie, error) {
	var cookies []Cookie
	err := s.doDecode(ctx, GetAllCookies{}, &cookies)
	return cookies, err
}

//Retrieve the cookie with the given name. A missing cookie is reported as
//a CommandError matching ErrNoSuchCookie.
func (s *Session) GetNamedCookie(ctx context.Context, name string) (Cookie, error) {
	var cookie Cookie
	err := s.doDecode(ctx, GetNamedCookie{name}, &cookie)
	return cookie, err
}

//Set a cookie.
func (s *Session) SetCookie(ctx context.Context, cookie Cookie) error {
	_, err := s.Do(ctx, AddCookie{cookie})
	return err
}

//Delete the cookie with the given name.
func (s *Session) DeleteCookieByName(ctx context.Context, name string) error {
	_, err := s.Do(ctx, DeleteCookie{name})
	return err
}

//Delete all cookies visible to the current page.
func (s *Session) DeleteCookies(ctx context.Context) error {
	_, err := s.Do(ctx, DeleteAllCookies{})
	return err
}

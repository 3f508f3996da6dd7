// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package webdriver

import "context"

//Storage is the localStorage or sessionStorage of the current document.
//W3C has no storage endpoints, so every method runs a script.
type Storage struct {
	s    *Session
	name string
}

func (s *Session) LocalStorage() Storage   { return Storage{s, "localStorage"} }
func (s *Session) SessionStorage() Storage { return Storage{s, "sessionStorage"} }

func (st Storage) run(ctx context.Context, script string, v any, args ...any) error {
	ret, err := st.s.ExecuteScript(ctx, script, append([]any{st.name}, args...))
	if err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return ret.Decode(v)
}

//Get all keys of the storage.
func (st Storage) Keys(ctx context.Context) ([]string, error) {
	keys := []string{}
	err := st.run(ctx, "var st = window[arguments[0]]; var keys = []; for (var i = 0; i < st.length; i++) { keys.push(st.key(i)); } return keys;", &keys)
	return keys, err
}

//Get the storage item for the given key. ok is false when there is none.
func (st Storage) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	var item *string
	if err := st.run(ctx, "return window[arguments[0]].getItem(arguments[1]);", &item, key); err != nil {
		return "", false, err
	}
	if item == nil {
		return "", false, nil
	}
	return *item, true, nil
}

//Set the storage item for the given key.
func (st Storage) Set(ctx context.Context, key, value string) error {
	return st.run(ctx, "window[arguments[0]].setItem(arguments[1], arguments[2]);", nil, key, value)
}

//Remove the storage item for the given key.
func (st Storage) Remove(ctx context.Context, key string) error {
	return st.run(ctx, "window[arguments[0]].removeItem(arguments[1]);", nil, key)
}

//Clear the storage.
func (st Storage) Clear(ctx context.Context) error {
	return st.run(ctx, "window[arguments[0]].clear();", nil)
}

//Get the number of items in the storage.
func (st Storage) Size(ctx context.Context) (int, error) {
	var size int
	if err := st.run(ctx, "return window[arguments[0]].length;", &size); err != nil {
		return -1, err
	}
	return size, nil
}

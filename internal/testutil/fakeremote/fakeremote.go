// Copyright 2013 Federico Sogaro. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fakeremote is an in-process W3C WebDriver remote end for tests.
// It keeps just enough state (sessions, timeouts, cookies, elements) to
// answer the commands of a client and records every request it receives.
package fakeremote

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	ElementKey    = "element-6066-11e4-a52e-4f735466cecf"
	ShadowRootKey = "shadow-6066-11e4-a52e-4f735466cecf"
	WindowKey     = "window-fcc6-11e5-b4f8-330a88ab9d7f"
	FrameKey      = "frame-075b-4da1-b6ba-e579c2d3230a"
)

//Recorded is a request as received by the remote end.
type Recorded struct {
	Method string
	Path   string
	Body   json.RawMessage
}

//Decode unmarshals the recorded body into v.
func (r Recorded) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

//ScriptFunc answers an execute command. The default echoes the arguments.
type ScriptFunc func(script string, args []any) (any, *Error)

//Error is a W3C error reply.
type Error struct {
	Status  int
	Code    string
	Message string
}

type stub struct {
	status int
	body   []byte
}

type session struct {
	timeouts map[string]any
	cookies  []map[string]any
	url      string
	window   string
}

type Server struct {
	URL string

	srv *httptest.Server

	mu         sync.Mutex
	requests   []Recorded
	sessions   map[string]*session
	elements   map[string]string
	properties map[string]map[string]any
	stubs      map[string]stub
	script     ScriptFunc
}

//New starts a fake remote end that is closed with the test.
func New(t testing.TB) *Server {
	s := &Server{
		sessions:   map[string]*session{},
		elements:   map[string]string{},
		properties: map[string]map[string]any{},
		stubs:      map[string]stub{},
		script:     echoArgs,
	}
	s.srv = httptest.NewServer(s.routes())
	s.URL = s.srv.URL
	t.Cleanup(s.srv.Close)
	return s
}

func echoArgs(_ string, args []any) (any, *Error) {
	return args, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Use(s.stubbed)

	r.Get("/status", s.status)
	r.Post("/session", s.newSession)
	r.Route("/session/{id}", func(r chi.Router) {
		r.Use(s.requireSession)
		r.Delete("/", s.deleteSession)
		r.Get("/timeouts", s.getTimeouts)
		r.Post("/timeouts", s.setTimeouts)
		r.Post("/url", s.navigate)
		r.Get("/url", s.currentURL)
		r.Get("/title", s.title)
		r.Get("/window", s.windowHandle)
		r.Get("/window/handles", s.windowHandles)
		r.Get("/cookie", s.allCookies)
		r.Post("/cookie", s.addCookie)
		r.Delete("/cookie", s.deleteAllCookies)
		r.Get("/cookie/{name}", s.namedCookie)
		r.Delete("/cookie/{name}", s.deleteCookie)
		r.Post("/element", s.findElement)
		r.Post("/elements", s.findElements)
		r.Get("/element/{eid}/property/{name}", s.property)
		r.Get("/element/{eid}/text", s.text)
		r.Post("/execute/sync", s.execute)
		r.Post("/execute/async", s.execute)
		r.HandleFunc("/*", s.null)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, &Error{http.StatusNotFound, "unknown command", r.Method + " " + r.URL.Path})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, &Error{http.StatusMethodNotAllowed, "unknown method", r.Method + " " + r.URL.Path})
	})
	return r
}

////////////////////////////////////////////////////////////////////////////////
// test controls
////////////////////////////////////////////////////////////////////////////////

//Requests returns a copy of every request received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

//Last returns the most recent request. It fails the test if there is none.
func (s *Server) Last(t testing.TB) Recorded {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("fakeremote: no request received")
	}
	return reqs[len(reqs)-1]
}

//Reset forgets the recorded requests.
func (s *Server) Reset() {
	s.mu.Lock()
	s.requests = nil
	s.mu.Unlock()
}

//Stub makes method path answer with status and the raw body, whatever the
//state of the server.
func (s *Server) Stub(method, path string, status int, body string) {
	s.mu.Lock()
	s.stubs[method+" "+path] = stub{status, []byte(body)}
	s.mu.Unlock()
}

//AddElement registers an element matched by the locator value and returns
//its reference.
func (s *Server) AddElement(value string) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.elements[id] = value
	s.mu.Unlock()
	return id
}

//RemoveElement detaches an element: later commands on it fail with
//stale element reference.
func (s *Server) RemoveElement(id string) {
	s.mu.Lock()
	delete(s.elements, id)
	delete(s.properties, id)
	s.mu.Unlock()
}

func (s *Server) SetProperty(id, name string, value any) {
	s.mu.Lock()
	if s.properties[id] == nil {
		s.properties[id] = map[string]any{}
	}
	s.properties[id][name] = value
	s.mu.Unlock()
}

func (s *Server) OnExecute(f ScriptFunc) {
	s.mu.Lock()
	s.script = f
	s.mu.Unlock()
}

//ElementRef is the wire form of an element reference.
func ElementRef(id string) map[string]any {
	return map[string]any{ElementKey: id}
}

////////////////////////////////////////////////////////////////////////////////
// middleware
////////////////////////////////////////////////////////////////////////////////

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))
		s.mu.Lock()
		s.requests = append(s.requests, Recorded{Method: r.Method, Path: r.URL.EscapedPath(), Body: body})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) stubbed(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		st, ok := s.stubs[r.Method+" "+r.URL.EscapedPath()]
		s.mu.Unlock()
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(st.status)
		w.Write(st.body)
	})
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		_, ok := s.sessions[chi.URLParam(r, "id")]
		s.mu.Unlock()
		if !ok {
			writeError(w, &Error{http.StatusNotFound, "invalid session id", "no session " + chi.URLParam(r, "id")})
			return
		}
		next.ServeHTTP(w, r)
	})
}

////////////////////////////////////////////////////////////////////////////////
// handlers
////////////////////////////////////////////////////////////////////////////////

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"value": value})
}

func writeValue(w http.ResponseWriter, value any) {
	writeJSON(w, http.StatusOK, value)
}

func writeError(w http.ResponseWriter, e *Error) {
	writeJSON(w, e.Status, map[string]any{
		"error":      e.Code,
		"message":    e.Message,
		"stacktrace": "",
	})
}

func readBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		writeError(w, &Error{http.StatusBadRequest, "invalid argument", err.Error()})
		return false
	}
	return true
}

//sess must be called with s.mu held.
func (s *Server) sess(r *http.Request) *session {
	return s.sessions[chi.URLParam(r, "id")]
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	writeValue(w, map[string]any{"ready": true, "message": "fakeremote ready"})
}

func (s *Server) newSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Capabilities struct {
			AlwaysMatch map[string]any `json:"alwaysMatch"`
		} `json:"capabilities"`
	}
	if !readBody(w, r, &req) {
		return
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{
		timeouts: map[string]any{"script": 30000, "pageLoad": 300000, "implicit": 0},
		url:      "about:blank",
		window:   uuid.NewString(),
	}
	s.mu.Unlock()
	caps := map[string]any{"browserName": "fake", "browserVersion": "1.0"}
	for k, v := range req.Capabilities.AlwaysMatch {
		caps[k] = v
	}
	writeValue(w, map[string]any{"sessionId": id, "capabilities": caps})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.sessions, chi.URLParam(r, "id"))
	s.mu.Unlock()
	writeValue(w, nil)
}

func (s *Server) getTimeouts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeValue(w, s.sess(r).timeouts)
}

func (s *Server) setTimeouts(w http.ResponseWriter, r *http.Request) {
	var req map[string]any
	if !readBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range []string{"script", "pageLoad", "implicit"} {
		if v, ok := req[k]; ok {
			s.sess(r).timeouts[k] = v
		}
	}
	writeValue(w, nil)
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if !readBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	s.sess(r).url = req.URL
	s.mu.Unlock()
	writeValue(w, nil)
}

func (s *Server) currentURL(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeValue(w, s.sess(r).url)
}

func (s *Server) title(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeValue(w, "fake "+s.sess(r).url)
}

func (s *Server) windowHandle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeValue(w, s.sess(r).window)
}

func (s *Server) windowHandles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeValue(w, []string{s.sess(r).window})
}

func (s *Server) allCookies(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cookies := s.sess(r).cookies
	if cookies == nil {
		cookies = []map[string]any{}
	}
	writeValue(w, cookies)
}

func (s *Server) addCookie(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Cookie map[string]any `json:"cookie"`
	}
	if !readBody(w, r, &req) {
		return
	}
	name, _ := req.Cookie["name"].(string)
	if name == "" {
		writeError(w, &Error{http.StatusBadRequest, "invalid argument", "cookie name is required"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sess(r)
	sess.cookies = removeCookie(sess.cookies, name)
	sess.cookies = append(sess.cookies, req.Cookie)
	writeValue(w, nil)
}

func removeCookie(cookies []map[string]any, name string) []map[string]any {
	out := cookies[:0]
	for _, c := range cookies {
		if c["name"] != name {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) namedCookie(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.sess(r).cookies {
		if c["name"] == name {
			writeValue(w, c)
			return
		}
	}
	writeError(w, &Error{http.StatusNotFound, "no such cookie", "no cookie named " + name})
}

func (s *Server) deleteCookie(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.sess(r)
	sess.cookies = removeCookie(sess.cookies, chi.URLParam(r, "name"))
	writeValue(w, nil)
}

func (s *Server) deleteAllCookies(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess(r).cookies = nil
	writeValue(w, nil)
}

func (s *Server) matching(value string) []string {
	var ids []string
	for id, v := range s.elements {
		if v == value {
			ids = append(ids, id)
		}
	}
	return ids
}

func (s *Server) findElement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Using string `json:"using"`
		Value string `json:"value"`
	}
	if !readBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	ids := s.matching(req.Value)
	s.mu.Unlock()
	if len(ids) == 0 {
		writeError(w, &Error{http.StatusNotFound, "no such element", "no element matches " + req.Using + " " + req.Value})
		return
	}
	writeValue(w, ElementRef(ids[0]))
}

func (s *Server) findElements(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if !readBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	ids := s.matching(req.Value)
	s.mu.Unlock()
	refs := make([]any, len(ids))
	for i, id := range ids {
		refs[i] = ElementRef(id)
	}
	writeValue(w, refs)
}

func (s *Server) element(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "eid")
	s.mu.Lock()
	_, ok := s.elements[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, &Error{http.StatusNotFound, "stale element reference", "element " + id + " is not attached to the document"})
	}
	return id, ok
}

func (s *Server) property(w http.ResponseWriter, r *http.Request) {
	id, ok := s.element(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	value := s.properties[id][chi.URLParam(r, "name")]
	s.mu.Unlock()
	writeValue(w, value)
}

func (s *Server) text(w http.ResponseWriter, r *http.Request) {
	id, ok := s.element(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	text, _ := s.properties[id]["innerText"].(string)
	s.mu.Unlock()
	writeValue(w, text)
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Script string `json:"script"`
		Args   []any  `json:"args"`
	}
	if !readBody(w, r, &req) {
		return
	}
	if req.Args == nil {
		writeError(w, &Error{http.StatusBadRequest, "invalid argument", "args must be an array"})
		return
	}
	s.mu.Lock()
	script := s.script
	s.mu.Unlock()
	value, e := script(req.Script, req.Args)
	if e != nil {
		writeError(w, e)
		return
	}
	writeValue(w, value)
}

//null accepts any other session command and replies with a null value.
func (s *Server) null(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		var body any
		if !readBody(w, r, &body) {
			return
		}
		if _, ok := body.(map[string]any); !ok {
			writeError(w, &Error{http.StatusBadRequest, "invalid argument", "body must be a JSON object"})
			return
		}
	}
	writeValue(w, nil)
}

// Package explorer holds the interactive state shared by the terminal UI and
// the one-shot CLI: the selected endpoint, its parameter values and the
// outcome of the last submission.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"apiexplorer/internal/catalog"
	"apiexplorer/internal/httpclient"
	"apiexplorer/internal/model"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

var (
	ErrBusy        = errors.New("a request is already in flight")
	ErrNoSelection = errors.New("no endpoint selected")
)

type MissingParamsError struct {
	Names []string
}

func (e *MissingParamsError) Error() string {
	return "missing required parameters: " + strings.Join(e.Names, ", ")
}

// Environment is the read side of environment.Resolver.
type Environment interface {
	Current() model.EnvironmentSettings
}

// Sender is implemented by *httpclient.Client.
type Sender interface {
	Do(ctx context.Context, spec httpclient.RequestSpec, opts httpclient.SendOptions) (*model.Response, error)
}

type Session struct {
	catalog *catalog.Catalog
	env     Environment
	sender  Sender

	mu       sync.Mutex
	selected *model.Endpoint
	values   map[string]string
	status   Status
	response *model.Response
	err      error
	skipAuth bool
}

func New(c *catalog.Catalog, env Environment, sender Sender) *Session {
	return &Session{catalog: c, env: env, sender: sender, values: map[string]string{}, status: StatusIdle}
}

func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// Select switches to another endpoint and clears all parameter values.
func (s *Session) Select(value string) (model.Endpoint, error) {
	ep, err := s.catalog.Lookup(value)
	if err != nil {
		return model.Endpoint{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = &ep
	s.values = map[string]string{}
	return ep, nil
}

func (s *Session) Selected() (model.Endpoint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return model.Endpoint{}, false
	}
	return *s.selected, true
}

func (s *Session) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return ErrNoSelection
	}
	for _, p := range s.selected.Params {
		if p.Name == name {
			s.values[name] = value
			return nil
		}
	}
	return fmt.Errorf("endpoint %s has no parameter %q", s.selected.Value, name)
}

func (s *Session) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Missing lists required parameters that are empty or blank.
func (s *Session) Missing() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.missingLocked()
}

func (s *Session) missingLocked() []string {
	if s.selected == nil {
		return nil
	}
	var out []string
	for _, p := range s.selected.Params {
		if p.Required && strings.TrimSpace(s.values[p.Name]) == "" {
			out = append(out, p.Name)
		}
	}
	return out
}

func (s *Session) SetSkipAuth(skip bool) {
	s.mu.Lock()
	s.skipAuth = skip
	s.mu.Unlock()
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Response is the last successful response, or the error response when the
// server answered with a failure status.
func (s *Session) Response() *model.Response {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.response
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Session) PreviewURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return ""
	}
	return httpclient.PreviewURL(*s.selected, s.env.Current(), s.values)
}

// Submit builds and sends the selected request. It blocks until the response
// arrives; callers wanting a responsive UI run it in a goroutine and poll
// Status.
func (s *Session) Submit(ctx context.Context) (*model.Response, error) {
	s.mu.Lock()
	if s.status == StatusLoading {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if s.selected == nil {
		s.mu.Unlock()
		return nil, ErrNoSelection
	}
	if missing := s.missingLocked(); len(missing) > 0 {
		s.mu.Unlock()
		return nil, &MissingParamsError{Names: missing}
	}
	ep := *s.selected
	spec := httpclient.Build(ep, s.env.Current(), s.values)
	opts := httpclient.SendOptions{ResponseType: ep.Responds(), SkipAuth: s.skipAuth}
	s.status = StatusLoading
	s.err = nil
	s.mu.Unlock()

	resp, err := s.sender.Do(ctx, spec, opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = StatusError
		s.err = err
		s.response = nil
		var reqErr *httpclient.RequestError
		if errors.As(err, &reqErr) {
			s.response = reqErr.Response
		}
		return nil, err
	}
	s.status = StatusSuccess
	s.response = resp
	return resp, nil
}

// Package fakeadmin provides an in-memory administration service
// recording all committed changes.
package fakeadmin

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dwcj/installer/pkg/admin"
)

const (
	OP_OPEN          = "open"
	OP_SET_CLASSPATH = "setClasspath"
	OP_COMMIT        = "commit"
	OP_CONFIGURATION = "configuration"
	OP_APPLICATION   = "application"
)

type Service struct {
	lock         sync.Mutex
	failures     map[string]error
	sessions     []admin.Credentials
	classpaths   map[string][]string
	applications []admin.Application
	calls        []string
}

var _ admin.SessionProvider = (*Service)(nil)

func New() *Service {
	return &Service{
		failures:   map[string]error{},
		classpaths: map[string][]string{},
	}
}

// FailOn primes the service to fail the given operation.
func (s *Service) FailOn(op string, err error) *Service {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.failures[op] = err
	return s
}

func (s *Service) Sessions() []admin.Credentials {
	s.lock.Lock()
	defer s.lock.Unlock()
	return slices.Clone(s.sessions)
}

func (s *Service) Classpath(name string) []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return slices.Clone(s.classpaths[name])
}

func (s *Service) Classpaths() map[string][]string {
	s.lock.Lock()
	defer s.lock.Unlock()
	r := map[string][]string{}
	for k, v := range s.classpaths {
		r[k] = slices.Clone(v)
	}
	return r
}

func (s *Service) Applications() []admin.Application {
	s.lock.Lock()
	defer s.lock.Unlock()
	return slices.Clone(s.applications)
}

// Calls returns the sequence of executed operations.
func (s *Service) Calls() []string {
	s.lock.Lock()
	defer s.lock.Unlock()
	return slices.Clone(s.calls)
}

func (s *Service) call(op string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.calls = append(s.calls, op)
	return s.failures[op]
}

func (s *Service) Open(ctx context.Context, creds admin.Credentials) (admin.Session, error) {
	if err := s.call(OP_OPEN); err != nil {
		return nil, err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.sessions = append(s.sessions, creds)
	return &session{service: s, pending: map[string][]string{}}, nil
}

type session struct {
	service *Service
	pending map[string][]string
}

func (s *session) SetClasspath(ctx context.Context, name string, entries []string) error {
	if err := s.service.call(OP_SET_CLASSPATH); err != nil {
		return err
	}
	s.pending[name] = slices.Clone(entries)
	return nil
}

func (s *session) Commit(ctx context.Context) error {
	if err := s.service.call(OP_COMMIT); err != nil {
		return err
	}
	s.service.lock.Lock()
	defer s.service.lock.Unlock()
	for k, v := range s.pending {
		s.service.classpaths[k] = v
	}
	s.pending = map[string][]string{}
	return nil
}

func (s *session) RemoteConfiguration(ctx context.Context) (admin.Configuration, error) {
	if err := s.service.call(OP_CONFIGURATION); err != nil {
		return nil, err
	}
	return &configuration{service: s.service}, nil
}

type configuration struct {
	service *Service
}

func (c *configuration) CreateApplication() *admin.Application {
	return &admin.Application{}
}

func (c *configuration) CommitApplication(ctx context.Context, app *admin.Application) error {
	if app == nil {
		return fmt.Errorf("no application")
	}
	if err := c.service.call(OP_APPLICATION); err != nil {
		return err
	}
	a := *app
	a.Arguments = slices.Clone(app.Arguments)
	c.service.lock.Lock()
	defer c.service.lock.Unlock()
	c.service.applications = append(c.service.applications, a)
	return nil
}

// Package httpadmin accesses the administration service via its
// JSON/HTTP endpoint.
package httpadmin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mandelsoft/goutils/maputils"

	"github.com/dwcj/installer/pkg/admin"
)

const (
	PATH_SESSION      = "session"
	PATH_CLASSPATHS   = "classpaths/"
	PATH_DEPLOYMENT   = "appdeployment"
	PATH_APPLICATIONS = "appdeployment/applications"
)

// Error is the error body returned by the service.
type Error struct {
	Error string `json:"error"`
}

// Classpath is the body for classpath updates.
type Classpath struct {
	Name    string   `json:"name"`
	Entries []string `json:"entries"`
}

// Deployment is the remote deployment configuration.
type Deployment struct {
	Applications []admin.Application `json:"applications,omitempty"`
}

type Provider struct {
	address string
	client  *http.Client
}

var _ admin.SessionProvider = (*Provider)(nil)

func New(address string, client *http.Client) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	return &Provider{address: GetURL(address), client: client}
}

// GetURL normalizes a service address to an URL with trailing slash.
func GetURL(a string) string {
	if !strings.HasPrefix(a, "http://") && !strings.HasPrefix(a, "https://") {
		a = "https://" + a
	}
	if !strings.HasSuffix(a, "/") {
		a += "/"
	}
	return a
}

func (p *Provider) Open(ctx context.Context, creds admin.Credentials) (admin.Session, error) {
	s := &session{
		provider: p,
		creds:    creds,
		pending:  map[string][]string{},
	}
	if _, err := s.do(ctx, http.MethodPost, PATH_SESSION, nil); err != nil {
		return nil, err
	}
	return s, nil
}

type session struct {
	provider *Provider
	creds    admin.Credentials
	pending  map[string][]string
}

func (s *session) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, s.provider.address+path, r)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if s.creds.UseToken {
		req.Header.Set("Authorization", "Bearer "+s.creds.Token)
	} else {
		req.SetBasicAuth(s.creds.Username, s.creds.Password)
	}

	resp, err := s.provider.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return ResponseData(resp)
}

func (s *session) SetClasspath(ctx context.Context, name string, entries []string) error {
	if name == "" {
		return fmt.Errorf("classpath name required")
	}
	s.pending[name] = append([]string(nil), entries...)
	return nil
}

func (s *session) Commit(ctx context.Context) error {
	for _, n := range maputils.OrderedKeys(s.pending) {
		_, err := s.do(ctx, http.MethodPut, PATH_CLASSPATHS+url.PathEscape(n), &Classpath{Name: n, Entries: s.pending[n]})
		if err != nil {
			return fmt.Errorf("classpath %q: %w", n, err)
		}
		delete(s.pending, n)
	}
	return nil
}

func (s *session) RemoteConfiguration(ctx context.Context) (admin.Configuration, error) {
	data, err := s.do(ctx, http.MethodGet, PATH_DEPLOYMENT, nil)
	if err != nil {
		return nil, err
	}
	var d Deployment
	if len(data) > 0 {
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("invalid deployment configuration: %w", err)
		}
	}
	return &configuration{session: s, deployment: d}, nil
}

type configuration struct {
	session    *session
	deployment Deployment
}

func (c *configuration) CreateApplication() *admin.Application {
	return &admin.Application{}
}

func (c *configuration) CommitApplication(ctx context.Context, app *admin.Application) error {
	_, err := c.session.do(ctx, http.MethodPost, PATH_APPLICATIONS, app)
	if err != nil {
		return err
	}
	c.deployment.Applications = append(c.deployment.Applications, *app)
	return nil
}

// ResponseData returns the body of successful responses and maps
// error responses to errors.
func ResponseData(r *http.Response) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices {
		return data, nil
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("request failed with status %s", r.Status)
	}

	var msg Error
	err = json.Unmarshal(data, &msg)
	if err != nil || msg.Error == "" {
		return nil, fmt.Errorf("request failed with status %s", r.Status)
	}
	return nil, fmt.Errorf("%s", msg.Error)
}

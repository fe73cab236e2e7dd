package admin

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dwcj/installer/pkg/utils"
)

const (
	CLASSPATH_PREFIX = "dwcj_"
	PROGRAM          = "bbj/dwcj.bbj"
	WORKING_DIR      = "bbj"

	ARG_DEBUG = "DEBUG"
	ARG_CLASS = "class="
)

// RegistrationError is reported for failing administration service calls.
type RegistrationError struct {
	Op  string
	Err error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration failed: %s: %s", e.Op, e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}

// ClasspathHandle returns the classpath name used for an application.
func ClasspathHandle(app string) string {
	return CLASSPATH_PREFIX + strings.ToLower(app)
}

// Registration describes the application to register.
type Registration struct {
	AppName    string
	Classpath  []string
	WorkingDir string
	Debug      bool
	ClassName  string
}

// Application returns the application entry content for the registration.
func (r *Registration) Application(app *Application) *Application {
	if app == nil {
		app = &Application{}
	}
	app.Name = r.AppName
	app.Program = filepath.Join(r.WorkingDir, PROGRAM)
	app.Classpath = ClasspathHandle(r.AppName)
	app.WorkingDirectory = utils.DirPath(filepath.Join(r.WorkingDir, WORKING_DIR))
	app.ExeEnabled = false
	app.BUIEnabled = false
	app.DWCEnabled = true
	if r.Debug {
		app.Arguments = append(app.Arguments, ARG_DEBUG)
	}
	if r.ClassName != "" {
		app.Arguments = append(app.Arguments, ARG_CLASS+r.ClassName)
	}
	return app
}

// Register publishes the classpath and creates a new application entry.
// Existing entries with the same name are not checked.
func Register(ctx context.Context, session Session, r Registration) error {
	handle := ClasspathHandle(r.AppName)

	log.Info("setting classpath {{classpath}}", "classpath", handle, "entries", r.Classpath)
	if err := session.SetClasspath(ctx, handle, r.Classpath); err != nil {
		return &RegistrationError{Op: "set classpath " + handle, Err: err}
	}
	if err := session.Commit(ctx); err != nil {
		return &RegistrationError{Op: "commit classpath " + handle, Err: err}
	}

	cfg, err := session.RemoteConfiguration(ctx)
	if err != nil {
		return &RegistrationError{Op: "get deployment configuration", Err: err}
	}
	app := r.Application(cfg.CreateApplication())
	log.Info("creating application {{app}}", "app", app.Name, "program", app.Program, "arguments", app.Arguments)
	if err := cfg.CommitApplication(ctx, app); err != nil {
		return &RegistrationError{Op: "commit application " + app.Name, Err: err}
	}
	return nil
}

// Open opens a session and maps failures to registration errors.
func Open(ctx context.Context, p SessionProvider, creds Credentials) (Session, error) {
	s, err := p.Open(ctx, creds)
	if err != nil {
		return nil, &RegistrationError{Op: "open session for " + creds.String(), Err: err}
	}
	return s, nil
}

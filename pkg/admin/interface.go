package admin

import (
	"context"
)

// Credentials used to open a session. With UseToken set the token is
// used, even if empty, and username and password are ignored.
type Credentials struct {
	Token    string
	UseToken bool
	Username string
	Password string
}

func TokenCredentials(token string) Credentials {
	return Credentials{Token: token, UseToken: true}
}

func UserCredentials(user, password string) Credentials {
	return Credentials{Username: user, Password: password}
}

func (c Credentials) String() string {
	if c.UseToken {
		return "token"
	}
	return "user " + c.Username
}

// SessionProvider opens sessions on the administration service.
type SessionProvider interface {
	Open(ctx context.Context, creds Credentials) (Session, error)
}

// Session is an authenticated connection to the administration service.
// Classpath changes are staged until Commit is called.
type Session interface {
	SetClasspath(ctx context.Context, name string, entries []string) error
	Commit(ctx context.Context) error
	RemoteConfiguration(ctx context.Context) (Configuration, error)
}

// Configuration is the remote application deployment configuration.
type Configuration interface {
	CreateApplication() *Application
	CommitApplication(ctx context.Context, app *Application) error
}

// Application is an application entry of the deployment configuration.
type Application struct {
	Name             string   `json:"name"`
	Program          string   `json:"program"`
	Classpath        string   `json:"classpath"`
	WorkingDirectory string   `json:"workingDirectory"`
	ExeEnabled       bool     `json:"exeEnabled"`
	BUIEnabled       bool     `json:"buiEnabled"`
	DWCEnabled       bool     `json:"dwcEnabled"`
	Arguments        []string `json:"arguments,omitempty"`
}

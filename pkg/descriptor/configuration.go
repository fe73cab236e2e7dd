package descriptor

import (
	"github.com/mandelsoft/goutils/maputils"
)

const (
	KEY_PUBLISH_NAME = "publishname"
	KEY_USERNAME     = "username"
	KEY_PASSWORD     = "password"
	KEY_TOKEN        = "token"
	KEY_DEBUG        = "debug"
	KEY_CLASS_NAME   = "classname"
)

const (
	DEFAULT_USERNAME = "admin"
	DEFAULT_PASSWORD = "admin123"
)

// Configuration is the flat key/value configuration found in the
// descriptor.
type Configuration map[string]string

func (c Configuration) Lookup(key string) (string, bool) {
	v, ok := c[key]
	return v, ok
}

// Get returns the value for key or the first given default.
func (c Configuration) Get(key string, def ...string) string {
	if v, ok := c[key]; ok {
		return v
	}
	if len(def) > 0 {
		return def[0]
	}
	return ""
}

// Bool is true only for the literal value true.
func (c Configuration) Bool(key string) bool {
	return c[key] == "true"
}

func (c Configuration) Keys() []string {
	return maputils.OrderedKeys(c)
}

// Masked returns a copy with credential values replaced.
func (c Configuration) Masked() Configuration {
	r := Configuration{}
	for k, v := range c {
		if k == KEY_PASSWORD || k == KEY_TOKEN {
			v = "***"
		}
		r[k] = v
	}
	return r
}

// Defaults are used for options not configured in the descriptor.
type Defaults struct {
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

func DefaultDefaults() Defaults {
	return Defaults{
		Username: DEFAULT_USERNAME,
		Password: DEFAULT_PASSWORD,
	}
}

// Options are the effective installation options.
type Options struct {
	PublishName string
	Username    string
	Password    string
	// Token is used instead of Username and Password if HasToken is set.
	Token     string
	HasToken  bool
	Debug     bool
	ClassName string
}

// Options resolves the effective options. The publish name defaults to
// the given base name.
func (c Configuration) Options(basename string, def Defaults) Options {
	if def.Username == "" {
		def.Username = DEFAULT_USERNAME
	}
	if def.Password == "" {
		def.Password = DEFAULT_PASSWORD
	}
	token, hasToken := c.Lookup(KEY_TOKEN)
	return Options{
		PublishName: c.Get(KEY_PUBLISH_NAME, basename),
		Username:    c.Get(KEY_USERNAME, def.Username),
		Password:    c.Get(KEY_PASSWORD, def.Password),
		Token:       token,
		HasToken:    hasToken,
		Debug:       c.Bool(KEY_DEBUG),
		ClassName:   c.Get(KEY_CLASS_NAME),
	}
}

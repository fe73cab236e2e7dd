package admin

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("dwcj/admin", "administration service registration")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

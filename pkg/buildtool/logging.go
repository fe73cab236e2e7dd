package buildtool

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("dwcj/buildtool", "build tool bootstrap and invocation")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

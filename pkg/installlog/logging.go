package installlog

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("dwcj/log", "installation log")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

package archive

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("dwcj/archive", "archive extraction")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

package installer

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("dwcj/installer", "installation pipeline")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

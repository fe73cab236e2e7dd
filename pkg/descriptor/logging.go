package descriptor

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("dwcj/descriptor", "build descriptor parsing")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

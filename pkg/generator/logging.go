package generator

import (
	"github.com/mandelsoft/logging"
)

var REALM = logging.DefineRealm("metagen", "Metamodel Code Generator")

var log = logging.DynamicLogger(logging.DefaultContext(), REALM)

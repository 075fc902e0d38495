package bc

import (
	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("gocfdbc.bc")

// PreconditionViolated marks data missing or inconsistent at execution
// time: a boundary state without neighbors, a snapshot or nodal field that
// was configured but never provided. Configuration problems are reported
// as errors.NotValid, unsupported layouts as errors.NotImplemented.
const PreconditionViolated = errors.ConstError("precondition violated")

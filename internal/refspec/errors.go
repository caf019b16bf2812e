package refspec

import "errors"

// ErrLagDateMutex is the RefMutexViolation of spec.md §7: a reference spec
// set both `lag` and `date`.
var ErrLagDateMutex = errors.New("refspec: lag and date are mutually exclusive")

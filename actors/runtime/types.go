package runtime

import (
	"github.com/filecoin-project/go-state-types/rt"
)

// Concrete types associated with the runtime interface.

// VMActor is a concrete implementation of a built-in actor: method exports plus
// the metadata the VM needs to instantiate it.
type VMActor = rt.VMActor

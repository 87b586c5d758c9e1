package builtin

import (
	addr "github.com/filecoin-project/go-address"
)

// Addresses for singleton actor instances, defined at genesis.
var (
	SystemActorAddr  = mustMakeAddress(0)
	TokenActorAddr   = mustMakeAddress(1)
	GovernActorAddr  = mustMakeAddress(2)
	LockingActorAddr = mustMakeAddress(3)
)

func mustMakeAddress(id uint64) addr.Address {
	address, err := addr.NewIDAddress(id)
	if err != nil {
		panic(err)
	}
	return address
}

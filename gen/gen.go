package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/votelock-protocol/go-votelock-actors/actors/builtin"
	"github.com/votelock-protocol/go-votelock-actors/actors/builtin/locking"
	"github.com/votelock-protocol/go-votelock-actors/actors/builtin/system"
)

func main() {
	// Common types
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/cbor_gen.go", "builtin",
		builtin.TokenBalanceReturn{},
		builtin.TokenTransferParams{},
		builtin.TokenTransferFromParams{},
		builtin.TokensLockedParams{},
		builtin.TokensWithdrawnParams{},
	); err != nil {
		panic(err)
	}

	// Actors
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/system/cbor_gen.go", "system",
		// actor state
		system.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/locking/cbor_gen.go", "locking",
		// actor state
		locking.State{},
		locking.Holder{},
		locking.LockSlot{},
		// method params and returns
		locking.LockParams{},
		locking.WithdrawParams{},
		locking.FetchLockDataParams{},
		locking.GetVotingPowerParams{},
		locking.GetVotingPowerReturn{},
		locking.TotalLockedReturn{},
	); err != nil {
		panic(err)
	}
}

package locking

import (
	"github.com/filecoin-project/go-state-types/big"

	"github.com/votelock-protocol/go-votelock-actors/actors/builtin"
	"github.com/votelock-protocol/go-votelock-actors/actors/util/adt"
)

type StateSummary struct {
	HoldersCount     int
	ActiveSlotsCount int
}

// Checks internal invariants of locking ledger state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	sum := &StateSummary{}

	acc.Require(!st.InWithdrawal, "withdrawal latch set at rest")
	acc.Require(st.TotalLocked.GreaterThanEqual(big.Zero()), "negative total locked %v", st.TotalLocked)

	sumLocked := big.Zero()
	if holders, err := adt.AsMap(store, st.Holders, builtin.DefaultHamtBitwidth); err != nil {
		acc.Addf("failed to load holders: %v", err)
	} else {
		var hd Holder
		err = holders.ForEach(&hd, func(k string) error {
			sum.HoldersCount++
			hAcc := acc.WithPrefix("holder %v: ", k)

			slots, err := adt.AsArray(store, hd.Slots)
			if err != nil {
				hAcc.Addf("failed to load slots: %v", err)
				return nil
			}
			var slot LockSlot
			return slots.ForEach(&slot, func(i int64) error {
				hAcc.Require(Period(i).IsValid(), "slot index %d out of period range", i)
				hAcc.Require(slot.Amount.GreaterThanEqual(big.Zero()), "negative slot amount %v", slot.Amount)
				if slot.Amount.IsZero() {
					hAcc.Require(slot.UnlockEpoch == 0, "empty slot %d has unlock epoch %d", i, slot.UnlockEpoch)
				} else {
					sum.ActiveSlotsCount++
					hAcc.Require(slot.UnlockEpoch > 0, "non-empty slot %d has no unlock epoch", i)
					sumLocked = big.Add(sumLocked, slot.Amount)
				}
				return nil
			})
		})
		acc.RequireNoError(err, "failed to iterate holders")
	}

	acc.Require(st.TotalLocked.Equals(sumLocked), "total locked %v != sum of slot amounts %v", st.TotalLocked, sumLocked)

	return sum, acc
}

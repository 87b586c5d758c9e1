package locking

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/votelock-protocol/go-votelock-actors/actors/builtin"
	"github.com/votelock-protocol/go-votelock-actors/actors/util"
	"github.com/votelock-protocol/go-votelock-actors/actors/util/adt"
)

// State of the locking ledger actor.
type State struct {
	// Lock slots of each holder. HAMT[Holder ID-Address]Holder
	Holders cid.Cid

	// Sum of all slot amounts, i.e. the token balance expected in ledger custody.
	TotalLocked abi.TokenAmount

	// Set while a withdrawal's external sends are outstanding, so re-entrant
	// calls into state-mutating methods can be refused.
	InWithdrawal bool
}

// Holder groups the lock slots of one token holder.
type Holder struct {
	// Lock slots indexed by period tier. AMT[Period]LockSlot
	Slots cid.Cid
}

// LockSlot records the tokens a holder has locked under one period tier.
// A slot is zero-valued when unused or fully withdrawn.
type LockSlot struct {
	// Tokens currently locked in this slot.
	Amount abi.TokenAmount

	// Epoch after which the locked tokens may be withdrawn. Fixed when the slot
	// transitions from empty to non-empty, never moved by top-ups, and reset to
	// zero when the slot is cleared.
	UnlockEpoch abi.ChainEpoch
}

func ConstructState(store adt.Store) (*State, error) {
	emptyHoldersMapCid, err := adt.StoreEmptyMap(store, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty map: %w", err)
	}

	return &State{
		Holders:     emptyHoldersMapCid,
		TotalLocked: abi.NewTokenAmount(0),
	}, nil
}

func emptyLockSlot() LockSlot {
	return LockSlot{
		Amount:      abi.NewTokenAmount(0),
		UnlockEpoch: abi.ChainEpoch(0),
	}
}

// AddToSlot locks amount under (holder, period). An empty slot has its unlock
// epoch fixed to currEpoch plus the period duration; a non-empty slot only
// accepts a top-up while its existing lock is unmatured.
// Returns the exit code to abort with when err is non-nil.
func (st *State) AddToSlot(store adt.Store, holder addr.Address, period Period, amount abi.TokenAmount, currEpoch abi.ChainEpoch) (exitcode.ExitCode, error) {
	if amount.LessThanEqual(big.Zero()) {
		return exitcode.ErrIllegalArgument, xerrors.Errorf("non-positive amount %v to lock", amount)
	}
	if !period.IsValid() {
		return exitcode.ErrIllegalArgument, xerrors.Errorf("invalid lock period %d", period)
	}

	holders, err := adt.AsMap(store, st.Holders, builtin.DefaultHamtBitwidth)
	if err != nil {
		return exitcode.ErrIllegalState, xerrors.Errorf("failed to load holders: %w", err)
	}

	var hd Holder
	found, err := holders.Get(abi.AddrKey(holder), &hd)
	if err != nil {
		return exitcode.ErrIllegalState, xerrors.Errorf("failed to get holder %v: %w", holder, err)
	}

	var slots *adt.Array
	if found {
		slots, err = adt.AsArray(store, hd.Slots)
		if err != nil {
			return exitcode.ErrIllegalState, xerrors.Errorf("failed to load slots of %v: %w", holder, err)
		}
	} else {
		slots = adt.MakeEmptyArray(store)
	}

	slot := emptyLockSlot()
	if _, err := slots.Get(uint64(period), &slot); err != nil {
		return exitcode.ErrIllegalState, xerrors.Errorf("failed to get slot %d of %v: %w", period, holder, err)
	}

	if slot.Amount.IsZero() {
		// First lock in this slot fixes the unlock epoch. Top-ups never move it.
		slot.UnlockEpoch = currEpoch + period.Duration()
	} else if currEpoch > slot.UnlockEpoch {
		return exitcode.ErrForbidden, xerrors.Errorf("lock period completed at epoch %d, withdraw before locking again", slot.UnlockEpoch)
	}
	slot.Amount = big.Add(slot.Amount, amount)

	if err := slots.Set(uint64(period), &slot); err != nil {
		return exitcode.ErrIllegalState, xerrors.Errorf("failed to put slot %d of %v: %w", period, holder, err)
	}
	if hd.Slots, err = slots.Root(); err != nil {
		return exitcode.ErrIllegalState, xerrors.Errorf("failed to flush slots of %v: %w", holder, err)
	}
	if err := holders.Put(abi.AddrKey(holder), &hd); err != nil {
		return exitcode.ErrIllegalState, xerrors.Errorf("failed to put holder %v: %w", holder, err)
	}
	if st.Holders, err = holders.Root(); err != nil {
		return exitcode.ErrIllegalState, xerrors.Errorf("failed to flush holders: %w", err)
	}

	st.TotalLocked = big.Add(st.TotalLocked, amount)
	return exitcode.Ok, nil
}

// ClearSlot resets the slot at (holder, period) to zero values and returns its
// previous contents. Clearing an absent or empty slot is not an error and
// leaves state untouched.
func (st *State) ClearSlot(store adt.Store, holder addr.Address, period Period) (*LockSlot, error) {
	holders, err := adt.AsMap(store, st.Holders, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to load holders: %w", err)
	}

	var hd Holder
	found, err := holders.Get(abi.AddrKey(holder), &hd)
	if err != nil {
		return nil, xerrors.Errorf("failed to get holder %v: %w", holder, err)
	}
	cleared := emptyLockSlot()
	if !found {
		return &cleared, nil
	}

	slots, err := adt.AsArray(store, hd.Slots)
	if err != nil {
		return nil, xerrors.Errorf("failed to load slots of %v: %w", holder, err)
	}
	found, err = slots.Get(uint64(period), &cleared)
	if err != nil {
		return nil, xerrors.Errorf("failed to get slot %d of %v: %w", period, holder, err)
	}
	if !found || cleared.Amount.IsZero() {
		cleared = emptyLockSlot()
		return &cleared, nil
	}

	empty := emptyLockSlot()
	if err := slots.Set(uint64(period), &empty); err != nil {
		return nil, xerrors.Errorf("failed to put slot %d of %v: %w", period, holder, err)
	}
	if hd.Slots, err = slots.Root(); err != nil {
		return nil, xerrors.Errorf("failed to flush slots of %v: %w", holder, err)
	}
	if err := holders.Put(abi.AddrKey(holder), &hd); err != nil {
		return nil, xerrors.Errorf("failed to put holder %v: %w", holder, err)
	}
	if st.Holders, err = holders.Root(); err != nil {
		return nil, xerrors.Errorf("failed to flush holders: %w", err)
	}

	st.TotalLocked = big.Sub(st.TotalLocked, cleared.Amount)
	util.AssertMsg(st.TotalLocked.GreaterThanEqual(big.Zero()),
		"negative total locked %v after clearing slot %d of %v", st.TotalLocked, period, holder)
	return &cleared, nil
}

// LoadSlot reads the slot at (holder, period), returning a zero-valued slot
// when the holder or slot is absent.
func (st *State) LoadSlot(store adt.Store, holder addr.Address, period Period) (*LockSlot, error) {
	holders, err := adt.AsMap(store, st.Holders, builtin.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to load holders: %w", err)
	}

	var hd Holder
	found, err := holders.Get(abi.AddrKey(holder), &hd)
	if err != nil {
		return nil, xerrors.Errorf("failed to get holder %v: %w", holder, err)
	}
	slot := emptyLockSlot()
	if !found {
		return &slot, nil
	}

	slots, err := adt.AsArray(store, hd.Slots)
	if err != nil {
		return nil, xerrors.Errorf("failed to load slots of %v: %w", holder, err)
	}
	if _, err := slots.Get(uint64(period), &slot); err != nil {
		return nil, xerrors.Errorf("failed to get slot %d of %v: %w", period, holder, err)
	}
	return &slot, nil
}

// VotingPower sums amount times the period multiplier over the holder's slots
// whose unlock epoch is strictly later than currEpoch. Matured and empty slots
// contribute nothing.
func (st *State) VotingPower(store adt.Store, holder addr.Address, currEpoch abi.ChainEpoch) (abi.TokenAmount, error) {
	power := big.Zero()

	holders, err := adt.AsMap(store, st.Holders, builtin.DefaultHamtBitwidth)
	if err != nil {
		return power, xerrors.Errorf("failed to load holders: %w", err)
	}

	var hd Holder
	found, err := holders.Get(abi.AddrKey(holder), &hd)
	if err != nil {
		return power, xerrors.Errorf("failed to get holder %v: %w", holder, err)
	}
	if !found {
		return power, nil
	}

	slots, err := adt.AsArray(store, hd.Slots)
	if err != nil {
		return power, xerrors.Errorf("failed to load slots of %v: %w", holder, err)
	}

	var slot LockSlot
	err = slots.ForEach(&slot, func(i int64) error {
		period := Period(i)
		if !period.IsValid() {
			return xerrors.Errorf("unexpected slot index %d", i)
		}
		if slot.Amount.IsZero() || slot.UnlockEpoch <= currEpoch {
			return nil
		}
		power = big.Add(power, big.Mul(slot.Amount, period.Multiplier()))
		return nil
	})
	if err != nil {
		return big.Zero(), err
	}
	return power, nil
}

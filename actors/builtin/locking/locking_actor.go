package locking

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-cid"

	"github.com/votelock-protocol/go-votelock-actors/actors/builtin"
	"github.com/votelock-protocol/go-votelock-actors/actors/runtime"
	"github.com/votelock-protocol/go-votelock-actors/actors/util/adt"
)

// The locking ledger actor holds tokens locked by holders for a fixed period
// tier in exchange for a voting power multiplier, and releases the principal
// back to the holder once the lock matures.
type Actor struct{}

type Runtime = runtime.Runtime

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.Lock,
		3:                         a.Withdraw,
		4:                         a.FetchLockData,
		5:                         a.GetVotingPower,
		6:                         a.TotalLocked,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.LockingActorCodeID
}

func (a Actor) IsSingleton() bool {
	return true
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

////////////////////////////////////////////////////////////////////////////////
// Actor methods
////////////////////////////////////////////////////////////////////////////////

func (a Actor) Constructor(rt Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerIs(builtin.SystemActorAddr)

	st, err := ConstructState(adt.AsStore(rt))
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.StateCreate(st)
	return nil
}

type LockParams struct {
	Amount abi.TokenAmount
	Period Period
}

// Locks the given amount of the caller's spendable token balance under the
// given period tier. An empty slot starts a fresh lock maturing one period
// duration from now; a still-unmatured slot accumulates the amount without
// moving its unlock epoch; a matured slot must be withdrawn first.
// Tokens are pulled into the ledger's custody as the final interaction, after
// all state mutation.
func (a Actor) Lock(rt Runtime, params *LockParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerType(builtin.CallerTypesSignable...)
	holder := rt.Caller()

	builtin.RequireParam(rt, !params.Amount.IsZero(), "no tokens to lock")
	builtin.RequireParam(rt, params.Amount.GreaterThan(big.Zero()), "negative amount %v to lock", params.Amount)
	builtin.RequireParam(rt, params.Period.IsValid(), "invalid lock period %d", params.Period)

	spendable := builtin.RequestTokenBalance(rt, holder)
	if spendable.LessThan(params.Amount) {
		rt.Abortf(exitcode.ErrInsufficientFunds, "spendable balance %v less than amount to lock %v", spendable, params.Amount)
	}

	var st State
	rt.StateTransaction(&st, func() {
		if st.InWithdrawal {
			rt.Abortf(exitcode.ErrForbidden, "re-entrant call while withdrawal in flight")
		}
		code, err := st.AddToSlot(adt.AsStore(rt), holder, params.Period, params.Amount, rt.CurrEpoch())
		builtin.RequireNoErr(rt, err, code, "failed to lock %v for %v", params.Amount, holder)
	})

	builtin.NotifyTokensLocked(rt, holder, params.Amount, uint64(params.Period))
	builtin.RequestTokenTransferFrom(rt, holder, rt.Receiver(), params.Amount)
	return nil
}

type WithdrawParams struct {
	Period Period
}

// Withdraws the full principal of the caller's slot at the given period tier.
// The slot is cleared before the maturity check so a re-entrant call observes
// an empty slot; an abort on an unmatured lock reverts the whole message.
// Withdrawing an empty slot succeeds with a zero amount.
func (a Actor) Withdraw(rt Runtime, params *WithdrawParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerType(builtin.CallerTypesSignable...)
	builtin.RequireParam(rt, params.Period.IsValid(), "invalid lock period %d", params.Period)

	holder := rt.Caller()
	var withdrawn *LockSlot
	var st State
	rt.StateTransaction(&st, func() {
		if st.InWithdrawal {
			rt.Abortf(exitcode.ErrForbidden, "re-entrant call while withdrawal in flight")
		}

		var err error
		withdrawn, err = st.ClearSlot(adt.AsStore(rt), holder, params.Period)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to clear slot %d of %v", params.Period, holder)

		if withdrawn.UnlockEpoch > rt.CurrEpoch() {
			rt.Abortf(exitcode.ErrForbidden, "lock matures at epoch %d, current %d", withdrawn.UnlockEpoch, rt.CurrEpoch())
		}
		st.InWithdrawal = true
	})

	builtin.NotifyTokensWithdrawn(rt, holder, withdrawn.Amount, uint64(params.Period), rt.CurrEpoch())
	if withdrawn.Amount.GreaterThan(big.Zero()) {
		builtin.RequestTokenTransfer(rt, holder, withdrawn.Amount)
	}

	rt.StateTransaction(&st, func() {
		st.InWithdrawal = false
	})
	return nil
}

type FetchLockDataParams struct {
	Holder addr.Address
	Period Period
}

// Returns the current slot at (holder, period), zero-valued if the holder has
// never locked under that tier.
func (a Actor) FetchLockData(rt Runtime, params *FetchLockDataParams) *LockSlot {
	rt.ValidateImmediateCallerAcceptAny()
	builtin.RequireParam(rt, params.Period.IsValid(), "invalid lock period %d", params.Period)

	holder, ok := rt.ResolveAddress(params.Holder)
	builtin.RequireParam(rt, ok, "failed to resolve address %v", params.Holder)

	var st State
	rt.StateReadonly(&st)

	slot, err := st.LoadSlot(adt.AsStore(rt), holder, params.Period)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load slot %d of %v", params.Period, holder)
	return slot
}

type GetVotingPowerParams struct {
	Holder addr.Address
}

// GetVotingPowerReturn returns the holder's current voting power.
type GetVotingPowerReturn struct {
	Power abi.TokenAmount
}

// Returns the sum of locked amount times period multiplier over the holder's
// slots whose unlock epoch is strictly later than the current epoch. This is a
// pure read; governance calls it on demand and must not cache it.
func (a Actor) GetVotingPower(rt Runtime, params *GetVotingPowerParams) *GetVotingPowerReturn {
	rt.ValidateImmediateCallerAcceptAny()

	holder, ok := rt.ResolveAddress(params.Holder)
	builtin.RequireParam(rt, ok, "failed to resolve address %v", params.Holder)

	var st State
	rt.StateReadonly(&st)

	power, err := st.VotingPower(adt.AsStore(rt), holder, rt.CurrEpoch())
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to compute voting power of %v", holder)
	return &GetVotingPowerReturn{
		Power: power,
	}
}

// TotalLockedReturn returns the total tokens in ledger custody.
type TotalLockedReturn struct {
	TotalLocked abi.TokenAmount
}

func (a Actor) TotalLocked(rt Runtime, _ *abi.EmptyValue) *TotalLockedReturn {
	rt.ValidateImmediateCallerAcceptAny()

	var st State
	rt.StateReadonly(&st)

	return &TotalLockedReturn{
		TotalLocked: st.TotalLocked,
	}
}

package locking_test

import (
	"context"
	"testing"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/require"

	"github.com/votelock-protocol/go-votelock-actors/actors/builtin"
	"github.com/votelock-protocol/go-votelock-actors/actors/builtin/locking"
	"github.com/votelock-protocol/go-votelock-actors/actors/util/adt"
	"github.com/votelock-protocol/go-votelock-actors/support/mock"
	tutils "github.com/votelock-protocol/go-votelock-actors/support/testing"
)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, locking.Actor{})
}

func TestConstruction(t *testing.T) {
	actor := newHarness(t)
	rt := mock.NewBuilder(context.Background(), builtin.LockingActorAddr).
		WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID).
		Build(t)
	actor.constructAndVerify(rt)

	st := actor.getState(rt)
	require.Equal(t, abi.NewTokenAmount(0), st.TotalLocked)
	require.False(t, st.InWithdrawal)
}

func TestLock(t *testing.T) {
	holder := tutils.NewIDAddr(t, 100)

	setupFunc := func(t *testing.T) (*mock.Runtime, *actorHarness) {
		actor := newHarness(t)
		rt := mock.NewBuilder(context.Background(), builtin.LockingActorAddr).
			WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID).
			Build(t)
		actor.constructAndVerify(rt)
		return rt, actor
	}

	t.Run("simple lock", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetEpoch(abi.ChainEpoch(10))

		actor.lock(rt, holder, abi.NewTokenAmount(1000), locking.PeriodHalfYear, abi.NewTokenAmount(5000))

		st := actor.getState(rt)
		require.Equal(t, abi.NewTokenAmount(1000), st.TotalLocked)

		slot := actor.loadSlot(rt, holder, locking.PeriodHalfYear)
		require.Equal(t, abi.NewTokenAmount(1000), slot.Amount)
		require.Equal(t, abi.ChainEpoch(10)+locking.PeriodHalfYear.Duration(), slot.UnlockEpoch)
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetCaller(holder, builtin.AccountActorCodeID)

		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbortContainsMessage(exitcode.ErrIllegalArgument, "no tokens to lock", func() {
			rt.Call(actor.Lock, &locking.LockParams{Amount: abi.NewTokenAmount(0), Period: locking.PeriodHalfYear})
		})
		rt.Verify()
	})

	t.Run("invalid period rejected", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetCaller(holder, builtin.AccountActorCodeID)

		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbortContainsMessage(exitcode.ErrIllegalArgument, "invalid lock period", func() {
			rt.Call(actor.Lock, &locking.LockParams{Amount: abi.NewTokenAmount(1000), Period: locking.Period(3)})
		})
		rt.Verify()
	})

	t.Run("insufficient spendable balance rejected", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetCaller(holder, builtin.AccountActorCodeID)

		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectSend(builtin.TokenActorAddr, builtin.MethodsToken.BalanceOf, &holder, abi.NewTokenAmount(0),
			&builtin.TokenBalanceReturn{Balance: abi.NewTokenAmount(999)}, exitcode.Ok)
		rt.ExpectAbort(exitcode.ErrInsufficientFunds, func() {
			rt.Call(actor.Lock, &locking.LockParams{Amount: abi.NewTokenAmount(1000), Period: locking.PeriodHalfYear})
		})
		rt.Verify()

		st := actor.getState(rt)
		require.Equal(t, abi.NewTokenAmount(0), st.TotalLocked)
	})

	t.Run("top-up keeps unlock epoch", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetEpoch(abi.ChainEpoch(10))
		actor.lock(rt, holder, abi.NewTokenAmount(1000), locking.PeriodOneYear, abi.NewTokenAmount(5000))

		unlock := abi.ChainEpoch(10) + locking.PeriodOneYear.Duration()
		rt.SetEpoch(unlock - 1)
		actor.lock(rt, holder, abi.NewTokenAmount(500), locking.PeriodOneYear, abi.NewTokenAmount(4000))

		slot := actor.loadSlot(rt, holder, locking.PeriodOneYear)
		require.Equal(t, abi.NewTokenAmount(1500), slot.Amount)
		require.Equal(t, unlock, slot.UnlockEpoch)
	})

	t.Run("lock on matured slot rejected", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetEpoch(abi.ChainEpoch(10))
		actor.lock(rt, holder, abi.NewTokenAmount(1000), locking.PeriodHalfYear, abi.NewTokenAmount(5000))

		rt.SetEpoch(abi.ChainEpoch(10) + locking.PeriodHalfYear.Duration() + 1)
		rt.SetCaller(holder, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectSend(builtin.TokenActorAddr, builtin.MethodsToken.BalanceOf, &holder, abi.NewTokenAmount(0),
			&builtin.TokenBalanceReturn{Balance: abi.NewTokenAmount(5000)}, exitcode.Ok)
		rt.ExpectAbortContainsMessage(exitcode.ErrForbidden, "lock period completed", func() {
			rt.Call(actor.Lock, &locking.LockParams{Amount: abi.NewTokenAmount(1), Period: locking.PeriodHalfYear})
		})
		rt.Verify()

		// rolled back
		slot := actor.loadSlot(rt, holder, locking.PeriodHalfYear)
		require.Equal(t, abi.NewTokenAmount(1000), slot.Amount)
	})

	t.Run("non-signable caller rejected", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetCaller(builtin.GovernActorAddr, builtin.GovernActorCodeID)

		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbort(exitcode.SysErrForbidden, func() {
			rt.Call(actor.Lock, &locking.LockParams{Amount: abi.NewTokenAmount(1000), Period: locking.PeriodHalfYear})
		})
		rt.Verify()
	})
}

func TestWithdraw(t *testing.T) {
	holder := tutils.NewIDAddr(t, 100)

	setupFunc := func(t *testing.T) (*mock.Runtime, *actorHarness) {
		actor := newHarness(t)
		rt := mock.NewBuilder(context.Background(), builtin.LockingActorAddr).
			WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID).
			Build(t)
		actor.constructAndVerify(rt)
		return rt, actor
	}

	t.Run("withdraw before maturity rejected and rolled back", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetEpoch(abi.ChainEpoch(10))
		actor.lock(rt, holder, abi.NewTokenAmount(1000), locking.PeriodHalfYear, abi.NewTokenAmount(5000))

		rt.SetEpoch(abi.ChainEpoch(10) + locking.PeriodHalfYear.Duration() - 1)
		rt.SetCaller(holder, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbortContainsMessage(exitcode.ErrForbidden, "lock matures at", func() {
			rt.Call(actor.Withdraw, &locking.WithdrawParams{Period: locking.PeriodHalfYear})
		})
		rt.Verify()

		// the cleared slot was restored by the rollback
		slot := actor.loadSlot(rt, holder, locking.PeriodHalfYear)
		require.Equal(t, abi.NewTokenAmount(1000), slot.Amount)
		st := actor.getState(rt)
		require.Equal(t, abi.NewTokenAmount(1000), st.TotalLocked)
		require.False(t, st.InWithdrawal)
	})

	t.Run("withdraw at maturity", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetEpoch(abi.ChainEpoch(10))
		actor.lock(rt, holder, abi.NewTokenAmount(1000), locking.PeriodHalfYear, abi.NewTokenAmount(5000))

		unlock := abi.ChainEpoch(10) + locking.PeriodHalfYear.Duration()
		rt.SetEpoch(unlock)
		actor.withdraw(rt, holder, locking.PeriodHalfYear, abi.NewTokenAmount(1000))

		slot := actor.loadSlot(rt, holder, locking.PeriodHalfYear)
		require.Equal(t, abi.NewTokenAmount(0), slot.Amount)
		require.Equal(t, abi.ChainEpoch(0), slot.UnlockEpoch)

		st := actor.getState(rt)
		require.Equal(t, abi.NewTokenAmount(0), st.TotalLocked)
		require.False(t, st.InWithdrawal)
	})

	t.Run("withdraw of empty slot succeeds with zero amount", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetEpoch(abi.ChainEpoch(100))

		// a zero-amount notification is still emitted, but no transfer is sent
		rt.SetCaller(holder, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectSend(builtin.GovernActorAddr, builtin.MethodsGovern.OnTokensWithdrawn,
			&builtin.TokensWithdrawnParams{
				Holder:      holder,
				Amount:      abi.NewTokenAmount(0),
				Period:      uint64(locking.PeriodTwoYears),
				WithdrawnAt: abi.ChainEpoch(100),
			}, abi.NewTokenAmount(0), nil, exitcode.Ok)
		ret := rt.Call(actor.Withdraw, &locking.WithdrawParams{Period: locking.PeriodTwoYears})
		require.Nil(t, ret)
		rt.Verify()
	})

	t.Run("invalid period rejected", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetCaller(holder, builtin.AccountActorCodeID)

		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbortContainsMessage(exitcode.ErrIllegalArgument, "invalid lock period", func() {
			rt.Call(actor.Withdraw, &locking.WithdrawParams{Period: locking.Period(7)})
		})
		rt.Verify()
	})

	t.Run("re-entrant calls refused while withdrawal in flight", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetEpoch(abi.ChainEpoch(10))
		actor.lock(rt, holder, abi.NewTokenAmount(1000), locking.PeriodHalfYear, abi.NewTokenAmount(5000))

		// Latch the state the way Withdraw does before its external sends.
		var st locking.State
		rt.StateTransaction(&st, func() {
			st.InWithdrawal = true
		})

		rt.SetCaller(holder, builtin.AccountActorCodeID)

		// A lock arriving during that window is refused after its balance check.
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectSend(builtin.TokenActorAddr, builtin.MethodsToken.BalanceOf, &holder, abi.NewTokenAmount(0),
			&builtin.TokenBalanceReturn{Balance: abi.NewTokenAmount(5000)}, exitcode.Ok)
		rt.ExpectAbortContainsMessage(exitcode.ErrForbidden, "re-entrant", func() {
			rt.Call(actor.Lock, &locking.LockParams{Amount: abi.NewTokenAmount(100), Period: locking.PeriodHalfYear})
		})
		rt.Verify()

		// So is a second withdrawal, before it can clear any slot.
		rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
		rt.ExpectAbortContainsMessage(exitcode.ErrForbidden, "re-entrant", func() {
			rt.Call(actor.Withdraw, &locking.WithdrawParams{Period: locking.PeriodHalfYear})
		})
		rt.Verify()

		// Neither refused call touched the slot or the total.
		slot := actor.loadSlot(rt, holder, locking.PeriodHalfYear)
		require.Equal(t, abi.NewTokenAmount(1000), slot.Amount)
		st = *actor.getState(rt)
		require.Equal(t, abi.NewTokenAmount(1000), st.TotalLocked)
		require.True(t, st.InWithdrawal)
	})

	t.Run("round trip leaves slot empty and relockable", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetEpoch(abi.ChainEpoch(10))
		actor.lock(rt, holder, abi.NewTokenAmount(1000), locking.PeriodHalfYear, abi.NewTokenAmount(5000))

		unlock := abi.ChainEpoch(10) + locking.PeriodHalfYear.Duration()
		rt.SetEpoch(unlock + 5)
		actor.withdraw(rt, holder, locking.PeriodHalfYear, abi.NewTokenAmount(1000))

		actor.lock(rt, holder, abi.NewTokenAmount(300), locking.PeriodHalfYear, abi.NewTokenAmount(5000))
		slot := actor.loadSlot(rt, holder, locking.PeriodHalfYear)
		require.Equal(t, abi.NewTokenAmount(300), slot.Amount)
		require.Equal(t, unlock+5+locking.PeriodHalfYear.Duration(), slot.UnlockEpoch)
	})
}

func TestFetchLockData(t *testing.T) {
	holder := tutils.NewIDAddr(t, 100)

	setupFunc := func(t *testing.T) (*mock.Runtime, *actorHarness) {
		actor := newHarness(t)
		rt := mock.NewBuilder(context.Background(), builtin.LockingActorAddr).
			WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID).
			Build(t)
		actor.constructAndVerify(rt)
		return rt, actor
	}

	t.Run("returns stored slot", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetEpoch(abi.ChainEpoch(10))
		actor.lock(rt, holder, abi.NewTokenAmount(1000), locking.PeriodOneYear, abi.NewTokenAmount(5000))

		rt.ExpectValidateCallerAny()
		ret := rt.Call(actor.FetchLockData, &locking.FetchLockDataParams{Holder: holder, Period: locking.PeriodOneYear})
		rt.Verify()

		slot := ret.(*locking.LockSlot)
		require.Equal(t, abi.NewTokenAmount(1000), slot.Amount)
		require.Equal(t, abi.ChainEpoch(10)+locking.PeriodOneYear.Duration(), slot.UnlockEpoch)
	})

	t.Run("zero-valued slot for unknown holder", func(t *testing.T) {
		rt, actor := setupFunc(t)

		rt.ExpectValidateCallerAny()
		ret := rt.Call(actor.FetchLockData, &locking.FetchLockDataParams{Holder: tutils.NewIDAddr(t, 999), Period: locking.PeriodHalfYear})
		rt.Verify()

		slot := ret.(*locking.LockSlot)
		require.Equal(t, abi.NewTokenAmount(0), slot.Amount)
		require.Equal(t, abi.ChainEpoch(0), slot.UnlockEpoch)
	})

	t.Run("invalid period rejected", func(t *testing.T) {
		rt, actor := setupFunc(t)

		rt.ExpectValidateCallerAny()
		rt.ExpectAbortContainsMessage(exitcode.ErrIllegalArgument, "invalid lock period", func() {
			rt.Call(actor.FetchLockData, &locking.FetchLockDataParams{Holder: holder, Period: locking.Period(3)})
		})
		rt.Verify()
	})
}

func TestGetVotingPower(t *testing.T) {
	holder := tutils.NewIDAddr(t, 100)

	setupFunc := func(t *testing.T) (*mock.Runtime, *actorHarness) {
		actor := newHarness(t)
		rt := mock.NewBuilder(context.Background(), builtin.LockingActorAddr).
			WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID).
			Build(t)
		actor.constructAndVerify(rt)
		return rt, actor
	}

	t.Run("active lock is weighted", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetEpoch(abi.ChainEpoch(10))
		actor.lock(rt, holder, abi.NewTokenAmount(1000), locking.PeriodHalfYear, abi.NewTokenAmount(5000))

		require.Equal(t, abi.NewTokenAmount(2000), actor.votingPower(rt, holder))

		rt.SetEpoch(abi.ChainEpoch(10) + locking.PeriodHalfYear.Duration())
		require.Equal(t, abi.NewTokenAmount(0), actor.votingPower(rt, holder))
	})

	t.Run("sums across periods", func(t *testing.T) {
		rt, actor := setupFunc(t)
		rt.SetEpoch(abi.ChainEpoch(10))
		actor.lock(rt, holder, abi.NewTokenAmount(1000), locking.PeriodHalfYear, abi.NewTokenAmount(5000))
		actor.lock(rt, holder, abi.NewTokenAmount(500), locking.PeriodTwoYears, abi.NewTokenAmount(4000))

		require.Equal(t, abi.NewTokenAmount(7000), actor.votingPower(rt, holder))

		// after the shorter lock matures, only the two-year lock counts
		rt.SetEpoch(abi.ChainEpoch(10) + locking.PeriodHalfYear.Duration())
		require.Equal(t, abi.NewTokenAmount(5000), actor.votingPower(rt, holder))
	})

	t.Run("zero for unknown holder", func(t *testing.T) {
		rt, actor := setupFunc(t)
		require.Equal(t, abi.NewTokenAmount(0), actor.votingPower(rt, tutils.NewIDAddr(t, 999)))
	})
}

func TestTotalLocked(t *testing.T) {
	holder := tutils.NewIDAddr(t, 100)
	holder2 := tutils.NewIDAddr(t, 101)

	actor := newHarness(t)
	rt := mock.NewBuilder(context.Background(), builtin.LockingActorAddr).
		WithCaller(builtin.SystemActorAddr, builtin.SystemActorCodeID).
		Build(t)
	actor.constructAndVerify(rt)

	rt.SetEpoch(abi.ChainEpoch(10))
	actor.lock(rt, holder, abi.NewTokenAmount(1000), locking.PeriodHalfYear, abi.NewTokenAmount(5000))
	actor.lock(rt, holder2, abi.NewTokenAmount(250), locking.PeriodOneYear, abi.NewTokenAmount(5000))

	rt.ExpectValidateCallerAny()
	ret := rt.Call(actor.TotalLocked, nil)
	rt.Verify()
	require.Equal(t, abi.NewTokenAmount(1250), ret.(*locking.TotalLockedReturn).TotalLocked)
}

type actorHarness struct {
	locking.Actor
	t *testing.T
}

func newHarness(t *testing.T) *actorHarness {
	return &actorHarness{
		Actor: locking.Actor{},
		t:     t,
	}
}

func (h *actorHarness) constructAndVerify(rt *mock.Runtime) {
	rt.ExpectValidateCallerAddr(builtin.SystemActorAddr)
	ret := rt.Call(h.Constructor, nil)
	require.Nil(h.t, ret)
	rt.Verify()
}

// Performs a successful lock by the holder, expecting the balance check,
// notification and custody transfer sends.
func (h *actorHarness) lock(rt *mock.Runtime, holder address.Address, amount abi.TokenAmount, period locking.Period, balance abi.TokenAmount) {
	rt.SetCaller(holder, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
	rt.ExpectSend(builtin.TokenActorAddr, builtin.MethodsToken.BalanceOf, &holder, abi.NewTokenAmount(0),
		&builtin.TokenBalanceReturn{Balance: balance}, exitcode.Ok)
	rt.ExpectSend(builtin.GovernActorAddr, builtin.MethodsGovern.OnTokensLocked,
		&builtin.TokensLockedParams{
			Holder: holder,
			Amount: amount,
			Period: uint64(period),
		}, abi.NewTokenAmount(0), nil, exitcode.Ok)
	rt.ExpectSend(builtin.TokenActorAddr, builtin.MethodsToken.TransferFrom,
		&builtin.TokenTransferFromParams{
			From:   holder,
			To:     builtin.LockingActorAddr,
			Amount: amount,
		}, abi.NewTokenAmount(0), nil, exitcode.Ok)

	ret := rt.Call(h.Lock, &locking.LockParams{Amount: amount, Period: period})
	require.Nil(h.t, ret)
	rt.Verify()
}

// Performs a successful withdrawal by the holder, expecting the notification
// and the custody transfer back to the holder.
func (h *actorHarness) withdraw(rt *mock.Runtime, holder address.Address, period locking.Period, amount abi.TokenAmount) {
	rt.SetCaller(holder, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerType(builtin.CallerTypesSignable...)
	rt.ExpectSend(builtin.GovernActorAddr, builtin.MethodsGovern.OnTokensWithdrawn,
		&builtin.TokensWithdrawnParams{
			Holder:      holder,
			Amount:      amount,
			Period:      uint64(period),
			WithdrawnAt: rt.CurrEpoch(),
		}, abi.NewTokenAmount(0), nil, exitcode.Ok)
	rt.ExpectSend(builtin.TokenActorAddr, builtin.MethodsToken.Transfer,
		&builtin.TokenTransferParams{
			To:     holder,
			Amount: amount,
		}, abi.NewTokenAmount(0), nil, exitcode.Ok)

	ret := rt.Call(h.Withdraw, &locking.WithdrawParams{Period: period})
	require.Nil(h.t, ret)
	rt.Verify()
}

func (h *actorHarness) getState(rt *mock.Runtime) *locking.State {
	var st locking.State
	rt.GetState(&st)
	return &st
}

func (h *actorHarness) loadSlot(rt *mock.Runtime, holder address.Address, period locking.Period) *locking.LockSlot {
	st := h.getState(rt)
	slot, err := st.LoadSlot(adt.AsStore(rt), holder, period)
	require.NoError(h.t, err)
	return slot
}

func (h *actorHarness) votingPower(rt *mock.Runtime, holder address.Address) abi.TokenAmount {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(h.GetVotingPower, &locking.GetVotingPowerParams{Holder: holder})
	rt.Verify()
	return ret.(*locking.GetVotingPowerReturn).Power
}

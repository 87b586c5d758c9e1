package builtin

import (
	"io"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/votelock-protocol/go-votelock-actors/actors/runtime"
)

///// Code shared by multiple built-in actors. /////

// Aborts with an ErrIllegalArgument if predicate is not true.
func RequireParam(rt runtime.Runtime, predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.ErrIllegalArgument, msg, args...)
	}
}

// Propagates a failed send by aborting the current method with the same exit code.
func RequireSuccess(rt runtime.Runtime, e exitcode.ExitCode, msg string, args ...interface{}) {
	if !e.IsSuccess() {
		rt.Abortf(e, msg, args...)
	}
}

// Aborts with a formatted message if err is not nil.
// The provided message will be suffixed by ": %s" and the provided args suffixed by the err.
func RequireNoErr(rt runtime.Runtime, err error, defaultExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	if err != nil {
		newMsg := msg + ": %s"
		newArgs := append(args, err)
		code := exitcode.Unwrap(err, defaultExitCode)
		rt.Abortf(code, newMsg, newArgs...)
	}
}

// This type duplicates the token actor's BalanceOf return type, to work around a
// circular dependency between actors.
type TokenBalanceReturn struct {
	Balance abi.TokenAmount
}

type TokenTransferParams struct {
	To     addr.Address
	Amount abi.TokenAmount
}

type TokenTransferFromParams struct {
	From   addr.Address
	To     addr.Address
	Amount abi.TokenAmount
}

// Requests the spendable token balance of a holder from the token actor.
func RequestTokenBalance(rt runtime.Runtime, holder addr.Address) abi.TokenAmount {
	var ret TokenBalanceReturn
	code := rt.Send(TokenActorAddr, MethodsToken.BalanceOf, &holder, abi.NewTokenAmount(0), &ret)
	RequireSuccess(rt, code, "failed fetching token balance of %v", holder)

	return ret.Balance
}

// Pulls tokens from a holder's spendable balance into the receiving actor's custody.
func RequestTokenTransferFrom(rt runtime.Runtime, from, to addr.Address, amount abi.TokenAmount) {
	params := &TokenTransferFromParams{
		From:   from,
		To:     to,
		Amount: amount,
	}
	code := rt.Send(TokenActorAddr, MethodsToken.TransferFrom, params, abi.NewTokenAmount(0), &Discard{})
	RequireSuccess(rt, code, "failed to transfer %v from %v", amount, from)
}

// Pushes tokens out of the sending actor's custody to a holder.
func RequestTokenTransfer(rt runtime.Runtime, to addr.Address, amount abi.TokenAmount) {
	params := &TokenTransferParams{
		To:     to,
		Amount: amount,
	}
	code := rt.Send(TokenActorAddr, MethodsToken.Transfer, params, abi.NewTokenAmount(0), &Discard{})
	RequireSuccess(rt, code, "failed to transfer %v to %v", amount, to)
}

// TokensLockedParams notification params
type TokensLockedParams struct {
	Holder addr.Address
	Amount abi.TokenAmount
	Period uint64
}

// TokensWithdrawnParams notification params
type TokensWithdrawnParams struct {
	Holder      addr.Address
	Amount      abi.TokenAmount
	Period      uint64
	WithdrawnAt abi.ChainEpoch
}

func NotifyTokensLocked(rt runtime.Runtime, holder addr.Address, amount abi.TokenAmount, period uint64) {
	params := &TokensLockedParams{
		Holder: holder,
		Amount: amount,
		Period: period,
	}
	code := rt.Send(GovernActorAddr, MethodsGovern.OnTokensLocked, params, abi.NewTokenAmount(0), &Discard{})
	RequireSuccess(rt, code, "failed to notify tokens locked")
}

func NotifyTokensWithdrawn(rt runtime.Runtime, holder addr.Address, amount abi.TokenAmount, period uint64, withdrawnAt abi.ChainEpoch) {
	params := &TokensWithdrawnParams{
		Holder:      holder,
		Amount:      amount,
		Period:      period,
		WithdrawnAt: withdrawnAt,
	}
	code := rt.Send(GovernActorAddr, MethodsGovern.OnTokensWithdrawn, params, abi.NewTokenAmount(0), &Discard{})
	RequireSuccess(rt, code, "failed to notify tokens withdrawn")
}

// Discard is a helper
type Discard struct{}

func (d *Discard) MarshalCBOR(_ io.Writer) error {
	// serialization is a noop
	return nil
}

func (d *Discard) UnmarshalCBOR(_ io.Reader) error {
	// deserialization is a noop
	return nil
}

package builtin

import (
	"github.com/filecoin-project/go-state-types/abi"
)

const (
	MethodSend        = abi.MethodNum(0)
	MethodConstructor = abi.MethodNum(1)
)

var MethodsAccount = struct {
	Constructor   abi.MethodNum
	PubkeyAddress abi.MethodNum
}{MethodConstructor, 2}

// Methods of the token actor consumed by the locking ledger. The token actor
// itself is not part of this repo; only its wire interface is.
var MethodsToken = struct {
	Constructor  abi.MethodNum
	BalanceOf    abi.MethodNum
	Transfer     abi.MethodNum
	TransferFrom abi.MethodNum
}{MethodConstructor, 2, 3, 4}

var MethodsGovern = struct {
	Constructor       abi.MethodNum
	OnTokensLocked    abi.MethodNum
	OnTokensWithdrawn abi.MethodNum
}{MethodConstructor, 2, 3}

var MethodsLocking = struct {
	Constructor    abi.MethodNum
	Lock           abi.MethodNum
	Withdraw       abi.MethodNum
	FetchLockData  abi.MethodNum
	GetVotingPower abi.MethodNum
	TotalLocked    abi.MethodNum
}{MethodConstructor, 2, 3, 4, 5, 6}

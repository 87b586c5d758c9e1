package runtime

import (
	"context"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"
)

// Interface for the runtime of a built-in actor, provided by the VM.
// Actor methods are invoked with an implementation of this interface and a
// deserialized parameter object, and return a serializable result.
type Runtime interface {
	// Information related to the current message being executed.
	Message

	// Provides a handle for the actor's state object.
	StateHandle

	// Provides IPLD storage for actor state.
	Store

	// The current chain epoch number. The genesis block has epoch zero.
	CurrEpoch() abi.ChainEpoch

	// Validates that the caller of the current message matches one of the given addresses,
	// aborting if not. Exactly one caller validation must be performed per method invocation.
	ValidateImmediateCallerIs(addrs ...addr.Address)

	// Validates that the code CID of the calling actor matches one of the given types.
	ValidateImmediateCallerType(types ...cid.Cid)

	// Validates any caller.
	ValidateImmediateCallerAcceptAny()

	// The balance of the receiving actor, including any value received with the current message.
	CurrentBalance() abi.TokenAmount

	// Resolves an address of any protocol to an ID address (via the init actor's table).
	ResolveAddress(address addr.Address) (addr.Address, bool)

	// Looks up the code CID of the actor at the given (ID) address.
	GetActorCodeCID(addr addr.Address) (cid.Cid, bool)

	// Sends a message to another actor, returning the exit code and, on success,
	// deserializing any return value into out.
	Send(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value abi.TokenAmount, out cbor.Er) exitcode.ExitCode

	// Halts execution upon an error from which the actor cannot recover. The abort reverts
	// all state changes made by the current message, including those already committed
	// through the state handle.
	Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{})

	// Provides the system call context.
	Context() context.Context

	// Log allows actor code to emit diagnostics which are collected by the node operator.
	// Logging has no effect on chain state.
	Log(level LogLevel, msg string, args ...interface{})
}

// Message contains information available to the actor about the executing message.
type Message interface {
	// The address of the immediate calling actor. Always an ID-address.
	Caller() addr.Address

	// The address of the actor receiving the message. Always an ID-address.
	Receiver() addr.Address

	// The value attached to the message being processed, implicitly added to
	// CurrentBalance() before method invocation.
	ValueReceived() abi.TokenAmount
}

// StateHandle provides mutable, exclusive access to actor state.
type StateHandle interface {
	// Create initializes the state object.
	StateCreate(obj cbor.Marshaler)

	// Readonly loads a readonly copy of the state into the argument.
	StateReadonly(obj cbor.Unmarshaler)

	// Transaction loads a mutable version of the state into the obj argument and
	// protects the execution from side effects (including message sends) for the
	// duration of f. The new state is committed when f completes without aborting.
	StateTransaction(obj cbor.Er, f func())
}

// Store defines the storage module exposed to actors for IPLD state.
type Store interface {
	// Retrieves and deserializes an object from the store into o. Returns whether successful.
	StoreGet(c cid.Cid, o cbor.Unmarshaler) bool

	// Serializes and stores an object, returning its CID.
	StorePut(x cbor.Marshaler) cid.Cid
}

// LogLevel is the level at which actor diagnostics are emitted.
type LogLevel = rt.LogLevel

const (
	DEBUG = rt.DEBUG
	INFO  = rt.INFO
	WARN  = rt.WARN
	ERROR = rt.ERROR
)

package mock

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"strings"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"
	"github.com/stretchr/testify/require"

	"github.com/votelock-protocol/go-votelock-actors/actors/runtime"
	support "github.com/votelock-protocol/go-votelock-actors/support/ipld"
)

// A mock runtime for unit testing of actors in isolation.
// The mock allows direct specification of the runtime context as observable by an actor,
// and a sequence of expectations of messages sent and caller validations performed,
// which a test will rely on (and fail if not satisfied).
type Runtime struct {
	// Execution context
	ctx           context.Context
	epoch         abi.ChainEpoch
	receiver      addr.Address
	caller        addr.Address
	callerType    cid.Cid
	balance       abi.TokenAmount
	valueReceived abi.TokenAmount
	idAddresses   map[addr.Address]addr.Address
	actorCodeCIDs map[addr.Address]cid.Cid

	// Actor state
	state cid.Cid
	store ipldcbor.IpldStore

	// Internal state
	inCall        bool
	inTransaction bool

	// Expectations
	t                        testing.TB
	expectValidateCallerAny  bool
	expectValidateCallerAddr []addr.Address
	expectValidateCallerType []cid.Cid
	expectSends              []*expectedMessage

	logs []string
}

var _ runtime.Runtime = &Runtime{}

type expectedMessage struct {
	// expectedMessage values
	to     addr.Address
	method abi.MethodNum
	params cbor.Marshaler
	value  abi.TokenAmount

	// returns from applying expectedMessage
	sendReturn cbor.Marshaler
	exitCode   exitcode.ExitCode
}

func (m *expectedMessage) String() string {
	return fmt.Sprintf("to: %v method: %v value: %v params: %v sendReturn: %v exitCode: %v", m.to, m.method, m.value, m.params, m.sendReturn, m.exitCode)
}

// The type returned by rt.Abortf, trapped by ExpectAbort and Call.
type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (a abort) String() string {
	return fmt.Sprintf("abort(%v): %s", a.code, a.msg)
}

///// Runtime builder /////

// Build a mock runtime with the supplied context for test usage.
type RuntimeBuilder struct {
	ctx           context.Context
	epoch         abi.ChainEpoch
	receiver      addr.Address
	caller        addr.Address
	callerType    cid.Cid
	balance       abi.TokenAmount
	valueReceived abi.TokenAmount
	idAddresses   map[addr.Address]addr.Address
	actorCodeCIDs map[addr.Address]cid.Cid
}

// Returns a new runtime builder.
func NewBuilder(ctx context.Context, receiver addr.Address) *RuntimeBuilder {
	return &RuntimeBuilder{
		ctx:           ctx,
		receiver:      receiver,
		caller:        addr.Undef,
		callerType:    cid.Undef,
		balance:       big.Zero(),
		valueReceived: big.Zero(),
		idAddresses:   make(map[addr.Address]addr.Address),
		actorCodeCIDs: make(map[addr.Address]cid.Cid),
	}
}

// Build generates a mock runtime with the current set of builder attributes.
func (b *RuntimeBuilder) Build(t testing.TB) *Runtime {
	m := &Runtime{
		ctx:           b.ctx,
		epoch:         b.epoch,
		receiver:      b.receiver,
		caller:        b.caller,
		callerType:    b.callerType,
		balance:       b.balance,
		valueReceived: b.valueReceived,
		idAddresses:   make(map[addr.Address]addr.Address),
		actorCodeCIDs: make(map[addr.Address]cid.Cid),

		state: cid.Undef,
		store: ipldcbor.NewCborStore(support.NewBlockStoreInMemory()),

		t: t,
	}
	for src, target := range b.idAddresses {
		m.idAddresses[src] = target
	}
	for a, code := range b.actorCodeCIDs {
		m.actorCodeCIDs[a] = code
	}
	return m
}

func (b *RuntimeBuilder) WithCaller(address addr.Address, code cid.Cid) *RuntimeBuilder {
	b.caller = address
	b.callerType = code
	return b
}

func (b *RuntimeBuilder) WithBalance(balance, received abi.TokenAmount) *RuntimeBuilder {
	b.balance = balance
	b.valueReceived = received
	return b
}

func (b *RuntimeBuilder) WithEpoch(epoch abi.ChainEpoch) *RuntimeBuilder {
	b.epoch = epoch
	return b
}

func (b *RuntimeBuilder) WithActorType(address addr.Address, code cid.Cid) *RuntimeBuilder {
	b.actorCodeCIDs[address] = code
	return b
}

///// Implementation of the runtime API /////

func (rt *Runtime) Caller() addr.Address {
	return rt.caller
}

func (rt *Runtime) Receiver() addr.Address {
	return rt.receiver
}

func (rt *Runtime) ValueReceived() abi.TokenAmount {
	return rt.valueReceived
}

func (rt *Runtime) CurrEpoch() abi.ChainEpoch {
	return rt.epoch
}

func (rt *Runtime) CurrentBalance() abi.TokenAmount {
	return rt.balance
}

func (rt *Runtime) ValidateImmediateCallerAcceptAny() {
	rt.requireInCall()
	if !rt.expectValidateCallerAny {
		rt.failTest("unexpected validate-caller-any")
	}
	rt.expectValidateCallerAny = false
}

func (rt *Runtime) ValidateImmediateCallerIs(addrs ...addr.Address) {
	rt.requireInCall()
	rt.checkArgument(len(addrs) > 0, "addrs must be non-empty")
	// Check and clear expectations.
	if len(rt.expectValidateCallerAddr) == 0 {
		rt.failTest("unexpected validate caller addrs")
		return
	}
	if !reflect.DeepEqual(rt.expectValidateCallerAddr, addrs) {
		rt.failTest("unexpected validate caller addrs %v, expected %v", addrs, rt.expectValidateCallerAddr)
		return
	}
	defer func() {
		rt.expectValidateCallerAddr = nil
	}()

	// Implement method.
	for _, expected := range addrs {
		if rt.caller == expected {
			return
		}
	}
	rt.Abortf(exitcode.SysErrForbidden, "caller address %v forbidden, allowed: %v", rt.caller, addrs)
}

func (rt *Runtime) ValidateImmediateCallerType(types ...cid.Cid) {
	rt.requireInCall()
	rt.checkArgument(len(types) > 0, "types must be non-empty")
	// Check and clear expectations.
	if len(rt.expectValidateCallerType) == 0 {
		rt.failTest("unexpected validate caller code")
	}
	if !reflect.DeepEqual(rt.expectValidateCallerType, types) {
		rt.failTest("unexpected validate caller code %v, expected %v", types, rt.expectValidateCallerType)
	}
	defer func() {
		rt.expectValidateCallerType = nil
	}()

	// Implement method.
	for _, expected := range types {
		if rt.callerType.Equals(expected) {
			return
		}
	}
	rt.Abortf(exitcode.SysErrForbidden, "caller type %v forbidden, allowed: %v", rt.callerType, types)
}

func (rt *Runtime) ResolveAddress(address addr.Address) (addr.Address, bool) {
	if address.Protocol() == addr.ID {
		return address, true
	}
	resolved, ok := rt.idAddresses[address]
	return resolved, ok
}

func (rt *Runtime) GetActorCodeCID(address addr.Address) (cid.Cid, bool) {
	code, ok := rt.actorCodeCIDs[address]
	return code, ok
}

func (rt *Runtime) Send(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value abi.TokenAmount, out cbor.Er) exitcode.ExitCode {
	rt.requireInCall()
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "side-effect within transaction")
	}
	if len(rt.expectSends) == 0 {
		rt.failTestNow("unexpected send to: %v method: %v, value: %v, params: %v", toAddr, methodNum, value, params)
	}
	expectedMsg := rt.expectSends[0]
	rt.expectSends = rt.expectSends[1:]

	require.Equal(rt.t, expectedMsg.to, toAddr, "unexpected send target")
	require.Equal(rt.t, expectedMsg.method, methodNum, "unexpected send method to %v", toAddr)
	require.Equal(rt.t, expectedMsg.params, params, "unexpected send params to %v method %v", toAddr, methodNum)
	require.Equal(rt.t, expectedMsg.value, value, "unexpected send value to %v method %v", toAddr, methodNum)

	if value.GreaterThan(rt.balance) {
		rt.Abortf(exitcode.SysErrSenderStateInvalid, "cannot send value: %v exceeds balance: %v", value, rt.balance)
	}
	rt.balance = big.Sub(rt.balance, value)

	// populate the output argument
	if expectedMsg.sendReturn != nil {
		buf := new(bytes.Buffer)
		err := expectedMsg.sendReturn.MarshalCBOR(buf)
		require.NoError(rt.t, err, "failed to marshal expected send return")
		err = out.UnmarshalCBOR(buf)
		require.NoError(rt.t, err, "failed to unmarshal send return into output parameter")
	}
	return expectedMsg.exitCode
}

func (rt *Runtime) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	rt.t.Logf("mock runtime abort exitcode: %v message: %v", errExitCode, fmt.Sprintf(msg, args...))
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

func (rt *Runtime) Context() context.Context {
	return rt.ctx
}

func (rt *Runtime) Log(level runtime.LogLevel, msg string, args ...interface{}) {
	rt.logs = append(rt.logs, fmt.Sprintf(msg, args...))
	rt.t.Logf(msg, args...)
}

///// State handling /////

func (rt *Runtime) StateCreate(obj cbor.Marshaler) {
	if rt.state.Defined() {
		rt.Abortf(exitcode.SysErrorIllegalActor, "state already constructed")
	}
	rt.state = rt.StorePut(obj)
}

func (rt *Runtime) StateReadonly(obj cbor.Unmarshaler) {
	found := rt.StoreGet(rt.state, obj)
	require.True(rt.t, found, "actor state not found")
}

func (rt *Runtime) StateTransaction(obj cbor.Er, f func()) {
	if obj == nil {
		rt.Abortf(exitcode.SysErrorIllegalActor, "nil state in transaction")
	}
	if rt.inTransaction {
		rt.Abortf(exitcode.SysErrorIllegalActor, "nested state transaction")
	}
	rt.StateReadonly(obj)
	rt.inTransaction = true
	defer func() { rt.inTransaction = false }()
	f()
	rt.state = rt.StorePut(obj)
}

///// Store implementation /////

func (rt *Runtime) StoreGet(c cid.Cid, o cbor.Unmarshaler) bool {
	err := rt.store.Get(rt.ctx, c, o)
	return err == nil
}

func (rt *Runtime) StorePut(o cbor.Marshaler) cid.Cid {
	c, err := rt.store.Put(rt.ctx, o)
	if err != nil {
		rt.Abortf(exitcode.ErrSerialization, "failed to store object %v: %v", o, err)
	}
	return c
}

///// Mock controls, not part of the runtime API /////

// Sets the caller address and actor type for the next invocation.
func (rt *Runtime) SetCaller(address addr.Address, actorType cid.Cid) {
	rt.caller = address
	rt.callerType = actorType
	rt.actorCodeCIDs[address] = actorType
}

func (rt *Runtime) SetBalance(balance abi.TokenAmount) {
	rt.balance = balance
}

func (rt *Runtime) Balance() abi.TokenAmount {
	return rt.balance
}

func (rt *Runtime) SetReceived(value abi.TokenAmount) {
	rt.valueReceived = value
}

func (rt *Runtime) SetEpoch(epoch abi.ChainEpoch) abi.ChainEpoch {
	rt.epoch = epoch
	return epoch
}

// Registers a mapping from a non-ID address to an ID address, as the init actor would.
func (rt *Runtime) AddIDAddress(src, target addr.Address) {
	rt.require(target.Protocol() == addr.ID, "target must use ID address protocol")
	rt.idAddresses[src] = target
}

func (rt *Runtime) SetAddressActorType(address addr.Address, actorType cid.Cid) {
	rt.actorCodeCIDs[address] = actorType
}

// Reads the actor's state object out of the mock store.
func (rt *Runtime) GetState(o cbor.Unmarshaler) {
	found := rt.StoreGet(rt.state, o)
	require.True(rt.t, found, "actor state not found")
}

func (rt *Runtime) StateRoot() cid.Cid {
	return rt.state
}

func (rt *Runtime) Logs() []string {
	return rt.logs
}

///// Expectations /////

func (rt *Runtime) ExpectValidateCallerAny() {
	rt.expectValidateCallerAny = true
}

func (rt *Runtime) ExpectValidateCallerAddr(addrs ...addr.Address) {
	rt.require(len(addrs) > 0, "addrs must be non-empty")
	rt.expectValidateCallerAddr = addrs[:]
}

func (rt *Runtime) ExpectValidateCallerType(types ...cid.Cid) {
	rt.require(len(types) > 0, "types must be non-empty")
	rt.expectValidateCallerType = types[:]
}

func (rt *Runtime) ExpectSend(toAddr addr.Address, methodNum abi.MethodNum, params cbor.Marshaler, value abi.TokenAmount, sendReturn cbor.Marshaler, exitCode exitcode.ExitCode) {
	rt.expectSends = append(rt.expectSends, &expectedMessage{
		to:         toAddr,
		method:     methodNum,
		params:     params,
		value:      value,
		sendReturn: sendReturn,
		exitCode:   exitCode,
	})
}

// ExpectAbort checks that the code inside the supplied function aborts with the expected code,
// and rolls back any state changes made.
func (rt *Runtime) ExpectAbort(expected exitcode.ExitCode, f func()) {
	rt.ExpectAbortContainsMessage(expected, "", f)
}

// ExpectAbortContainsMessage checks that the code inside the supplied function aborts with the
// expected code and with a message containing the expected substring, and rolls back any state
// changes made.
func (rt *Runtime) ExpectAbortContainsMessage(expected exitcode.ExitCode, substr string, f func()) {
	rt.t.Helper()
	prevState := rt.state

	defer func() {
		rt.t.Helper()
		r := recover()
		if r == nil {
			rt.failTest("expected abort with code %v but call succeeded", expected)
			return
		}
		a, ok := r.(abort)
		if !ok {
			panic(r)
		}
		if a.code != expected {
			rt.failTest("abort expected code %v, actual %v %s", expected, a.code, a.msg)
		}
		if substr != "" && !strings.Contains(a.msg, substr) {
			rt.failTest("abort expected message %q but got %q", substr, a.msg)
		}

		// Roll back state change.
		rt.state = prevState
	}()
	f()
}

// Verifies that expected patterns were all received, and resets all expectations.
func (rt *Runtime) Verify() {
	rt.t.Helper()
	if rt.expectValidateCallerAny {
		rt.failTest("missing expected validate caller any")
	}
	if rt.expectValidateCallerAddr != nil {
		rt.failTest("missing expected validate caller address %v", rt.expectValidateCallerAddr)
	}
	if rt.expectValidateCallerType != nil {
		rt.failTest("missing expected validate caller type %v", rt.expectValidateCallerType)
	}
	if len(rt.expectSends) > 0 {
		rt.failTest("missing expected send %v", rt.expectSends)
	}

	rt.Reset()
}

// Resets expectations.
func (rt *Runtime) Reset() {
	rt.expectValidateCallerAny = false
	rt.expectValidateCallerAddr = nil
	rt.expectValidateCallerType = nil
	rt.expectSends = nil
}

///// Method invocation /////

// Calls an actor method with the mock runtime and the given parameter object.
// An abort from the method propagates as a panic carrying the exit code, to be
// trapped by ExpectAbort.
func (rt *Runtime) Call(method interface{}, params interface{}) interface{} {
	meth := reflect.ValueOf(method)
	rt.verifyExportedMethodType(meth)

	this := reflect.ValueOf(rt)
	paramsV := reflect.ValueOf(params)
	if params == nil {
		paramsV = reflect.Zero(meth.Type().In(1))
	}

	rt.inCall = true
	defer func() { rt.inCall = false }()
	ret := meth.Call([]reflect.Value{this, paramsV})
	return ret[0].Interface()
}

func (rt *Runtime) verifyExportedMethodType(meth reflect.Value) {
	rt.t.Helper()
	t := meth.Type()
	rt.require(t.Kind() == reflect.Func, "%v is not a function", meth)
	rt.require(t.NumIn() == 2, "exported method %v must have two parameters, got %v", meth, t.NumIn())

	// first parameter is the runtime
	rt.require(t.In(0).Kind() == reflect.Interface && reflect.TypeOf(rt).Implements(t.In(0)),
		"exported method first parameter is not a runtime interface")

	// second parameter is a pointer to a CBOR unmarshaler
	paramT := t.In(1)
	unmarshaler := reflect.TypeOf((*cbor.Unmarshaler)(nil)).Elem()
	rt.require(paramT.Implements(unmarshaler), "exported method parameter %v is not a CBOR unmarshaler", paramT)

	// method returns a single marshalable result
	rt.require(t.NumOut() == 1, "exported method must return a single value")
	marshaler := reflect.TypeOf((*cbor.Marshaler)(nil)).Elem()
	rt.require(t.Out(0).Implements(marshaler), "exported method result %v is not a CBOR marshaler", t.Out(0))
}

func (rt *Runtime) requireInCall() {
	rt.require(rt.inCall, "invalid runtime invocation outside of method call")
}

func (rt *Runtime) checkArgument(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.SysErrorIllegalArgument, msg, args...)
	}
}

func (rt *Runtime) require(predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.failTestNow(msg, args...)
	}
}

func (rt *Runtime) failTest(msg string, args ...interface{}) {
	rt.t.Helper()
	rt.t.Errorf(msg, args...)
}

func (rt *Runtime) failTestNow(msg string, args ...interface{}) {
	rt.t.Helper()
	rt.t.Fatalf(msg, args...)
}

// CheckActorExports tests that the exports table of an actor is well formed:
// a sparse list of methods taking a runtime and one CBOR parameter, and
// returning one CBOR result.
func CheckActorExports(t *testing.T, act interface{ Exports() []interface{} }) {
	for i, m := range act.Exports() {
		if m == nil {
			continue
		}
		t.Run(fmt.Sprintf("method%d", i), func(t *testing.T) {
			mt := reflect.TypeOf(m)
			require.Equal(t, reflect.Func, mt.Kind())
			require.Equal(t, 2, mt.NumIn())
			require.Equal(t, 1, mt.NumOut())

			unmarshaler := reflect.TypeOf((*cbor.Unmarshaler)(nil)).Elem()
			require.True(t, mt.In(1).Implements(unmarshaler), "method %d parameter is not a CBOR unmarshaler", i)

			marshaler := reflect.TypeOf((*cbor.Marshaler)(nil)).Elem()
			require.True(t, mt.Out(0).Implements(marshaler), "method %d result is not a CBOR marshaler", i)
		})
	}
}

package builtin

import (
	"sort"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// The built-in actor code IDs.
var (
	SystemActorCodeID   cid.Cid
	AccountActorCodeID  cid.Cid
	TokenActorCodeID    cid.Cid
	GovernActorCodeID   cid.Cid
	LockingActorCodeID  cid.Cid
	CallerTypesSignable []cid.Cid
)

var builtinActors map[cid.Cid]*actorInfo

type actorInfo struct {
	name      string
	signer    bool
	singleton bool
}

func init() {
	builder := cid.V1Builder{Codec: cid.Raw, MhType: mh.IDENTITY}
	builtinActors = make(map[cid.Cid]*actorInfo)

	for id, info := range map[*cid.Cid]*actorInfo{ //nolint:nomaprange
		&SystemActorCodeID:  {name: "votelock/1/system", singleton: true},
		&AccountActorCodeID: {name: "votelock/1/account", signer: true},
		&TokenActorCodeID:   {name: "votelock/1/token", singleton: true},
		&GovernActorCodeID:  {name: "votelock/1/govern", singleton: true},
		&LockingActorCodeID: {name: "votelock/1/locking", singleton: true},
	} {
		c, err := builder.Sum([]byte(info.name))
		if err != nil {
			panic(err)
		}
		*id = c
		builtinActors[c] = info
	}

	// Set of actor code types that can represent external signing parties.
	for id, info := range builtinActors { //nolint:nomaprange
		if info.signer {
			CallerTypesSignable = append(CallerTypesSignable, id)
		}
	}
	sort.Slice(CallerTypesSignable, func(i, j int) bool {
		return CallerTypesSignable[i].KeyString() < CallerTypesSignable[j].KeyString()
	})
}

// IsBuiltinActor tests whether a code CID identifies a known built-in actor type.
func IsBuiltinActor(code cid.Cid) bool {
	_, isBuiltin := builtinActors[code]
	return isBuiltin
}

// ActorNameByCode returns the name of the actor code, or "<unknown>" if the code is unknown.
func ActorNameByCode(code cid.Cid) string {
	if !code.Defined() {
		return "<undefined>"
	}

	info, ok := builtinActors[code]
	if !ok {
		return "<unknown>"
	}
	return info.name
}

// Tests whether a code CID identifies an actor that can be an external principal
// (i.e. an account, able to be the root of a message's call tree).
func IsPrincipal(code cid.Cid) bool {
	info, ok := builtinActors[code]
	if !ok {
		return false
	}
	return info.signer
}

// Tests whether a code CID identifies an actor type of which only one instance may exist.
func IsSingletonActor(code cid.Cid) bool {
	info, ok := builtinActors[code]
	return ok && info.singleton
}

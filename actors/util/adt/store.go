package adt

import (
	"context"

	cid "github.com/ipfs/go-cid"
	ipldcbor "github.com/ipfs/go-ipld-cbor"

	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/votelock-protocol/go-votelock-actors/actors/runtime"
)

// Store defines an interface required to back the ADTs in this package.
type Store interface {
	Context() context.Context
	ipldcbor.IpldStore
}

// Adapts a runtime into an ADT store.
func AsStore(rt runtime.Runtime) Store {
	return rtStore{rt}
}

// WrapStore adapts a vanilla IPLD store as an ADT store.
func WrapStore(ctx context.Context, store ipldcbor.IpldStore) Store {
	return &wstore{
		ctx:       ctx,
		IpldStore: store,
	}
}

type wstore struct {
	ctx context.Context
	ipldcbor.IpldStore
}

var _ Store = &wstore{}

func (s *wstore) Context() context.Context {
	return s.ctx
}

type rtStore struct {
	runtime.Runtime
}

var _ Store = &rtStore{}

func (r rtStore) Get(_ context.Context, c cid.Cid, out interface{}) error {
	// The Go context is dropped here; the runtime bears its own.
	if !r.StoreGet(c, out.(cbor.Unmarshaler)) {
		r.Abortf(exitcode.ErrNotFound, "not found")
	}
	return nil
}

func (r rtStore) Put(_ context.Context, v interface{}) (cid.Cid, error) {
	return r.StorePut(v.(cbor.Marshaler)), nil
}

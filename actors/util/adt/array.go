package adt

import (
	"bytes"

	amt "github.com/filecoin-project/go-amt-ipld/v2"
	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"
	"github.com/pkg/errors"
	cbg "github.com/whyrusleeping/cbor-gen"
)

// Array stores a sparse sequence of values in an AMT.
type Array struct {
	root  *amt.Root
	store Store
}

// AsArray interprets a store as an AMT-based array with root `r`.
func AsArray(s Store, r cid.Cid) (*Array, error) {
	root, err := amt.LoadAMT(s.Context(), s, r)
	if err != nil {
		return nil, errors.Wrapf(err, "array root %v", r)
	}

	return &Array{
		root:  root,
		store: s,
	}, nil
}

// Creates a new array backed by an empty AMT.
func MakeEmptyArray(s Store) *Array {
	root := amt.NewAMT(s)
	return &Array{
		root:  root,
		store: s,
	}
}

// Returns the root CID of the underlying AMT.
func (a *Array) Root() (cid.Cid, error) {
	return a.root.Flush(a.store.Context())
}

// Set adds array entry with specified key and value.
func (a *Array) Set(k uint64, value cbor.Marshaler) error {
	if err := a.root.Set(a.store.Context(), k, value); err != nil {
		return errors.Wrapf(err, "array set failed to set index %v in root %v", k, a.root)
	}
	return nil
}

// Get retrieves array element into the 'out' unmarshaler, returning a boolean
// indicating whether the element was found in the array.
func (a *Array) Get(k uint64, out cbor.Unmarshaler) (bool, error) {
	if err := a.root.Get(a.store.Context(), k, out); err == nil {
		return true, nil
	} else if _, nf := err.(*amt.ErrNotFound); nf {
		return false, nil
	} else {
		return false, errors.Wrapf(err, "array get failed to get index %v in root %v", k, a.root)
	}
}

// Delete removes the element at index `k`.
func (a *Array) Delete(k uint64) error {
	if err := a.root.Delete(a.store.Context(), k); err != nil {
		return errors.Wrapf(err, "array delete failed to delete index %v in root %v", k, a.root)
	}
	return nil
}

// Length returns the number of elements in the array.
func (a *Array) Length() uint64 {
	return a.root.Count
}

// Iterates all entries in the array, deserializing each value in turn into `out` and then
// calling a function with the corresponding index.
// Iteration order is ascending by index.
func (a *Array) ForEach(out cbor.Unmarshaler, fn func(i int64) error) error {
	return a.root.ForEach(a.store.Context(), func(k uint64, val *cbg.Deferred) error {
		if out != nil {
			if deferred, ok := out.(*cbg.Deferred); ok {
				// fast-path deferred -> deferred to avoid re-decoding.
				*deferred = *val
			} else if err := out.UnmarshalCBOR(bytes.NewReader(val.Raw)); err != nil {
				return err
			}
		}
		return fn(int64(k))
	})
}

package testing

import (
	"math/rand"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/stretchr/testify/require"
)

func NewIDAddr(t testing.TB, id uint64) addr.Address {
	address, err := addr.NewIDAddress(id)
	require.NoError(t, err)
	return address
}

func NewBLSAddr(t testing.TB, seed int64) addr.Address {
	buf := make([]byte, addr.BlsPublicKeyBytes)
	rng := rand.New(rand.NewSource(seed))
	_, err := rng.Read(buf)
	require.NoError(t, err)

	address, err := addr.NewBLSAddress(buf)
	require.NoError(t, err)
	return address
}

func NewActorAddr(t testing.TB, data string) addr.Address {
	address, err := addr.NewActorAddress([]byte(data))
	require.NoError(t, err)
	return address
}

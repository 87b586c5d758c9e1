package locking

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/votelock-protocol/go-votelock-actors/actors/builtin"
)

// Period identifies one of the fixed lock duration tiers.
type Period uint64

const (
	PeriodHalfYear Period = iota
	PeriodOneYear
	PeriodTwoYears
)

// Number of valid lock period tiers. Any period at or above this is invalid input.
const NumPeriods = 3

// Duration of the lock for each period tier. A slot's unlock epoch is fixed to
// the locking epoch plus this duration when the slot first becomes non-empty. PARAM_SPEC
var PeriodDurations = [NumPeriods]abi.ChainEpoch{
	182 * builtin.EpochsInDay,
	365 * builtin.EpochsInDay,
	730 * builtin.EpochsInDay,
}

// Voting power granted per locked token while a slot of each tier is unmatured. PARAM_SPEC
var PeriodMultipliers = [NumPeriods]big.Int{
	big.NewInt(2),
	big.NewInt(4),
	big.NewInt(10),
}

func (p Period) IsValid() bool {
	return p < NumPeriods
}

func (p Period) Duration() abi.ChainEpoch {
	return PeriodDurations[p]
}

func (p Period) Multiplier() big.Int {
	return PeriodMultipliers[p]
}

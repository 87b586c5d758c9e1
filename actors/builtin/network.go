package builtin

// PARAM_SPEC
// The duration of a chain epoch.
// Motivation: It guarantees that a block is propagated before the next block is produced.
const EpochDurationSeconds = 30
const SecondsInHour = 60 * 60
const SecondsInDay = 24 * SecondsInHour
const EpochsInHour = SecondsInHour / EpochDurationSeconds
const EpochsInDay = 24 * EpochsInHour
const EpochsInYear = 365 * EpochsInDay

// The default bitwidth of HAMT state structures.
const DefaultHamtBitwidth = 5

package domain

// RosterSize is the fixed number of players on every fantasy roster.
const RosterSize = 7

// FreeTransferAllowance is the number of penalty-free transfers per scoring
// window. A wildcard refills the allowance to this value.
const FreeTransferAllowance = 2

// TransferPenaltyPoints is subtracted from a team's total points for each
// transfer made with no free transfers remaining.
const TransferPenaltyPoints = 4

// LeaderboardFetchFloor bounds how many teams a single leaderboard request
// reads: the fetch window is max(LeaderboardFetchFloor, page*limit). Teams
// beyond the window are invisible to that request's ranking and search.
const LeaderboardFetchFloor = 1000

// LeaderboardMaxLimit is the largest page size a caller may request.
const LeaderboardMaxLimit = 100

// LeaderboardDefaultLimit is used when the caller omits a page size.
const LeaderboardDefaultLimit = 10

// RegistryBatchLimit is the store's multi-key read limit. Batched registry
// and user lookups are issued in chunks of at most this many keys.
const RegistryBatchLimit = 10

// FallbackUserName is rendered for leaderboard entries whose profile could
// not be resolved within the batch lookup cap.
const FallbackUserName = "Unknown Manager"

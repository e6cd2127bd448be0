package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a
	// joinable match.
	RpcQuickMatch = "quick_match"

	// MatchNameColoretto is the authoritative match handler name registered
	// with Nakama.
	MatchNameColoretto = "coloretto_match"

	// MatchLabelKey_OpenSeats is the label key advertising free seats for
	// matchmaking queries.
	MatchLabelKey_OpenSeats = "open"

	// StorageCollectionGames is the storage collection holding game documents.
	StorageCollectionGames = "coloretto_games"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpPrepareGame  int64 = 1
	OpRevealCard   int64 = 2
	OpTakeColumn   int64 = 3
	OpAddAIPlayers int64 = 4
	OpReplaceAI    int64 = 5
	OpSetPaused    int64 = 6
	OpFetchState   int64 = 7
	OpHandOverSeat int64 = 8
	OpFinalizeGame int64 = 9

	// Server -> Client events
	OpPlayerJoined      int64 = 101
	OpPlayerLeft        int64 = 102
	OpGamePrepared      int64 = 103
	OpCardRevealed      int64 = 104
	OpRoundCardRevealed int64 = 105
	OpColumnTaken       int64 = 106
	OpRoundEnding       int64 = 107
	OpRoundStarted      int64 = 108
	OpGameEnded         int64 = 109
	OpRosterChanged     int64 = 110
	OpStateSnapshot     int64 = 111
	OpGameError         int64 = 112
)

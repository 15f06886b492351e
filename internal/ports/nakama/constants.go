package nakama

const (
	// RpcJoinRoom is the Nakama RPC id clients call to resolve a room id to a
	// joinable match, creating the match on demand.
	RpcJoinRoom = "join_room"

	// MatchNameKatarik is the authoritative match handler name registered
	// with Nakama.
	MatchNameKatarik = "katarik_match"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame int64 = 1
	OpPlayCards int64 = 2
	OpPassTurn  int64 = 3
	OpChat      int64 = 4

	// Server -> Client events
	OpJoined             int64 = 101 // sent privately
	OpPlayerJoined       int64 = 102
	OpState              int64 = 103
	OpHandDealt          int64 = 104 // sent privately
	OpGameStarted        int64 = 105
	OpCardPlayed         int64 = 106
	OpPlayerFinished     int64 = 107
	OpRoundWon           int64 = 108
	OpGameEnded          int64 = 109
	OpTurnPassed         int64 = 110
	OpPlayerDisconnected int64 = 111
	OpChatMessage        int64 = 112
	OpError              int64 = 113 // sent privately
)

package app

import "katarik/internal/domain"

// EventKind identifies emitted game events for transport dispatch.
type EventKind string

const (
	EventJoined             EventKind = "joined"
	EventPlayerJoined       EventKind = "playerJoined"
	EventState              EventKind = "state"
	EventHand               EventKind = "hand"
	EventGameStarted        EventKind = "gameStarted"
	EventPlayed             EventKind = "played"
	EventPlayerFinished     EventKind = "playerFinished"
	EventRoundWon           EventKind = "roundWon"
	EventGameOver           EventKind = "gameOver"
	EventPassed             EventKind = "passed"
	EventPlayerDisconnected EventKind = "playerDisconnected"
	EventChat               EventKind = "chat"
)

// Event is a game event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player IDs; empty means broadcast to the room
}

// JoinedPayload acknowledges a join or reattach to the joining seat only.
type JoinedPayload struct {
	PlayerID string
	RoomID   string
	Name     string
}

type PlayerJoinedPayload struct {
	PlayerName  string
	PlayerCount int
}

// PlayerPublic is the per-seat slice of the public snapshot. Hidden hands
// are reduced to a card count.
type PlayerPublic struct {
	ID         string
	Name       string
	CardCount  int
	Connected  bool
	Finished   bool
	FinishRank int
}

type TablePlayPublic struct {
	PlayerID    string
	Cards       []domain.Card
	Combination domain.Combination
}

// StatePayload is the full public snapshot broadcast after every mutation.
type StatePayload struct {
	Phase           domain.Phase
	Players         []PlayerPublic
	CurrentPlayerID string
	TablePlay       *TablePlayPublic
	FinishOrder     []string
	ActivePlayers   []string
	GameCount       int
}

// HandPayload carries a seat's own cards; always sent privately.
type HandPayload struct {
	Hand []domain.Card
}

type GameStartedPayload struct {
	GameCount int
}

type PlayedPayload struct {
	PlayerID    string
	PlayerName  string
	Cards       []domain.Card
	Combination domain.Combination
}

type PlayerFinishedPayload struct {
	PlayerID   string
	PlayerName string
}

type RoundWonPayload struct {
	PlayerID   string
	PlayerName string
}

// FinalRank is one entry of the gameOver ranking.
type FinalRank struct {
	ID         string
	Name       string
	FinishRank int
}

type GameOverPayload struct {
	FinishOrder []string
	Players     []FinalRank
}

type PassedPayload struct {
	PlayerID   string
	PlayerName string
}

type PlayerDisconnectedPayload struct {
	PlayerID   string
	PlayerName string
}

type ChatPayload struct {
	PlayerName string
	Text       string
}

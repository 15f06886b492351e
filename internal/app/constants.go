package app

// Room capacity and input limits, part of the client contract.
const (
	// MinPlayersToStart is the minimum number of seats required to start a game.
	MinPlayersToStart = 3
	// MaxPlayersPerRoom caps the number of seats in a room.
	MaxPlayersPerRoom = 9
	// MaxNameLength caps a display name, in runes.
	MaxNameLength = 20
	// MaxChatLength caps a chat message, in runes.
	MaxChatLength = 200
)

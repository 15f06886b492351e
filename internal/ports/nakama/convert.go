package nakama

import (
	"katarik/internal/app"
	"katarik/internal/domain"
)

// Wire representations of the JSON payloads exchanged with clients. Clients
// reference cards by id; the server always sends full card objects.

type wireCard struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
	ID   string `json:"id"`
}

type wireCombination struct {
	Type   string `json:"type"`
	Rank   string `json:"rank,omitempty"`
	Value  int    `json:"value"`
	MinVal int    `json:"minVal"`
	MaxVal int    `json:"maxVal"`
	Length int    `json:"length"`
}

type wireTablePlay struct {
	PlayerID    string          `json:"playerId"`
	Cards       []wireCard      `json:"cards"`
	Combination wireCombination `json:"combination"`
}

type wirePlayerPublic struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CardCount  int    `json:"cardCount"`
	Connected  bool   `json:"connected"`
	Finished   bool   `json:"finished"`
	FinishRank int    `json:"finishRank,omitempty"`
}

type wireState struct {
	State           string             `json:"state"`
	Players         []wirePlayerPublic `json:"players"`
	CurrentPlayerID string             `json:"currentPlayerId"`
	TablePlay       *wireTablePlay     `json:"tablePlay"`
	FinishOrder     []string           `json:"finishOrder"`
	ActivePlayers   []string           `json:"activePlayers"`
	GameCount       int                `json:"gameCount"`
}

type wireJoined struct {
	PlayerID string `json:"playerId"`
	RoomID   string `json:"roomId"`
	YourName string `json:"yourName"`
}

type wirePlayerJoined struct {
	PlayerName  string `json:"playerName"`
	PlayerCount int    `json:"playerCount"`
}

type wireHand struct {
	Hand []wireCard `json:"hand"`
}

type wireGameStarted struct {
	GameCount int `json:"gameCount"`
}

type wirePlayed struct {
	PlayerID    string          `json:"playerId"`
	PlayerName  string          `json:"playerName"`
	Cards       []wireCard      `json:"cards"`
	Combination wireCombination `json:"combination"`
}

type wirePlayerRef struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type wireFinalRank struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FinishRank int    `json:"finishRank"`
}

type wireGameOver struct {
	FinishOrder []string        `json:"finishOrder"`
	Players     []wireFinalRank `json:"players"`
}

type wireChat struct {
	PlayerName string `json:"playerName"`
	Text       string `json:"text"`
}

type wireError struct {
	Msg string `json:"msg"`
}

// Client -> Server request payloads.

type playCardsRequest struct {
	CardIDs []string `json:"cardIds"`
}

type chatRequest struct {
	Text string `json:"text"`
}

func toWireCard(c domain.Card) wireCard {
	return wireCard{Rank: c.Rank, Suit: c.Suit, ID: c.ID()}
}

func toWireCards(cards []domain.Card) []wireCard {
	out := make([]wireCard, len(cards))
	for i, c := range cards {
		out[i] = toWireCard(c)
	}
	return out
}

func toWireCombination(c domain.Combination) wireCombination {
	return wireCombination{
		Type:   string(c.Type),
		Rank:   c.Rank,
		Value:  c.Value,
		MinVal: c.MinVal,
		MaxVal: c.MaxVal,
		Length: c.Length,
	}
}

func toWireState(p app.StatePayload) wireState {
	players := make([]wirePlayerPublic, len(p.Players))
	for i, pl := range p.Players {
		players[i] = wirePlayerPublic{
			ID:         pl.ID,
			Name:       pl.Name,
			CardCount:  pl.CardCount,
			Connected:  pl.Connected,
			Finished:   pl.Finished,
			FinishRank: pl.FinishRank,
		}
	}

	var table *wireTablePlay
	if p.TablePlay != nil {
		table = &wireTablePlay{
			PlayerID:    p.TablePlay.PlayerID,
			Cards:       toWireCards(p.TablePlay.Cards),
			Combination: toWireCombination(p.TablePlay.Combination),
		}
	}

	// Clients iterate both lists; marshal them as [] rather than null before
	// the first deal.
	finishOrder := p.FinishOrder
	if finishOrder == nil {
		finishOrder = []string{}
	}
	activePlayers := p.ActivePlayers
	if activePlayers == nil {
		activePlayers = []string{}
	}

	return wireState{
		State:           string(p.Phase),
		Players:         players,
		CurrentPlayerID: p.CurrentPlayerID,
		TablePlay:       table,
		FinishOrder:     finishOrder,
		ActivePlayers:   activePlayers,
		GameCount:       p.GameCount,
	}
}

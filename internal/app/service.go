package app

import (
	"errors"
	"math/rand"
	"time"

	"katarik/internal/domain"
)

// Service contains the katarik use-cases operating on room state. All calls
// for one room must come from that room's single writer (the match loop);
// every call validates fully before mutating anything.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with the provided rng or a time-seeded
// default. Inject a seeded rng for deterministic shuffles in tests.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrRoomFull           = errors.New("room is full")
	ErrGameInProgress     = errors.New("game already in progress")
	ErrNotEnoughPlayers   = errors.New("need at least 3 players")
	ErrNotYourTurn        = errors.New("not your turn")
	ErrCardsNotInHand     = errors.New("cards not found in hand")
	ErrInvalidCombination = errors.New("invalid combination")
	ErrCannotBeat         = errors.New("combination does not beat the table")
	ErrMustLead           = errors.New("cannot pass, you must lead")
)

// CanJoin reports whether the given player id may enter the room: known ids
// may always reattach, new seats require the lobby phase and a free seat.
func CanJoin(room *domain.Room, playerID string) error {
	if room.FindPlayer(playerID) != nil {
		return nil
	}
	if room.Phase != domain.PhaseLobby {
		return ErrGameInProgress
	}
	if len(room.Players) >= MaxPlayersPerRoom {
		return ErrRoomFull
	}
	return nil
}

// Join seats a new player or reattaches an existing one. A reattach refreshes
// the connection flag and resends the private hand with the public state.
func (s *Service) Join(room *domain.Room, playerID, name string) ([]Event, error) {
	if existing := room.FindPlayer(playerID); existing != nil {
		existing.Connected = true
		events := []Event{{
			Kind:       EventJoined,
			Payload:    JoinedPayload{PlayerID: playerID, RoomID: room.ID, Name: existing.Name},
			Recipients: []string{playerID},
		}}
		return s.appendFullState(room, events), nil
	}

	if err := CanJoin(room, playerID); err != nil {
		return nil, err
	}

	name = truncate(name, MaxNameLength)
	if name == "" {
		name = "Player"
	}

	room.Players = append(room.Players, &domain.Player{
		ID:        playerID,
		Name:      name,
		Hand:      []domain.Card{},
		Connected: true,
	})

	events := []Event{
		{
			Kind:       EventJoined,
			Payload:    JoinedPayload{PlayerID: playerID, RoomID: room.ID, Name: name},
			Recipients: []string{playerID},
		},
		{
			Kind:    EventPlayerJoined,
			Payload: PlayerJoinedPayload{PlayerName: name, PlayerCount: len(room.Players)},
		},
	}
	return s.appendFullState(room, events), nil
}

// StartGame deals a fresh game. Requires the lobby or ended phase and at
// least MinPlayersToStart seats; a start during play is ignored.
func (s *Service) StartGame(room *domain.Room) ([]Event, error) {
	if room.Phase != domain.PhaseLobby && room.Phase != domain.PhaseEnded {
		return nil, nil
	}
	if len(room.Players) < MinPlayersToStart {
		return nil, ErrNotEnoughPlayers
	}

	room.Phase = domain.PhasePlaying
	room.GameCount++
	room.FinishOrder = nil
	room.TablePlay = nil
	room.PassCount = 0

	deck := domain.NewDeck()
	s.rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	// Deal floor(54/n) to every seat in seat order, then one leftover card
	// each to the first seats until the deck is empty.
	n := len(room.Players)
	perPlayer := domain.DeckSize / n

	room.ActivePlayers = make([]string, 0, n)
	cardIdx := 0
	for _, p := range room.Players {
		room.ActivePlayers = append(room.ActivePlayers, p.ID)
		p.Hand = append([]domain.Card{}, deck[cardIdx:cardIdx+perPlayer]...)
		cardIdx += perPlayer
		p.Finished = false
		p.FinishRank = 0
	}
	for seat := 0; cardIdx < len(deck); seat++ {
		room.Players[seat].Hand = append(room.Players[seat].Hand, deck[cardIdx])
		cardIdx++
	}

	// The very first game opens with the holder of the 4♠; later games open
	// with the previous winner. Seat 0 leads when neither can be located.
	startSeat := 0
	if room.GameCount == 1 {
		opener := domain.Card{Rank: "4", Suit: "♠"}
		for i, p := range room.Players {
			if _, ok := p.CardsByID([]string{opener.ID()}); ok {
				startSeat = i
				break
			}
		}
	} else if room.LastWinnerID != "" {
		for i, p := range room.Players {
			if p.ID == room.LastWinnerID {
				startSeat = i
				break
			}
		}
	}

	room.CurrentIdx = room.IndexOfActive(room.Players[startSeat].ID)
	if room.CurrentIdx == -1 {
		room.CurrentIdx = 0
	}

	events := []Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{GameCount: room.GameCount},
	}}
	return s.appendFullState(room, events), nil
}

// PlayCards plays the named cards for the given player. The cards must all
// be in the player's hand, classify as a combination and beat the table play
// if a trick is active. An emptied hand finishes the player and wins the
// trick outright.
func (s *Service) PlayCards(room *domain.Room, playerID string, cardIDs []string) ([]Event, error) {
	if room.Phase != domain.PhasePlaying {
		return nil, nil
	}
	if room.CurrentPlayerID() != playerID {
		return nil, ErrNotYourTurn
	}
	player := room.FindPlayer(playerID)
	if player == nil {
		return nil, nil
	}

	cards, ok := player.CardsByID(cardIDs)
	if !ok {
		return nil, ErrCardsNotInHand
	}
	combo := domain.IdentifyCombination(cards)
	if !combo.Valid() {
		return nil, ErrInvalidCombination
	}
	if room.TablePlay != nil && !domain.CanBeat(combo, room.TablePlay.Combination) {
		return nil, ErrCannotBeat
	}

	if !player.RemoveByID(cardIDs) {
		return nil, ErrCardsNotInHand
	}
	room.TablePlay = &domain.TablePlay{OwnerID: playerID, Cards: cards, Combination: combo}
	room.PassCount = 0

	events := []Event{{
		Kind:    EventPlayed,
		Payload: PlayedPayload{PlayerID: playerID, PlayerName: player.Name, Cards: cards, Combination: combo},
	}}

	if len(player.Hand) == 0 {
		events = append(events, Event{
			Kind:    EventPlayerFinished,
			Payload: PlayerFinishedPayload{PlayerID: playerID, PlayerName: player.Name},
		})
		if room.RemoveFinished(playerID) {
			return append(events, gameOverEvent(room)), nil
		}
		// The finisher wins the trick outright; whoever the rotation now
		// points at opens the next one.
		room.TablePlay = nil
		room.PassCount = 0
		return s.appendFullState(room, events), nil
	}

	room.AdvanceTurn()
	return s.appendFullState(room, events), nil
}

// PassTurn passes for the given player. Passing is only legal while a trick
// is active; once every other active player has passed, the trick owner wins
// the round and leads again.
func (s *Service) PassTurn(room *domain.Room, playerID string) ([]Event, error) {
	if room.Phase != domain.PhasePlaying {
		return nil, nil
	}
	if room.CurrentPlayerID() != playerID {
		return nil, ErrNotYourTurn
	}
	if room.TablePlay == nil {
		return nil, ErrMustLead
	}
	player := room.FindPlayer(playerID)
	if player == nil {
		return nil, nil
	}

	room.PassCount++
	events := []Event{{
		Kind:    EventPassed,
		Payload: PassedPayload{PlayerID: playerID, PlayerName: player.Name},
	}}

	if room.PassCount >= len(room.ActivePlayers)-1 {
		winnerID := room.TablePlay.OwnerID
		winnerName := ""
		if winner := room.FindPlayer(winnerID); winner != nil {
			winnerName = winner.Name
		}
		room.TablePlay = nil
		room.PassCount = 0
		events = append(events, Event{
			Kind:    EventRoundWon,
			Payload: RoundWonPayload{PlayerID: winnerID, PlayerName: winnerName},
		})
		if idx := room.IndexOfActive(winnerID); idx != -1 {
			room.CurrentIdx = idx
		} else {
			room.AdvanceTurn()
		}
		return s.appendFullState(room, events), nil
	}

	room.AdvanceTurn()
	return s.appendFullState(room, events), nil
}

// Chat relays a room-wide chat line. No game-state effect.
func (s *Service) Chat(room *domain.Room, playerID, text string) ([]Event, error) {
	player := room.FindPlayer(playerID)
	if player == nil {
		return nil, nil
	}
	return []Event{{
		Kind:    EventChat,
		Payload: ChatPayload{PlayerName: player.Name, Text: truncate(text, MaxChatLength)},
	}}, nil
}

// Disconnect marks a seat as detached. The seat and its hand are kept so the
// player can reattach later.
func (s *Service) Disconnect(room *domain.Room, playerID string) []Event {
	player := room.FindPlayer(playerID)
	if player == nil {
		return nil
	}
	player.Connected = false
	events := []Event{{
		Kind:    EventPlayerDisconnected,
		Payload: PlayerDisconnectedPayload{PlayerID: playerID, PlayerName: player.Name},
	}}
	return s.appendFullState(room, events)
}

// PublicState builds the public snapshot of the room.
func PublicState(room *domain.Room) StatePayload {
	players := make([]PlayerPublic, 0, len(room.Players))
	for _, p := range room.Players {
		players = append(players, PlayerPublic{
			ID:         p.ID,
			Name:       p.Name,
			CardCount:  len(p.Hand),
			Connected:  p.Connected,
			Finished:   p.Finished,
			FinishRank: p.FinishRank,
		})
	}

	var table *TablePlayPublic
	if room.TablePlay != nil {
		table = &TablePlayPublic{
			PlayerID:    room.TablePlay.OwnerID,
			Cards:       room.TablePlay.Cards,
			Combination: room.TablePlay.Combination,
		}
	}

	return StatePayload{
		Phase:           room.Phase,
		Players:         players,
		CurrentPlayerID: room.CurrentPlayerID(),
		TablePlay:       table,
		FinishOrder:     room.FinishOrder,
		ActivePlayers:   room.ActivePlayers,
		GameCount:       room.GameCount,
	}
}

// appendFullState appends the public snapshot broadcast plus a private hand
// refresh for every seat.
func (s *Service) appendFullState(room *domain.Room, events []Event) []Event {
	events = append(events, Event{Kind: EventState, Payload: PublicState(room)})
	for _, p := range room.Players {
		events = append(events, Event{
			Kind:       EventHand,
			Payload:    HandPayload{Hand: p.Hand},
			Recipients: []string{p.ID},
		})
	}
	return events
}

func gameOverEvent(room *domain.Room) Event {
	ranks := make([]FinalRank, 0, len(room.Players))
	for _, p := range room.Players {
		ranks = append(ranks, FinalRank{ID: p.ID, Name: p.Name, FinishRank: p.FinishRank})
	}
	return Event{
		Kind:    EventGameOver,
		Payload: GameOverPayload{FinishOrder: room.FinishOrder, Players: ranks},
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

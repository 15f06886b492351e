package domain

// Phase represents the lifecycle stage of a room.
type Phase string

const (
	// PhaseLobby is the pre-game state where players can join.
	PhaseLobby Phase = "lobby"
	// PhasePlaying is the active game state where cards are played.
	PhasePlaying Phase = "playing"
	// PhaseEnded is the state after a game concludes; the room can restart.
	PhaseEnded Phase = "ended"
)

// Player holds the server-side state for a seat in a room. Seats are never
// removed; a transport loss only flips Connected.
type Player struct {
	ID         string
	Name       string
	Hand       []Card
	Connected  bool
	Finished   bool
	FinishRank int // 1-based, 0 until finished
}

// CardsByID resolves the given card ids against the hand without mutating it.
// Every id must resolve to a distinct card or the lookup fails as a whole.
func (p *Player) CardsByID(ids []string) ([]Card, bool) {
	cards := make([]Card, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, false
		}
		seen[id] = true
		found := false
		for _, c := range p.Hand {
			if c.ID() == id {
				cards = append(cards, c)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return cards, true
}

// RemoveByID removes the named cards from the hand. The removal is
// all-or-nothing: if any id is missing the hand is left untouched.
func (p *Player) RemoveByID(ids []string) bool {
	if _, ok := p.CardsByID(ids); !ok {
		return false
	}
	remove := make(map[string]bool, len(ids))
	for _, id := range ids {
		remove[id] = true
	}
	kept := p.Hand[:0]
	for _, c := range p.Hand {
		if remove[c.ID()] {
			continue
		}
		kept = append(kept, c)
	}
	p.Hand = kept
	return true
}

// TablePlay is the combination currently owning the trick.
type TablePlay struct {
	OwnerID     string
	Cards       []Card
	Combination Combination
}

// Room is the authoritative state for one table. All mutation happens on the
// single goroutine of the owning match loop.
type Room struct {
	ID      string
	Players []*Player // seat order, stable once joined
	Phase   Phase

	// ActivePlayers is the turn rotation: ids of seats still holding cards.
	ActivePlayers []string
	CurrentIdx    int

	TablePlay    *TablePlay
	LastWinnerID string
	FinishOrder  []string
	GameCount    int
	PassCount    int
}

// NewRoom returns an empty room in the lobby phase.
func NewRoom(id string) *Room {
	return &Room{ID: id, Phase: PhaseLobby}
}

// FindPlayer returns the seated player with the given id, or nil.
func (r *Room) FindPlayer(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// CurrentPlayerID returns the id of the player whose turn it is, or "" when
// the rotation is empty.
func (r *Room) CurrentPlayerID() string {
	if len(r.ActivePlayers) == 0 || r.CurrentIdx < 0 || r.CurrentIdx >= len(r.ActivePlayers) {
		return ""
	}
	return r.ActivePlayers[r.CurrentIdx]
}

// AdvanceTurn moves the turn to the next active seat in rotation.
func (r *Room) AdvanceTurn() {
	if len(r.ActivePlayers) == 0 {
		return
	}
	r.CurrentIdx = (r.CurrentIdx + 1) % len(r.ActivePlayers)
}

// IndexOfActive returns the rotation index of the given player id, or -1.
func (r *Room) IndexOfActive(id string) int {
	for i, pid := range r.ActivePlayers {
		if pid == id {
			return i
		}
	}
	return -1
}

// RemoveFinished records a player who emptied their hand: it appends them to
// the finish order, assigns their rank and splices them out of the rotation,
// clamping the current index back to zero when it falls off the end. When a
// single active player remains they are force-finished with the last rank,
// the previous winner is recorded and the room moves to the ended phase.
// It reports whether the game ended.
func (r *Room) RemoveFinished(playerID string) bool {
	rank := len(r.FinishOrder) + 1
	r.FinishOrder = append(r.FinishOrder, playerID)
	if p := r.FindPlayer(playerID); p != nil {
		p.Finished = true
		p.FinishRank = rank
	}

	if idx := r.IndexOfActive(playerID); idx != -1 {
		r.ActivePlayers = append(r.ActivePlayers[:idx], r.ActivePlayers[idx+1:]...)
		if r.CurrentIdx >= len(r.ActivePlayers) {
			r.CurrentIdx = 0
		}
	}

	if len(r.ActivePlayers) == 1 {
		loserID := r.ActivePlayers[0]
		r.FinishOrder = append(r.FinishOrder, loserID)
		if loser := r.FindPlayer(loserID); loser != nil {
			loser.Finished = true
			loser.FinishRank = len(r.FinishOrder)
		}
		r.ActivePlayers = nil
		r.LastWinnerID = r.FinishOrder[0]
		r.Phase = PhaseEnded
		return true
	}
	return false
}

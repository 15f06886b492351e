package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"katarik/internal/app"
	"katarik/internal/config"
	"katarik/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Label is the match label advertised for room lookup via RpcJoinRoom.
type Label struct {
	Open   int    `json:"open"`
	Game   string `json:"game"`
	Phase  string `json:"phase"`
	RoomID string `json:"room_id"`
}

// MatchState holds the runtime state for one hosted room. The room itself
// lives in the process-wide registry so it survives match teardown; the
// match loop is its only writer while this match exists.
type MatchState struct {
	Room      *domain.Room
	Presences map[string]runtime.Presence
	App       *app.Service
}

type matchHandler struct {
	registry *app.Registry
}

// NewMatch returns the match factory registered with Nakama, bound to the
// shared room registry.
func NewMatch(registry *app.Registry) func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return func(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
		return &matchHandler{registry: registry}, nil
	}
}

// MatchInit binds the match to its room and advertises the room id in the
// match label. The registry allows one live binding per room id; when two
// matches race to host the same room the loser fails to start here.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	roomID := config.DefaultRoomID()
	if v, ok := params["room_id"].(string); ok && v != "" {
		roomID = v
	}

	room, ok := mh.registry.Bind(roomID)
	if !ok {
		logger.Warn("MatchInit: room %q is already hosted by another match", roomID)
		return nil, 0, ""
	}

	state := &MatchState{
		Room:      room,
		Presences: make(map[string]runtime.Presence),
		App:       app.NewService(nil),
	}

	tickRate := config.TickRate()
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		if v, ok := env["katarik_tick_rate"]; ok {
			if i, err := strconv.Atoi(v); err == nil && i >= 1 && i <= 60 {
				tickRate = i
			}
		}
	}

	logger.Debug("MatchInit: hosting room %q (phase=%s, seats=%d)", roomID, state.Room.Phase, len(state.Room.Players))
	return state, tickRate, buildLabel(state.Room)
}

// MatchJoinAttempt validates whether a presence may enter the room. Known
// player ids may always reattach; new seats require the lobby phase and a
// free seat.
func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if err := app.CanJoin(matchState.Room, presence.GetUserId()); err != nil {
		return state, false, err.Error()
	}
	return state, true, ""
}

// MatchJoin seats or reattaches the joining presences and broadcasts the
// resulting events.
func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		events, err := matchState.App.Join(matchState.Room, p.GetUserId(), p.GetUsername())
		if err != nil {
			// The join attempt already vetted this presence; a failure here
			// means the room filled up in between.
			logger.Warn("MatchJoin: user %s rejected: %v", p.GetUserId(), err)
			mh.sendError(matchState, dispatcher, logger, p.GetUserId(), err.Error())
			continue
		}
		mh.broadcastEvents(matchState, dispatcher, logger, events)
	}

	mh.updateLabel(matchState, dispatcher, logger)
	return matchState
}

// MatchLeave detaches the leaving presences. Seats and hands are kept so
// players can reattach; the match shuts down once nobody is connected and
// the registry retains the room.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())
		events := matchState.App.Disconnect(matchState.Room, p.GetUserId())
		mh.broadcastEvents(matchState, dispatcher, logger, events)
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: no presences left, releasing match for room %q", matchState.Room.ID)
		mh.registry.Release(matchState.Room.ID)
		return nil
	}
	return matchState
}

// MatchLoop processes inbound intents. Each message runs its full
// validate-mutate-broadcast sequence before the next one is looked at.
func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	for _, msg := range messages {
		phaseBefore := matchState.Room.Phase

		var events []app.Event
		var err error

		switch msg.GetOpCode() {
		case OpStartGame:
			events, err = matchState.App.StartGame(matchState.Room)

		case OpPlayCards:
			var req playCardsRequest
			if jsonErr := json.Unmarshal(msg.GetData(), &req); jsonErr != nil {
				logger.Debug("MatchLoop: dropping malformed play payload from %s: %v", msg.GetUserId(), jsonErr)
				continue
			}
			events, err = matchState.App.PlayCards(matchState.Room, msg.GetUserId(), req.CardIDs)

		case OpPassTurn:
			events, err = matchState.App.PassTurn(matchState.Room, msg.GetUserId())

		case OpChat:
			var req chatRequest
			if jsonErr := json.Unmarshal(msg.GetData(), &req); jsonErr != nil {
				logger.Debug("MatchLoop: dropping malformed chat payload from %s: %v", msg.GetUserId(), jsonErr)
				continue
			}
			events, err = matchState.App.Chat(matchState.Room, msg.GetUserId(), req.Text)

		default:
			logger.Warn("MatchLoop: unknown opcode %d from %s", msg.GetOpCode(), msg.GetUserId())
			continue
		}

		if err != nil {
			mh.sendError(matchState, dispatcher, logger, msg.GetUserId(), err.Error())
			continue
		}
		mh.broadcastEvents(matchState, dispatcher, logger, events)

		if matchState.Room.Phase != phaseBefore {
			mh.updateLabel(matchState, dispatcher, logger)
		}
	}

	return matchState
}

// MatchTerminate releases the room binding; the registry keeps the room for
// the next hosting match.
func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	if matchState, ok := state.(*MatchState); ok {
		mh.registry.Release(matchState.Room.ID)
	}
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

func (mh *matchHandler) broadcastEvents(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, events []app.Event) {
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

// broadcastEvent converts an app event to its wire payload and dispatches it
// to the event's recipients, or the whole room when none are named.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	var opCode int64
	var payload any

	switch ev.Kind {
	case app.EventJoined:
		p := ev.Payload.(app.JoinedPayload)
		opCode = OpJoined
		payload = wireJoined{PlayerID: p.PlayerID, RoomID: p.RoomID, YourName: p.Name}
	case app.EventPlayerJoined:
		p := ev.Payload.(app.PlayerJoinedPayload)
		opCode = OpPlayerJoined
		payload = wirePlayerJoined{PlayerName: p.PlayerName, PlayerCount: p.PlayerCount}
	case app.EventState:
		opCode = OpState
		payload = toWireState(ev.Payload.(app.StatePayload))
	case app.EventHand:
		p := ev.Payload.(app.HandPayload)
		opCode = OpHandDealt
		payload = wireHand{Hand: toWireCards(p.Hand)}
	case app.EventGameStarted:
		p := ev.Payload.(app.GameStartedPayload)
		opCode = OpGameStarted
		payload = wireGameStarted{GameCount: p.GameCount}
	case app.EventPlayed:
		p := ev.Payload.(app.PlayedPayload)
		opCode = OpCardPlayed
		payload = wirePlayed{
			PlayerID:    p.PlayerID,
			PlayerName:  p.PlayerName,
			Cards:       toWireCards(p.Cards),
			Combination: toWireCombination(p.Combination),
		}
	case app.EventPlayerFinished:
		p := ev.Payload.(app.PlayerFinishedPayload)
		opCode = OpPlayerFinished
		payload = wirePlayerRef{PlayerID: p.PlayerID, PlayerName: p.PlayerName}
	case app.EventRoundWon:
		p := ev.Payload.(app.RoundWonPayload)
		opCode = OpRoundWon
		payload = wirePlayerRef{PlayerID: p.PlayerID, PlayerName: p.PlayerName}
	case app.EventGameOver:
		p := ev.Payload.(app.GameOverPayload)
		opCode = OpGameEnded
		ranks := make([]wireFinalRank, len(p.Players))
		for i, fr := range p.Players {
			ranks[i] = wireFinalRank{ID: fr.ID, Name: fr.Name, FinishRank: fr.FinishRank}
		}
		payload = wireGameOver{FinishOrder: p.FinishOrder, Players: ranks}
	case app.EventPassed:
		p := ev.Payload.(app.PassedPayload)
		opCode = OpTurnPassed
		payload = wirePlayerRef{PlayerID: p.PlayerID, PlayerName: p.PlayerName}
	case app.EventPlayerDisconnected:
		p := ev.Payload.(app.PlayerDisconnectedPayload)
		opCode = OpPlayerDisconnected
		payload = wirePlayerRef{PlayerID: p.PlayerID, PlayerName: p.PlayerName}
	case app.EventChat:
		p := ev.Payload.(app.ChatPayload)
		opCode = OpChatMessage
		payload = wireChat{PlayerName: p.PlayerName, Text: p.Text}
	default:
		logger.Warn("broadcastEvent: unknown event kind %q", ev.Kind)
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error("broadcastEvent: failed to marshal %q: %v", ev.Kind, err)
		return
	}

	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, pid := range ev.Recipients {
			if p, ok := state.Presences[pid]; ok {
				recipients = append(recipients, p)
			}
		}
		// A targeted event with no connected recipient must not fall back to
		// a room-wide broadcast.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, data, recipients, nil, true); err != nil {
		logger.Error("broadcastEvent: dispatch %q failed: %v", ev.Kind, err)
	}
}

// sendError delivers one error event to the offending seat only.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, playerID, msg string) {
	presence, ok := state.Presences[playerID]
	if !ok {
		logger.Warn("sendError: presence for %s not found", playerID)
		return
	}

	data, err := json.Marshal(wireError{Msg: msg})
	if err != nil {
		logger.Error("sendError: marshal failed: %v", err)
		return
	}
	if err := dispatcher.BroadcastMessage(OpError, data, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("sendError: dispatch failed: %v", err)
	}
}

func buildLabel(room *domain.Room) string {
	open := 0
	if room.Phase == domain.PhaseLobby {
		open = app.MaxPlayersPerRoom - len(room.Players)
	}
	b, _ := json.Marshal(Label{Open: open, Game: "katarik", Phase: string(room.Phase), RoomID: room.ID})
	return string(b)
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if err := dispatcher.MatchLabelUpdate(buildLabel(state.Room)); err != nil {
		logger.Error("updateLabel: failed to update: %v", err)
	}
}

package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"katarik/internal/app"
	"katarik/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

type joinRoomRequest struct {
	RoomID string `json:"roomId"`
}

// RpcJoinRoomFn resolves a client-supplied room id to a running match id,
// creating the match on demand. Together with the room registry this gives
// every room id a lazily created, indefinitely retained room.
//
// Payload: {"roomId": "..."}; empty or malformed payloads fall back to the
// default room.
// Returns: the match id to pass to a socket match join.
func RpcJoinRoomFn(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	var req joinRoomRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			logger.Debug("RpcJoinRoom [User:%s]: malformed payload, using default room: %v", userID, err)
		}
	}
	roomID := req.RoomID
	if roomID == "" {
		roomID = config.DefaultRoomID()
	}

	// Look for the match already hosting this room.
	limit := 1
	authoritative := true
	minSize := 0
	maxSize := app.MaxPlayersPerRoom
	labelQuery := fmt.Sprintf("+label.room_id:%q", roomID)

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, labelQuery)
	if err != nil {
		logger.Error("RpcJoinRoom [User:%s]: failed to list matches: %v", userID, err)
		return "", err
	}
	if len(matches) > 0 {
		matchID := matches[0].MatchId
		logger.Info("RpcJoinRoom [User:%s]: found match %s for room %q", userID, matchID, roomID)
		return matchID, nil
	}

	matchID, err := nk.MatchCreate(ctx, MatchNameKatarik, map[string]interface{}{"room_id": roomID})
	if err != nil {
		logger.Error("RpcJoinRoom [User:%s]: failed to create match for room %q: %v", userID, roomID, err)
		return "", err
	}

	logger.Info("RpcJoinRoom [User:%s]: created match %s for room %q", userID, matchID, roomID)
	return matchID, nil
}

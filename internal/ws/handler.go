package ws

import (
	"encoding/json"
	"log"

	"go_assetdb/internal/db"
	"go_assetdb/internal/model"

	socketio "github.com/googollee/go-socket.io"
)

// Gap above which replaying events is more expensive than resending the list
const maxReplayEvents = 500

// replayPlan is the decision for answering one request:assets event
type replayPlan struct {
	// full means send the complete latest-asset list
	full bool
	// upToDate means the client has seen everything; confirm with the
	// current event id and send nothing else
	upToDate bool

	events      []model.WSEvent
	lastEventID int64
}

// planReplay decides between incremental replay, an up-to-date confirmation
// and a full resend. lastEventID <= 0 always means a full resend.
func planReplay(lastEventID int64, maxCount int) (replayPlan, error) {
	if lastEventID <= 0 {
		return replayPlan{full: true}, nil
	}

	events, err := GetIncrementalEvents(lastEventID, maxCount)
	if err != nil {
		return replayPlan{}, err
	}
	if len(events) >= maxCount {
		return replayPlan{full: true}, nil
	}

	if len(events) == 0 {
		latestEventID, err := GetLatestEventID()
		if err != nil {
			return replayPlan{}, err
		}
		return replayPlan{upToDate: true, lastEventID: latestEventID}, nil
	}

	return replayPlan{events: events, lastEventID: events[len(events)-1].ID}, nil
}

// handleRequestAssets handles the request:assets event. Clients send their
// last seen event id; the server answers with incremental events, an
// up-to-date confirmation, or the full current asset list.
func handleRequestAssets(s socketio.Conn, data interface{}) {
	var lastEventID int64
	if dataMap, ok := data.(map[string]interface{}); ok {
		if v, ok := dataMap["lastEventId"].(float64); ok {
			lastEventID = int64(v)
		}
	}

	plan, err := planReplay(lastEventID, maxReplayEvents)
	if err != nil {
		log.Printf("[WebSocket] Failed to plan event replay: %v", err)
		plan = replayPlan{full: true}
	}

	switch {
	case plan.upToDate:
		// Never send an empty assets:initial here: the client already
		// holds the list and must not mistake the reply for an empty one
		s.Emit("assets:sync", map[string]interface{}{
			"lastEventId": plan.lastEventID,
		})
	case plan.full:
		sendFullAssetList(s)
	default:
		sendIncrementalUpdates(s, plan.events)
	}
}

// sendIncrementalUpdates replays persisted events, oldest first
func sendIncrementalUpdates(s socketio.Conn, events []model.WSEvent) {
	for _, event := range events {
		var payload interface{}
		if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
			log.Printf("[WebSocket] Failed to unmarshal event payload: %v", err)
			continue
		}

		s.Emit("assets:update", map[string]interface{}{
			"eventId": event.ID,
			"type":    event.EventType,
			"data":    payload,
		})
	}
}

// sendFullAssetList sends every current latest, non-deleted asset
func sendFullAssetList(s socketio.Conn) {
	query := db.GetDB().Model(&model.Asset{}).
		Where("is_latest = ? AND deleted_at IS NULL", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("[WebSocket] Failed to count assets: %v", err)
		s.Emit("error", map[string]interface{}{
			"message": "Failed to query assets",
		})
		return
	}

	var assets []model.Asset
	if err := query.Limit(10000).Find(&assets).Error; err != nil {
		log.Printf("[WebSocket] Failed to query assets: %v", err)
		s.Emit("error", map[string]interface{}{
			"message": "Failed to query assets",
		})
		return
	}

	latestEventID, _ := GetLatestEventID()
	s.Emit("assets:initial", map[string]interface{}{
		"items":       assets,
		"total":       total,
		"lastEventId": latestEventID,
	})
}

package ws

import (
	"encoding/json"
	"errors"
	"fmt"

	"go_assetdb/internal/db"
	"go_assetdb/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const topicAssets = "assets"

// PublishAssetEvent persists an asset event and broadcasts it to connected
// clients. eventType is one of model.WSEventTypeAdd/Update/Delete; payload is
// the asset record sent to clients.
func PublishAssetEvent(eventType string, payload interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	event := model.WSEvent{
		Topic:     topicAssets,
		EventType: eventType,
		Payload:   string(payloadJSON),
	}
	if err := db.GetDB().Create(&event).Error; err != nil {
		return fmt.Errorf("failed to write event to database: %w", err)
	}

	// Broadcast failure must not affect the main flow
	BroadcastToAll("assets:update", map[string]interface{}{
		"eventId": event.ID,
		"type":    eventType,
		"data":    payload,
	})

	logrus.WithFields(logrus.Fields{
		"eventId": event.ID,
		"type":    eventType,
	}).Debug("asset event published")

	return nil
}

// GetIncrementalEvents retrieves asset events with id > lastEventID, oldest
// first, limited to maxCount
func GetIncrementalEvents(lastEventID int64, maxCount int) ([]model.WSEvent, error) {
	var events []model.WSEvent
	err := db.GetDB().
		Where("topic = ? AND id > ?", topicAssets, lastEventID).
		Order("id ASC").
		Limit(maxCount).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query incremental events: %w", err)
	}
	return events, nil
}

// GetLatestEventID retrieves the newest asset event id, 0 when none exist
func GetLatestEventID() (int64, error) {
	var event model.WSEvent
	err := db.GetDB().
		Where("topic = ?", topicAssets).
		Order("id DESC").
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to query latest event: %w", err)
	}
	return event.ID, nil
}

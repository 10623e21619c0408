package controller

import (
	"time"

	"docshelf/internal/catalog/model"
	"docshelf/pkg/logger"
	"docshelf/socket"
)

// FromNotification synthesizes a catalog entry from a realtime
// notification. The channel carries no version or attachment data, so
// those fields get fixed defaults rather than a follow-up fetch of the
// authoritative record.
func FromNotification(n socket.Notification) model.Document {
	ts, err := time.Parse(time.RFC3339, n.Timestamp)
	if err != nil {
		logger.Sugar.Warnf("Notification for %s has unparsable timestamp %q: %v", n.DocumentID, n.Timestamp, err)
		ts = time.Now()
	}
	return model.Document{
		ID:           n.DocumentID,
		Title:        n.DocumentTitle,
		Contributors: []model.Contributor{{ID: n.UserID, Name: n.UserName}},
		Version:      model.NumericVersion(1),
		Attachments:  []string{},
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

// Package events fans notifications out to an external message bus after
// they have been stored.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/server/models"
)

type Publisher interface {
	Publish(ctx context.Context, n *models.Notification) error
	Close() error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, *models.Notification) error { return nil }
func (Nop) Close() error                                        { return nil }

// Event is the wire shape of a published notification.
type Event struct {
	ID                 string                  `json:"id"`
	Type               models.NotificationType `json:"type"`
	RecipientKind      models.RecipientKind    `json:"recipientKind"`
	RecipientID        string                  `json:"recipientId"`
	Title              string                  `json:"title"`
	Message            string                  `json:"message"`
	RelatedJob         string                  `json:"relatedJob,omitempty"`
	RelatedApplication string                  `json:"relatedApplication,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
}

func NewEvent(n *models.Notification) Event {
	return Event{
		ID:                 n.ID,
		Type:               n.Type,
		RecipientKind:      n.Recipient.Kind,
		RecipientID:        n.Recipient.ID,
		Title:              n.Title,
		Message:            n.Message,
		RelatedJob:         n.RelatedJob,
		RelatedApplication: n.RelatedApplication,
		CreatedAt:          n.CreatedAt,
	}
}

func (e Event) Marshal() ([]byte, error) { return json.Marshal(e) }

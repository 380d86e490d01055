package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// Subject pattern constants and helpers
const (
	streamName = "lettr_drafts"

	// Event types
	EventTypeField   = "field"   // partial form-data updates
	EventTypeStep    = "step"    // navigation and completion
	EventTypeControl = "control" // clear, submitted
)

// SubjectForDraft returns the wildcard subject pattern for all events of a
// draft. Example: "lettr.seaside-condo.>"
func SubjectForDraft(draft string) string {
	return fmt.Sprintf("lettr.%s.>", draft)
}

// SubjectForEvent returns the concrete subject for one event.
// Example: "lettr.seaside-condo.field"
func SubjectForEvent(draft, eventType string) string {
	return fmt.Sprintf("lettr.%s.%s", draft, eventType)
}

// SetupStream creates or updates the JetStream stream for draft events.
// Drafts are working state, not an archive: 90-day retention covers any
// listing a landlord is still likely to finish.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{"lettr.>"},
		Storage:  jetstream.FileStorage,
		MaxAge:   90 * 24 * time.Hour,
	})
}

// Package draft persists in-progress listing sessions as an append-only
// event log in JetStream. Every form edit, navigation move, and lifecycle
// change is one event; replaying a draft's events rebuilds the exact wizard
// snapshot, so a session survives process restarts losslessly.
package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/rentverse/lettr/internal/listing"
	"github.com/rentverse/lettr/internal/logger"
	"github.com/rentverse/lettr/internal/nats"
)

// Event is one entry in a draft's event log.
type Event struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Draft     string          `json:"draft"`
	Type      string          `json:"type"`   // field, step, control
	Action    string          `json:"action"` // update, position, complete, clear, submitted
	Meta      json.RawMessage `json:"meta,omitempty"`
}

// Store manages draft state through JetStream event sourcing.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream
}

// NewStore creates a Store over the given JetStream context and stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{js: js, stream: stream}
}

// PublishEvent appends an event to the draft's log.
func (s *Store) PublishEvent(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	subject := nats.SubjectForEvent(event.Draft, event.Type)
	logger.Debug("Publishing draft event: draft=%s type=%s action=%s", event.Draft, event.Type, event.Action)

	if _, err := s.js.Publish(ctx, subject, data); err != nil {
		logger.Error("Failed to publish event to subject %s: %v", subject, err)
		return fmt.Errorf("publishing event: %w", err)
	}
	return nil
}

// RecordPatch appends a form-data update event.
func (s *Store) RecordPatch(ctx context.Context, draft string, patch listing.Patch) error {
	meta, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshaling patch: %w", err)
	}
	return s.PublishEvent(ctx, Event{
		Draft:  draft,
		Type:   nats.EventTypeField,
		Action: "update",
		Meta:   meta,
	})
}

type positionMeta struct {
	Index int `json:"index"`
}

// RecordPosition appends a navigation event carrying the new step index.
func (s *Store) RecordPosition(ctx context.Context, draft string, index int) error {
	meta, _ := json.Marshal(positionMeta{Index: index})
	return s.PublishEvent(ctx, Event{
		Draft:  draft,
		Type:   nats.EventTypeStep,
		Action: "position",
		Meta:   meta,
	})
}

// RecordCompleted appends a step-completion event.
func (s *Store) RecordCompleted(ctx context.Context, draft string, index int) error {
	meta, _ := json.Marshal(positionMeta{Index: index})
	return s.PublishEvent(ctx, Event{
		Draft:  draft,
		Type:   nats.EventTypeStep,
		Action: "complete",
		Meta:   meta,
	})
}

// RecordClear appends a clear event: the draft starts over from nothing.
func (s *Store) RecordClear(ctx context.Context, draft string) error {
	return s.PublishEvent(ctx, Event{
		Draft:  draft,
		Type:   nats.EventTypeControl,
		Action: "clear",
	})
}

type submittedMeta struct {
	PropertyID string `json:"property_id"`
}

// RecordSubmitted marks the draft as published. Later loads see an empty
// fresh session, mirroring the wizard's clear-on-success behavior.
func (s *Store) RecordSubmitted(ctx context.Context, draft, propertyID string) error {
	meta, _ := json.Marshal(submittedMeta{PropertyID: propertyID})
	return s.PublishEvent(ctx, Event{
		Draft:  draft,
		Type:   nats.EventTypeControl,
		Action: "submitted",
		Meta:   meta,
	})
}

// state is the reduce accumulator for one draft's event replay.
type state struct {
	data      listing.FormData
	dirty     bool
	current   int
	completed map[int]bool
	events    int
	submitted bool
	updatedAt time.Time
}

func newState() *state {
	return &state{
		data:      listing.InitialFormData(),
		completed: make(map[int]bool),
	}
}

// apply reduces one event into the state.
func (st *state) apply(event Event) {
	st.events++
	if event.Timestamp.After(st.updatedAt) {
		st.updatedAt = event.Timestamp
	}

	switch event.Type {
	case nats.EventTypeField:
		if event.Action != "update" {
			return
		}
		var patch listing.Patch
		if err := json.Unmarshal(event.Meta, &patch); err != nil {
			logger.Warn("Skipping malformed field event %s: %v", event.ID, err)
			return
		}
		patch.Apply(&st.data)
		st.dirty = true

	case nats.EventTypeStep:
		var meta positionMeta
		if err := json.Unmarshal(event.Meta, &meta); err != nil {
			logger.Warn("Skipping malformed step event %s: %v", event.ID, err)
			return
		}
		switch event.Action {
		case "position":
			st.current = meta.Index
		case "complete":
			st.completed[meta.Index] = true
		}

	case nats.EventTypeControl:
		switch event.Action {
		case "clear":
			fresh := newState()
			fresh.events = st.events
			fresh.updatedAt = st.updatedAt
			*st = *fresh
		case "submitted":
			fresh := newState()
			fresh.events = st.events
			fresh.updatedAt = st.updatedAt
			fresh.submitted = true
			*st = *fresh
		}
	}
}

// snapshot converts the reduced state into the wizard's serialized form.
func (st *state) snapshot() listing.Snapshot {
	completed := make([]int, 0, len(st.completed))
	for i := range st.completed {
		completed = append(completed, i)
	}
	return listing.Snapshot{
		CurrentStepIndex: st.current,
		FormData:         st.data,
		CompletedSteps:   completed,
		IsDirty:          st.dirty,
	}
}

// LoadSnapshot replays a draft's events into a wizard snapshot. The second
// return value is false when the draft has no resumable state (never
// started, cleared, or already submitted).
func (s *Store) LoadSnapshot(ctx context.Context, draft string) (listing.Snapshot, bool, error) {
	st, err := s.reduce(ctx, draft)
	if err != nil {
		return listing.Snapshot{}, false, err
	}

	resumable := st.events > 0 && st.dirty
	logger.Debug("Draft %s loaded: %d events, resumable=%v", draft, st.events, resumable)
	return st.snapshot(), resumable, nil
}

// reduce reads every event for a draft and folds it into a state.
func (s *Store) reduce(ctx context.Context, draft string) (*state, error) {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		FilterSubject: nats.SubjectForDraft(draft),
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("creating consumer: %w", err)
	}

	st := newState()

	const batchSize = 1000
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				meta, _ := msg.Metadata()
				logger.Warn("Skipping malformed draft event (seq=%d): %v", meta.Sequence.Stream, err)
				msg.Ack()
				continue
			}
			st.apply(event)
			msg.Ack()
		}

		if count < batchSize {
			break
		}
	}

	return st, nil
}

// Info summarizes one draft for listing in the CLI.
type Info struct {
	Name      string
	Events    int
	Dirty     bool
	Submitted bool
	UpdatedAt time.Time
}

// List scans the whole stream and summarizes every draft seen.
func (s *Store) List(ctx context.Context) ([]Info, error) {
	consumer, err := s.stream.CreateOrUpdateConsumer(ctx, jetstream.ConsumerConfig{
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckPolicy:     jetstream.AckExplicitPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("creating consumer: %w", err)
	}

	states := make(map[string]*state)
	order := []string{}

	const batchSize = 1000
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var event Event
			if err := json.Unmarshal(msg.Data(), &event); err != nil {
				msg.Ack()
				continue
			}
			st, ok := states[event.Draft]
			if !ok {
				st = newState()
				states[event.Draft] = st
				order = append(order, event.Draft)
			}
			st.apply(event)
			msg.Ack()
		}

		if count < batchSize {
			break
		}
	}

	infos := make([]Info, 0, len(states))
	for _, name := range order {
		st := states[name]
		infos = append(infos, Info{
			Name:      name,
			Events:    st.events,
			Dirty:     st.dirty,
			Submitted: st.submitted,
			UpdatedAt: st.updatedAt,
		})
	}
	return infos, nil
}

// Purge deletes all events for a draft.
func (s *Store) Purge(ctx context.Context, draft string) error {
	if err := s.stream.Purge(ctx, jetstream.WithPurgeSubject(nats.SubjectForDraft(draft))); err != nil {
		return fmt.Errorf("purging draft %s: %w", draft, err)
	}
	logger.Info("Draft %s purged", draft)
	return nil
}

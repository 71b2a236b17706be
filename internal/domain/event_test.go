package domain

import (
	"encoding/json"
	"testing"
)

func TestEventQueue_FIFOAndClear(t *testing.T) {
	a := newTestDraft(t, "content")

	if err := a.UpdateContent("A", "", "one"); err != nil {
		t.Fatalf("UpdateContent() error = %v", err)
	}
	if err := a.UpdateTags([]string{"go"}); err != nil {
		t.Fatalf("UpdateTags() error = %v", err)
	}

	events := a.PendingEvents()
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Name != EventArticleUpdated || events[1].Name != EventArticleTagsUpdated {
		t.Errorf("event order = [%s, %s], want FIFO", events[0].Name, events[1].Name)
	}

	a.ClearEvents()
	if len(a.PendingEvents()) != 0 {
		t.Error("queue not empty after ClearEvents")
	}
}

func TestEventQueue_ReturnsCopy(t *testing.T) {
	a := newTestDraft(t, "content")
	if err := a.UpdateTags([]string{"go"}); err != nil {
		t.Fatalf("UpdateTags() error = %v", err)
	}

	events := a.PendingEvents()
	events[0].Name = "tampered"

	if a.PendingEvents()[0].Name != EventArticleTagsUpdated {
		t.Error("outside caller mutated the queue")
	}
}

func TestEventIdentity(t *testing.T) {
	a := newTestDraft(t, "content")
	if err := a.UpdateTags([]string{"go"}); err != nil {
		t.Fatalf("UpdateTags() error = %v", err)
	}

	ev := a.PendingEvents()[0]
	if ev.ID == "" {
		t.Error("event has no id")
	}
	if ev.AggregateID != a.ID {
		t.Errorf("aggregate id = %q, want %q", ev.AggregateID, a.ID)
	}
	if ev.OccurredAt.IsZero() {
		t.Error("event has no timestamp")
	}
}

func TestUnmarshalPayload(t *testing.T) {
	r := NewReaction("article-1", "user-1")
	if err := r.AddClaps(7); err != nil {
		t.Fatalf("AddClaps() error = %v", err)
	}
	ev := r.PendingEvents()[0]

	data, err := json.Marshal(ev.Payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	got, err := UnmarshalPayload(ev.Name, data)
	if err != nil {
		t.Fatalf("UnmarshalPayload() error = %v", err)
	}
	payload, ok := got.(ClapsAddedPayload)
	if !ok {
		t.Fatalf("payload type = %T, want ClapsAddedPayload", got)
	}
	if payload != ev.Payload.(ClapsAddedPayload) {
		t.Errorf("round-tripped payload = %+v, want %+v", payload, ev.Payload)
	}

	if _, err := UnmarshalPayload("unknown.event", []byte(`{}`)); err == nil {
		t.Error("unknown event name did not fail")
	}
}

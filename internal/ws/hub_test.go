package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/testutil"
)

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub("match-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, nil, "player1")
	hub.Register(client)

	// Give the hub time to process registration
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.Broadcast([]byte(`{"type":"shot_fired"}`))

	select {
	case msg := <-client.send:
		if string(msg) != `{"type":"shot_fired"}` {
			t.Errorf("client received %q", string(msg))
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive message")
	}
}

func TestHubBroadcastEventEncodesJSON(t *testing.T) {
	hub := NewHub("match-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, nil, "player1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	hub.BroadcastEvent(&model.Event{
		Type:      model.EventShotFired,
		MatchID:   "match-1",
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Actor:     "john",
		Payload:   model.ShotFiredPayload{Shooter: "john", Target: "jane", Coord: "B7", Hit: true},
	})

	select {
	case msg := <-client.send:
		var event model.Event
		if err := json.Unmarshal(msg, &event); err != nil {
			t.Fatalf("event is not valid JSON: %v", err)
		}
		if event.Type != model.EventShotFired {
			t.Errorf("event type = %q, want %q", event.Type, model.EventShotFired)
		}
		if event.MatchID != "match-1" {
			t.Errorf("event match_id = %q, want match-1", event.MatchID)
		}
		payload, ok := event.Payload.(map[string]any)
		if !ok {
			t.Fatalf("payload decoded as %T", event.Payload)
		}
		if payload["coord"] != "B7" {
			t.Errorf("payload coord = %v, want B7", payload["coord"])
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("client did not receive event")
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub("match-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, nil, "player1")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount() = %d, want 1", hub.ClientCount())
	}

	hub.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount() = %d after unregister, want 0", hub.ClientCount())
	}
}

func TestHubBroadcastToMultipleClients(t *testing.T) {
	hub := NewHub("match-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client1 := NewClient(hub, nil, "player1")
	client2 := NewClient(hub, nil, "player2")
	client3 := NewClient(hub, nil, "player3")

	hub.Register(client1)
	hub.Register(client2)
	hub.Register(client3)

	time.Sleep(10 * time.Millisecond)

	if hub.ClientCount() != 3 {
		t.Errorf("ClientCount() = %d, want 3", hub.ClientCount())
	}

	hub.Broadcast([]byte("update"))

	for i, client := range []*Client{client1, client2, client3} {
		select {
		case msg := <-client.send:
			if string(msg) != "update" {
				t.Errorf("client %d received %q, want %q", i+1, string(msg), "update")
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client %d did not receive message", i+1)
		}
	}
}

func TestHubManagerGetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub1 := manager.GetOrCreateHub("match-1")
	if hub1 == nil {
		t.Fatal("GetOrCreateHub returned nil")
	}

	// Getting again should return the same hub
	hub2 := manager.GetOrCreateHub("match-1")
	if hub1 != hub2 {
		t.Error("GetOrCreateHub returned different hub for same match")
	}

	hub3 := manager.GetOrCreateHub("match-2")
	if hub3 == hub1 {
		t.Error("GetOrCreateHub returned same hub for different match")
	}

	manager.RemoveHub("match-1")
	manager.RemoveHub("match-2")
}

func TestHubManagerGetHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	if hub := manager.GetHub("missing"); hub != nil {
		t.Error("GetHub returned non-nil for non-existent hub")
	}

	created := manager.GetOrCreateHub("match-1")
	if got := manager.GetHub("match-1"); got != created {
		t.Error("GetHub returned different hub than GetOrCreateHub")
	}

	manager.RemoveHub("match-1")
}

func TestHubManagerRemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("match-1")
	manager.RemoveHub("match-1")

	if got := manager.GetHub("match-1"); got != nil {
		t.Error("hub still exists after RemoveHub")
	}

	// Removing a non-existent hub should not panic
	manager.RemoveHub("missing")
}

func TestHubManagerCleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	manager.GetOrCreateHub("empty")

	active := manager.GetOrCreateHub("active")
	client := NewClient(active, nil, "player1")
	active.Register(client)
	time.Sleep(10 * time.Millisecond)

	manager.CleanupEmptyHubs()

	if manager.GetHub("empty") != nil {
		t.Error("empty hub still exists after cleanup")
	}
	if manager.GetHub("active") == nil {
		t.Error("active hub was removed during cleanup")
	}

	manager.RemoveHub("active")
}

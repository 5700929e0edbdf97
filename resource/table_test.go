package resource

import (
	"errors"
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnHandleEvent(e Event) {
	o.events = append(o.events, e)
}

func TestUnifiedTable_Basic(t *testing.T) {
	table := NewTable()

	h, err := table.Insert("test")
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok || val != "test" {
		t.Fatalf("Get = %v, %v", val, ok)
	}

	val, ok = table.Remove(h)
	if !ok || val != "test" {
		t.Fatalf("Remove = %v, %v", val, ok)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
	if _, ok := table.Remove(h); ok {
		t.Fatal("second Remove should report false")
	}
}

func TestUnifiedTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h, _ := table.Insert("test")
	if len(obs.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventCreated || obs.events[0].Handle != h {
		t.Fatalf("unexpected event %+v", obs.events[0])
	}

	table.Remove(h)
	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	if obs.events[1].Type != EventReleased || obs.events[1].Value != "test" {
		t.Fatalf("unexpected event %+v", obs.events[1])
	}

	// A failed Remove does not notify
	table.Remove(h)
	if len(obs.events) != 2 {
		t.Fatal("failed Remove should not notify")
	}

	table.Unsubscribe(obs)
	table.Insert("test2")
	if len(obs.events) != 2 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestUnifiedTable_Clear(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}

	table.Insert("a")
	table.Insert("b")
	table.Insert("c")
	table.Subscribe(obs)

	if table.Len() != 3 {
		t.Fatal("Expected Len() == 3")
	}

	table.Clear()

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Clear")
	}
	if len(obs.events) != 3 {
		t.Fatalf("Expected 3 release events, got %d", len(obs.events))
	}
}

func TestUnifiedTable_Close(t *testing.T) {
	table := NewTable()

	table.Insert("a")
	table.Insert("b")

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	h, err := table.Insert("c")
	if h != 0 || !errors.Is(err, ErrClosed) {
		t.Fatalf("Insert after Close = %d, %v", h, err)
	}
}

func TestEventType_String(t *testing.T) {
	if EventCreated.String() != "created" || EventReleased.String() != "released" {
		t.Error("unexpected event names")
	}
	if EventType(9).String() != "unknown" {
		t.Error("unexpected name for unknown event")
	}
}

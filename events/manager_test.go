package events

import (
	"testing"
)

func TestEmitReachesSubscribersInOrder(t *testing.T) {
	em := NewEventManager()

	var got []string
	em.Subscribe(EventPhaseChanged, func(e Event) {
		got = append(got, "first:"+e.(PhaseChanged).Phase.String())
	})
	em.Subscribe(EventPhaseChanged, func(e Event) {
		got = append(got, "second:"+e.(PhaseChanged).Phase.String())
	})
	em.Subscribe(EventRoomPlaced, func(e Event) {
		t.Error("RoomPlaced handler must not see PhaseChanged events")
	})

	em.Emit(PhaseChanged{Phase: PhaseGrowing})

	if len(got) != 2 || got[0] != "first:growing" || got[1] != "second:growing" {
		t.Errorf("Unexpected dispatch order %v", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	em := NewEventManager()

	calls := 0
	id := em.Subscribe(EventCorridorPlaced, func(Event) { calls++ })
	other := em.Subscribe(EventCorridorPlaced, func(Event) { calls += 10 })

	em.Unsubscribe(EventCorridorPlaced, id)
	em.Emit(CorridorPlaced{Corridor: 1})
	if calls != 10 {
		t.Errorf("Expected only the remaining handler to run, calls = %d", calls)
	}

	em.Unsubscribe(EventCorridorPlaced, other)
	em.Emit(CorridorPlaced{Corridor: 2})
	if calls != 10 {
		t.Errorf("Expected no handler after unsubscribing all, calls = %d", calls)
	}

	// Unknown ids and types are ignored
	em.Unsubscribe(EventCorridorsCrossed, 42)
}

func TestSubscribeAll(t *testing.T) {
	em := NewEventManager()

	var types []EventType
	ids := em.SubscribeAll(func(e Event) { types = append(types, e.Type()) }, EventRoomPlaced, EventCorridorsCrossed)
	if len(ids) != 2 || ids[0] == ids[1] {
		t.Fatalf("Expected two distinct subscriptions, got %v", ids)
	}

	em.Emit(RoomPlaced{Room: 3})
	em.Emit(CorridorsCrossed{Corridor: 1, Crossed: 0})
	em.Emit(PhaseChanged{Phase: PhaseDone})

	if len(types) != 2 || types[0] != EventRoomPlaced || types[1] != EventCorridorsCrossed {
		t.Errorf("Unexpected events %v", types)
	}
}

func TestEmitOnNilManager(t *testing.T) {
	var em *EventManager
	em.Emit(PhaseChanged{Phase: PhaseSeed})
}

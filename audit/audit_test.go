package audit

import (
	"context"
	"testing"
)

func TestMemoryHistory(t *testing.T) {
	ctx := context.Background()
	m := &Memory{}
	_ = m.Record(ctx, Entry{Action: ActionPlaceOrder, Entity: EntityOrder, EntityID: 1})
	_ = m.Record(ctx, Entry{Action: ActionCreateRestaurant, Entity: EntityRestaurant, EntityID: 1})
	_ = m.Record(ctx, Entry{Action: ActionUpdateOrderStatus, Entity: EntityOrder, EntityID: 1})
	_ = m.Record(ctx, Entry{Action: ActionPlaceOrder, Entity: EntityOrder, EntityID: 2})

	history, err := m.History(ctx, EntityOrder, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(history))
	}
	if history[0].Action != ActionUpdateOrderStatus {
		t.Errorf("expected newest entry first, got %q", history[0].Action)
	}

	limited, _ := m.History(ctx, EntityOrder, 1, 1)
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d entries", len(limited))
	}
	if got := len(m.Actions()); got != 4 {
		t.Errorf("expected 4 actions, got %d", got)
	}
}

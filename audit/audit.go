package audit

import (
	"context"
	"sync"
	"time"
)

const (
	ActionPlaceOrder        = "place_order"
	ActionUpdateOrderStatus = "update_order_status"
	ActionSoftDeleteOrder   = "soft_delete_order"
	ActionCreateRestaurant  = "create_restaurant"
	ActionUpdateRestaurant  = "update_restaurant"
	ActionDeleteRestaurant  = "delete_restaurant"
	ActionCreateMenuItem    = "create_menu_item"
	ActionUpdateMenuItem    = "update_menu_item"
	ActionDeleteMenuItem    = "delete_menu_item"
	ActionRegisterAdmin     = "register_admin"
)

const (
	EntityOrder      = "order"
	EntityRestaurant = "restaurant"
	EntityMenuItem   = "menu_item"
	EntityUser       = "user"
)

// Entry is one audited state change.
type Entry struct {
	Service   string                 `bson:"service"`
	Action    string                 `bson:"action"`
	Entity    string                 `bson:"entity"`
	EntityID  uint                   `bson:"entity_id"`
	ActorID   uint                   `bson:"actor_id"`
	Data      map[string]interface{} `bson:"data,omitempty"`
	CreatedAt time.Time              `bson:"created_at"`
}

type Recorder interface {
	Record(ctx context.Context, entry Entry) error
	History(ctx context.Context, entity string, entityID uint, limit int64) ([]Entry, error)
}

type Nop struct{}

func (Nop) Record(context.Context, Entry) error { return nil }

func (Nop) History(context.Context, string, uint, int64) ([]Entry, error) { return nil, nil }

// Memory keeps entries in process. Used by tests and local runs without MongoDB.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

func (m *Memory) Record(_ context.Context, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *Memory) History(_ context.Context, entity string, entityID uint, limit int64) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		entry := m.entries[i]
		if entry.Entity != entity || entry.EntityID != entityID {
			continue
		}
		out = append(out, entry)
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

// Actions lists recorded action names in insertion order.
func (m *Memory) Actions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	actions := make([]string, 0, len(m.entries))
	for _, entry := range m.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

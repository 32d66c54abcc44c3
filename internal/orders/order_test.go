package orders

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestOrderItemWireFieldNames(t *testing.T) {
	raw, err := json.Marshal(OrderItem{
		ProductID:     "p1",
		Extra:         "Cheese",
		Without:       "Onion",
		Specification: "well done",
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	// The backend contract names the exclusion field "fara".
	if !strings.Contains(string(raw), `"fara":"Onion"`) {
		t.Errorf("serialized item = %s, want a fara field", raw)
	}
	if strings.Contains(string(raw), "without") {
		t.Errorf("serialized item = %s, must not leak the code-level field name", raw)
	}
}

func TestOrderItemOmitsEmptyCustomization(t *testing.T) {
	raw, err := json.Marshal(OrderItem{ProductID: "p1"})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	for _, field := range []string{"extra", "fara", "specification"} {
		if strings.Contains(string(raw), field) {
			t.Errorf("serialized item = %s, empty %s should be omitted", raw, field)
		}
	}
}

func TestOrderDecoding(t *testing.T) {
	raw := `{
		"id": "o1",
		"tableNumber": "4",
		"status": "IN_PROGRESS",
		"createdAt": "2026-08-20T10:00:00Z",
		"orderItemDtos": [{"productId": "p1", "fara": "Onion"}]
	}`

	var o Order
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !o.Active() {
		t.Error("Active() = false for an IN_PROGRESS order")
	}
	if len(o.Items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(o.Items))
	}
	if o.Items[0].Without != "Onion" {
		t.Errorf("Without = %q, want Onion", o.Items[0].Without)
	}
	if o.CreatedAt == nil {
		t.Error("CreatedAt = nil")
	}
}

func TestCreateOrderRequestWireShape(t *testing.T) {
	raw, err := json.Marshal(CreateOrderRequest{
		TableNumber: "4",
		Items:       []OrderItem{{ProductID: "p1"}},
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(raw), `"orderItemDtos"`) {
		t.Errorf("serialized request = %s, want an orderItemDtos field", raw)
	}
}

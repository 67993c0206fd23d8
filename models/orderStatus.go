package models

type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusFoodProcessing OrderStatus = "Food Processing"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
)

// orderStatusFlow lists the states in the only order an order may move through.
var orderStatusFlow = []OrderStatus{
	OrderStatusPending,
	OrderStatusFoodProcessing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
}

func (s OrderStatus) rank() int {
	for i, status := range orderStatusFlow {
		if status == s {
			return i
		}
	}
	return -1
}

func (s OrderStatus) Valid() bool {
	return s.rank() >= 0
}

// CanTransitionTo reports whether next is strictly later in the flow.
// Skipping forward is allowed; moving back or staying put is not.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, to := s.rank(), next.rank()
	return from >= 0 && to > from
}

// Terminal reports whether no further status change is possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered
}

// Package status holds the shipment status vocabulary and the rule that
// folds an order's shipment statuses into a single order status.
package status

// Status is the tracking state of a shipment, and the derived state of an order.
type Status string

const (
	Processing     Status = "Processing"
	Failed         Status = "Failed"
	Delayed        Status = "Delayed"
	InTransit      Status = "In Transit"
	OutForDelivery Status = "Out for Delivery"
	Delivered      Status = "Delivered"
)

// precedence lists the statuses that win outright when any shipment carries
// them, highest first.
var precedence = [...]Status{Failed, Delayed, InTransit, OutForDelivery}

// Known reports whether s belongs to the tracked vocabulary. Unknown values
// are stored as-is and only ever count toward Processing.
func (s Status) Known() bool {
	switch s {
	case Processing, Failed, Delayed, InTransit, OutForDelivery, Delivered:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }

// Derive returns the order status for the given shipment statuses.
// The worst status wins; an order is Delivered only when every shipment is.
func Derive(statuses []Status) Status {
	if len(statuses) == 0 {
		return Processing
	}

	present := make(map[Status]bool, len(precedence))
	allDelivered := true
	for _, s := range statuses {
		present[s] = true
		if s != Delivered {
			allDelivered = false
		}
	}

	for _, s := range precedence {
		if present[s] {
			return s
		}
	}
	if allDelivered {
		return Delivered
	}
	return Processing
}

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     Status
	}{
		{"no shipments", nil, Processing},
		{"empty slice", []Status{}, Processing},
		{"all delivered", []Status{Delivered, Delivered, Delivered}, Delivered},
		{"single delivered", []Status{Delivered}, Delivered},
		{"delivered with unknown", []Status{Delivered, Status("Returned")}, Processing},
		{"delivered with processing", []Status{Delivered, Processing}, Processing},
		{"in transit beats delivered", []Status{InTransit, Delivered}, InTransit},
		{"failed beats everything", []Status{Delivered, Delayed, Failed, InTransit}, Failed},
		{"delayed beats in transit", []Status{InTransit, Delayed}, Delayed},
		{"in transit beats out for delivery", []Status{OutForDelivery, InTransit}, InTransit},
		{"out for delivery beats delivered", []Status{Delivered, OutForDelivery}, OutForDelivery},
		{"only unknown", []Status{Status("Label Created")}, Processing},
		{"empty status string", []Status{""}, Processing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.statuses))
		})
	}
}

// expected computes the winner independently of Derive's implementation.
func expected(statuses []Status) Status {
	if len(statuses) == 0 {
		return Processing
	}
	rank := map[Status]int{Failed: 4, Delayed: 3, InTransit: 2, OutForDelivery: 1}
	best, bestRank := Status(""), 0
	delivered := 0
	for _, s := range statuses {
		if r := rank[s]; r > bestRank {
			best, bestRank = s, r
		}
		if s == Delivered {
			delivered++
		}
	}
	if bestRank > 0 {
		return best
	}
	if delivered == len(statuses) {
		return Delivered
	}
	return Processing
}

func TestDerive_AllCombinations(t *testing.T) {
	alphabet := []Status{Failed, Delayed, InTransit, OutForDelivery, Delivered, Status("Other")}

	var walk func(prefix []Status, depth int)
	walk = func(prefix []Status, depth int) {
		got := Derive(prefix)
		assert.Equal(t, expected(prefix), got, "statuses=%v", prefix)
		assert.Equal(t, got, Derive(prefix), "derive must be deterministic for %v", prefix)
		if depth == 0 {
			return
		}
		for _, s := range alphabet {
			next := append(append([]Status(nil), prefix...), s)
			walk(next, depth-1)
		}
	}
	walk(nil, 4)
}

func TestDerive_OrderIndependent(t *testing.T) {
	a := []Status{Delivered, OutForDelivery, Status("Other"), Delayed}
	b := []Status{Delayed, Status("Other"), OutForDelivery, Delivered}
	assert.Equal(t, Derive(a), Derive(b))
}

func TestKnown(t *testing.T) {
	for _, s := range []Status{Processing, Failed, Delayed, InTransit, OutForDelivery, Delivered} {
		assert.True(t, s.Known(), s.String())
	}
	assert.False(t, Status("in transit").Known())
	assert.False(t, Status("").Known())
}

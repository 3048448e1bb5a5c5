package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestInventoryItem_ReserveRelease(t *testing.T) {
	item := NewInventoryItem("PROD001", 10)

	require.NoError(t, item.Reserve(4))
	assert.Equal(t, 6, item.Available)
	assert.Equal(t, 4, item.Reserved)

	require.NoError(t, item.Release(4))
	assert.Equal(t, 10, item.Available)
	assert.Equal(t, 0, item.Reserved)
}

func TestInventoryItem_Errors(t *testing.T) {
	item := NewInventoryItem("PROD001", 1)

	assert.ErrorIs(t, item.Reserve(0), ErrInvalidQuantity)
	assert.ErrorIs(t, item.Reserve(2), ErrInsufficientAvailable)
	assert.ErrorIs(t, item.Release(1), ErrInsufficientReserved)
	assert.ErrorIs(t, item.Release(-1), ErrInvalidQuantity)
	assert.ErrorIs(t, item.Adjust(-2, 0), ErrNegativeQuantity)
	assert.ErrorIs(t, item.Adjust(0, -1), ErrNegativeQuantity)

	assert.Equal(t, 1, item.Available)
	assert.Equal(t, 0, item.Reserved)
}

func TestCheckDemands(t *testing.T) {
	items := map[string]*InventoryItem{
		"A": {ProductID: "A", Available: 5},
		"B": {ProductID: "B", Available: 1, Reserved: 2},
	}

	assert.NoError(t, CheckDemands(items, []Demand{{"A", 5}, {"B", 1}}, false))

	err := CheckDemands(items, []Demand{{"A", 3}, {"A", 3}}, false)
	var ie *ItemError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "A", ie.ProductID)
	assert.ErrorIs(t, err, ErrInsufficientAvailable)

	err = CheckDemands(items, []Demand{{"A", 1}, {"Z", 1}}, false)
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "Z", ie.ProductID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, CheckDemands(items, []Demand{{"B", 3}}, true), ErrInsufficientReserved)
	assert.NoError(t, CheckDemands(items, []Demand{{"B", 2}}, true))

	// nothing was mutated
	assert.Equal(t, 5, items["A"].Available)
	assert.Equal(t, 2, items["B"].Reserved)
}

func TestProductIDs_FirstSeenOrder(t *testing.T) {
	ids := ProductIDs([]Demand{{"B", 1}, {"A", 1}, {"B", 2}})
	assert.Equal(t, []string{"B", "A"}, ids)
}

func TestInventoryItem_ConservationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		available := rapid.IntRange(0, 1000).Draw(t, "available")
		reserved := rapid.IntRange(0, 1000).Draw(t, "reserved")
		item := &InventoryItem{ProductID: "P", Available: available, Reserved: reserved}
		sum := available + reserved

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			qty := rapid.IntRange(-5, 200).Draw(t, "qty")
			before := *item
			var err error
			if rapid.Bool().Draw(t, "reserve") {
				err = item.Reserve(qty)
			} else {
				err = item.Release(qty)
			}
			if err != nil {
				if item.Available != before.Available || item.Reserved != before.Reserved {
					t.Fatalf("failed call mutated item: %+v -> %+v", before, *item)
				}
			}
			if item.Available < 0 || item.Reserved < 0 {
				t.Fatalf("negative quantity: %+v", *item)
			}
			if item.Available+item.Reserved != sum {
				t.Fatalf("sum not conserved: %d != %d", item.Available+item.Reserved, sum)
			}
		}
	})
}

func TestInventoryItem_RoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		available := rapid.IntRange(1, 1000).Draw(t, "available")
		reserved := rapid.IntRange(0, 1000).Draw(t, "reserved")
		qty := rapid.IntRange(1, available).Draw(t, "qty")
		item := &InventoryItem{ProductID: "P", Available: available, Reserved: reserved}

		if err := item.Reserve(qty); err != nil {
			t.Fatalf("reserve: %v", err)
		}
		if err := item.Release(qty); err != nil {
			t.Fatalf("release: %v", err)
		}
		if item.Available != available || item.Reserved != reserved {
			t.Fatalf("round trip changed state: got (%d,%d) want (%d,%d)",
				item.Available, item.Reserved, available, reserved)
		}
	})
}

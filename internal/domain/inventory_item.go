package domain

import (
	"time"
)

type InventoryItem struct {
	ProductID    string
	Available    int
	Reserved     int
	UpdatedAtUtc time.Time
}

// Availability is the read model handed to callers and kept in the cache.
type Availability struct {
	ProductID         string `json:"productId"`
	AvailableQuantity int    `json:"availableQuantity"`
	ReservedQuantity  int    `json:"reservedQuantity"`
}

func NewInventoryItem(productID string, available int) *InventoryItem {
	return &InventoryItem{
		ProductID:    productID,
		Available:    available,
		Reserved:     0,
		UpdatedAtUtc: time.Now().UTC(),
	}
}

func (i *InventoryItem) Snapshot() Availability {
	return Availability{
		ProductID:         i.ProductID,
		AvailableQuantity: i.Available,
		ReservedQuantity:  i.Reserved,
	}
}

// Reserve moves qty from available to reserved.
func (i *InventoryItem) Reserve(qty int) error {
	if qty <= 0 {
		return NewItemError(i.ProductID, ErrInvalidQuantity)
	}
	if i.Available < qty {
		return NewItemError(i.ProductID, ErrInsufficientAvailable)
	}
	i.Available -= qty
	i.Reserved += qty
	i.UpdatedAtUtc = time.Now().UTC()
	return nil
}

// Release moves qty from reserved back to available.
func (i *InventoryItem) Release(qty int) error {
	if qty <= 0 {
		return NewItemError(i.ProductID, ErrInvalidQuantity)
	}
	if i.Reserved < qty {
		return NewItemError(i.ProductID, ErrInsufficientReserved)
	}
	i.Reserved -= qty
	i.Available += qty
	i.UpdatedAtUtc = time.Now().UTC()
	return nil
}

// Adjust applies raw deltas; the row is left untouched if either side would go negative.
func (i *InventoryItem) Adjust(availableDelta, reservedDelta int) error {
	if i.Available+availableDelta < 0 || i.Reserved+reservedDelta < 0 {
		return NewItemError(i.ProductID, ErrNegativeQuantity)
	}
	i.Available += availableDelta
	i.Reserved += reservedDelta
	i.UpdatedAtUtc = time.Now().UTC()
	return nil
}

// Demand is one (product, quantity) pair of a multi-item reservation.
type Demand struct {
	ProductID string
	Quantity  int
}

// CheckDemands validates demands in order against the given rows, accumulating
// repeated products. It does not mutate rows.
func CheckDemands(items map[string]*InventoryItem, demands []Demand, release bool) error {
	pending := make(map[string]int, len(demands))
	for _, d := range demands {
		item, ok := items[d.ProductID]
		if !ok {
			return NewItemError(d.ProductID, ErrNotFound)
		}
		if d.Quantity <= 0 {
			return NewItemError(d.ProductID, ErrInvalidQuantity)
		}
		total := pending[d.ProductID] + d.Quantity
		if release {
			if item.Reserved < total {
				return NewItemError(d.ProductID, ErrInsufficientReserved)
			}
		} else if item.Available < total {
			return NewItemError(d.ProductID, ErrInsufficientAvailable)
		}
		pending[d.ProductID] = total
	}
	return nil
}

// ProductIDs returns the distinct product ids of demands in first-seen order.
func ProductIDs(demands []Demand) []string {
	seen := make(map[string]struct{}, len(demands))
	ids := make([]string, 0, len(demands))
	for _, d := range demands {
		if _, ok := seen[d.ProductID]; ok {
			continue
		}
		seen[d.ProductID] = struct{}{}
		ids = append(ids, d.ProductID)
	}
	return ids
}

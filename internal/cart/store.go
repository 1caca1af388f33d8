package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/kiarashop/storefront/pkg/backend"
	"github.com/kiarashop/storefront/pkg/kv"
	"github.com/kiarashop/storefront/pkg/logger"
)

// LineItem is one product-and-quantity entry. Display fields are copied from
// the product at add time; the server reprices at order submission.
type LineItem struct {
	ProductID   int64           `json:"productId"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
}

// LineTotal is unit price times quantity.
func (l LineItem) LineTotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Store maintains the ordered, de-duplicated line items for the active
// partition. In-memory state is authoritative for the process lifetime;
// persistence failures are logged, never surfaced to the shopper.
type Store struct {
	mu        sync.RWMutex
	partition string
	items     []LineItem

	storage kv.Store
	logg    *logger.Logger
}

// NewStore builds an empty cart bound to the guest partition until
// SwitchPartition is called.
func NewStore(storage kv.Store, logg *logger.Logger) *Store {
	return &Store{partition: "cart_guest", storage: storage, logg: logg}
}

// SwitchPartition activates another identity's cart. Partitions never merge:
// the previous partition keeps whatever was last persisted for it.
func (s *Store) SwitchPartition(ctx context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.partition = key
	s.items = nil

	raw, err := s.storage.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return
	}
	if err != nil {
		s.logError(ctx, "loading cart partition", err)
		return
	}
	var items []LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		s.logError(ctx, "decoding cart partition", err)
		return
	}
	s.items = items
}

// Partition returns the active partition key.
func (s *Store) Partition() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.partition
}

// AddItem merges quantity into an existing line for the product, or appends a
// new line. Quantities below one count as one.
func (s *Store) AddItem(ctx context.Context, product backend.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == product.ID {
			s.items[i].Quantity += quantity
			s.persist(ctx)
			return
		}
	}

	s.items = append(s.items, LineItem{
		ProductID:   product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Image:       product.Image,
		Description: product.Description,
		Quantity:    quantity,
	})
	s.persist(ctx)
}

// RemoveItem deletes the line item; absent products are a no-op.
func (s *Store) RemoveItem(ctx context.Context, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// SetQuantity overwrites the quantity in place; zero or below removes the line.
func (s *Store) SetQuantity(ctx context.Context, productID int64, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(ctx, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
			s.persist(ctx)
			return
		}
	}
}

// Clear empties the active partition.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist(ctx)
}

// Items returns a snapshot of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the sum of price times quantity over all lines.
func (s *Store) Total() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Count is the sum of quantities, used for badge displays.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// persist writes the active partition; callers hold the lock.
func (s *Store) persist(ctx context.Context) {
	raw, err := json.Marshal(s.items)
	if err != nil {
		s.logError(ctx, "encoding cart partition", err)
		return
	}
	if err := s.storage.Set(ctx, s.partition, raw); err != nil {
		s.logError(ctx, "persisting cart partition", err)
	}
}

func (s *Store) logError(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithPartition(ctx, s.partition)
	s.logg.Error(ctx, msg, err)
}

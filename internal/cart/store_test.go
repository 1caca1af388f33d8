package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/kiarashop/storefront/pkg/backend"
	"github.com/kiarashop/storefront/pkg/kv"
)

func productFixture(id int64, name string, price int64) backend.Product {
	return backend.Product{
		ID:    id,
		Name:  name,
		Price: decimal.NewFromInt(price),
	}
}

func TestAddItemMergesSameProduct(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemory(), nil)

	store.AddItem(ctx, productFixture(1, "Panjabi", 500), 1)
	store.AddItem(ctx, productFixture(1, "Panjabi", 500), 2)
	store.AddItem(ctx, productFixture(1, "Panjabi", 500), 1)

	items := store.Items()
	if len(items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(items))
	}
	if items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", items[0].Quantity)
	}
}

func TestSetQuantityZeroRemoves(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemory(), nil)

	store.AddItem(ctx, productFixture(1, "Panjabi", 500), 2)
	store.SetQuantity(ctx, 1, 0)

	if len(store.Items()) != 0 {
		t.Fatal("setting quantity to zero should remove the line")
	}
	if store.Count() != 0 {
		t.Fatalf("expected count 0, got %d", store.Count())
	}
}

func TestRemoveAbsentProductIsNoOp(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemory(), nil)

	store.AddItem(ctx, productFixture(1, "Panjabi", 500), 1)
	store.RemoveItem(ctx, 99)

	if len(store.Items()) != 1 {
		t.Fatal("removing an absent product must not touch other lines")
	}
}

func TestTotalAndCountSums(t *testing.T) {
	ctx := context.Background()
	store := NewStore(kv.NewMemory(), nil)

	store.AddItem(ctx, productFixture(1, "Panjabi", 500), 2)
	store.AddItem(ctx, productFixture(2, "Saree", 300), 1)

	if got := store.Total(); !got.Equal(decimal.NewFromInt(1300)) {
		t.Fatalf("expected total 1300, got %s", got)
	}
	if got := store.Count(); got != 3 {
		t.Fatalf("expected count 3, got %d", got)
	}
}

func TestPartitionsStayIndependent(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	store := NewStore(storage, nil)

	// Guest shops first.
	store.AddItem(ctx, productFixture(1, "Panjabi", 500), 2)

	// Login: switch to the user partition, add something else.
	store.SwitchPartition(ctx, "cart_42")
	if store.Count() != 0 {
		t.Fatal("user partition should start independent of the guest cart")
	}
	store.AddItem(ctx, productFixture(2, "Saree", 300), 1)

	// Logout: guest cart must be exactly as it was left.
	store.SwitchPartition(ctx, "cart_guest")
	items := store.Items()
	if len(items) != 1 || items[0].ProductID != 1 || items[0].Quantity != 2 {
		t.Fatalf("guest cart was disturbed: %+v", items)
	}

	// Back to the user: same.
	store.SwitchPartition(ctx, "cart_42")
	items = store.Items()
	if len(items) != 1 || items[0].ProductID != 2 {
		t.Fatalf("user cart was disturbed: %+v", items)
	}
}

func TestCartSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()

	first := NewStore(storage, nil)
	first.AddItem(ctx, productFixture(1, "Panjabi", 500), 2)

	second := NewStore(storage, nil)
	second.SwitchPartition(ctx, "cart_guest")
	if second.Count() != 2 {
		t.Fatalf("expected restored count 2, got %d", second.Count())
	}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, kv.ErrNotFound }
func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}
func (failingStore) Delete(context.Context, string) error { return nil }
func (failingStore) Close() error                         { return nil }

func TestPersistenceFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	store := NewStore(failingStore{}, nil)

	store.AddItem(ctx, productFixture(1, "Panjabi", 500), 1)
	if store.Count() != 1 {
		t.Fatal("in-memory cart must survive a persistence failure")
	}
}

func TestClearEmptiesPartition(t *testing.T) {
	ctx := context.Background()
	storage := kv.NewMemory()
	store := NewStore(storage, nil)

	store.AddItem(ctx, productFixture(1, "Panjabi", 500), 2)
	store.Clear(ctx)

	if store.Count() != 0 {
		t.Fatal("clear should empty the cart")
	}

	reloaded := NewStore(storage, nil)
	reloaded.SwitchPartition(ctx, "cart_guest")
	if reloaded.Count() != 0 {
		t.Fatal("clear should also empty the persisted partition")
	}
}

package backend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kiarashop/storefront/pkg/enums"
)

// Product is the catalog entry as served by the backend.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	CategoryID  int64           `json:"categoryId"`
	Stock       int             `json:"stock"`
}

// Category groups products for browsing.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserProfile is the identity block returned by the auth endpoints.
type UserProfile struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
	Role  enums.Role `json:"role"`
}

// AuthResponse bundles the access token with the profile.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	UserProfile
}

// OrderRequest is the order-creation payload. PaymentMethod carries the masked
// descriptor for online payments, never raw card or wallet fields.
type OrderRequest struct {
	FirstName      string             `json:"firstName"`
	LastName       string             `json:"lastName"`
	Email          string             `json:"email"`
	Phone          string             `json:"phone"`
	Address        string             `json:"address"`
	District       string             `json:"district"`
	PaymentMethod  string             `json:"paymentMethod"`
	DeliveryMethod string             `json:"deliveryMethod"`
	DeliveryCharge int64              `json:"deliveryCharge"`
	Comment        string             `json:"comment"`
	Items          []OrderRequestItem `json:"items"`
}

// OrderRequestItem references a product purely by id; the server reprices.
type OrderRequestItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// Order is the server-authoritative order record. Totals are read-only truth
// once returned.
type Order struct {
	ID             int64             `json:"id"`
	FirstName      string            `json:"firstName"`
	LastName       string            `json:"lastName"`
	Email          string            `json:"email"`
	Phone          string            `json:"phone"`
	Address        string            `json:"address"`
	District       string            `json:"district"`
	PaymentMethod  string            `json:"paymentMethod"`
	DeliveryMethod string            `json:"deliveryMethod"`
	DeliveryCharge int64             `json:"deliveryCharge"`
	Comment        string            `json:"comment"`
	Total          decimal.Decimal   `json:"total"`
	Status         enums.OrderStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	Items          []OrderItem       `json:"items"`
}

// OrderItem is one frozen line of an order.
type OrderItem struct {
	Product  OrderItemProduct `json:"product"`
	Price    decimal.Decimal  `json:"price"`
	Quantity int              `json:"quantity"`
}

// OrderItemProduct is the product reference embedded in an order line.
type OrderItemProduct struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Subtotal reconstructs the pre-delivery amount; the server does not return it
// separately.
func (o Order) Subtotal() decimal.Decimal {
	return o.Total.Sub(decimal.NewFromInt(o.DeliveryCharge))
}

// LineTotal is unit price times quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Review is the payload for product reviews.
type Review struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

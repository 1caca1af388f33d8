package receipt

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/kiarashop/storefront/pkg/backend"
	pkgerrors "github.com/kiarashop/storefront/pkg/errors"
)

const currency = "Tk"

// Render produces the plain-text receipt for a confirmed order.
func Render(order backend.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order #%d\n", order.ID)
	if !order.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "Placed %s\n", order.CreatedAt.Format("2 Jan 2006 15:04"))
	}
	fmt.Fprintf(&b, "Status: %s\n\n", order.Status)

	name := strings.TrimSpace(order.FirstName + " " + order.LastName)
	fmt.Fprintf(&b, "%s\n%s\n", name, order.Address)
	if order.District != "" {
		fmt.Fprintf(&b, "%s\n", order.District)
	}
	fmt.Fprintf(&b, "%s / %s\n\n", order.Phone, order.Email)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%-30s %3d x %8s = %10s\n",
			item.Product.Name, item.Quantity, amount(item.Price), amount(item.LineTotal()))
	}

	b.WriteString(strings.Repeat("-", 58) + "\n")
	fmt.Fprintf(&b, "%-36s %18s\n", "Subtotal", amount(order.Subtotal()))
	fmt.Fprintf(&b, "%-36s %18s\n", "Delivery", amount(decimal.NewFromInt(order.DeliveryCharge)))
	fmt.Fprintf(&b, "%-36s %18s\n\n", "Total", amount(order.Total))

	fmt.Fprintf(&b, "Paid via %s\n", order.PaymentMethod)
	fmt.Fprintf(&b, "Delivery: %s\n", order.DeliveryMethod)
	if order.Comment != "" {
		fmt.Fprintf(&b, "Note: %s\n", order.Comment)
	}
	return b.String()
}

// Verify cross-checks the arithmetic of a server-returned order before it is
// shown to the customer, reporting every inconsistency at once.
func Verify(order backend.Order) error {
	var err error

	if len(order.Items) == 0 {
		err = multierr.Append(err, fmt.Errorf("order %d has no items", order.ID))
	}

	itemSum := decimal.Zero
	for _, item := range order.Items {
		if item.Quantity < 1 {
			err = multierr.Append(err,
				fmt.Errorf("item %q has quantity %d", item.Product.Name, item.Quantity))
		}
		if item.Price.IsNegative() {
			err = multierr.Append(err,
				fmt.Errorf("item %q has negative price %s", item.Product.Name, item.Price))
		}
		itemSum = itemSum.Add(item.LineTotal())
	}

	if order.DeliveryCharge < 0 {
		err = multierr.Append(err,
			fmt.Errorf("delivery charge %d is negative", order.DeliveryCharge))
	}
	if !itemSum.Equal(order.Subtotal()) {
		err = multierr.Append(err,
			fmt.Errorf("items sum to %s but subtotal is %s", itemSum, order.Subtotal()))
	}

	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeServerRejected, err, "order totals do not add up")
	}
	return nil
}

// RenderPrint wraps the text receipt with a store header and cut line for
// thermal-style printing.
func RenderPrint(storeName string, order backend.Order) string {
	var b strings.Builder

	width := 58
	pad := (width - len(storeName)) / 2
	if pad < 0 {
		pad = 0
	}
	b.WriteString(strings.Repeat(" ", pad) + storeName + "\n")
	b.WriteString(strings.Repeat("=", width) + "\n\n")
	b.WriteString(Render(order))
	b.WriteString("\n" + strings.Repeat("=", width) + "\n")
	b.WriteString("Thank you for shopping with us\n")
	return b.String()
}

func amount(d decimal.Decimal) string {
	return currency + " " + d.StringFixed(2)
}

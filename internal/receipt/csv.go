package receipt

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/kiarashop/storefront/pkg/backend"
)

var csvHeader = []string{
	"id", "created", "customer", "email", "phone",
	"payment", "delivery", "delivery_charge", "total", "status",
}

// WriteCSV exports orders as a flat CSV, one row per order, for the admin
// board's download.
func WriteCSV(w io.Writer, orders []backend.Order) error {
	out := csv.NewWriter(w)
	if err := out.Write(csvHeader); err != nil {
		return err
	}

	for _, order := range orders {
		created := ""
		if !order.CreatedAt.IsZero() {
			created = order.CreatedAt.Format("2006-01-02 15:04")
		}
		row := []string{
			strconv.FormatInt(order.ID, 10),
			created,
			order.FirstName + " " + order.LastName,
			order.Email,
			order.Phone,
			order.PaymentMethod,
			order.DeliveryMethod,
			strconv.FormatInt(order.DeliveryCharge, 10),
			order.Total.StringFixed(2),
			order.Status.String(),
		}
		if err := out.Write(row); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}

package queries

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reservation"
	"freight/internal/pkg/paging"
)

// TransportDatetimeLayout renders "YYYY.MM.DD HH:mm".
const TransportDatetimeLayout = "2006.01.02 15:04"

// OrderRow is one open order as listed to a driver.
type OrderRow struct {
	ID                kernel.UUID
	SrcSimpleAddress  string
	DstSimpleAddress  string
	TransportDatetime string
	Fee               int64
}

type OrderPage struct {
	Rows     []OrderRow
	LastPage bool
}

// AssembleOrderPage projects a page of reservations onto order rows.
func AssembleOrderPage(page paging.Page[*reservation.Reservation]) OrderPage {
	rows := make([]OrderRow, 0, len(page.Items))
	for _, r := range page.Items {
		if r == nil {
			continue
		}
		rows = append(rows, OrderRow{
			ID:                r.ID(),
			SrcSimpleAddress:  r.Source().Address().Simple(),
			DstSimpleAddress:  r.Destination().Address().Simple(),
			TransportDatetime: r.StartsAt().Format(TransportDatetimeLayout),
			Fee:               r.Fee(),
		})
	}

	return OrderPage{
		Rows:     rows,
		LastPage: page.IsLast(),
	}
}

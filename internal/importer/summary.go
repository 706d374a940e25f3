package importer

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Render writes the summary as a table.
func (s *Summary) Render(w io.Writer) error {
	table := tablewriter.NewWriter(w)
	table.Header("Entity", "Rows / Seen", "Created")

	rows := [][]string{
		{"customers", strconv.Itoa(s.Customers.Rows), strconv.Itoa(s.Customers.Created)},
		{"tracking rows", strconv.Itoa(s.Orders.Rows), "-"},
		{"orders", strconv.Itoa(s.Orders.OrdersSeen), strconv.Itoa(s.Orders.OrdersCreated)},
		{"shipments", strconv.Itoa(s.Orders.ShipmentsSeen), strconv.Itoa(s.Orders.ShipmentsCreated)},
		{"items", "-", strconv.Itoa(s.Orders.ItemsCreated)},
		{"unknown statuses", strconv.Itoa(s.Orders.UnknownStatuses), "-"},
	}
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

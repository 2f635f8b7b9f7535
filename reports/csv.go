package reports

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ray-remotestate/padipos/models"
)

var ErrNoData = errors.New("no data to export")

var csvHeader = []string{"No Order", "Order Date", "Customer Name", "Order Type", "Table Number", "Items", "Sub Total", "Tax", "Total"}

const csvDateLayout = "2006-01-02 15:04:05"

// WriteCSV exports orders in the reports table layout. Dates are written in
// loc, time.Local when nil. Amounts are written as plain integers.
func WriteCSV(w io.Writer, orders []models.OrderRecord, loc *time.Location) error {
	if len(orders) == 0 {
		return ErrNoData
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, o := range orders {
		table := o.Detail
		if strings.TrimSpace(table) == "" {
			table = "N/A"
		}
		row := []string{
			o.Number(),
			o.CreatedAt.In(zone(loc)).Format(csvDateLayout),
			o.CustomerName,
			string(o.OrderType),
			table,
			itemsLabel(o.Items),
			strconv.FormatInt(int64(o.SubTotal), 10),
			strconv.FormatInt(int64(o.Tax), 10),
			strconv.FormatInt(int64(o.Total), 10),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write order %s: %w", o.Number(), err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func itemsLabel(items []models.OrderLine) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%dx %s", item.Quantity, item.Name)
	}
	return strings.Join(parts, "; ")
}

func ExportFileName(now time.Time) string {
	return "PadiPos_Reports_" + now.Format(models.DayLayout) + ".csv"
}

package extract

import (
	"fmt"
	"strconv"
	"time"

	"github.com/retailops/salesingest/pkg/salesingest"
)

// requiredColumns lists every column a sale line item row must carry.
var requiredColumns = []string{
	"item_id", "sale_id", "sale_date", "customer_id",
	"first_name", "last_name", "email", "gender", "age_range", "country", "signup_date",
	"product_id", "product_name", "category", "brand", "color", "size",
	"catalog_price", "cost_price",
	"channel", "channel_campaigns",
	"quantity", "unit_price", "original_price",
	"discount_applied", "discount_percent", "item_total",
}

// saleDateLayouts are the timestamp shapes seen in the source export.
// The date portion is all that matters; time-of-day is discarded.
var saleDateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseRow coerces one CSV record into a typed Row.
func parseRow(record []string, columns map[string]int) (salesingest.Row, error) {
	field := func(name string) (string, error) {
		idx := columns[name]
		if idx >= len(record) {
			return "", errShortRow
		}
		return record[idx], nil
	}

	var row salesingest.Row
	var err error

	strFields := []struct {
		name string
		dst  *string
	}{
		{"item_id", &row.ItemID},
		{"sale_id", &row.SaleID},
		{"customer_id", &row.CustomerID},
		{"first_name", &row.FirstName},
		{"last_name", &row.LastName},
		{"email", &row.Email},
		{"gender", &row.Gender},
		{"age_range", &row.AgeRange},
		{"country", &row.Country},
		{"signup_date", &row.SignupDate},
		{"product_id", &row.ProductID},
		{"product_name", &row.ProductName},
		{"category", &row.Category},
		{"brand", &row.Brand},
		{"color", &row.Color},
		{"size", &row.Size},
		{"channel", &row.Channel},
		{"channel_campaigns", &row.ChannelCampaigns},
	}
	for _, f := range strFields {
		if *f.dst, err = field(f.name); err != nil {
			return salesingest.Row{}, err
		}
	}
	if row.ItemID == "" || row.SaleID == "" || row.CustomerID == "" || row.ProductID == "" {
		return salesingest.Row{}, fmt.Errorf("missing identity column value")
	}

	rawDate, err := field("sale_date")
	if err != nil {
		return salesingest.Row{}, err
	}
	if row.SaleDate, err = parseSaleDate(rawDate); err != nil {
		return salesingest.Row{}, err
	}

	decFields := []struct {
		name string
		dst  *salesingest.Decimal
	}{
		{"catalog_price", &row.CatalogPrice},
		{"cost_price", &row.CostPrice},
		{"unit_price", &row.UnitPrice},
		{"original_price", &row.OriginalPrice},
		{"discount_percent", &row.DiscountPercent},
		{"item_total", &row.ItemTotal},
	}
	for _, f := range decFields {
		raw, err := field(f.name)
		if err != nil {
			return salesingest.Row{}, err
		}
		if *f.dst, err = salesingest.ParseDecimal(raw); err != nil {
			return salesingest.Row{}, fmt.Errorf("column %s: %w", f.name, err)
		}
	}

	rawQty, err := field("quantity")
	if err != nil {
		return salesingest.Row{}, err
	}
	if row.Quantity, err = strconv.Atoi(rawQty); err != nil {
		return salesingest.Row{}, fmt.Errorf("column quantity: %w", err)
	}

	rawDiscount, err := field("discount_applied")
	if err != nil {
		return salesingest.Row{}, err
	}
	if row.DiscountApplied, err = strconv.ParseBool(rawDiscount); err != nil {
		return salesingest.Row{}, fmt.Errorf("column discount_applied: %w", err)
	}

	return row, nil
}

// parseSaleDate coerces a sale_date value to its calendar date.
func parseSaleDate(raw string) (salesingest.Date, error) {
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return salesingest.DateOf(t), nil
		}
	}
	return salesingest.Date{}, fmt.Errorf("unparseable sale_date %q", raw)
}

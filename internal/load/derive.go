package load

import "github.com/retailops/salesingest/pkg/salesingest"

// Customer is the deduplicated customer record derived from a batch.
type Customer struct {
	CustomerID string
	FirstName  string
	LastName   string
	Email      string
	Gender     string
	AgeRange   string
	Country    string
	SignupDate string
}

// Product is the deduplicated product record derived from a batch.
type Product struct {
	ProductID    string
	ProductName  string
	Category     string
	Brand        string
	Color        string
	Size         string
	CatalogPrice salesingest.Decimal
	CostPrice    salesingest.Decimal
}

// Sale is the deduplicated sale header with its recomputed total.
type Sale struct {
	SaleID           string
	SaleDate         salesingest.Date
	CustomerID       string
	Channel          string
	ChannelCampaigns string
	TotalAmount      salesingest.Decimal
}

// SaleItem is one line item; input rows map to items one-to-one.
type SaleItem struct {
	ItemID          string
	SaleID          string
	ProductID       string
	Quantity        int
	UnitPrice       salesingest.Decimal
	OriginalPrice   salesingest.Decimal
	DiscountApplied bool
	DiscountPercent salesingest.Decimal
	ItemTotal       salesingest.Decimal
}

// Derivation below is deterministic: one record per identity in first-seen
// order, with the last occurrence in the batch winning on attribute
// conflicts. Last-occurrence-wins mirrors the upsert's most-recent-wins
// overwrite semantics.

func deriveCustomers(rows []salesingest.Row) []Customer {
	index := make(map[string]int, len(rows))
	var out []Customer
	for _, r := range rows {
		c := Customer{
			CustomerID: r.CustomerID,
			FirstName:  r.FirstName,
			LastName:   r.LastName,
			Email:      r.Email,
			Gender:     r.Gender,
			AgeRange:   r.AgeRange,
			Country:    r.Country,
			SignupDate: r.SignupDate,
		}
		if i, ok := index[c.CustomerID]; ok {
			out[i] = c
			continue
		}
		index[c.CustomerID] = len(out)
		out = append(out, c)
	}
	return out
}

func deriveProducts(rows []salesingest.Row) []Product {
	index := make(map[string]int, len(rows))
	var out []Product
	for _, r := range rows {
		p := Product{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Category:     r.Category,
			Brand:        r.Brand,
			Color:        r.Color,
			Size:         r.Size,
			CatalogPrice: r.CatalogPrice,
			CostPrice:    r.CostPrice,
		}
		if i, ok := index[p.ProductID]; ok {
			out[i] = p
			continue
		}
		index[p.ProductID] = len(out)
		out = append(out, p)
	}
	return out
}

// deriveSales dedupes sale headers and recomputes each sale's total as the
// exact sum of item_total over the rows of that sale present in this batch.
// The input total is never trusted; the invariant is
// total_amount == Σ(item_total) within the filtered batch.
func deriveSales(rows []salesingest.Row) []Sale {
	index := make(map[string]int, len(rows))
	var out []Sale
	for _, r := range rows {
		s := Sale{
			SaleID:           r.SaleID,
			SaleDate:         r.SaleDate,
			CustomerID:       r.CustomerID,
			Channel:          r.Channel,
			ChannelCampaigns: r.ChannelCampaigns,
		}
		if i, ok := index[s.SaleID]; ok {
			s.TotalAmount = out[i].TotalAmount
			out[i] = s
		} else {
			index[s.SaleID] = len(out)
			out = append(out, s)
		}
		i := index[s.SaleID]
		out[i].TotalAmount = out[i].TotalAmount.Add(r.ItemTotal)
	}
	return out
}

func deriveSaleItems(rows []salesingest.Row) []SaleItem {
	out := make([]SaleItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, SaleItem{
			ItemID:          r.ItemID,
			SaleID:          r.SaleID,
			ProductID:       r.ProductID,
			Quantity:        r.Quantity,
			UnitPrice:       r.UnitPrice,
			OriginalPrice:   r.OriginalPrice,
			DiscountApplied: r.DiscountApplied,
			DiscountPercent: r.DiscountPercent,
			ItemTotal:       r.ItemTotal,
		})
	}
	return out
}

package orders

import "fmt"

// GroupLines folds a flat, timestamp-descending sequence of order lines into
// one Aggregate per transaction id, preserving the order in which each
// transaction id is first seen. The first line of a transaction seeds the
// status, user fields and timestamp; later lines only extend the merged item
// text and the running total. Lines without a transaction id are orphaned
// legacy rows and are skipped.
func GroupLines(lines []JoinedLine) []Aggregate {
	byTx := make(map[string]int, len(lines))
	out := make([]Aggregate, 0, len(lines))

	for _, l := range lines {
		if l.TransactionID == "" {
			continue
		}
		if i, ok := byTx[l.TransactionID]; ok {
			out[i].Items += "\n" + itemText(l)
			out[i].TotalPrice = out[i].TotalPrice.Add(l.TotalPrice)
			continue
		}
		byTx[l.TransactionID] = len(out)
		out = append(out, Aggregate{
			TransactionID: l.TransactionID,
			UserEmail:     l.UserEmail,
			UserName:      l.UserName,
			UserMobile:    l.UserMobile,
			UserAddress:   l.UserAddress,
			Items:         itemText(l),
			TotalPrice:    l.TotalPrice,
			Status:        l.Status,
			OrderDate:     l.OrderDate,
		})
	}
	return out
}

func itemText(l JoinedLine) string {
	return fmt.Sprintf("%s x%d", l.ItemName, l.Quantity)
}

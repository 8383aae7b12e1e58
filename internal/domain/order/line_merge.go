package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductQuantity is a per-product quantity used for stock deltas
type ProductQuantity struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
}

type mergeKey struct {
	productID uuid.UUID
	discount  string
}

// MergeLines collapses lines that share the same product and discount
// percent into one line. The merged quantity is the sum of the group, the
// unit price comes from the first member and the line total is recomputed.
// Group order follows the first occurrence of each key. The input is not
// modified, and merging an already merged set returns an equivalent set.
func MergeLines(lines []OrderLine) []OrderLine {
	merged := make([]OrderLine, 0, len(lines))
	index := make(map[mergeKey]int, len(lines))

	for _, line := range lines {
		if !line.IsActive() {
			continue
		}
		key := mergeKey{productID: line.ProductID, discount: line.DiscountPercent.String()}
		if i, ok := index[key]; ok {
			merged[i].Quantity = merged[i].Quantity.Add(line.Quantity)
			merged[i].LineTotal = merged[i].computeTotal()
			continue
		}
		copied := line
		copied.LineTotal = copied.computeTotal()
		index[key] = len(merged)
		merged = append(merged, copied)
	}

	return merged
}

// NetQuantityDeltas computes the per-product stock impact of replacing the
// previous lines with the proposed lines. A positive delta means more stock
// is consumed, a negative delta means stock is returned. Only active lines
// count and products with a zero net change are omitted. Product order
// follows first occurrence, proposed lines before removed ones.
func NetQuantityDeltas(proposed, previous []OrderLine) []ProductQuantity {
	deltas := make([]ProductQuantity, 0, len(proposed)+len(previous))
	index := make(map[uuid.UUID]int, len(proposed)+len(previous))

	accumulate := func(productID uuid.UUID, quantity decimal.Decimal) {
		if i, ok := index[productID]; ok {
			deltas[i].Quantity = deltas[i].Quantity.Add(quantity)
			return
		}
		index[productID] = len(deltas)
		deltas = append(deltas, ProductQuantity{ProductID: productID, Quantity: quantity})
	}

	for _, line := range proposed {
		if line.IsActive() {
			accumulate(line.ProductID, line.Quantity)
		}
	}
	for _, line := range previous {
		if line.IsActive() {
			accumulate(line.ProductID, line.Quantity.Neg())
		}
	}

	result := deltas[:0]
	for _, delta := range deltas {
		if !delta.Quantity.IsZero() {
			result = append(result, delta)
		}
	}
	return result
}

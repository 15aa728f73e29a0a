package domain

// CartLine is one entry of a shopper's cart. Carts live client-side and
// arrive only at checkout time.
type CartLine struct {
	CardID   string `json:"id"`
	Quantity int    `json:"qty"`
}

// MergeCartLines collapses duplicate card ids by summing quantities,
// preserving first-seen order. Lines with non-positive quantities make
// the whole cart invalid rather than being silently dropped.
func MergeCartLines(lines []CartLine) ([]CartLine, error) {
	merged := make([]CartLine, 0, len(lines))
	index := make(map[string]int, len(lines))

	for _, line := range lines {
		if line.CardID == "" {
			return nil, ErrEmptyCart
		}
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if i, ok := index[line.CardID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.CardID] = len(merged)
		merged = append(merged, line)
	}

	if len(merged) == 0 {
		return nil, ErrEmptyCart
	}
	return merged, nil
}

// CardIDs returns the distinct card ids of a merged cart.
func CardIDs(lines []CartLine) []string {
	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.CardID
	}
	return ids
}

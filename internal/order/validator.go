package order

import (
	"context"
)

// Validator resolves and checks order lines against the catalog. It is a
// pure read-and-check stage: stock may still change before commit, so every
// check is re-verified inside the committing transaction.
type Validator struct {
	books BookFinder
}

func NewValidator(books BookFinder) *Validator {
	return &Validator{books: books}
}

func (v *Validator) Validate(ctx context.Context, lines []Line) (*ValidatedOrder, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, &InvalidQuantityError{BookID: line.BookID, Quantity: line.Quantity}
		}
	}

	ids := make([]string, 0, len(lines))
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if !seen[line.BookID] {
			seen[line.BookID] = true
			ids = append(ids, line.BookID)
		}
	}

	found, err := v.books.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := &ValidatedOrder{Items: make([]ValidatedItem, 0, len(lines))}
	for _, line := range lines {
		b, ok := found[line.BookID]
		if !ok {
			return nil, &BookNotFoundError{BookID: line.BookID}
		}
		if line.Quantity > b.StockQuantity {
			return nil, &InsufficientStockError{
				BookID:    b.ID,
				Title:     b.Title,
				Requested: line.Quantity,
				Available: b.StockQuantity,
			}
		}

		out.Items = append(out.Items, ValidatedItem{
			Book:      b,
			Quantity:  line.Quantity,
			UnitPrice: b.Price,
		})
		out.TotalQuantity += line.Quantity
		out.TotalPrice += float64(line.Quantity) * b.Price
	}

	return out, nil
}

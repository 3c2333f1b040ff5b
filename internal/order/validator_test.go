package order

import (
	"context"
	"errors"
	"testing"

	"bookstore/internal/book"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBookFinder struct {
	mock.Mock
}

func (m *mockBookFinder) FindByIDs(ctx context.Context, ids []string) (map[string]book.Book, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]book.Book), args.Error(1)
}

func catalogOf(books ...book.Book) map[string]book.Book {
	m := make(map[string]book.Book, len(books))
	for _, b := range books {
		m[b.ID] = b
	}
	return m
}

func TestValidator_EmptyOrder(t *testing.T) {
	finder := new(mockBookFinder)
	v := NewValidator(finder)

	_, err := v.Validate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = v.Validate(context.Background(), []Line{})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	finder.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}

func TestValidator_NonPositiveQuantityFailsBeforeLookup(t *testing.T) {
	finder := new(mockBookFinder)
	v := NewValidator(finder)

	for _, qty := range []int{0, -1} {
		_, err := v.Validate(context.Background(), []Line{{BookID: "book-a", Quantity: qty}})

		var invalidQty *InvalidQuantityError
		require.ErrorAs(t, err, &invalidQty)
		assert.Equal(t, "book-a", invalidQty.BookID)
		assert.Equal(t, qty, invalidQty.Quantity)
	}

	finder.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
}

func TestValidator_UnknownBook(t *testing.T) {
	finder := new(mockBookFinder)
	finder.On("FindByIDs", mock.Anything, []string{"missing"}).
		Return(map[string]book.Book{}, nil)

	v := NewValidator(finder)
	_, err := v.Validate(context.Background(), []Line{{BookID: "missing", Quantity: 1}})

	var notFound *BookNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.BookID)
}

func TestValidator_InsufficientStock(t *testing.T) {
	finder := new(mockBookFinder)
	finder.On("FindByIDs", mock.Anything, []string{"book-a"}).
		Return(catalogOf(book.Book{ID: "book-a", Title: "Dune", Price: 10, StockQuantity: 2}), nil)

	v := NewValidator(finder)
	_, err := v.Validate(context.Background(), []Line{{BookID: "book-a", Quantity: 3}})

	var noStock *InsufficientStockError
	require.ErrorAs(t, err, &noStock)
	assert.Equal(t, "book-a", noStock.BookID)
	assert.Equal(t, "Dune", noStock.Title)
	assert.Equal(t, 3, noStock.Requested)
	assert.Equal(t, 2, noStock.Available)
}

func TestValidator_Success(t *testing.T) {
	finder := new(mockBookFinder)
	finder.On("FindByIDs", mock.Anything, []string{"book-a", "book-b"}).
		Return(catalogOf(
			book.Book{ID: "book-a", Title: "Dune", Price: 10.00, StockQuantity: 5},
			book.Book{ID: "book-b", Title: "Neuromancer", Price: 7.50, StockQuantity: 4},
		), nil)

	v := NewValidator(finder)
	validated, err := v.Validate(context.Background(), []Line{
		{BookID: "book-a", Quantity: 3},
		{BookID: "book-b", Quantity: 2},
	})
	require.NoError(t, err)

	require.Len(t, validated.Items, 2)
	assert.Equal(t, "book-a", validated.Items[0].Book.ID)
	assert.Equal(t, 3, validated.Items[0].Quantity)
	assert.Equal(t, 10.00, validated.Items[0].UnitPrice)
	assert.Equal(t, 5, validated.TotalQuantity)
	assert.Equal(t, 45.00, validated.TotalPrice)
}

func TestValidator_DuplicateLinesLookedUpOnce(t *testing.T) {
	finder := new(mockBookFinder)
	finder.On("FindByIDs", mock.Anything, []string{"book-a"}).
		Return(catalogOf(book.Book{ID: "book-a", Title: "Dune", Price: 10, StockQuantity: 10}), nil).
		Once()

	v := NewValidator(finder)
	validated, err := v.Validate(context.Background(), []Line{
		{BookID: "book-a", Quantity: 1},
		{BookID: "book-a", Quantity: 2},
	})
	require.NoError(t, err)

	assert.Len(t, validated.Items, 2)
	assert.Equal(t, 3, validated.TotalQuantity)
	finder.AssertExpectations(t)
}

func TestValidator_LookupFailurePropagates(t *testing.T) {
	finder := new(mockBookFinder)
	finder.On("FindByIDs", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	v := NewValidator(finder)
	_, err := v.Validate(context.Background(), []Line{{BookID: "book-a", Quantity: 1}})
	assert.Error(t, err)
}

package order

import (
	"context"
	"errors"
	"fmt"

	"bookstore/internal/book"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepo implements both BookFinder and Repository against the same
// pool, so validation and commit read the same store.
type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) FindByIDs(ctx context.Context, ids []string) (map[string]book.Book, error) {
	// ids that cannot be a uuid cannot match a row; dropping them here
	// keeps them out of the uuid[] bind parameter and leaves them absent
	// from the result, which the validator reports as not found
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if uuid.Validate(id) == nil {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return map[string]book.Book{}, nil
	}

	const query = `
	SELECT id, title, writer, publisher, publication_year, COALESCE(description, ''),
	       price, stock_quantity, genre_id, created_at, updated_at
	FROM books
	WHERE id = ANY($1) AND deleted_at IS NULL
	`
	rows, err := r.db.Query(ctx, query, valid)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	defer rows.Close()

	found := make(map[string]book.Book, len(ids))
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(
			&b.ID, &b.Title, &b.Writer, &b.Publisher, &b.PublicationYear, &b.Description,
			&b.Price, &b.StockQuantity, &b.GenreID, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		found[b.ID] = b
	}
	return found, rows.Err()
}

// Create commits a validated order as one transaction: the order row, one
// line item per validated line, and a guarded stock decrement per book.
// The decrement's WHERE clause re-checks stock under the row lock the
// UPDATE takes, so two concurrent commits can never both consume the same
// unit; a zero affected-row count rolls everything back.
func (r *PostgresRepo) Create(ctx context.Context, userID string, v *ValidatedOrder) (*Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	o := &Order{
		UserID:        userID,
		Items:         make([]Item, 0, len(v.Items)),
		TotalQuantity: v.TotalQuantity,
		TotalPrice:    v.TotalPrice,
	}

	const insertOrder = `
	INSERT INTO orders (id, user_id)
	VALUES (gen_random_uuid(), $1)
	RETURNING id, created_at
	`
	if err := tx.QueryRow(ctx, insertOrder, userID).Scan(&o.ID, &o.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	const decrementStock = `
	UPDATE books
	SET stock_quantity = stock_quantity - $2, updated_at = now()
	WHERE id = $1 AND deleted_at IS NULL AND stock_quantity >= $2
	`
	const insertItem = `
	INSERT INTO order_items (id, order_id, book_id, quantity, unit_price)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id
	`

	for _, item := range v.Items {
		tag, err := tx.Exec(ctx, decrementStock, item.Book.ID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return nil, r.stockConflict(ctx, tx, item)
		}

		persisted := Item{
			BookID:    item.Book.ID,
			BookTitle: item.Book.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
		if err := tx.QueryRow(ctx, insertItem, o.ID, item.Book.ID, item.Quantity, item.UnitPrice).
			Scan(&persisted.ID); err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
		o.Items = append(o.Items, persisted)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return o, nil
}

// stockConflict explains a failed decrement: the book either lost stock to
// a concurrent order or was deleted since validation.
func (r *PostgresRepo) stockConflict(ctx context.Context, tx pgx.Tx, item ValidatedItem) error {
	var available int
	err := tx.QueryRow(ctx,
		`SELECT stock_quantity FROM books WHERE id = $1 AND deleted_at IS NULL`,
		item.Book.ID,
	).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return &BookNotFoundError{BookID: item.Book.ID}
	}
	if err != nil {
		return fmt.Errorf("read stock: %w", err)
	}
	return &InsufficientStockError{
		BookID:    item.Book.ID,
		Title:     item.Book.Title,
		Requested: item.Quantity,
		Available: available,
	}
}

func (r *PostgresRepo) List(ctx context.Context) ([]Order, error) {
	const query = `
	SELECT o.id, o.user_id, o.created_at, u.username, u.email
	FROM orders o
	JOIN users u ON u.id = o.user_id
	ORDER BY o.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	index := make(map[string]int)
	var ids []string
	for rows.Next() {
		var o Order
		var buyer Buyer
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt, &buyer.Username, &buyer.Email); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Buyer = &buyer
		index[o.ID] = len(orders)
		ids = append(ids, o.ID)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	if err := r.attachItems(ctx, orders, index, ids); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepo) attachItems(ctx context.Context, orders []Order, index map[string]int, ids []string) error {
	const query = `
	SELECT oi.id, oi.order_id, oi.book_id, b.title, oi.quantity, oi.unit_price
	FROM order_items oi
	JOIN books b ON b.id = oi.book_id
	WHERE oi.order_id = ANY($1)
	ORDER BY oi.id
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it Item
		var orderID string
		if err := rows.Scan(&it.ID, &orderID, &it.BookID, &it.BookTitle, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		i := index[orderID]
		orders[i].Items = append(orders[i].Items, it)
		orders[i].TotalQuantity += it.Quantity
		orders[i].TotalPrice += float64(it.Quantity) * it.UnitPrice
	}
	return rows.Err()
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Order, error) {
	if uuid.Validate(id) != nil {
		return Order{}, ErrNotFound
	}

	const query = `
	SELECT o.id, o.user_id, o.created_at, u.username, u.email
	FROM orders o
	JOIN users u ON u.id = o.user_id
	WHERE o.id = $1
	LIMIT 1
	`
	var o Order
	var buyer Buyer
	err := r.db.QueryRow(ctx, query, id).Scan(&o.ID, &o.UserID, &o.CreatedAt, &buyer.Username, &buyer.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, ErrNotFound
		}
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	o.Buyer = &buyer

	orders := []Order{o}
	if err := r.attachItems(ctx, orders, map[string]int{o.ID: 0}, []string{o.ID}); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

func (r *PostgresRepo) Stats(ctx context.Context) (Stats, error) {
	var s Stats

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&s.TotalTransactions); err != nil {
		return Stats{}, fmt.Errorf("count orders: %w", err)
	}

	const avgQuery = `
	SELECT COALESCE(AVG(order_total), 0)
	FROM (
		SELECT SUM(quantity * unit_price) AS order_total
		FROM order_items
		GROUP BY order_id
	) totals
	`
	if err := r.db.QueryRow(ctx, avgQuery).Scan(&s.AverageOrderAmount); err != nil {
		return Stats{}, fmt.Errorf("average order amount: %w", err)
	}

	const genreQuery = `
	SELECT g.name, COALESCE(SUM(oi.quantity), 0) AS units
	FROM genres g
	LEFT JOIN books b ON b.genre_id = g.id AND b.deleted_at IS NULL
	LEFT JOIN order_items oi ON oi.book_id = b.id
	WHERE g.deleted_at IS NULL
	GROUP BY g.name
	`
	rows, err := r.db.Query(ctx, genreQuery)
	if err != nil {
		return Stats{}, fmt.Errorf("genre sales: %w", err)
	}
	defer rows.Close()

	most, fewest := 0, -1
	for rows.Next() {
		var name string
		var units int
		if err := rows.Scan(&name, &units); err != nil {
			return Stats{}, fmt.Errorf("scan genre sales: %w", err)
		}
		if units > most {
			most = units
			s.MostSoldGenre = name
		}
		if units > 0 && (fewest < 0 || units < fewest) {
			fewest = units
			s.FewestSoldGenre = name
		}
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}

	if s.MostSoldGenre == "" {
		s.MostSoldGenre = "No data"
	}
	if s.FewestSoldGenre == "" {
		s.FewestSoldGenre = "No data"
	}
	return s, nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"backend/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Store wraps the shared connection pool. All queries use placeholder
// parameters; values are never interpolated into SQL text.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

/* =========================
   PRODUCTS
========================= */

type ProductFilter struct {
	Category string
	Featured bool
	Limit    int64
	Offset   int64
}

func (f ProductFilter) Empty() bool {
	return f.Category == "" && !f.Featured && f.Limit == 0 && f.Offset == 0
}

const productColumns = `p.id, p.name, p.slug, p.description,
	COALESCE(p.short_description, ''), p.price, p.images, p.category,
	COALESCE(p.stock, 0), COALESCE(p.featured, FALSE),
	COALESCE(p.is_bestseller, FALSE), COALESCE(p.is_new, FALSE),
	COALESCE(p.view_count, 0), p.created_at, p.updated_at,
	COUNT(r.id)`

// ListProducts returns products with their review counts in a single joined
// query, replacing the per-product count lookups the listing endpoint
// originally issued.
func (s *Store) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := `SELECT ` + productColumns + `
		FROM products p
		LEFT JOIN reviews r ON r.product_id = p.id`

	var args []interface{}
	where := ""
	if filter.Category != "" {
		args = append(args, filter.Category)
		where = fmt.Sprintf(" WHERE p.category = $%d", len(args))
	}
	if filter.Featured {
		if where == "" {
			where = " WHERE p.featured = TRUE"
		} else {
			where += " AND p.featured = TRUE"
		}
	}

	query += where + `
		GROUP BY p.id
		ORDER BY p.created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (s *Store) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+productColumns+`
		FROM products p
		LEFT JOIN reviews r ON r.product_id = p.id
		WHERE p.slug = $1
		GROUP BY p.id`, slug)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) UpdateProductPrice(ctx context.Context, id int64, price float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE products SET price = $1, updated_at = NOW() WHERE id = $2`,
		price, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description,
		&p.ShortDescription, &p.Price, &p.Images, &p.Category,
		&p.Stock, &p.Featured,
		&p.IsBestseller, &p.IsNew,
		&p.ViewCount, &p.CreatedAt, &p.UpdatedAt,
		&p.ReviewCount,
	)
	if err != nil {
		return models.Product{}, err
	}
	p.InStock = p.Stock > 0
	return p, nil
}

/* =========================
   REVIEWS
========================= */

func (s *Store) ListReviewsByProduct(ctx context.Context, productID int64) ([]models.Review, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, product_id, COALESCE(customer_name, ''), rating, COALESCE(comment, ''), created_at
		 FROM reviews
		 WHERE product_id = $1
		 ORDER BY created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]models.Review, 0)
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.ProductID, &r.CustomerName, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *Store) InsertReview(ctx context.Context, review models.Review) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO reviews (product_id, customer_name, rating, comment)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		review.ProductID, review.CustomerName, review.Rating, review.Comment,
	).Scan(&id)
	return id, err
}

/* =========================
   CART ITEMS
========================= */

func (s *Store) AddCartItem(ctx context.Context, item models.CartItem) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		item.UserID, item.ProductID, item.Quantity,
	).Scan(&id)
	return id, err
}

func (s *Store) UpdateCartItemQuantity(ctx context.Context, id int64, quantity int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2`, quantity, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteCartItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ClearUserCart(ctx context.Context, userID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

/* =========================
   ORDERS / WEBHOOK EVENTS
========================= */

// MarkEventProcessed records a webhook delivery and reports whether it was the
// first time this event id was seen. Replayed deliveries return false.
func (s *Store) MarkEventProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO webhook_events (event_id, event_type)
		 VALUES ($1, $2)
		 ON CONFLICT (event_id) DO NOTHING`,
		eventID, eventType)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// InsertOrder persists the order and its items in one transaction.
func (s *Store) InsertOrder(ctx context.Context, order models.Order) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var orderID int64
	err = tx.QueryRowContext(ctx,
		`INSERT INTO orders (customer_name, customer_email, subtotal, shipping, total,
		                     shipping_address, status, stripe_session_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		order.CustomerName, order.CustomerEmail, order.Subtotal, order.Shipping,
		order.Total, order.ShippingAddress, order.Status, order.StripeSessionID,
	).Scan(&orderID)
	if err != nil {
		return 0, err
	}

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, name, quantity, price)
			 VALUES ($1, $2, $3, $4, $5)`,
			orderID, item.ProductID, item.Name, item.Quantity, item.Price,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return orderID, nil
}

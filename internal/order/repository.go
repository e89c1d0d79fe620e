package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, filter Filter) ([]*Order, error)
	// UpdateStatus moves id from one status to another only if it is still
	// in from. ErrStatusConflict when it is not.
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const orderColumns = `id, product_name, quantity, total, customer_name, customer_phone, customer_address, status, shipping_tier, payment_method, shipping_cost, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var o Order
	var status string
	err := row.Scan(
		&o.ID,
		&o.ProductName,
		&o.Quantity,
		&o.Total,
		&o.CustomerName,
		&o.CustomerPhone,
		&o.CustomerAddress,
		&status,
		&o.ShippingTier,
		&o.PaymentMethod,
		&o.ShippingCost,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = Status(status)
	return &o, nil
}

func (r *repository) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO orders (`+orderColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		o.ID,
		o.ProductName,
		o.Quantity,
		o.Total,
		o.CustomerName,
		o.CustomerPhone,
		o.CustomerAddress,
		string(o.Status),
		o.ShippingTier,
		o.PaymentMethod,
		o.ShippingCost,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for i, it := range o.Items {
		_, err = tx.ExecContext(ctx, `INSERT INTO order_items (order_id, line_no, product_id, product_name, seller_id, price, quantity) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			o.ID,
			i,
			it.ProductID,
			it.Name,
			it.SellerID,
			it.Price,
			it.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, []*Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) List(ctx context.Context, filter Filter) ([]*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
	args := []any{}
	argIndex := 1

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query += fmt.Sprintf(" AND status = ANY($%d)", argIndex)
		args = append(args, pq.Array(statuses))
		argIndex++
	}

	if filter.SellerID != "" {
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM order_items i WHERE i.order_id = orders.id AND i.seller_id = $%d)", argIndex)
		args = append(args, filter.SellerID)
	}

	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return groupByStatus(orders, filter.Statuses), nil
}

func (r *repository) attachItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]string, len(orders))
	byID := make(map[string]*Order, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
		byID[o.ID] = o
	}

	rows, err := r.db.QueryContext(ctx, `SELECT order_id, product_id, product_name, seller_id, price, quantity FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, line_no`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var it Item
		if err := rows.Scan(&orderID, &it.ProductID, &it.Name, &it.SellerID, &it.Price, &it.Quantity); err != nil {
			return err
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	return rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`, string(to), at, id, string(from))
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var current string
	err = r.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}
	return ErrStatusConflict
}

// groupByStatus orders the result by the position of each order's status
// in statuses, keeping creation order within a status. A repeated status
// is grouped once.
func groupByStatus(orders []*Order, statuses []Status) []*Order {
	if len(statuses) < 2 {
		return orders
	}
	out := make([]*Order, 0, len(orders))
	seen := make(map[Status]bool, len(statuses))
	for _, s := range statuses {
		if seen[s] {
			continue
		}
		seen[s] = true
		for _, o := range orders {
			if o.Status == s {
				out = append(out, o)
			}
		}
	}
	return out
}

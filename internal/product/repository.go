package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"herbanusa-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	CountBySeller(ctx context.Context, sellerID string) (int, error)
}

type repository struct {
	db *sql.DB
}

// NewRepository returns the Postgres-backed product directory.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, name, price, image, category,
	seller_id, seller_name, seller_location, seller_photo,
	description, benefits, usage, rating, reviews, stock, created_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	var category string
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Image, &category,
		&p.Seller.ID, &p.Seller.Name, &p.Seller.Location, &p.Seller.Photo,
		&p.Description, pq.Array(&p.Benefits), &p.Usage, &p.Rating, &p.Reviews, &p.Stock, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Category = Category(category)
	return &p, nil
}

func (r *repository) List(ctx context.Context, filter Filter) ([]*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListProducts"),
	)
	start := time.Now()

	// ---------- where ----------
	where := []string{"1=1"}
	args := []any{}

	if filter.Category != "" && filter.Category != CategoryAll {
		args = append(args, string(filter.Category))
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		where = append(where, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.Location != "" && filter.Location != "all" {
		args = append(args, "%"+filter.Location+"%")
		where = append(where, fmt.Sprintf("seller_location LIKE $%d", len(args)))
	}
	if filter.SellerID != "" {
		args = append(args, filter.SellerID)
		where = append(where, fmt.Sprintf("seller_id = $%d", len(args)))
	}

	// ---------- sort ----------
	orderBy := "created_at ASC"
	switch filter.Sort {
	case SortPopular:
		orderBy = "reviews DESC"
	case SortRating:
		orderBy = "rating DESC"
	case SortPriceAsc:
		orderBy = "price ASC"
	case SortPriceDesc:
		orderBy = "price DESC"
	case SortNewest:
		orderBy = "created_at DESC"
	}

	query := `SELECT` + productColumns + `
	FROM products
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY ` + orderBy

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var result []*Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			log.Error("row scan failed", zap.Error(err))
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("query success",
		zap.Int("rows", len(result)),
		zap.Duration("duration", time.Since(start)),
	)
	return result, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	row := r.db.QueryRowContext(ctx, `SELECT`+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO products (`+productColumns+`)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.Name, p.Price, p.Image, string(p.Category),
		p.Seller.ID, p.Seller.Name, p.Seller.Location, p.Seller.Photo,
		p.Description, pq.Array(p.Benefits), p.Usage, p.Rating, p.Reviews, p.Stock, p.CreatedAt,
	)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to insert product", zap.String("product_id", p.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
	UPDATE products
	SET name = $1, price = $2, stock = $3, description = $4, image = $5, category = $6
	WHERE id = $7`,
		p.Name, p.Price, p.Stock, p.Description, p.Image, string(p.Category), p.ID,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *repository) CountBySeller(ctx context.Context, sellerID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE seller_id = $1`, sellerID).Scan(&n)
	return n, err
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrProductNotFound
	}
	return nil
}

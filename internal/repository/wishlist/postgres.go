package wishlist

import (
	"context"

	"storefront-core/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Add(ctx context.Context, customerID, productID string) error {
	// Re-adding an already saved product is a no-op.
	const q = `
INSERT INTO wishlist_items (customer_id, product_id)
VALUES ($1, $2)
ON CONFLICT (customer_id, product_id) DO NOTHING
`
	_, err := r.pool.Exec(ctx, q, customerID, productID)
	return err
}

func (r *postgresRepo) Remove(ctx context.Context, customerID, productID string) error {
	_, err := r.pool.Exec(ctx, `
DELETE FROM wishlist_items
WHERE customer_id = $1 AND product_id = $2
`, customerID, productID)
	return err
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerID string) ([]domain.WishlistEntry, error) {
	const q = `
SELECT w.customer_id::text, w.product_id::text, p.title, p.price_cents, p.seller_id, w.added_at
FROM wishlist_items w
JOIN products p ON p.id = w.product_id
WHERE w.customer_id = $1
ORDER BY w.added_at ASC
`
	rows, err := r.pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WishlistEntry
	for rows.Next() {
		var e domain.WishlistEntry
		if err := rows.Scan(
			&e.CustomerID,
			&e.ProductID,
			&e.Title,
			&e.PriceCents,
			&e.SellerID,
			&e.AddedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

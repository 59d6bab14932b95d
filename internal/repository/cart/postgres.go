package cart

import (
	"context"
	"errors"

	"storefront-core/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Load(ctx context.Context, ownerID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, `
SELECT owner_id, updated_at
FROM carts
WHERE owner_id = $1
`, ownerID).Scan(&cart.OwnerID, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT item_id, title, price_cents, quantity, seller_id
FROM cart_items
WHERE owner_id = $1
ORDER BY position ASC
`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.PriceCents,
			&item.Quantity,
			&item.SellerID,
		); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *postgresRepo) Save(ctx context.Context, cart domain.Cart) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
INSERT INTO carts (owner_id, updated_at)
VALUES ($1, now())
ON CONFLICT (owner_id) DO UPDATE SET updated_at = now()
`, cart.OwnerID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE owner_id = $1`, cart.OwnerID); err != nil {
		return err
	}

	for i, item := range cart.Items {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_items (owner_id, item_id, title, price_cents, quantity, seller_id, position)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, cart.OwnerID, item.ID, item.Title, item.PriceCents, item.Quantity, item.SellerID, i); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

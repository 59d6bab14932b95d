package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Title       string
	Description string
	PriceCents  int64
	Category    string
}

type sellerSeed struct {
	Email    string
	Name     string
	Products []productSeed
}

// Apply inserts basic seed data for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	sellers := []sellerSeed{
		{
			Email: "seller-anna@example.com",
			Name:  "Anna",
			Products: []productSeed{
				{Title: "Handmade Mug", Description: "Ceramic mug, 300ml", PriceCents: 1299, Category: "home"},
				{Title: "Woven Basket", Description: "Willow basket", PriceCents: 2499, Category: "home"},
			},
		},
		{
			Email: "seller-bo@example.com",
			Name:  "Bo",
			Products: []productSeed{
				{Title: "Cotton T-Shirt", Description: "Soft cotton tee", PriceCents: 1999, Category: "clothing"},
			},
		},
	}

	for _, s := range sellers {
		sellerID, err := ensureSeller(ctx, pool, s)
		if err != nil {
			return fmt.Errorf("ensure seller %s: %w", s.Email, err)
		}
		for _, p := range s.Products {
			if err := upsertProduct(ctx, pool, sellerID, p); err != nil {
				return fmt.Errorf("upsert product %s: %w", p.Title, err)
			}
		}
	}

	if _, err := ensureCustomer(ctx, pool, "demo@example.com", "Demo", "customer"); err != nil {
		return fmt.Errorf("ensure demo customer: %w", err)
	}

	return nil
}

func ensureSeller(ctx context.Context, pool *pgxpool.Pool, s sellerSeed) (string, error) {
	return ensureCustomer(ctx, pool, s.Email, s.Name, "seller")
}

func ensureCustomer(ctx context.Context, pool *pgxpool.Pool, email, firstName, role string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	const q = `
INSERT INTO customers (email, password_hash, first_name, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO UPDATE SET first_name = EXCLUDED.first_name, role = EXCLUDED.role
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, email, string(hash), firstName, role).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, sellerID string, p productSeed) error {
	const q = `
INSERT INTO products (seller_id, title, description, price_cents, category)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (seller_id, title) DO UPDATE
SET description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    category    = EXCLUDED.category
`
	_, err := pool.Exec(ctx, q, sellerID, p.Title, p.Description, p.PriceCents, p.Category)
	return err
}

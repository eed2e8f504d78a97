package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/postgres"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := postgres.LockScope(ctx, tx, scopeKey(p.MerchantID, p.CategoryID)); err != nil {
		return err
	}
	if p.SortOrder, err = pgNextSortOrder(ctx, tx, p.MerchantID, p.CategoryID); err != nil {
		return err
	}

	query := `
        INSERT INTO products (
            id, merchant_id, category_id, name, description, price, image_ref,
            is_available, is_offer, is_highlight, has_variants, sort_order,
            created_at, updated_at
        )
        VALUES (
            :id, :merchant_id, :category_id, :name, :description, :price, :image_ref,
            :is_available, :is_offer, :is_highlight, :has_variants, :sort_order,
            :created_at, :updated_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		return err
	}
	if err := writeRelations(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, merchantID, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 AND merchant_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id, merchantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	products := []model.Product{product}
	if err := loadRelations(ctx, r.DB, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	products := []model.Product{}
	var count int

	conditions := []string{"merchant_id = :merchant_id"}
	args := map[string]interface{}{"merchant_id": f.MerchantID}

	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if !f.IncludeUnavailable {
		conditions = append(conditions, "is_available")
	}
	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countStmt, err := r.DB.PrepareNamedContext(ctx, "SELECT count(*) FROM products"+whereClause)
	if err != nil {
		return nil, 0, err
	}
	defer countStmt.Close()
	if err := countStmt.GetContext(ctx, &count, args); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM products" + whereClause + " ORDER BY category_id, sort_order ASC, id ASC"
	if f.PageSize > 0 {
		offset := (max(f.Page, 1) - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &products, args); err != nil {
		return nil, 0, err
	}
	if err := loadRelations(ctx, r.DB, products); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current struct {
		CategoryID string `db:"category_id"`
		SortOrder  int    `db:"sort_order"`
	}
	err = tx.GetContext(ctx, &current,
		`SELECT category_id, sort_order FROM products WHERE id = $1 AND merchant_id = $2 FOR UPDATE`,
		p.ID, p.MerchantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	p.SortOrder = current.SortOrder
	if current.CategoryID != p.CategoryID {
		if err := postgres.LockScope(ctx, tx, scopeKey(p.MerchantID, p.CategoryID)); err != nil {
			return err
		}
		if p.SortOrder, err = pgNextSortOrder(ctx, tx, p.MerchantID, p.CategoryID); err != nil {
			return err
		}
	}

	query := `
        UPDATE products
        SET category_id = :category_id,
            name = :name,
            description = :description,
            price = :price,
            image_ref = :image_ref,
            is_offer = :is_offer,
            is_highlight = :is_highlight,
            has_variants = :has_variants,
            sort_order = :sort_order,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	if _, err := tx.NamedExecContext(ctx, query, p); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_variants WHERE product_id = $1`, p.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_modifier_groups WHERE product_id = $1`, p.ID); err != nil {
		return err
	}
	if err := writeRelations(ctx, tx, p); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) Delete(ctx context.Context, merchantID, id string) (bool, error) {
	// variants and modifier links are removed by ON DELETE CASCADE
	res, err := r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1 AND merchant_id = $2`, id, merchantID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *PGRepository) ToggleAvailability(ctx context.Context, merchantID, id string) (*model.Product, error) {
	return r.updateAvailability(ctx,
		`UPDATE products SET is_available = NOT is_available, updated_at = NOW()
         WHERE id = $1 AND merchant_id = $2 RETURNING *`,
		id, merchantID)
}

func (r *PGRepository) SetAvailability(ctx context.Context, merchantID, id string, available bool) (*model.Product, error) {
	return r.updateAvailability(ctx,
		`UPDATE products SET is_available = $3, updated_at = NOW()
         WHERE id = $1 AND merchant_id = $2 RETURNING *`,
		id, merchantID, available)
}

func (r *PGRepository) updateAvailability(ctx context.Context, query string, args ...any) (*model.Product, error) {
	var product model.Product
	if err := r.DB.GetContext(ctx, &product, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	products := []model.Product{product}
	if err := loadRelations(ctx, r.DB, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

// pgNextSortOrder must run under the scope lock of the same transaction.
func pgNextSortOrder(ctx context.Context, tx *sqlx.Tx, merchantID, categoryID string) (int, error) {
	var next int
	query := `SELECT COALESCE(MAX(sort_order) + 1, 0) FROM products WHERE merchant_id = $1 AND category_id = $2`
	err := tx.GetContext(ctx, &next, query, merchantID, categoryID)
	return next, err
}

func scopeKey(merchantID, categoryID string) string {
	return "products:" + merchantID + ":" + categoryID
}

// ReplaceOrder rewrites sort_order for every product of one category after
// checking orderedIDs is exactly that set.
func (r *PGRepository) ReplaceOrder(ctx context.Context, merchantID, categoryID string, orderedIDs []string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := postgres.LockScope(ctx, tx, scopeKey(merchantID, categoryID)); err != nil {
		return err
	}
	var current []string
	err = tx.SelectContext(ctx, &current,
		`SELECT id FROM products WHERE merchant_id = $1 AND category_id = $2 ORDER BY id FOR UPDATE`,
		merchantID, categoryID)
	if err != nil {
		return err
	}
	if !sameIDs(current, orderedIDs) {
		return model.ErrOrderMismatch
	}

	_, err = tx.ExecContext(ctx, `
        UPDATE products AS p
        SET sort_order = o.ord - 1, updated_at = NOW()
        FROM unnest($2::uuid[]) WITH ORDINALITY AS o(id, ord)
        WHERE p.id = o.id AND p.merchant_id = $1
    `, merchantID, pq.Array(orderedIDs))
	if err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) Move(ctx context.Context, merchantID, id, categoryID string) (int, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if err := postgres.LockScope(ctx, tx, scopeKey(merchantID, categoryID)); err != nil {
		return 0, err
	}
	next, err := pgNextSortOrder(ctx, tx, merchantID, categoryID)
	if err != nil {
		return 0, err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE products SET category_id = $3, sort_order = $4, updated_at = NOW() WHERE id = $1 AND merchant_id = $2`,
		id, merchantID, categoryID, next)
	if err != nil {
		return 0, err
	}
	return next, tx.Commit()
}

func writeRelations(ctx context.Context, tx *sqlx.Tx, p *model.Product) error {
	for i := range p.Variants {
		v := &p.Variants[i]
		v.ProductID = p.ID
		v.Position = i
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO product_variants (product_id, position, name, price) VALUES (:product_id, :position, :name, :price)`, v)
		if err != nil {
			return err
		}
	}
	for i, groupID := range p.ModifierGroupIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO product_modifier_groups (product_id, modifier_group_id, position) VALUES ($1, $2, $3)`,
			p.ID, groupID, i)
		if err != nil {
			return err
		}
	}
	return nil
}

type modifierLink struct {
	ProductID       string `db:"product_id"`
	ModifierGroupID string `db:"modifier_group_id"`
}

// loadRelations fills Variants and ModifierGroupIDs of every product in place.
func loadRelations(ctx context.Context, q sqlx.QueryerContext, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i := range products {
		ids[i] = products[i].ID
		index[products[i].ID] = i
		products[i].Variants = []model.ProductVariant{}
		products[i].ModifierGroupIDs = []string{}
	}

	var variants []model.ProductVariant
	err := sqlx.SelectContext(ctx, q, &variants,
		`SELECT product_id, position, name, price FROM product_variants WHERE product_id = ANY($1) ORDER BY product_id, position`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	for _, v := range variants {
		p := &products[index[v.ProductID]]
		p.Variants = append(p.Variants, v)
	}

	var links []modifierLink
	err = sqlx.SelectContext(ctx, q, &links,
		`SELECT product_id, modifier_group_id FROM product_modifier_groups WHERE product_id = ANY($1) ORDER BY product_id, position`,
		pq.Array(ids))
	if err != nil {
		return err
	}
	for _, l := range links {
		p := &products[index[l.ProductID]]
		p.ModifierGroupIDs = append(p.ModifierGroupIDs, l.ModifierGroupID)
	}
	return nil
}

func sameIDs(current, proposed []string) bool {
	if len(current) != len(proposed) {
		return false
	}
	seen := make(map[string]bool, len(current))
	for _, id := range current {
		seen[id] = true
	}
	for _, id := range proposed {
		if !seen[id] {
			return false
		}
		delete(seen, id)
	}
	return true
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
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

func (r *PGRepository) Create(ctx context.Context, c *model.Category, at *int) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := postgres.LockScope(ctx, tx, scopeKey(c.MerchantID, c.ParentID)); err != nil {
		return err
	}
	if at != nil {
		_, err = tx.ExecContext(ctx, `
            UPDATE categories SET sort_order = sort_order + 1
            WHERE merchant_id = $1 AND parent_id IS NOT DISTINCT FROM $2 AND sort_order >= $3
        `, c.MerchantID, c.ParentID, *at)
		if err != nil {
			return err
		}
		c.SortOrder = *at
	} else {
		if c.SortOrder, err = pgNextSortOrder(ctx, tx, c.MerchantID, c.ParentID); err != nil {
			return err
		}
	}

	query := `
        INSERT INTO categories (id, merchant_id, parent_id, name, banners, sort_order, created_at, updated_at)
        VALUES (:id, :merchant_id, :parent_id, :name, :banners, :sort_order, :created_at, :updated_at)
    `
	if _, err := tx.NamedExecContext(ctx, query, c); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, merchantID, id string) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 AND merchant_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id, merchantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, int, error) {
	var categories []model.Category
	var count int

	conditions := []string{"merchant_id = :merchant_id"}
	args := map[string]interface{}{"merchant_id": f.MerchantID}

	if f.ParentID != nil {
		if *f.ParentID == "" {
			conditions = append(conditions, "parent_id IS NULL")
		} else {
			conditions = append(conditions, "parent_id = :parent_id")
			args["parent_id"] = *f.ParentID
		}
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countStmt, err := r.DB.PrepareNamedContext(ctx, "SELECT count(*) FROM categories"+whereClause)
	if err != nil {
		return nil, 0, err
	}
	defer countStmt.Close()
	if err := countStmt.GetContext(ctx, &count, args); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM categories" + whereClause + " ORDER BY parent_id NULLS FIRST, sort_order ASC, id ASC"
	if f.PageSize > 0 {
		offset := (max(f.Page, 1) - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &categories, args); err != nil {
		return nil, 0, err
	}
	return categories, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var current struct {
		ParentID  *string `db:"parent_id"`
		SortOrder int     `db:"sort_order"`
	}
	err = tx.GetContext(ctx, &current,
		`SELECT parent_id, sort_order FROM categories WHERE id = $1 AND merchant_id = $2 FOR UPDATE`,
		c.ID, c.MerchantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}

	c.SortOrder = current.SortOrder
	if parentKey(current.ParentID) != parentKey(c.ParentID) {
		if err := postgres.LockScope(ctx, tx, scopeKey(c.MerchantID, c.ParentID)); err != nil {
			return err
		}
		if c.SortOrder, err = pgNextSortOrder(ctx, tx, c.MerchantID, c.ParentID); err != nil {
			return err
		}
	}

	query := `
        UPDATE categories
        SET parent_id = :parent_id,
            name = :name,
            banners = :banners,
            sort_order = :sort_order,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	if _, err := tx.NamedExecContext(ctx, query, c); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PGRepository) CountContents(ctx context.Context, merchantID, id string) (int, int, error) {
	var counts struct {
		Subcategories int `db:"subcategories"`
		Products      int `db:"products"`
	}
	query := `
        SELECT
            (SELECT count(*) FROM categories WHERE merchant_id = $1 AND parent_id = $2) AS subcategories,
            (SELECT count(*) FROM products WHERE merchant_id = $1 AND category_id IN (
                SELECT id FROM categories WHERE merchant_id = $1 AND (id = $2 OR parent_id = $2)
            )) AS products
    `
	if err := r.DB.GetContext(ctx, &counts, query, merchantID, id); err != nil {
		return 0, 0, err
	}
	return counts.Subcategories, counts.Products, nil
}

func (r *PGRepository) DeleteCascade(ctx context.Context, merchantID, id string) (*dto.DeleteResult, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result := &dto.DeleteResult{}
	err = tx.SelectContext(ctx, &result.CategoryIDs,
		`SELECT id FROM categories WHERE merchant_id = $1 AND (id = $2 OR parent_id = $2) FOR UPDATE`,
		merchantID, id)
	if err != nil {
		return nil, err
	}
	if len(result.CategoryIDs) == 0 {
		return result, nil
	}

	// product_variants and product_modifier_groups rows go with their product (ON DELETE CASCADE)
	err = tx.SelectContext(ctx, &result.ProductIDs,
		`DELETE FROM products WHERE merchant_id = $1 AND category_id = ANY($2) RETURNING id`,
		merchantID, pq.Array(result.CategoryIDs))
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM categories WHERE merchant_id = $1 AND id = ANY($2)`,
		merchantID, pq.Array(result.CategoryIDs)); err != nil {
		return nil, err
	}

	return result, tx.Commit()
}

// pgNextSortOrder must run under the scope lock of the same transaction.
func pgNextSortOrder(ctx context.Context, tx *sqlx.Tx, merchantID string, parentID *string) (int, error) {
	var next int
	query := `SELECT COALESCE(MAX(sort_order) + 1, 0) FROM categories WHERE merchant_id = $1 AND parent_id IS NOT DISTINCT FROM $2`
	err := tx.GetContext(ctx, &next, query, merchantID, parentID)
	return next, err
}

func scopeKey(merchantID string, parentID *string) string {
	return "categories:" + merchantID + ":" + parentKey(parentID)
}

func (r *PGRepository) ListSiblingIDs(ctx context.Context, merchantID string, parentID *string) ([]string, error) {
	ids := []string{}
	query := `SELECT id FROM categories WHERE merchant_id = $1 AND parent_id IS NOT DISTINCT FROM $2 ORDER BY sort_order, id`
	err := r.DB.SelectContext(ctx, &ids, query, merchantID, parentID)
	return ids, err
}

// ReplaceOrder rewrites sort_order for the whole sibling scope. The scope rows are
// locked first so a concurrent insert or reorder cannot interleave.
func (r *PGRepository) ReplaceOrder(ctx context.Context, merchantID string, parentID *string, orderedIDs []string) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := postgres.LockScope(ctx, tx, scopeKey(merchantID, parentID)); err != nil {
		return err
	}
	var current []string
	err = tx.SelectContext(ctx, &current,
		`SELECT id FROM categories WHERE merchant_id = $1 AND parent_id IS NOT DISTINCT FROM $2 ORDER BY id FOR UPDATE`,
		merchantID, parentID)
	if err != nil {
		return err
	}
	if !sameIDs(current, orderedIDs) {
		return model.ErrOrderMismatch
	}

	_, err = tx.ExecContext(ctx, `
        UPDATE categories AS c
        SET sort_order = o.ord - 1, updated_at = NOW()
        FROM unnest($2::uuid[]) WITH ORDINALITY AS o(id, ord)
        WHERE c.id = o.id AND c.merchant_id = $1
    `, merchantID, pq.Array(orderedIDs))
	if err != nil {
		return err
	}
	return tx.Commit()
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

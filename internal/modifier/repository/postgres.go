package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, g *model.ModifierGroup) error {
	query := `
        INSERT INTO modifier_groups (id, merchant_id, name, min_selection, max_selection, options, created_at, updated_at)
        VALUES (:id, :merchant_id, :name, :min_selection, :max_selection, :options, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, g)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, merchantID, id string) (*model.ModifierGroup, error) {
	var group model.ModifierGroup
	query := `SELECT * FROM modifier_groups WHERE id = $1 AND merchant_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &group, query, id, merchantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, merchantID string, ids []string) ([]model.ModifierGroup, error) {
	groups := []model.ModifierGroup{}
	if len(ids) == 0 {
		return groups, nil
	}
	query := `SELECT * FROM modifier_groups WHERE merchant_id = $1 AND id = ANY($2)`
	err := r.DB.SelectContext(ctx, &groups, query, merchantID, pq.Array(ids))
	return groups, err
}

func (r *PGRepository) FindAll(ctx context.Context, merchantID string) ([]model.ModifierGroup, error) {
	groups := []model.ModifierGroup{}
	query := `SELECT * FROM modifier_groups WHERE merchant_id = $1 ORDER BY created_at, id`
	err := r.DB.SelectContext(ctx, &groups, query, merchantID)
	return groups, err
}

func (r *PGRepository) Update(ctx context.Context, g *model.ModifierGroup) error {
	query := `
        UPDATE modifier_groups
        SET name = :name,
            min_selection = :min_selection,
            max_selection = :max_selection,
            options = :options,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, g)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, merchantID, id string) (bool, int, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, err
	}
	defer tx.Rollback()

	var lockedID string
	err = tx.GetContext(ctx, &lockedID,
		`SELECT id FROM modifier_groups WHERE id = $1 AND merchant_id = $2 FOR UPDATE`,
		id, merchantID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM product_modifier_groups WHERE modifier_group_id = $1`, id)
	if err != nil {
		return false, 0, err
	}
	detached, err := res.RowsAffected()
	if err != nil {
		return false, 0, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM modifier_groups WHERE id = $1 AND merchant_id = $2`, id, merchantID); err != nil {
		return false, 0, err
	}
	return true, int(detached), tx.Commit()
}

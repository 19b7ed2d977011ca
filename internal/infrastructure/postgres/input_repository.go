package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/agrostock/agrostock-api/internal/domain"
	"github.com/agrostock/agrostock-api/internal/domain/entity"
	"github.com/agrostock/agrostock-api/internal/domain/repository"
)

var _ repository.InputRepository = (*InputRepo)(nil)

// InputRepo implementación de InputRepository sobre PostgreSQL (usable con pool o tx).
type InputRepo struct {
	q Querier
}

// NewInputRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInputRepository(q Querier) *InputRepo {
	return &InputRepo{q: q}
}

const inputColumns = `id, name, unit, stock, avg_cost, created_at, updated_at`

// Create persiste un insumo nuevo.
func (r *InputRepo) Create(input *entity.Input) error {
	query := `
		INSERT INTO inputs (id, name, unit, stock, avg_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		input.ID, input.Name, input.Unit, input.Stock, input.AvgCost, input.CreatedAt, input.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create input: %w", err)
	}
	return nil
}

// GetByID obtiene un insumo por ID.
func (r *InputRepo) GetByID(id string) (*entity.Input, error) {
	query := `SELECT ` + inputColumns + ` FROM inputs WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByName obtiene un insumo por nombre (único).
func (r *InputRepo) GetByName(name string) (*entity.Input, error) {
	query := `SELECT ` + inputColumns + ` FROM inputs WHERE name = $1`
	return r.scanOne(query, name)
}

// GetForUpdate obtiene el insumo y bloquea la fila (SELECT FOR UPDATE):
// serializa las actualizaciones de stock/costo desde recepciones concurrentes.
func (r *InputRepo) GetForUpdate(id string) (*entity.Input, error) {
	query := `SELECT ` + inputColumns + ` FROM inputs WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// UpdateStockAndCost persiste stock y costo promedio recalculados.
func (r *InputRepo) UpdateStockAndCost(id string, stock, avgCost decimal.Decimal) error {
	query := `UPDATE inputs SET stock = $2, avg_cost = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, stock, avgCost)
	if err != nil {
		return fmt.Errorf("update input stock/cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista insumos ordenados por nombre.
func (r *InputRepo) List(limit, offset int) ([]*entity.Input, error) {
	query := `SELECT ` + inputColumns + ` FROM inputs ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inputs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Input
	for rows.Next() {
		var i entity.Input
		if err := rows.Scan(&i.ID, &i.Name, &i.Unit, &i.Stock, &i.AvgCost, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan input: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

func (r *InputRepo) scanOne(query string, arg any) (*entity.Input, error) {
	var i entity.Input
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&i.ID, &i.Name, &i.Unit, &i.Stock, &i.AvgCost, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get input: %w", err)
	}
	return &i, nil
}

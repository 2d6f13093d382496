package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/campushq/faculty-portal-api/internal/models"
)

// DepartmentRepository reads department reference data.
type DepartmentRepository struct {
	db *sqlx.DB
}

// NewDepartmentRepository constructs a DepartmentRepository.
func NewDepartmentRepository(db *sqlx.DB) *DepartmentRepository {
	return &DepartmentRepository{db: db}
}

// FindByCode fetches a department by code, case-insensitively.
func (r *DepartmentRepository) FindByCode(ctx context.Context, code string) (*models.Department, error) {
	var dept models.Department
	if err := r.db.GetContext(ctx, &dept, "SELECT id, code FROM departments WHERE code = $1", strings.ToUpper(code)); err != nil {
		return nil, err
	}
	return &dept, nil
}

// List returns all departments in code order.
func (r *DepartmentRepository) List(ctx context.Context) ([]models.Department, error) {
	var depts []models.Department
	if err := r.db.SelectContext(ctx, &depts, "SELECT id, code FROM departments ORDER BY code ASC"); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return depts, nil
}

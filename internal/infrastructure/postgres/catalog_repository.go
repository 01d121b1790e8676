package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fortytwo/demeter-api/internal/domain/entity"
	"github.com/fortytwo/demeter-api/internal/domain/repository"
)

var _ repository.ProductSizeRepository = (*ProductSizeRepo)(nil)
var _ repository.PackagingCatalogRepository = (*PackagingCatalogRepo)(nil)

// ProductSizeRepo catálogo de tamaños sobre PostgreSQL.
type ProductSizeRepo struct {
	q Querier
}

// NewProductSizeRepository construye el adaptador.
func NewProductSizeRepository(q Querier) *ProductSizeRepo {
	return &ProductSizeRepo{q: q}
}

func (r *ProductSizeRepo) GetByID(ctx context.Context, id string) (*entity.ProductSize, error) {
	var s entity.ProductSize
	err := r.q.QueryRow(ctx,
		`SELECT id, company_id, code, name FROM product_sizes WHERE id = $1`, id,
	).Scan(&s.ID, &s.CompanyID, &s.Code, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product size: %w", err)
	}
	return &s, nil
}

func (r *ProductSizeRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.ProductSize, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, company_id, code, name FROM product_sizes WHERE company_id = $1 ORDER BY code ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list product sizes: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductSize
	for rows.Next() {
		var s entity.ProductSize
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Code, &s.Name); err != nil {
			return nil, fmt.Errorf("scan product size: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// PackagingCatalogRepo catálogo de empaques sobre PostgreSQL.
type PackagingCatalogRepo struct {
	q Querier
}

// NewPackagingCatalogRepository construye el adaptador.
func NewPackagingCatalogRepository(q Querier) *PackagingCatalogRepo {
	return &PackagingCatalogRepo{q: q}
}

func (r *PackagingCatalogRepo) GetByID(ctx context.Context, id string) (*entity.PackagingCatalog, error) {
	var p entity.PackagingCatalog
	err := r.q.QueryRow(ctx,
		`SELECT id, company_id, code, name FROM packaging_catalogs WHERE id = $1`, id,
	).Scan(&p.ID, &p.CompanyID, &p.Code, &p.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get packaging catalog: %w", err)
	}
	return &p, nil
}

func (r *PackagingCatalogRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.PackagingCatalog, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, company_id, code, name FROM packaging_catalogs WHERE company_id = $1 ORDER BY code ASC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list packaging catalogs: %w", err)
	}
	defer rows.Close()
	var list []*entity.PackagingCatalog
	for rows.Next() {
		var p entity.PackagingCatalog
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Code, &p.Name); err != nil {
			return nil, fmt.Errorf("scan packaging catalog: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

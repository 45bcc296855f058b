package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adfinis/poweradmin-api/internal/model"
)

type DomainService struct {
	db DB
}

func NewDomainService(db DB) *DomainService {
	return &DomainService{db: db}
}

// Create inserts the domain and the zone row that makes owner its
// administrator. Both rows are written in one transaction: if the zone insert
// fails the domain does not persist either. No NOTIFY is sent to PowerDNS.
func (s *DomainService) Create(ctx context.Context, owner int64, d *model.Domain) error {
	if d.Name == "" {
		return requiredField("name")
	}
	if d.Type == "" {
		d.Type = model.DefaultDomainType
	}
	if !model.ValidDomainType(d.Type) {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("%q is not a valid choice", d.Type)}
	}

	var id int64
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO domains (name, type) VALUES ($1, $2) RETURNING id`,
			d.Name, d.Type,
		).Scan(&id)
		if isUniqueViolation(err) {
			return &ValidationError{Field: "name", Message: "domain with this name already exists"}
		}
		if err != nil {
			return fmt.Errorf("insert domain %s: %w", d.Name, err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO zones (domain_id, owner, zone_templ_id) VALUES ($1, $2, $3)`,
			id, owner, model.DefaultZoneTemplateID,
		)
		if err != nil {
			return fmt.Errorf("insert zone for domain %s: %w", d.Name, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	d.ID = id
	return nil
}

// GetByName returns the named domain if owner administers it.
func (s *DomainService) GetByName(ctx context.Context, owner int64, name string) (*model.Domain, error) {
	d, err := lookupDomain(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ctx, s.db, d.ID, owner); err != nil {
		return nil, err
	}
	return d, nil
}

// ListByOwner returns the domains owner administers, ordered by name. The
// cursor is the last name of the previous page.
func (s *DomainService) ListByOwner(ctx context.Context, owner int64, limit int, cursor string) ([]model.Domain, bool, error) {
	query := `SELECT d.id, d.name, d.type FROM domains d
		WHERE EXISTS (SELECT 1 FROM zones z WHERE z.domain_id = d.id AND z.owner = $1)`
	args := []any{owner}
	argIdx := 2

	if cursor != "" {
		query += fmt.Sprintf(` AND d.name > $%d`, argIdx)
		args = append(args, cursor)
		argIdx++
	}

	query += ` ORDER BY d.name`
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list domains for owner %d: %w", owner, err)
	}
	defer rows.Close()

	var domains []model.Domain
	for rows.Next() {
		var d model.Domain
		if err := rows.Scan(&d.ID, &d.Name, &d.Type); err != nil {
			return nil, false, fmt.Errorf("scan domain: %w", err)
		}
		domains = append(domains, d)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate domains: %w", err)
	}

	hasMore := len(domains) > limit
	if hasMore {
		domains = domains[:limit]
	}
	return domains, hasMore, nil
}

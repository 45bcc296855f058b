package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adfinis/poweradmin-api/internal/model"
)

// ZoneService exposes the ownership links. Zone rows are only ever created by
// DomainService.Create.
type ZoneService struct {
	db DB
}

func NewZoneService(db DB) *ZoneService {
	return &ZoneService{db: db}
}

// GetByDomain returns owner's zone link for the named domain.
func (s *ZoneService) GetByDomain(ctx context.Context, owner int64, name string) (*model.Zone, error) {
	d, err := lookupDomain(ctx, s.db, name)
	if err != nil {
		return nil, err
	}

	z := model.Zone{Domain: d.Name}
	err = s.db.QueryRow(ctx,
		`SELECT id, domain_id, owner, zone_templ_id FROM zones
		 WHERE domain_id = $1 AND owner = $2
		 ORDER BY id LIMIT 1`, d.ID, owner,
	).Scan(&z.ID, &z.DomainID, &z.Owner, &z.TemplateID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPermissionDenied
	}
	if err != nil {
		return nil, fmt.Errorf("get zone for domain %s: %w", name, err)
	}
	return &z, nil
}

// ListByOwner returns owner's zone links ordered by id. The cursor is the last
// id of the previous page, 0 for the first page.
func (s *ZoneService) ListByOwner(ctx context.Context, owner int64, limit int, cursor int64) ([]model.Zone, bool, error) {
	query := `SELECT z.id, z.domain_id, d.name, z.owner, z.zone_templ_id
		FROM zones z JOIN domains d ON d.id = z.domain_id
		WHERE z.owner = $1`
	args := []any{owner}
	argIdx := 2

	if cursor > 0 {
		query += fmt.Sprintf(` AND z.id > $%d`, argIdx)
		args = append(args, cursor)
		argIdx++
	}

	query += ` ORDER BY z.id`
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list zones for owner %d: %w", owner, err)
	}
	defer rows.Close()

	var zones []model.Zone
	for rows.Next() {
		var z model.Zone
		if err := rows.Scan(&z.ID, &z.DomainID, &z.Domain, &z.Owner, &z.TemplateID); err != nil {
			return nil, false, fmt.Errorf("scan zone: %w", err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate zones: %w", err)
	}

	hasMore := len(zones) > limit
	if hasMore {
		zones = zones[:limit]
	}
	return zones, hasMore, nil
}

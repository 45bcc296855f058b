package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adfinis/poweradmin-api/internal/metrics"
	"github.com/adfinis/poweradmin-api/internal/model"
)

// lookupDomain resolves a domain by its unique name. A missing domain is
// reported as ErrNotFound.
func lookupDomain(ctx context.Context, db DB, name string) (*model.Domain, error) {
	var d model.Domain
	err := db.QueryRow(ctx,
		`SELECT id, name, type FROM domains WHERE name = $1`, name,
	).Scan(&d.ID, &d.Name, &d.Type)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("domain %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get domain %s: %w", name, err)
	}
	return &d, nil
}

// requireOwner fails with ErrPermissionDenied unless at least one zone row
// links the domain to owner. Ownership is read from the database on every
// call; it is never cached.
func requireOwner(ctx context.Context, db DB, domainID, owner int64) error {
	var owns bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM zones WHERE domain_id = $1 AND owner = $2)`,
		domainID, owner,
	).Scan(&owns)
	if err != nil {
		return fmt.Errorf("check zone ownership for domain %d: %w", domainID, err)
	}
	if !owns {
		metrics.OwnershipDenials.Inc()
		return ErrPermissionDenied
	}
	return nil
}

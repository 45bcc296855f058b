package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adfinis/poweradmin-api/internal/model"
)

type RecordService struct {
	db DB
}

func NewRecordService(db DB) *RecordService {
	return &RecordService{db: db}
}

// validateDomain resolves the record's domain by name and checks that actor
// owns it. An unknown name is a validation error and is reported before any
// ownership check runs, so "unknown domain" and "forbidden" stay distinct.
func (s *RecordService) validateDomain(ctx context.Context, actor int64, name string) (*model.Domain, error) {
	if name == "" {
		return nil, requiredField("domain")
	}
	d, err := lookupDomain(ctx, s.db, name)
	if errors.Is(err, ErrNotFound) {
		return nil, &ValidationError{Field: "domain", Message: fmt.Sprintf("object with name=%s does not exist", name)}
	}
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ctx, s.db, d.ID, actor); err != nil {
		return nil, err
	}
	return d, nil
}

// Create writes the record once actor is confirmed as owner of its domain.
func (s *RecordService) Create(ctx context.Context, actor int64, r *model.Record) error {
	d, err := s.validateDomain(ctx, actor, r.Domain)
	if err != nil {
		return err
	}
	r.DomainID = d.ID
	if r.TTL == 0 {
		r.TTL = model.DefaultRecordTTL
	}

	err = s.db.QueryRow(ctx,
		`INSERT INTO records (domain_id, name, type, content, ttl, prio)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		r.DomainID, r.Name, r.Type, r.Content, r.TTL, r.Prio,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("insert record %s/%s: %w", r.Name, r.Type, err)
	}
	return nil
}

// Update replaces the record identified by r.ID. The target domain is
// validated like on Create; moving a record to another domain also requires
// ownership of the domain it currently belongs to.
func (s *RecordService) Update(ctx context.Context, actor int64, r *model.Record) error {
	current, err := s.get(ctx, r.ID)
	if err != nil {
		return err
	}

	d, err := s.validateDomain(ctx, actor, r.Domain)
	if err != nil {
		return err
	}
	if current.DomainID != d.ID {
		if err := requireOwner(ctx, s.db, current.DomainID, actor); err != nil {
			return err
		}
	}
	r.DomainID = d.ID
	if r.TTL == 0 {
		r.TTL = model.DefaultRecordTTL
	}

	tag, err := s.db.Exec(ctx,
		`UPDATE records SET domain_id = $1, name = $2, type = $3, content = $4, ttl = $5, prio = $6
		 WHERE id = $7`,
		r.DomainID, r.Name, r.Type, r.Content, r.TTL, r.Prio, r.ID,
	)
	if err != nil {
		return fmt.Errorf("update record %d: %w", r.ID, err)
	}
	// The row can disappear between the read above and the write.
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("record %d: %w", r.ID, ErrNotFound)
	}
	return nil
}

// GetByID returns the record if actor owns its domain.
func (s *RecordService) GetByID(ctx context.Context, actor int64, id int64) (*model.Record, error) {
	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(ctx, s.db, r.DomainID, actor); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *RecordService) get(ctx context.Context, id int64) (*model.Record, error) {
	var r model.Record
	err := s.db.QueryRow(ctx,
		`SELECT r.id, r.domain_id, d.name, r.name, r.type, r.content, COALESCE(r.ttl, 0), COALESCE(r.prio, 0)
		 FROM records r JOIN domains d ON d.id = r.domain_id
		 WHERE r.id = $1`, id,
	).Scan(&r.ID, &r.DomainID, &r.Domain, &r.Name, &r.Type, &r.Content, &r.TTL, &r.Prio)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("record %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get record %d: %w", id, err)
	}
	return &r, nil
}

// ListByOwner returns records of every domain actor owns, ordered by id. The
// cursor is the last id of the previous page, 0 for the first page.
func (s *RecordService) ListByOwner(ctx context.Context, actor int64, limit int, cursor int64) ([]model.Record, bool, error) {
	query := `SELECT r.id, r.domain_id, d.name, r.name, r.type, r.content, COALESCE(r.ttl, 0), COALESCE(r.prio, 0)
		FROM records r JOIN domains d ON d.id = r.domain_id
		WHERE EXISTS (SELECT 1 FROM zones z WHERE z.domain_id = r.domain_id AND z.owner = $1)`
	args := []any{actor}
	argIdx := 2

	if cursor > 0 {
		query += fmt.Sprintf(` AND r.id > $%d`, argIdx)
		args = append(args, cursor)
		argIdx++
	}

	query += ` ORDER BY r.id`
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit+1)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, false, fmt.Errorf("list records for owner %d: %w", actor, err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.ID, &r.DomainID, &r.Domain, &r.Name, &r.Type, &r.Content, &r.TTL, &r.Prio); err != nil {
			return nil, false, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("iterate records: %w", err)
	}

	hasMore := len(records) > limit
	if hasMore {
		records = records[:limit]
	}
	return records, hasMore, nil
}

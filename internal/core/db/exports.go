package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/scarydoors/jokerforge/internal/types"
)

// DefaultListLimit caps ListExports when the caller passes no limit.
const DefaultListLimit = 50

// Export is one stored compilation of an entity.
type Export struct {
	ExportID   types.ExportID
	EntityKey  string
	NamePrefix string
	RulesHash  string
	RulesJSON  string
	OutputJSON string
	CreatedAt  time.Time
}

type exportRow struct {
	ExportID   string `db:"export_id"`
	EntityKey  string `db:"entity_key"`
	NamePrefix string `db:"name_prefix"`
	RulesHash  string `db:"rules_hash"`
	RulesJSON  string `db:"rules_json"`
	OutputJSON string `db:"output_json"`
	CreatedAt  string `db:"created_at"`
}

func (r exportRow) export() (Export, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return Export{}, err
	}
	return Export{
		ExportID:   types.ExportID(r.ExportID),
		EntityKey:  r.EntityKey,
		NamePrefix: r.NamePrefix,
		RulesHash:  r.RulesHash,
		RulesJSON:  r.RulesJSON,
		OutputJSON: r.OutputJSON,
		CreatedAt:  created,
	}, nil
}

// ExportStore persists compiled exports. An entity compiled twice from the
// same rules maps to the same row, keyed by (entity_key, rules_hash).
type ExportStore struct {
	queries *Queries
	now     func() time.Time
}

// NewExportStore creates a store over loaded queries.
func NewExportStore(queries *Queries) *ExportStore {
	return &ExportStore{queries: queries, now: time.Now}
}

// Save stores e unless an export with the same entity key and rules hash
// exists, in which case the existing record is returned. The boolean reports
// whether a new row was written.
func (s *ExportStore) Save(ctx context.Context, e Export) (Export, bool, error) {
	existing, err := s.byHash(ctx, e.EntityKey, e.RulesHash)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, types.ErrExportNotFound) {
		return Export{}, false, err
	}

	if e.ExportID == "" {
		e.ExportID = types.NewExportID()
	}
	e.CreatedAt = s.now().UTC()

	_, err = s.queries.Exec(ctx, "insert-export",
		string(e.ExportID), e.EntityKey, e.NamePrefix, e.RulesHash,
		e.RulesJSON, e.OutputJSON, formatTime(e.CreatedAt),
	)
	if err != nil {
		return Export{}, false, fmt.Errorf("failed to insert export: %w", err)
	}
	return e, true, nil
}

// Get returns the export with id, or types.ErrExportNotFound.
func (s *ExportStore) Get(ctx context.Context, id types.ExportID) (Export, error) {
	var row exportRow
	err := s.queries.Get(ctx, "get-export", &row, string(id))
	if errors.Is(err, sql.ErrNoRows) {
		return Export{}, fmt.Errorf("%w: %s", types.ErrExportNotFound, id)
	}
	if err != nil {
		return Export{}, fmt.Errorf("failed to load export: %w", err)
	}
	return row.export()
}

// List returns the newest exports first. An empty entityKey lists every
// entity. A non-positive limit uses DefaultListLimit.
func (s *ExportStore) List(ctx context.Context, entityKey string, limit int) ([]Export, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var rows []exportRow
	var err error
	if entityKey == "" {
		err = s.queries.Select(ctx, "list-all-exports", &rows, limit)
	} else {
		err = s.queries.Select(ctx, "list-exports", &rows, entityKey, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}

	out := make([]Export, 0, len(rows))
	for _, r := range rows {
		e, err := r.export()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *ExportStore) byHash(ctx context.Context, entityKey, rulesHash string) (Export, error) {
	var row exportRow
	err := s.queries.Get(ctx, "get-export-by-hash", &row, entityKey, rulesHash)
	if errors.Is(err, sql.ErrNoRows) {
		return Export{}, types.ErrExportNotFound
	}
	if err != nil {
		return Export{}, fmt.Errorf("failed to look up export: %w", err)
	}
	return row.export()
}

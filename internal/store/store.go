package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tirecycle/feasibility/internal/domain"
)

// ErrNotFound is returned when a study id does not exist.
var ErrNotFound = errors.New("study not found")

// Store persists feasibility studies as flat records: every configuration field and
// every result field side by side, plus the id and timestamps.
type Store interface {
	// Save inserts a study, or replaces the one with the same id. A missing id is
	// generated. The stored record is returned.
	Save(ctx context.Context, study *domain.Study) (*domain.Study, error)
	Get(ctx context.Context, id string) (*domain.Study, error)
	// List returns studies whose name, location or notes contain query (case-insensitive),
	// most recently updated first. An empty query lists everything.
	List(ctx context.Context, query string) ([]domain.Study, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) }

// SQLStore implements Store over database/sql. SQLite and Postgres share the queries;
// only placeholders and migrations differ.
type SQLStore struct {
	db      *sql.DB
	dollar  bool // $1 placeholders instead of ?
	closers []func()
}

var studyColumns = []string{
	"id", "name", "notes", "config_name", "location", "start_date",
	"daily_capacity_tons", "operating_days_per_year", "utilization_rate",
	"capex_equipment", "capex_installation", "capex_infrastructure", "capex_working_capital", "capex_other",
	"opex_raw_material", "opex_labor", "opex_energy", "opex_maintenance", "opex_logistics", "opex_administrative", "opex_other",
	"output_streams",
	"tax_rate", "depreciation_years", "discount_rate", "inflation_rate",
	"total_investment", "annual_revenue", "annual_opex", "annual_ebitda", "payback_months",
	"roi_percentage", "npv_10_years", "irr_percentage", "irr_computable",
	"created_at", "updated_at",
}

func (s *SQLStore) placeholder(n int) string {
	if s.dollar {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}

func (s *SQLStore) Save(ctx context.Context, study *domain.Study) (*domain.Study, error) {
	rec := *study
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Name == "" {
		rec.Name = rec.Config.Name
	}
	now := nowFunc()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	args, err := studyArgs(&rec)
	if err != nil {
		return nil, err
	}

	placeholders := make([]string, len(studyColumns))
	updates := make([]string, 0, len(studyColumns))
	for i, col := range studyColumns {
		placeholders[i] = s.placeholder(i + 1)
		if col != "id" && col != "created_at" {
			updates = append(updates, col+" = excluded."+col)
		}
	}
	query := fmt.Sprintf("INSERT INTO studies (%s) VALUES (%s) ON CONFLICT (id) DO UPDATE SET %s",
		strings.Join(studyColumns, ", "), strings.Join(placeholders, ", "), strings.Join(updates, ", "))

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("save study %s: %w", rec.ID, err)
	}
	return s.Get(ctx, rec.ID)
}

func (s *SQLStore) Get(ctx context.Context, id string) (*domain.Study, error) {
	query := fmt.Sprintf("SELECT %s FROM studies WHERE id = %s", strings.Join(studyColumns, ", "), s.placeholder(1))
	study, err := scanStudy(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get study %s: %w", id, err)
	}
	return study, nil
}

func (s *SQLStore) List(ctx context.Context, query string) ([]domain.Study, error) {
	q := fmt.Sprintf("SELECT %s FROM studies", strings.Join(studyColumns, ", "))
	var args []any
	if query = strings.TrimSpace(query); query != "" {
		p := s.placeholder(1)
		q += fmt.Sprintf(" WHERE LOWER(name) LIKE %[1]s OR LOWER(location) LIKE %[1]s OR LOWER(notes) LIKE %[1]s", p)
		if !s.dollar {
			args = []any{likePattern(query), likePattern(query), likePattern(query)}
		} else {
			args = []any{likePattern(query)}
		}
	}
	q += " ORDER BY updated_at DESC, name"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list studies: %w", err)
	}
	defer rows.Close()

	studies := []domain.Study{}
	for rows.Next() {
		study, err := scanStudy(rows)
		if err != nil {
			return nil, fmt.Errorf("scan study: %w", err)
		}
		studies = append(studies, *study)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list studies: %w", err)
	}
	return studies, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM studies WHERE id = "+s.placeholder(1), id)
	if err != nil {
		return fmt.Errorf("delete study %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete study %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	err := s.db.Close()
	for _, c := range s.closers {
		c()
	}
	return err
}

func likePattern(q string) string {
	return "%" + strings.ToLower(q) + "%"
}

func studyArgs(st *domain.Study) ([]any, error) {
	streams := st.Config.OutputStreams
	if streams == nil {
		streams = []domain.OutputStream{}
	}
	streamsJSON, err := json.Marshal(streams)
	if err != nil {
		return nil, fmt.Errorf("marshal output streams: %w", err)
	}

	var startDate any
	if st.Config.StartDate != nil {
		startDate = st.Config.StartDate.UTC()
	}

	c, r := st.Config, st.Results
	return []any{
		st.ID, st.Name, st.Notes, c.Name, c.Location, startDate,
		c.DailyCapacityTons, c.OperatingDaysPerYear, c.UtilizationRate,
		c.Capex.Equipment, c.Capex.Installation, c.Capex.Infrastructure, c.Capex.WorkingCapital, c.Capex.Other,
		c.Opex.RawMaterial, c.Opex.Labor, c.Opex.Energy, c.Opex.Maintenance, c.Opex.Logistics, c.Opex.Administrative, c.Opex.Other,
		string(streamsJSON),
		c.Financial.TaxRate, c.Financial.DepreciationYears, c.Financial.DiscountRate, c.Financial.InflationRate,
		r.TotalInvestment, r.AnnualRevenue, r.AnnualOpex, r.AnnualEbitda, r.PaybackMonths,
		r.ROIPercentage, r.NPV10Years, r.IRRPercentage, r.IRRComputable,
		st.CreatedAt, st.UpdatedAt,
	}, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudy(row rowScanner) (*domain.Study, error) {
	var (
		st      domain.Study
		streams []byte
	)
	c, r := &st.Config, &st.Results
	err := row.Scan(
		&st.ID, &st.Name, &st.Notes, &c.Name, &c.Location, &c.StartDate,
		&c.DailyCapacityTons, &c.OperatingDaysPerYear, &c.UtilizationRate,
		&c.Capex.Equipment, &c.Capex.Installation, &c.Capex.Infrastructure, &c.Capex.WorkingCapital, &c.Capex.Other,
		&c.Opex.RawMaterial, &c.Opex.Labor, &c.Opex.Energy, &c.Opex.Maintenance, &c.Opex.Logistics, &c.Opex.Administrative, &c.Opex.Other,
		&streams,
		&c.Financial.TaxRate, &c.Financial.DepreciationYears, &c.Financial.DiscountRate, &c.Financial.InflationRate,
		&r.TotalInvestment, &r.AnnualRevenue, &r.AnnualOpex, &r.AnnualEbitda, &r.PaybackMonths,
		&r.ROIPercentage, &r.NPV10Years, &r.IRRPercentage, &r.IRRComputable,
		&st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(streams, &c.OutputStreams); err != nil {
		return nil, fmt.Errorf("decode output streams: %w", err)
	}
	// Rows written before config_name existed carry the study name only.
	if c.Name == "" {
		c.Name = st.Name
	}
	st.CreatedAt = st.CreatedAt.UTC()
	st.UpdatedAt = st.UpdatedAt.UTC()
	return &st, nil
}

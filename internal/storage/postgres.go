package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bagrikeng/tanlovbot/internal/domain"
)

// Postgres implements TxStore on top of a sqlx connection pool.
type Postgres struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

// NewPostgres wraps an open connection pool.
func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db, ext: db}
}

// WithTx runs fn against a store bound to a single transaction. A returned
// error or panic rolls everything back.
func (p *Postgres) WithTx(ctx context.Context, fn func(Store) error) error {
	if p.db == nil {
		return errors.New("storage: transactions require a root connection")
	}
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback()
			panic(r)
		}
	}()
	if err := fn(&Postgres{ext: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// FindParticipant looks a participant up by Telegram identity.
func (p *Postgres) FindParticipant(ctx context.Context, telegramID int64) (*domain.Participant, error) {
	var rec domain.Participant
	err := sqlx.GetContext(ctx, p.ext, &rec,
		`SELECT id, telegram_id, full_name, address_id, workplace, birth_date, passport_series, phone_number
		 FROM users WHERE telegram_id = $1`, telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find participant: %w", err)
	}
	return &rec, nil
}

// CreateParticipant inserts a participant row and returns its id.
func (p *Postgres) CreateParticipant(ctx context.Context, rec *domain.Participant) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, p.ext, &id,
		`INSERT INTO users (telegram_id, full_name, address_id, workplace, birth_date, passport_series, phone_number)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		rec.TelegramID, rec.FullName, rec.AddressID, rec.Workplace, rec.BirthDate, rec.PassportSeries, rec.PhoneNumber)
	if err != nil {
		return 0, fmt.Errorf("create participant: %w", err)
	}
	return id, nil
}

// UpdateParticipant overwrites the mutable fields of an existing participant.
func (p *Postgres) UpdateParticipant(ctx context.Context, rec *domain.Participant) error {
	_, err := p.ext.ExecContext(ctx,
		`UPDATE users SET full_name = $1, workplace = $2, birth_date = $3, passport_series = $4, phone_number = $5
		 WHERE id = $6`,
		rec.FullName, rec.Workplace, rec.BirthDate, rec.PassportSeries, rec.PhoneNumber, rec.ID)
	if err != nil {
		return fmt.Errorf("update participant: %w", err)
	}
	return nil
}

// GetAddress fetches an address row, returning (nil, nil) when absent.
func (p *Postgres) GetAddress(ctx context.Context, id int64) (*domain.Address, error) {
	var rec domain.Address
	err := sqlx.GetContext(ctx, p.ext, &rec,
		`SELECT id, region_id, district_id, neighborhood FROM addresses WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get address: %w", err)
	}
	return &rec, nil
}

// CreateAddress inserts an address row and returns its id.
func (p *Postgres) CreateAddress(ctx context.Context, rec *domain.Address) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, p.ext, &id,
		`INSERT INTO addresses (region_id, district_id, neighborhood) VALUES ($1, $2, $3) RETURNING id`,
		rec.RegionID, rec.DistrictID, rec.Neighborhood)
	if err != nil {
		return 0, fmt.Errorf("create address: %w", err)
	}
	return id, nil
}

// UpdateAddress overwrites an existing address in place.
func (p *Postgres) UpdateAddress(ctx context.Context, rec *domain.Address) error {
	_, err := p.ext.ExecContext(ctx,
		`UPDATE addresses SET region_id = $1, district_id = $2, neighborhood = $3 WHERE id = $4`,
		rec.RegionID, rec.DistrictID, rec.Neighborhood, rec.ID)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}

// CreateSubmission inserts a submission row and returns its id.
func (p *Postgres) CreateSubmission(ctx context.Context, rec *domain.Submission) (int64, error) {
	var id int64
	err := sqlx.GetContext(ctx, p.ext, &id,
		`INSERT INTO projects (user_id, type, project_url) VALUES ($1, $2, $3) RETURNING id`,
		rec.ParticipantID, rec.Category, rec.URL)
	if err != nil {
		return 0, fmt.Errorf("create submission: %w", err)
	}
	return id, nil
}

// CountSubmissions counts submissions owned by one participant.
func (p *Postgres) CountSubmissions(ctx context.Context, participantID int64) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, p.ext, &n,
		`SELECT COUNT(*) FROM projects WHERE user_id = $1`, participantID)
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return n, nil
}

// ListParticipants returns all participants ordered by id, for reporting.
func (p *Postgres) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	var out []domain.Participant
	err := sqlx.SelectContext(ctx, p.ext, &out,
		`SELECT id, telegram_id, full_name, address_id, workplace, birth_date, passport_series, phone_number
		 FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return out, nil
}

// ListSubmissions returns all submissions ordered by id, for reporting.
func (p *Postgres) ListSubmissions(ctx context.Context) ([]domain.Submission, error) {
	var out []domain.Submission
	err := sqlx.SelectContext(ctx, p.ext, &out,
		`SELECT id, user_id, type, project_url FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return out, nil
}

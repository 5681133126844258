package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/deadbrock/avalia-o/model"
)

//go:embed migrations
var dbMigrations embed.FS

// SQLiteStore keeps the collections in relational tables instead of a
// single JSON document, trading the blob layout for real row deletes.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	if err := migrateDB(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, now: time.Now}, nil
}

func migrateDB(db *sql.DB) error {
	src, err := iofs.New(dbMigrations, "migrations")
	if err != nil {
		return err
	}

	dst, err := migratesqlite.WithInstance(db, &migratesqlite.Config{})
	if err != nil {
		return err
	}

	migrator, err := migrate.NewWithInstance("iofs", src, "sqlite3", dst)
	if err != nil {
		return err
	}

	err = migrator.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		// db already up to date
		break
	case err != nil:
		return err
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Responses() Responses     { return sqliteResponses{s} }
func (s *SQLiteStore) ActionItems() ActionItems { return sqliteActionItems{s} }

const responseColumns = `
	name, email, phone, location, service_date,
	cordiality, communication, responsiveness,
	cleanliness, restrooms, floors, materials, safety_protocols,
	schedule_adherence, cleaning_reinforcement, staff_substitution,
	responsibility, personal_presentation, conduct,
	supervisor_follow_up, nonconformity_correction, contract_management,
	overall, would_recommend, improvement_area, improvement_description, praise,
	submitted_at`

func responseFields(r *model.Response) []any {
	return []any{
		&r.Name, &r.Email, &r.Phone, &r.Location, &r.ServiceDate,
		&r.Cordiality, &r.Communication, &r.Responsiveness,
		&r.Cleanliness, &r.Restrooms, &r.Floors, &r.Materials, &r.SafetyProtocols,
		&r.ScheduleAdherence, &r.CleaningReinforcement, &r.StaffSubstitution,
		&r.Responsibility, &r.PersonalPresentation, &r.Conduct,
		&r.SupervisorFollowUp, &r.NonconformityCorrection, &r.ContractManagement,
		&r.Overall, &r.WouldRecommend, &r.ImprovementArea, &r.ImprovementDescription, &r.Praise,
		&r.SubmittedAt,
	}
}

type sqliteResponses struct {
	s *SQLiteStore
}

func (s sqliteResponses) List(ctx context.Context) ([]model.Response, error) {
	rows, err := s.s.db.QueryContext(ctx, `
		SELECT id, `+responseColumns+`
		FROM response
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store.sqlite.get_responses: %w", err)
	}
	defer rows.Close()

	var responses []model.Response
	for rows.Next() {
		var r model.Response
		dest := append([]any{&r.ID}, responseFields(&r)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("store.sqlite.get_responses.scan: %w", err)
		}
		responses = append(responses, r)
	}
	return responses, rows.Err()
}

func (s sqliteResponses) Create(ctx context.Context, r model.Response) (model.Response, error) {
	if err := r.Validate(); err != nil {
		return model.Response{}, err
	}
	r.SubmittedAt = s.s.now()

	vals := responseFields(&r)
	err := s.s.db.QueryRowContext(ctx, `
		INSERT INTO response (`+responseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`,
		vals...,
	).Scan(&r.ID)
	if err != nil {
		return model.Response{}, fmt.Errorf("store.sqlite.insert_response: %w", err)
	}
	return r, nil
}

func (s sqliteResponses) DeleteByID(ctx context.Context, id int) error {
	res, err := s.s.db.ExecContext(ctx, `DELETE FROM response WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store.sqlite.delete_response: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store.sqlite.delete_response.verify: %w", err)
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}

func (s sqliteResponses) DeleteAll(ctx context.Context) error {
	_, err := s.s.db.ExecContext(ctx, `DELETE FROM response`)
	if err != nil {
		return fmt.Errorf("store.sqlite.delete_responses: %w", err)
	}
	return nil
}

type sqliteActionItems struct {
	s *SQLiteStore
}

func (s sqliteActionItems) List(ctx context.Context) ([]model.ActionItem, error) {
	rows, err := s.s.db.QueryContext(ctx, `
		SELECT id, title, description, category, priority, status, owner, due_date, created_at
		FROM action_item
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store.sqlite.get_action_items: %w", err)
	}
	defer rows.Close()

	var items []model.ActionItem
	for rows.Next() {
		var item model.ActionItem
		err := rows.Scan(
			&item.ID, &item.Title, &item.Description, &item.Category,
			&item.Priority, &item.Status, &item.Owner, &item.DueDate, &item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("store.sqlite.get_action_items.scan: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s sqliteActionItems) Create(ctx context.Context, item model.ActionItem) (model.ActionItem, error) {
	items, err := s.CreateBatch(ctx, []model.ActionItem{item})
	if err != nil {
		return model.ActionItem{}, err
	}
	return items[0], nil
}

func (s sqliteActionItems) CreateBatch(ctx context.Context, items []model.ActionItem) ([]model.ActionItem, error) {
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	tx, err := s.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("store.sqlite.begin_tx: %w", err)
	}
	defer tx.Rollback()

	existing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO action_item (id, title, description, category, priority, status, owner, due_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("store.sqlite.insert_action_item.prepare: %w", err)
	}
	defer stmt.Close()

	created := make([]model.ActionItem, 0, len(items))
	for _, item := range items {
		item.ID = uniqueItemID(s.s.now().UnixMilli(), append(existing, created...))
		item.CreatedAt = s.s.now()
		if item.Status == "" {
			item.Status = model.StatusPending
		}

		_, err := stmt.ExecContext(ctx,
			item.ID, item.Title, item.Description, item.Category,
			item.Priority, item.Status, item.Owner, item.DueDate, item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("store.sqlite.insert_action_item: %w", err)
		}
		created = append(created, item)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("store.sqlite.insert_action_item.commit: %w", err)
	}
	return created, nil
}

func (s sqliteActionItems) UpdateStatus(ctx context.Context, id int64, status string) (model.ActionItem, error) {
	if !model.ValidStatus(status) {
		return model.ActionItem{}, fmt.Errorf("unknown status %q", status)
	}

	var item model.ActionItem
	err := s.s.db.QueryRowContext(ctx, `
		UPDATE action_item SET status = ?
		WHERE id = ?
		RETURNING id, title, description, category, priority, status, owner, due_date, created_at`,
		status, id,
	).Scan(
		&item.ID, &item.Title, &item.Description, &item.Category,
		&item.Priority, &item.Status, &item.Owner, &item.DueDate, &item.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ActionItem{}, ErrNotFound
	}
	if err != nil {
		return model.ActionItem{}, fmt.Errorf("store.sqlite.update_action_item: %w", err)
	}
	return item, nil
}

func (s sqliteActionItems) DeleteByID(ctx context.Context, id int64) error {
	res, err := s.s.db.ExecContext(ctx, `DELETE FROM action_item WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("store.sqlite.delete_action_item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store.sqlite.delete_action_item.verify: %w", err)
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}

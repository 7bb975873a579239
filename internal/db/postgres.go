package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/models"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/errors"
	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

const DefaultMigrationsPath = "file://migrations"

type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(url string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to open database connection",
			"Could not initialize database connection",
			err,
			errors.LevelError,
		)
	}

	// * Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// * Verify connection
	if err := db.Ping(); err != nil {
		return nil, errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to verify database connection",
			"Database ping failed",
			err,
			errors.LevelError,
		)
	}

	logger.Info("connected to database successfully 🎉")
	return &PostgresDB{db: db}, nil
}

func (p *PostgresDB) Migrate(source string) error {
	driver, err := postgres.WithInstance(p.db, &postgres.Config{})
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to create migration driver",
			"Could not initialize migration driver instance",
			err,
			errors.LevelError,
		)
	}

	m, err := migrate.NewWithDatabaseInstance(source, "postgres", driver)
	if err != nil {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to create migration instance",
			fmt.Sprintf("Could not load migrations from %s", source),
			err,
			errors.LevelError,
		)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return errors.New(
			"DB_MIGRATION_ERROR",
			"Failed to run migrations",
			"Migration up operation failed",
			err,
			errors.LevelError,
		)
	}

	return nil
}

func (p *PostgresDB) Close() error {
	if err := p.db.Close(); err != nil {
		return errors.New(
			"DB_CONNECTION_ERROR",
			"Failed to close database connection",
			"Error while closing database connection",
			err,
			errors.LevelWarning,
		)
	}
	return nil
}

func (p *PostgresDB) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.New(
			"DB_TRANSACTION_ERROR",
			"Failed to begin transaction",
			"Could not start database transaction",
			err,
			errors.LevelError,
		)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.New(
				"DB_TRANSACTION_ERROR",
				"Transaction failed and rollback encountered error",
				"Transaction error with additional rollback failure",
				fmt.Errorf("transaction error: %v, rollback error: %w", err, rbErr),
				errors.LevelError,
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.New(
			"DB_TRANSACTION_ERROR",
			"Failed to commit transaction",
			"Error while committing transaction",
			err,
			errors.LevelError,
		)
	}

	return nil
}

const insertRunQuery = `
	INSERT INTO runs (
		kind, repository_url, branch, status, error_message,
		contributor_count, commit_count, duration_seconds, started_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id
`

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertRun(ctx context.Context, q queryRower, run *models.Run) error {
	row := q.QueryRowContext(ctx, insertRunQuery,
		run.Kind, run.RepositoryURL, run.Branch, run.Status, run.ErrorMessage,
		run.ContributorCount, run.CommitCount, run.DurationSeconds, run.StartedAt,
	)

	if err := row.Scan(&run.ID); err != nil {
		return errors.New(
			"DB_RUN_ERROR",
			"Failed to insert run",
			fmt.Sprintf("Could not record %s run for '%s'", run.Kind, run.RepositoryURL),
			err,
			errors.LevelError,
		)
	}
	return nil
}

func (p *PostgresDB) InsertRun(ctx context.Context, run *models.Run) error {
	return insertRun(ctx, p.db, run)
}

func (p *PostgresDB) ListRuns(ctx context.Context, repoURL string, limit int) ([]models.Run, error) {
	query := `
		SELECT id, kind, repository_url, branch, status, error_message,
			contributor_count, commit_count, duration_seconds, started_at
		FROM runs
	`

	var args []any
	paramCount := 0

	if repoURL != "" {
		paramCount++
		query += fmt.Sprintf(" WHERE repository_url = $%d", paramCount)
		args = append(args, repoURL)
	}

	paramCount++
	query += fmt.Sprintf(" ORDER BY started_at DESC LIMIT $%d", paramCount)
	args = append(args, limit)

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.New(
			"DB_RUN_ERROR",
			"Failed to query runs",
			"Could not fetch run history",
			err,
			errors.LevelError,
		)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var r models.Run
		err := rows.Scan(
			&r.ID, &r.Kind, &r.RepositoryURL, &r.Branch, &r.Status, &r.ErrorMessage,
			&r.ContributorCount, &r.CommitCount, &r.DurationSeconds, &r.StartedAt,
		)
		if err != nil {
			return nil, errors.New(
				"DB_RUN_ERROR",
				"Failed to scan run",
				"Error while scanning run row",
				err,
				errors.LevelError,
			)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.New(
			"DB_RUN_ERROR",
			"Failed to process runs",
			"Error while processing run rows",
			err,
			errors.LevelError,
		)
	}

	return runs, nil
}

func (p *PostgresDB) RecordPublication(ctx context.Context, run *models.Run, pub *models.PublicationRecord) error {
	return p.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := insertRun(ctx, tx, run); err != nil {
			return err
		}
		pub.RunID = run.ID

		query := `
			INSERT INTO publications (
				run_id, page_id, page_url, title, space_key, source, published_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`

		row := tx.QueryRowContext(ctx, query,
			pub.RunID, pub.Publication.PageID, pub.Publication.PageURL, pub.Publication.Title,
			pub.Publication.SpaceKey, pub.Source, pub.PublishedAt,
		)
		if err := row.Scan(&pub.ID); err != nil {
			return errors.New(
				"DB_PUBLICATION_ERROR",
				"Failed to insert publication",
				fmt.Sprintf("Could not record page '%s'", pub.Publication.PageID),
				err,
				errors.LevelError,
			)
		}
		return nil
	})
}

func (p *PostgresDB) ListPublications(ctx context.Context, limit int) ([]models.PublicationRecord, error) {
	query := `
		SELECT id, run_id, page_id, page_url, title, space_key, source, published_at
		FROM publications
		ORDER BY published_at DESC
		LIMIT $1
	`

	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.New(
			"DB_PUBLICATION_ERROR",
			"Failed to query publications",
			"Could not fetch publication history",
			err,
			errors.LevelError,
		)
	}
	defer rows.Close()

	var pubs []models.PublicationRecord
	for rows.Next() {
		var r models.PublicationRecord
		err := rows.Scan(
			&r.ID, &r.RunID, &r.Publication.PageID, &r.Publication.PageURL,
			&r.Publication.Title, &r.Publication.SpaceKey, &r.Source, &r.PublishedAt,
		)
		if err != nil {
			return nil, errors.New(
				"DB_PUBLICATION_ERROR",
				"Failed to scan publication",
				"Error while scanning publication row",
				err,
				errors.LevelError,
			)
		}
		pubs = append(pubs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.New(
			"DB_PUBLICATION_ERROR",
			"Failed to process publications",
			"Error while processing publication rows",
			err,
			errors.LevelError,
		)
	}

	return pubs, nil
}

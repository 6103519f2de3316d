package pgrepo

import (
	"context"
	"fmt"
	"time"

	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	queryLoadCollection = `SELECT id, data FROM menu_documents WHERE path = $1 ORDER BY id`
	queryUpsertDocument = `
INSERT INTO menu_documents (path, id, data)
VALUES ($1, $2, $3)
ON CONFLICT (path, id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
	queryDeleteDocument = `DELETE FROM menu_documents WHERE path = $1 AND id = $2`
	queryNotify         = `SELECT pg_notify($1, $2)`
)

// documentRepository reads and writes collections in menu_documents. Every
// write notifies the channel with the collection path in the same
// transaction, so listeners only hear about committed changes.
type documentRepository struct {
	db      *pgxpool.Pool
	tx      *TransactionManager
	channel string
}

func newDocumentRepository(db *pgxpool.Pool, channel string) *documentRepository {
	return &documentRepository{
		db:      db,
		tx:      NewTransactionManager(db),
		channel: channel,
	}
}

func (r *documentRepository) LoadCollection(ctx context.Context, path string) (map[string]domain.Document, error) {
	start := time.Now()
	rows, err := r.db.Query(ctx, queryLoadCollection, path)
	if err != nil {
		logger.DBQuery(queryLoadCollection, time.Since(start), err)
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	defer rows.Close()

	docs := make(map[string]domain.Document)
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		var doc domain.Document
		if err := doc.Scan(raw); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", id, err)
		}
		docs[id] = doc
	}
	err = rows.Err()
	logger.DBQuery(queryLoadCollection, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return docs, nil
}

func (r *documentRepository) SetRecord(ctx context.Context, path, id string, data domain.Document) error {
	return r.write(ctx, path, queryUpsertDocument, path, id, data)
}

func (r *documentRepository) DeleteRecord(ctx context.Context, path, id string) error {
	return r.write(ctx, path, queryDeleteDocument, path, id)
}

func (r *documentRepository) write(ctx context.Context, path, query string, args ...any) error {
	start := time.Now()
	err := r.tx.Do(ctx, func(ctx context.Context) error {
		db := conn(ctx, r.db)
		if _, err := db.Exec(ctx, query, args...); err != nil {
			return err
		}
		_, err := db.Exec(ctx, queryNotify, r.channel, path)
		return err
	})
	logger.DBQuery(query, time.Since(start), err)
	return err
}

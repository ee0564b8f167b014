package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arrivaldo/code-challenge-backend/models"
)

// documentKey is the primary key of the single row/document every backend
// keeps the record set under.
const documentKey = "main"

// PostgresRecordStore keeps the whole document in one JSONB row with a
// version column checked on every save.
type PostgresRecordStore struct {
	DB *sql.DB
}

func NewPostgresRecordStore(db *sql.DB) *PostgresRecordStore {
	return &PostgresRecordStore{DB: db}
}

type documentBody struct {
	Users  []models.User  `json:"users"`
	Admins []models.Admin `json:"admins"`
}

func (s *PostgresRecordStore) Load(ctx context.Context) (*models.Document, error) {
	var (
		version int64
		raw     []byte
	)
	err := s.DB.QueryRowContext(ctx, `
		SELECT version, body FROM app_document WHERE id = $1
	`, documentKey).Scan(&version, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NewDocument(), nil
		}
		return nil, fmt.Errorf("%w: loading document: %v", ErrStorageUnavailable, err)
	}

	var body documentBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("%w: parsing document body: %v", ErrStorageUnavailable, err)
	}
	doc := &models.Document{Version: version, Users: body.Users, Admins: body.Admins}
	if doc.Users == nil {
		doc.Users = []models.User{}
	}
	if doc.Admins == nil {
		doc.Admins = []models.Admin{}
	}
	return doc, nil
}

func (s *PostgresRecordStore) Save(ctx context.Context, doc *models.Document) error {
	raw, err := json.Marshal(documentBody{Users: doc.Users, Admins: doc.Admins})
	if err != nil {
		return fmt.Errorf("%w: encoding document body: %v", ErrStorageUnavailable, err)
	}

	res, err := s.DB.ExecContext(ctx, `
		UPDATE app_document SET body = $1, version = version + 1
		WHERE id = $2 AND version = $3
	`, raw, documentKey, doc.Version)
	if err != nil {
		return fmt.Errorf("%w: saving document: %v", ErrStorageUnavailable, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: saving document: %v", ErrStorageUnavailable, err)
	}
	if affected == 1 {
		doc.Version++
		return nil
	}
	if doc.Version != 0 {
		return ErrVersionConflict
	}

	// First-ever save: the row does not exist yet. A concurrent first
	// writer loses on the primary key.
	res, err = s.DB.ExecContext(ctx, `
		INSERT INTO app_document (id, version, body) VALUES ($1, 1, $2)
		ON CONFLICT (id) DO NOTHING
	`, documentKey, raw)
	if err != nil {
		return fmt.Errorf("%w: inserting document: %v", ErrStorageUnavailable, err)
	}
	affected, err = res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: inserting document: %v", ErrStorageUnavailable, err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}
	doc.Version = 1
	return nil
}

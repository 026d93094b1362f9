package repository

import (
	"context"
	"time"
)

// IdempotencyKey is a row of idempotency_keys.
type IdempotencyKey struct {
	IdempotencyKey string
	RequestHash    string
	Method         string
	Path           string
	ResponseStatus int32
	ResponseBody   []byte
	ContentType    string
	InProgress     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ExpiresAt      time.Time
}

const idempotencyKeyColumns = `idempotency_key, request_hash, method, path, response_status,
       response_body, content_type, in_progress, created_at, updated_at, expires_at`

func scanIdempotencyKey(row interface{ Scan(...interface{}) error }) (IdempotencyKey, error) {
	var i IdempotencyKey
	err := row.Scan(
		&i.IdempotencyKey,
		&i.RequestHash,
		&i.Method,
		&i.Path,
		&i.ResponseStatus,
		&i.ResponseBody,
		&i.ContentType,
		&i.InProgress,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ExpiresAt,
	)
	return i, err
}

const getIdempotencyKey = `-- name: GetIdempotencyKey :one
SELECT ` + idempotencyKeyColumns + `
FROM idempotency_keys
WHERE idempotency_key = $1 AND expires_at > NOW()
`

func (q *Queries) GetIdempotencyKey(ctx context.Context, idempotencyKey string) (IdempotencyKey, error) {
	row := q.db.QueryRow(ctx, getIdempotencyKey, idempotencyKey)
	return scanIdempotencyKey(row)
}

const reserveIdempotencyKey = `-- name: ReserveIdempotencyKey :one
INSERT INTO idempotency_keys (idempotency_key, request_hash, method, path, in_progress, expires_at)
VALUES ($1, $2, $3, $4, TRUE, $5)
ON CONFLICT (idempotency_key) DO NOTHING
RETURNING ` + idempotencyKeyColumns + `
`

type ReserveIdempotencyKeyParams struct {
	IdempotencyKey string
	RequestHash    string
	Method         string
	Path           string
	ExpiresAt      time.Time
}

// ReserveIdempotencyKey returns pgx.ErrNoRows when the key is already held.
func (q *Queries) ReserveIdempotencyKey(ctx context.Context, arg ReserveIdempotencyKeyParams) (IdempotencyKey, error) {
	row := q.db.QueryRow(ctx, reserveIdempotencyKey,
		arg.IdempotencyKey,
		arg.RequestHash,
		arg.Method,
		arg.Path,
		arg.ExpiresAt,
	)
	return scanIdempotencyKey(row)
}

const finalizeIdempotencyKey = `-- name: FinalizeIdempotencyKey :one
UPDATE idempotency_keys
SET response_status = $1,
    response_body = $2,
    content_type = $3,
    in_progress = FALSE,
    updated_at = NOW()
WHERE idempotency_key = $4 AND request_hash = $5
RETURNING ` + idempotencyKeyColumns + `
`

type FinalizeIdempotencyKeyParams struct {
	ResponseStatus int32
	ResponseBody   []byte
	ContentType    string
	IdempotencyKey string
	RequestHash    string
}

func (q *Queries) FinalizeIdempotencyKey(ctx context.Context, arg FinalizeIdempotencyKeyParams) (IdempotencyKey, error) {
	row := q.db.QueryRow(ctx, finalizeIdempotencyKey,
		arg.ResponseStatus,
		arg.ResponseBody,
		arg.ContentType,
		arg.IdempotencyKey,
		arg.RequestHash,
	)
	return scanIdempotencyKey(row)
}

const deleteExpiredIdempotencyKey = `-- name: DeleteExpiredIdempotencyKey :exec
DELETE FROM idempotency_keys
WHERE idempotency_key = $1 AND expires_at <= NOW()
`

func (q *Queries) DeleteExpiredIdempotencyKey(ctx context.Context, idempotencyKey string) error {
	_, err := q.db.Exec(ctx, deleteExpiredIdempotencyKey, idempotencyKey)
	return err
}

const deleteExpiredIdempotencyKeys = `-- name: DeleteExpiredIdempotencyKeys :execrows
DELETE FROM idempotency_keys
WHERE expires_at <= $1
`

func (q *Queries) DeleteExpiredIdempotencyKeys(ctx context.Context, before time.Time) (int64, error) {
	result, err := q.db.Exec(ctx, deleteExpiredIdempotencyKeys, before)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

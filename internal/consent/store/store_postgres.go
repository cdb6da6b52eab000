package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"guardian/internal/consent"
	"guardian/pkg/domain"
	"guardian/pkg/platform/sentinel"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx, so the
// same store code serves both plain reads and transactional mutations.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore persists users, profiles and consent records in PostgreSQL.
// See schema.sql for the table layout.
type PostgresStore struct {
	q querier
}

// NewPostgresStore wraps a database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{q: db}
}

// NewPostgresTx wraps an open transaction. Used by the transactional runner
// so grant/revoke mutations commit or roll back together.
func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{q: tx}
}

const recordColumns = `id, child_user_id, parent_email, parent_name, method, scope,
	granted, consent_date, expires_at, revoked_at, revoked_reason,
	kba_answer_digest, kba_score, payment_reference, payment_verified,
	ip_address, user_agent, created_at`

func (s *PostgresStore) FindUser(ctx context.Context, userID domain.UserID) (*consent.User, error) {
	var user consent.User
	var uid uuid.UUID
	err := s.q.QueryRowContext(ctx,
		`SELECT id, email, name FROM users WHERE id = $1`, uuid.UUID(userID),
	).Scan(&uid, &user.Email, &user.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	user.ID = domain.UserID(uid)

	profile, err := s.findProfile(ctx, userID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return nil, err
	}
	user.Profile = profile
	return &user, nil
}

func (s *PostgresStore) findProfile(ctx context.Context, userID domain.UserID) (*consent.Profile, error) {
	var p consent.Profile
	var uid uuid.UUID
	err := s.q.QueryRowContext(ctx,
		`SELECT user_id, language, is_minor, consent_status, consent_date,
		        coppa_compliant, parent_email, parent_name,
		        consent_token_digest, consent_token_expires
		 FROM profiles WHERE user_id = $1`, uuid.UUID(userID),
	).Scan(&uid, &p.Language, &p.IsMinor, &p.ConsentStatus, &p.ConsentDate,
		&p.COPPACompliant, &p.ParentEmail, &p.ParentName,
		&p.ConsentTokenDigest, &p.ConsentTokenExpires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	p.UserID = domain.UserID(uid)
	return &p, nil
}

func (s *PostgresStore) FindActiveConsent(ctx context.Context, userID domain.UserID, now time.Time) (*consent.Record, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+recordColumns+`
		 FROM consent_records
		 WHERE child_user_id = $1 AND granted AND revoked_at IS NULL AND expires_at > $2
		 ORDER BY consent_date DESC
		 LIMIT 1`, uuid.UUID(userID), now)
	return scanRecord(row)
}

func (s *PostgresStore) FindConsent(ctx context.Context, recordID domain.ConsentID) (*consent.Record, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM consent_records WHERE id = $1`, uuid.UUID(recordID))
	return scanRecord(row)
}

func (s *PostgresStore) FindLatestPendingConsent(ctx context.Context, userID domain.UserID, method domain.VerificationMethod) (*consent.Record, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+recordColumns+`
		 FROM consent_records
		 WHERE child_user_id = $1 AND method = $2 AND NOT granted AND revoked_at IS NULL
		 ORDER BY created_at DESC
		 LIMIT 1`, uuid.UUID(userID), method.String())
	return scanRecord(row)
}

func (s *PostgresStore) CreateConsent(ctx context.Context, r *consent.Record) error {
	scope := make([]string, len(r.Scope))
	for i, sc := range r.Scope {
		scope[i] = sc.String()
	}
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO consent_records (`+recordColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)`,
		uuid.UUID(r.ID), uuid.UUID(r.ChildUserID), r.ParentEmail, r.ParentName,
		r.Method.String(), pq.Array(scope),
		r.Granted, r.ConsentDate, r.ExpiresAt, r.RevokedAt, r.RevokedReason,
		r.KBAAnswerDigest, r.KBAScore, r.PaymentReference, r.PaymentVerified,
		r.IPAddress, r.UserAgent, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("create consent record: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateConsent(ctx context.Context, r *consent.Record) error {
	result, err := s.q.ExecContext(ctx,
		`UPDATE consent_records SET
		   granted = $2, consent_date = $3, expires_at = $4,
		   revoked_at = $5, revoked_reason = $6,
		   kba_answer_digest = $7, kba_score = $8,
		   payment_reference = $9, payment_verified = $10,
		   ip_address = $11
		 WHERE id = $1`,
		uuid.UUID(r.ID),
		r.Granted, r.ConsentDate, r.ExpiresAt,
		r.RevokedAt, r.RevokedReason,
		r.KBAAnswerDigest, r.KBAScore,
		r.PaymentReference, r.PaymentVerified,
		r.IPAddress)
	if err != nil {
		return fmt.Errorf("update consent record: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) UpdateProfile(ctx context.Context, userID domain.UserID, update consent.ProfileUpdate) error {
	sets := make([]string, 0, 8)
	args := []any{uuid.UUID(userID)}
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.ConsentStatus != nil {
		add("consent_status", string(*update.ConsentStatus))
	}
	if update.ConsentDate != nil {
		add("consent_date", *update.ConsentDate)
	}
	if update.COPPACompliant != nil {
		add("coppa_compliant", *update.COPPACompliant)
	}
	if update.ParentEmail != nil {
		add("parent_email", *update.ParentEmail)
	}
	if update.ParentName != nil {
		add("parent_name", *update.ParentName)
	}
	if update.ConsentTokenDigest != nil {
		add("consent_token_digest", *update.ConsentTokenDigest)
	}
	if update.TokenExpires != nil {
		add("consent_token_expires", *update.TokenExpires)
	}
	if update.ClearToken {
		sets = append(sets, "consent_token_digest = ''", "consent_token_expires = NULL")
	}
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE profiles SET " + strings.Join(sets, ", ") + " WHERE user_id = $1"
	result, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindProfileByTokenDigest(ctx context.Context, digest string) (*consent.Profile, error) {
	if digest == "" {
		return nil, sentinel.ErrNotFound
	}
	var p consent.Profile
	var uid uuid.UUID
	err := s.q.QueryRowContext(ctx,
		`SELECT user_id, language, is_minor, consent_status, consent_date,
		        coppa_compliant, parent_email, parent_name,
		        consent_token_digest, consent_token_expires
		 FROM profiles WHERE consent_token_digest = $1`, digest,
	).Scan(&uid, &p.Language, &p.IsMinor, &p.ConsentStatus, &p.ConsentDate,
		&p.COPPACompliant, &p.ParentEmail, &p.ParentName,
		&p.ConsentTokenDigest, &p.ConsentTokenExpires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile by token: %w", err)
	}
	p.UserID = domain.UserID(uid)
	return &p, nil
}

func (s *PostgresStore) ListConsentHistory(ctx context.Context, userID domain.UserID) ([]*consent.Record, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+recordColumns+`
		 FROM consent_records WHERE child_user_id = $1
		 ORDER BY created_at DESC`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list consent history: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *PostgresStore) FindExpiring(ctx context.Context, now, until time.Time) ([]*consent.Record, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+recordColumns+`
		 FROM consent_records
		 WHERE granted AND revoked_at IS NULL AND expires_at > $1 AND expires_at <= $2`,
		now, until)
	if err != nil {
		return nil, fmt.Errorf("find expiring consents: %w", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (s *PostgresStore) DeleteExpiredRecords(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := s.q.ExecContext(ctx,
		`DELETE FROM consent_records
		 WHERE (NOT granted AND created_at < $1)
		    OR (revoked_at IS NOT NULL AND revoked_at < $1)`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired records: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired records: %w", err)
	}
	return int(n), nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecordFrom(row rowScanner) (*consent.Record, error) {
	var r consent.Record
	var rid, uid uuid.UUID
	var method string
	var scope pq.StringArray
	err := row.Scan(&rid, &uid, &r.ParentEmail, &r.ParentName, &method, &scope,
		&r.Granted, &r.ConsentDate, &r.ExpiresAt, &r.RevokedAt, &r.RevokedReason,
		&r.KBAAnswerDigest, &r.KBAScore, &r.PaymentReference, &r.PaymentVerified,
		&r.IPAddress, &r.UserAgent, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	r.ID = domain.ConsentID(rid)
	r.ChildUserID = domain.UserID(uid)
	r.Method = domain.VerificationMethod(method)
	r.Scope = make([]domain.ConsentScope, len(scope))
	for i, sc := range scope {
		r.Scope[i] = domain.ConsentScope(sc)
	}
	return &r, nil
}

func scanRecord(row *sql.Row) (*consent.Record, error) {
	record, err := scanRecordFrom(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan consent record: %w", err)
	}
	return record, nil
}

func collectRecords(rows *sql.Rows) ([]*consent.Record, error) {
	var out []*consent.Record
	for rows.Next() {
		record, err := scanRecordFrom(rows)
		if err != nil {
			return nil, fmt.Errorf("scan consent record: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consent records: %w", err)
	}
	return out, nil
}

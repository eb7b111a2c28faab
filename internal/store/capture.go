package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Capture represents a stored palm capture row, including the encoded frame.
type Capture struct {
	ID               string
	CapturedAt       time.Time
	Kind             string
	DistanceCm       int
	AlignmentPercent int
	PairedID         string
	Image            []byte
}

// CaptureRepository provides CRUD operations for captures.
type CaptureRepository struct {
	db *sql.DB
}

// Captures returns the capture repository for this store.
func (s *Store) Captures() *CaptureRepository {
	return &CaptureRepository{db: s.db}
}

// Create inserts a new capture into the database.
func (r *CaptureRepository) Create(c *Capture) error {
	_, err := r.db.Exec(
		`INSERT INTO captures (id, captured_at, kind, distance_cm, alignment_percent, paired_id, image)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.CapturedAt, c.Kind, c.DistanceCm, c.AlignmentPercent, c.PairedID, c.Image,
	)
	return err
}

// GetByID retrieves a capture by its ID, without the image payload.
func (r *CaptureRepository) GetByID(id string) (*Capture, error) {
	c := &Capture{}

	err := r.db.QueryRow(
		`SELECT id, captured_at, kind, distance_cm, alignment_percent, paired_id
		 FROM captures WHERE id = ?`,
		id,
	).Scan(&c.ID, &c.CapturedAt, &c.Kind, &c.DistanceCm, &c.AlignmentPercent, &c.PairedID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return c, nil
}

// GetImage retrieves the encoded frame for a capture.
func (r *CaptureRepository) GetImage(id string) ([]byte, error) {
	var image []byte

	err := r.db.QueryRow(`SELECT image FROM captures WHERE id = ?`, id).Scan(&image)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return image, nil
}

// List retrieves all captures, newest first, without image payloads.
func (r *CaptureRepository) List() ([]*Capture, error) {
	rows, err := r.db.Query(
		`SELECT id, captured_at, kind, distance_cm, alignment_percent, paired_id
		 FROM captures ORDER BY captured_at DESC, id DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []*Capture
	for rows.Next() {
		c := &Capture{}

		err := rows.Scan(&c.ID, &c.CapturedAt, &c.Kind, &c.DistanceCm, &c.AlignmentPercent, &c.PairedID)
		if err != nil {
			return nil, err
		}

		captures = append(captures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return captures, nil
}

// Delete removes a capture from the database by its ID.
func (r *CaptureRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM captures WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Trim deletes the oldest captures so that at most limit rows remain.
// Pairs share a capture timestamp, so callers that store regular and
// infrared frames together should pass an even limit to keep pairs intact.
func (r *CaptureRepository) Trim(limit int) error {
	_, err := r.db.Exec(
		`DELETE FROM captures WHERE id NOT IN (
			SELECT id FROM captures ORDER BY captured_at DESC, id DESC LIMIT ?
		)`,
		limit,
	)
	return err
}

// Count returns the number of stored captures.
func (r *CaptureRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM captures`).Scan(&n)
	return n, err
}

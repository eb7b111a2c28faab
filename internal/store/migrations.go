package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Captures table - stores finished palm captures with their frame data
		`CREATE TABLE IF NOT EXISTS captures (
			id TEXT PRIMARY KEY,
			captured_at DATETIME NOT NULL,
			kind TEXT NOT NULL CHECK(kind IN ('regular', 'infrared')),
			distance_cm INTEGER NOT NULL,
			alignment_percent INTEGER NOT NULL,
			paired_id TEXT NOT NULL DEFAULT '',
			image BLOB
		)`,

		// Settings table - stores calibration overrides as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_captures_captured_at ON captures(captured_at)`,
		`CREATE INDEX IF NOT EXISTS idx_captures_paired_id ON captures(paired_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

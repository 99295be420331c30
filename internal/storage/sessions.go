package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionRecord is one finished session.
type SessionRecord struct {
	ID         string // assigned by SaveSession when empty
	GameID     string
	Catalog    string
	Reason     string
	Rounds     int
	Correct    int
	Points     int
	Remaining  int
	FinalScore int
	CreatedAt  time.Time
	Log        []RoundRecord
}

// RoundRecord is one judged guess of a session.
type RoundRecord struct {
	Round      int
	Target     string
	Correct    bool
	Hit        string
	MissMeters float64
}

// SaveSession stores a session and its round log in one transaction and
// returns the session ID.
func (s *Store) SaveSession(rec SessionRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions
		 (id, game_id, catalog, reason, rounds, correct, points, remaining, final_score)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GameID, rec.Catalog, rec.Reason, rec.Rounds,
		rec.Correct, rec.Points, rec.Remaining, rec.FinalScore,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}

	for _, r := range rec.Log {
		_, err := tx.Exec(
			`INSERT INTO rounds (session_id, round, target, correct, hit, miss_meters)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, r.Round, r.Target, r.Correct, r.Hit, r.MissMeters,
		)
		if err != nil {
			return "", fmt.Errorf("storage: cannot save round %d: %w", r.Round, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return rec.ID, nil
}

// RecentSessions returns the latest sessions of a game, newest first,
// without their round logs.
func (s *Store) RecentSessions(gameID string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, catalog, reason, rounds, correct, points, remaining, final_score, created_at
		 FROM sessions
		 WHERE game_id = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var r SessionRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.GameID, &r.Catalog, &r.Reason, &r.Rounds,
			&r.Correct, &r.Points, &r.Remaining, &r.FinalScore, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan session: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SessionRounds returns the round log of a session in play order.
func (s *Store) SessionRounds(sessionID string) ([]RoundRecord, error) {
	rows, err := s.db.Query(
		`SELECT round, target, correct, hit, miss_meters
		 FROM rounds
		 WHERE session_id = ?
		 ORDER BY round`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var log []RoundRecord
	for rows.Next() {
		var r RoundRecord
		if err := rows.Scan(&r.Round, &r.Target, &r.Correct, &r.Hit, &r.MissMeters); err != nil {
			return nil, fmt.Errorf("storage: cannot scan round: %w", err)
		}
		log = append(log, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return log, nil
}

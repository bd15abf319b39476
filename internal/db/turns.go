package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Conversation Turn Methods
// -----------------------------------------------------------------------------

// RecordTurn stores a turn. A zero ID or CreatedAt is filled in.
func (db *DB) RecordTurn(ctx context.Context, rec TurnRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	var metadataJSON []byte
	if rec.Metadata != nil {
		var err error
		metadataJSON, err = json.Marshal(rec.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal turn metadata: %w", err)
		}
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO conversation_turns (id, session_id, user_message, bot_response, intent,
		        client_id, product_id, recommended_size, confidence, fallback_used, is_error,
		        metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rec.ID, rec.SessionID, rec.UserMessage, rec.BotResponse, rec.Intent,
		rec.ClientID, rec.ProductID, rec.RecommendedSize, rec.Confidence, rec.FallbackUsed, rec.IsError,
		metadataJSON, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record turn: %w", err)
	}
	return nil
}

// ListTurns returns the most recent turns of a session, oldest first
func (db *DB) ListTurns(ctx context.Context, sessionID string, limit int) ([]TurnRecord, error) {
	if limit <= 0 {
		limit = DefaultTurnLimit
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, user_message, bot_response, intent, client_id, product_id,
		        recommended_size, confidence, fallback_used, is_error, metadata, created_at
		 FROM (
		     SELECT * FROM conversation_turns
		     WHERE session_id = $1
		     ORDER BY created_at DESC
		     LIMIT $2
		 ) recent
		 ORDER BY created_at`,
		sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	turns := make([]TurnRecord, 0)
	for rows.Next() {
		var rec TurnRecord
		var metadataJSON []byte

		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.UserMessage, &rec.BotResponse, &rec.Intent,
			&rec.ClientID, &rec.ProductID, &rec.RecommendedSize, &rec.Confidence,
			&rec.FallbackUsed, &rec.IsError, &metadataJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}

		if metadataJSON != nil {
			_ = json.Unmarshal(metadataJSON, &rec.Metadata)
		}

		turns = append(turns, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}

	return turns, nil
}

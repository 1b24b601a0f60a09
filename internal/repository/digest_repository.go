package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/sam-grant/slacker/internal/model"
)

type DigestRepository struct {
	db *sql.DB
}

func NewDigestRepository(db *sql.DB) *DigestRepository {
	return &DigestRepository{db: db}
}

func (r *DigestRepository) SaveDigest(digest *model.ChannelDigest) error {
	actionItems, err := json.Marshal(digest.ActionItems)
	if err != nil {
		return err
	}

	decisions, err := json.Marshal(digest.Decisions)
	if err != nil {
		return err
	}

	return r.db.QueryRow(`
		INSERT INTO channel_digest(channel_id, window_start, window_end, summary, action_items, decisions, message_count, model_used)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, digest.ChannelID, digest.WindowStart, digest.WindowEnd, digest.Summary, actionItems, decisions, digest.MessageCount, digest.ModelUsed).Scan(&digest.ID)
}

func (r *DigestRepository) GetLatestDigest() (*model.ChannelDigest, error) {
	var d model.ChannelDigest
	var actionItemsJSON, decisionsJSON []byte

	err := r.db.QueryRow(`
		SELECT id, channel_id, window_start, window_end, summary, action_items, decisions, message_count, model_used, created_at
		FROM channel_digest
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&d.ID, &d.ChannelID, &d.WindowStart, &d.WindowEnd, &d.Summary, &actionItemsJSON, &decisionsJSON, &d.MessageCount, &d.ModelUsed, &d.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(actionItemsJSON, &d.ActionItems); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(decisionsJSON, &d.Decisions); err != nil {
		return nil, err
	}

	return &d, nil
}

func (r *DigestRepository) GetDigests(limit, offset int) ([]model.ChannelDigest, error) {
	rows, err := r.db.Query(`
		SELECT id, channel_id, window_start, window_end, summary, action_items, decisions, message_count, model_used, created_at
		FROM channel_digest
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var digests []model.ChannelDigest
	for rows.Next() {
		var d model.ChannelDigest
		var actionItemsJSON, decisionsJSON []byte
		err := rows.Scan(&d.ID, &d.ChannelID, &d.WindowStart, &d.WindowEnd, &d.Summary, &actionItemsJSON, &decisionsJSON, &d.MessageCount, &d.ModelUsed, &d.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(actionItemsJSON, &d.ActionItems); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(decisionsJSON, &d.Decisions); err != nil {
			return nil, err
		}
		digests = append(digests, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return digests, nil
}

func (r *DigestRepository) GetDigestTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM channel_digest`).Scan(&total)
	return total, err
}

package repository

import (
	"context"
	"time"

	"github.com/bluedrop/aquarate/internal/quote/domain"
	"github.com/bluedrop/aquarate/pkg/db"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// nextSeqSQL claims the next per-customer sequence number. The upsert and
// the read happen in one statement, so two concurrent appends for the same
// customer can never observe the same value.
const nextSeqSQL = `INSERT INTO quote_sequences (username, next_seq)
VALUES (?, 1)
ON CONFLICT (username) DO UPDATE SET next_seq = quote_sequences.next_seq + 1
RETURNING next_seq`

const appendAttempts = 3

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Append(ctx context.Context, gdb *gorm.DB, quote *domain.Quote) error {
	var lastErr error
	for attempt := 0; attempt < appendAttempts; attempt++ {
		err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var seq int64
			if err := tx.Raw(nextSeqSQL, quote.Username).Scan(&seq).Error; err != nil {
				return err
			}
			quote.SequenceNumber = seq
			return tx.Create(quote).Error
		})
		if err == nil {
			return nil
		}
		if !db.IsDuplicateKeyErr(err) && !db.IsSerializationErr(err) {
			return err
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 10 * time.Millisecond):
		}
	}
	if lastErr != nil {
		return domain.ErrStorageConflict
	}
	return nil
}

func (r *repo) ListByUsername(ctx context.Context, gdb *gorm.DB, username string, afterSeq int64, limit int) ([]domain.Quote, error) {
	q := gdb.WithContext(ctx).
		Where("username = ? AND sequence_number > ?", username, afterSeq).
		Order("sequence_number ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var quotes []domain.Quote
	if err := q.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *repo) CountByUsername(ctx context.Context, gdb *gorm.DB, username string) (int64, error) {
	var count int64
	err := gdb.WithContext(ctx).
		Model(&domain.Quote{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) FindByID(ctx context.Context, gdb *gorm.DB, username string, id snowflake.ID) (*domain.Quote, error) {
	var quote domain.Quote
	err := gdb.WithContext(ctx).
		Where("id = ? AND username = ?", id, username).
		First(&quote).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &quote, nil
}

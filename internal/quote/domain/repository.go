package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// Append claims the customer's next sequence number and inserts the
	// quote in one transaction. On success the quote's SequenceNumber is
	// populated.
	Append(ctx context.Context, db *gorm.DB, quote *Quote) error
	// ListByUsername returns quotes in sequence order, starting after
	// afterSeq. A limit of 0 means no limit.
	ListByUsername(ctx context.Context, db *gorm.DB, username string, afterSeq int64, limit int) ([]Quote, error)
	CountByUsername(ctx context.Context, db *gorm.DB, username string) (int64, error)
	FindByID(ctx context.Context, db *gorm.DB, username string, id snowflake.ID) (*Quote, error)
}

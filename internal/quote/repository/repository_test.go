package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/bluedrop/aquarate/internal/quote/domain"
	"github.com/bluedrop/aquarate/pkg/db"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Quote{}, &domain.QuoteSequence{}))
	return gdb
}

func newQuote(node *snowflake.Node, username string, gallons int64) *domain.Quote {
	return &domain.Quote{
		ID:              node.Generate(),
		Username:        username,
		Gallons:         gallons,
		DeliveryAddress: "1234 Placeholder Ln, Houston, TX 77002",
		DeliveryState:   "TX",
		UnitPrice:       decimal.RequireFromString("1.725"),
	}
}

func TestAppendAssignsContiguousSequences(t *testing.T) {
	gdb := newTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := Provide()
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Append(ctx, gdb, newQuote(node, "alice", int64(100+i)))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "append %d", i)
	}

	quotes, err := repo.ListByUsername(ctx, gdb, "alice", 0, 0)
	require.NoError(t, err)
	require.Len(t, quotes, n)

	seqs := make([]int64, 0, n)
	for _, q := range quotes {
		seqs = append(seqs, q.SequenceNumber)
	}
	assert.True(t, sort.SliceIsSorted(seqs, func(i, j int) bool { return seqs[i] < seqs[j] }),
		"history must come back in sequence order: %v", seqs)
	for i, seq := range seqs {
		assert.Equal(t, int64(i+1), seq, "sequence numbers must be contiguous from 1: %v", seqs)
	}
}

func TestAppendSequencesAreScopedPerCustomer(t *testing.T) {
	gdb := newTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := Provide()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Append(ctx, gdb, newQuote(node, "alice", 100)))
	}
	require.NoError(t, repo.Append(ctx, gdb, newQuote(node, "bob", 200)))

	bobQuotes, err := repo.ListByUsername(ctx, gdb, "bob", 0, 0)
	require.NoError(t, err)
	require.Len(t, bobQuotes, 1)
	assert.Equal(t, int64(1), bobQuotes[0].SequenceNumber)

	count, err := repo.CountByUsername(ctx, gdb, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestListByUsernameCursor(t *testing.T) {
	gdb := newTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := Provide()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, gdb, newQuote(node, "alice", 100)))
	}

	quotes, err := repo.ListByUsername(ctx, gdb, "alice", 2, 2)
	require.NoError(t, err)
	require.Len(t, quotes, 2)
	assert.Equal(t, int64(3), quotes[0].SequenceNumber)
	assert.Equal(t, int64(4), quotes[1].SequenceNumber)
}

func TestFindByIDScopedToOwner(t *testing.T) {
	gdb := newTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := Provide()
	ctx := context.Background()

	quote := newQuote(node, "alice", 100)
	require.NoError(t, repo.Append(ctx, gdb, quote))

	found, err := repo.FindByID(ctx, gdb, "alice", quote.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, quote.ID, found.ID)

	// Another customer cannot see it.
	found, err = repo.FindByID(ctx, gdb, "bob", quote.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestTotalCostIsProjection(t *testing.T) {
	gdb := newTestDB(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	repo := Provide()
	ctx := context.Background()

	quote := newQuote(node, "alice", 100)
	require.NoError(t, repo.Append(ctx, gdb, quote))

	stored, err := repo.FindByID(ctx, gdb, "alice", quote.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	want := stored.UnitPrice.Mul(decimal.NewFromInt(stored.Gallons))
	assert.True(t, stored.TotalCost().Equal(want),
		fmt.Sprintf("total cost %s, want %s", stored.TotalCost(), want))
}

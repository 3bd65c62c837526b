// internal/services/cache_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/damaiputra/living-backend/internal/models"
)

func newTestCache(t *testing.T) (*CacheService, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCacheServiceWithClient(client), mr
}

type cachedTicket struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func TestTicketListCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	var miss []cachedTicket
	assert.False(t, cache.GetTicketList(ctx, "user-1", &miss))

	stored := []cachedTicket{
		{ID: "t1", Status: "open"},
		{ID: "t2", Status: "approved"},
	}
	cache.SetTicketList(ctx, "user-1", stored)

	var got []cachedTicket
	assert.True(t, cache.GetTicketList(ctx, "user-1", &got))
	assert.Equal(t, stored, got)

	// Other users never see it.
	var other []cachedTicket
	assert.False(t, cache.GetTicketList(ctx, "user-2", &other))
}

func TestTicketListCacheKeepsFullCount(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	// Page 1 holds two rows out of five tickets overall; the count must
	// survive the round trip, not collapse to the slice length.
	stored := ticketListPage{
		Tickets: []models.PermitTicket{
			{ReferenceNumber: "TKT-20260828-0000A1"},
			{ReferenceNumber: "TKT-20260828-0000A2"},
		},
		Total: 5,
	}
	cache.SetTicketList(ctx, "user-1", stored)

	var got ticketListPage
	assert.True(t, cache.GetTicketList(ctx, "user-1", &got))
	assert.Len(t, got.Tickets, 2)
	assert.Equal(t, int64(5), got.Total)
}

func TestTicketListCacheInvalidation(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.SetTicketList(ctx, "user-1", []cachedTicket{{ID: "t1", Status: "open"}})
	cache.InvalidateTicketList(ctx, "user-1")

	var got []cachedTicket
	assert.False(t, cache.GetTicketList(ctx, "user-1", &got))
}

func TestTicketListCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.SetTicketList(ctx, "user-1", []cachedTicket{{ID: "t1", Status: "open"}})
	mr.FastForward(ticketListTTL + 1)

	var got []cachedTicket
	assert.False(t, cache.GetTicketList(ctx, "user-1", &got))
}

func TestTicketListCacheCorruptEntryDropped(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	mr.Set(ticketListKey("user-1"), "{not-json")

	var got []cachedTicket
	assert.False(t, cache.GetTicketList(ctx, "user-1", &got))
	assert.False(t, mr.Exists(ticketListKey("user-1")))
}

package listings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dira-chat-backend/internal/bot"
)

func intRef(n int) *int { return &n }

func TestBuildSearchQuery_AllFilters(t *testing.T) {
	f := bot.Filters{
		City:     "תל אביב",
		Zone:     "מרכז העיר",
		MinPrice: intRef(3000),
		MaxPrice: intRef(6000),
		Rooms:    intRef(3),
		Floor:    intRef(2),
		Limit:    4,
	}
	query, args := buildSearchQuery(f)

	assert.Contains(t, query, "city = $1")
	assert.Contains(t, query, "zone = $2")
	assert.Contains(t, query, "price >= $3")
	assert.Contains(t, query, "price <= $4")
	assert.Contains(t, query, "rooms = $5")
	assert.Contains(t, query, "floor = $6")
	assert.Contains(t, query, "LIMIT $7")
	require.Len(t, args, 7)
	assert.Equal(t, "תל אביב", args[0])
	assert.Equal(t, 4, args[6])
}

func TestBuildSearchQuery_NoFiltersDefaultsLimit(t *testing.T) {
	query, args := buildSearchQuery(bot.Filters{})

	assert.Contains(t, query, "WHERE 1=1 ORDER BY")
	assert.Contains(t, query, "LIMIT $1")
	require.Len(t, args, 1)
	assert.Equal(t, 5, args[0])
}

func TestBuildSearchQuery_PriceRangeOnly(t *testing.T) {
	query, args := buildSearchQuery(bot.Filters{MaxPrice: intRef(5000), Limit: 10})

	assert.Contains(t, query, "price <= $1")
	assert.NotContains(t, query, "city =")
	assert.Equal(t, []interface{}{5000, 10}, args)
}

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/SnapFood-Technologies/waveorder-standalone-sub000/internal/entity"
)

func li(id, business string, qty int) domain.LineItem {
	return domain.LineItem{ID: id, BusinessID: business, ProductID: id, Quantity: qty}
}

func TestFilterTenant(t *testing.T) {
	all := []domain.LineItem{
		li("a1", "biz-a", 1),
		li("b1", "biz-b", 2),
		li("orphan", "", 1),
		li("a2", "biz-a", 3),
	}

	got := FilterTenant(all, "biz-a")
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "a2", got[1].ID)

	assert.Empty(t, FilterTenant(all, "biz-c"))
	assert.Empty(t, FilterTenant(nil, "biz-a"))
}

func TestMergeTenantReplacesOwnEntriesOnly(t *testing.T) {
	all := []domain.LineItem{
		li("a1", "biz-a", 1),
		li("b1", "biz-b", 2),
		li("a2", "biz-a", 3),
	}

	merged := MergeTenant(all, "biz-a", []domain.LineItem{li("a3", "biz-a", 5)})
	require.Len(t, merged, 2)
	assert.Equal(t, "b1", merged[0].ID, "other tenant's entries keep their order")
	assert.Equal(t, "a3", merged[1].ID)
}

func TestMergeTenantClearPurgesOrphans(t *testing.T) {
	all := []domain.LineItem{
		li("a1", "biz-a", 1),
		li("orphan", "", 1),
		li("b1", "biz-b", 2),
	}

	merged := MergeTenant(all, "biz-a", nil)
	require.Len(t, merged, 1)
	assert.Equal(t, "b1", merged[0].ID, "clearing one tenant also drops untagged entries")
}

func TestMergeTenantEmptySharedList(t *testing.T) {
	merged := MergeTenant(nil, "biz-a", []domain.LineItem{li("a1", "biz-a", 1)})
	require.Len(t, merged, 1)
	assert.Equal(t, "biz-a", merged[0].BusinessID)
}

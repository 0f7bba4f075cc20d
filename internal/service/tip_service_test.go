package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"barriotips/api/internal/repository"
)

func TestListCacheKeyIsOrderIndependent(t *testing.T) {
	a := listCacheKey(repository.TipFilter{
		CategoryIDs: []string{"food", "bars"},
		BarrioIDs:   []string{"gracia"},
	})
	b := listCacheKey(repository.TipFilter{
		CategoryIDs: []string{"bars", "food"},
		BarrioIDs:   []string{"gracia"},
	})
	assert.Equal(t, a, b)
}

func TestListCacheKeyDistinguishesFilters(t *testing.T) {
	unfiltered := listCacheKey(repository.TipFilter{})
	byCategory := listCacheKey(repository.TipFilter{CategoryIDs: []string{"food"}})
	byBarrio := listCacheKey(repository.TipFilter{BarrioIDs: []string{"food"}})

	assert.NotEqual(t, unfiltered, byCategory)
	// The same id filtering a different axis is a different query.
	assert.NotEqual(t, byCategory, byBarrio)
}

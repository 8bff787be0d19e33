package repository_test

import (
	"testing"

	"github.com/kstarostin/campfire-store-api/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestFilterMerge(t *testing.T) {
	base := repository.Filter{"user_id": "u1", "kind": "Cart"}
	merged := base.Merge(repository.Filter{"kind": "Order", "status": "open"})

	assert.Equal(t, "u1", merged["user_id"])
	assert.Equal(t, "Order", merged["kind"], "other side wins on conflicts")
	assert.Equal(t, "open", merged["status"])

	// исходный фильтр не меняется
	assert.Equal(t, "Cart", base["kind"])
	assert.NotContains(t, base, "status")
}

func TestFilterMergeNil(t *testing.T) {
	var empty repository.Filter
	assert.True(t, empty.Empty())

	merged := empty.Merge(repository.Filter{"name": "tent"})
	assert.Equal(t, "tent", merged["name"])

	merged = repository.Filter{"name": "tent"}.Merge(nil)
	assert.Equal(t, "tent", merged["name"])
	assert.False(t, merged.Empty())
}

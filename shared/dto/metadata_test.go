package dto_test

import (
	"hotel/shared/dto"
	"hotel/shared/model"
	"hotel/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadata_FromModel(t *testing.T) {
	require.NoError(t, timezone.Use("Asia/Jakarta"))
	t.Cleanup(func() { _ = timezone.Use("UTC") })

	var metadata dto.Metadata
	metadata.FromModel(model.Metadata{
		CreatedAt:  time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		ModifiedAt: time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC),
		CreatedBy:  "guest",
		ModifiedBy: "admin-1",
	})

	assert.Equal(t, dto.Metadata{
		CreatedAt:  "2026-03-01T16:30:00+07:00",
		ModifiedAt: "2026-03-03T00:00:00+07:00",
		CreatedBy:  "guest",
		ModifiedBy: "admin-1",
	}, metadata)
}

package repository

import (
	"context"
	"testing"
	"time"

	"buddy-backend/internal/digest/domain"
	"buddy-backend/pkg/database/databasetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeliveryLogPerDay(t *testing.T) {
	db := databasetest.Open(t, &domain.Delivery{})
	log := NewGormDeliveryLog(db)
	ctx := context.Background()
	at := time.Date(2024, 6, 12, 8, 0, 5, 0, time.UTC)

	sent, err := log.HasSent(ctx, "u1", "2024-06-12")
	require.NoError(t, err)
	assert.False(t, sent)

	require.NoError(t, log.MarkSent(ctx, "u1", 3, at))
	require.NoError(t, log.MarkSent(ctx, "u1", 3, at.Add(time.Minute)), "a second mark on the same day is ignored")

	sent, err = log.HasSent(ctx, "u1", "2024-06-12")
	require.NoError(t, err)
	assert.True(t, sent)

	sent, err = log.HasSent(ctx, "u1", "2024-06-13")
	require.NoError(t, err)
	assert.False(t, sent)

	var count int64
	require.NoError(t, db.Model(&domain.Delivery{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

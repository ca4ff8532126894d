package handler

import (
	"testing"
	"time"

	"github.com/sangkips/comanda-pos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	now := time.Date(2026, 10, 19, 1, 0, 0, 0, time.UTC)

	day, err := ParseDay("2026-10-01", loc, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, loc), day)

	today, err := ParseDay("", loc, now)
	require.NoError(t, err)
	assert.Equal(t, 18, today.Day())

	_, err = ParseDay("01/10/2026", loc, now)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

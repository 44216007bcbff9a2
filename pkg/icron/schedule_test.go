package icron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTriggerInfoDaily(t *testing.T) {
	ref := time.Date(2026, 8, 25, 12, 30, 0, 0, time.UTC)

	info, err := GetTriggerInfo("0 0 * * *", ref)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), info.Next)
	assert.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), info.Last)
	assert.Equal(t, 11*time.Hour+30*time.Minute, info.TimeUntilNext)
	assert.Equal(t, 12*time.Hour+30*time.Minute, info.TimeSinceLast)
}

func TestGetTriggerInfoSixField(t *testing.T) {
	ref := time.Date(2026, 8, 25, 12, 30, 0, 0, time.UTC)

	info, err := GetTriggerInfo("0 */5 * * * *", ref)
	require.NoError(t, err)
	assert.Equal(t, ref.Add(5*time.Minute), info.Next)
}

func TestGetTriggerInfoInvalidExpression(t *testing.T) {
	_, err := GetTriggerInfo("not a cron", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a cron")
}

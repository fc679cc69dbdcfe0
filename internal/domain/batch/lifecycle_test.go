package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stockpick/internal/core/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestAge(t *testing.T) {
	now := date(2024, 1, 15)

	tests := []struct {
		name    string
		inbound time.Time
		want    int
	}{
		{"five days ago", date(2024, 1, 10), 5},
		{"same day", date(2024, 1, 15), 0},
		{"future inbound clamps to zero", date(2024, 1, 20), 0},
		{"across month boundary", date(2023, 12, 1), 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(tt.inbound, now))
		})
	}
}

func TestExpired(t *testing.T) {
	now := date(2024, 1, 15)

	assert.False(t, Expired(nil, now), "no expiry date never expires")
	assert.True(t, Expired(datePtr(2024, 1, 14), now))
	assert.False(t, Expired(datePtr(2024, 1, 16), now))
	assert.False(t, Expired(datePtr(2024, 1, 15), now), "strictly before, not at")
}

func TestExpiringSoon(t *testing.T) {
	expiry := datePtr(2024, 2, 1)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"17 days out is within window", date(2024, 1, 15), true},
		{"more than 30 days out", date(2023, 12, 1), false},
		{"already past is not expiring soon", date(2024, 2, 2), false},
		{"exactly 30 days out", date(2024, 1, 2), true},
		{"31 days out", date(2024, 1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpiringSoon(expiry, 30, tt.now))
		})
	}

	assert.False(t, ExpiringSoon(nil, 30, date(2024, 1, 15)), "no expiry date")
}

func TestClassify_PriorityOrder(t *testing.T) {
	now := date(2024, 1, 15)

	t.Run("exhausted wins over expired", func(t *testing.T) {
		b := Batch{Quantity: 0, ExpiryDate: datePtr(2024, 1, 1)}
		assert.Equal(t, StatusExhausted, Classify(b, now).Status)
	})

	t.Run("expired wins over warning", func(t *testing.T) {
		b := Batch{Quantity: types.NewQuantityFromInt(10), ExpiryDate: datePtr(2024, 1, 10)}
		assert.Equal(t, StatusExpired, Classify(b, now).Status)
	})

	t.Run("warning within window", func(t *testing.T) {
		b := Batch{Quantity: types.NewQuantityFromInt(10), ExpiryDate: datePtr(2024, 2, 1)}
		assert.Equal(t, StatusWarning, Classify(b, now).Status)
	})

	t.Run("normal otherwise", func(t *testing.T) {
		b := Batch{Quantity: types.NewQuantityFromInt(10), ExpiryDate: datePtr(2024, 12, 1)}
		assert.Equal(t, StatusNormal, Classify(b, now).Status)
	})

	t.Run("no expiry date is normal", func(t *testing.T) {
		b := Batch{Quantity: types.NewQuantityFromInt(10)}
		assert.Equal(t, StatusNormal, Classify(b, now).Status)
	})
}

func TestClassify_Idempotent(t *testing.T) {
	b := Batch{Quantity: types.NewQuantityFromInt(5), ExpiryDate: datePtr(2024, 2, 1)}
	now := date(2024, 1, 15)

	first := Classify(b, now)
	second := Classify(b, now)
	assert.Equal(t, first, second)
}

func TestFilterByStatus(t *testing.T) {
	now := date(2024, 1, 15)
	batches := []Classified{
		{Batch: Batch{BatchNo: "B1", Quantity: types.NewQuantityFromInt(10)}},
		{Batch: Batch{BatchNo: "B2", Quantity: 0}},
		{Batch: Batch{BatchNo: "B3", Quantity: types.NewQuantityFromInt(5), ExpiryDate: datePtr(2024, 1, 10)}},
	}
	for i := range batches {
		batches[i].StatusInfo = Classify(batches[i].Batch, now)
	}

	assert.Len(t, FilterByStatus(batches, ""), 3, "empty status matches everything")

	exhausted := FilterByStatus(batches, StatusExhausted)
	if assert.Len(t, exhausted, 1) {
		assert.Equal(t, "B2", exhausted[0].BatchNo)
	}

	expired := FilterByStatus(batches, StatusExpired)
	if assert.Len(t, expired, 1) {
		assert.Equal(t, "B3", expired[0].BatchNo)
	}

	assert.Empty(t, FilterByStatus(batches, StatusWarning))
}

func TestClassifyWithWindow(t *testing.T) {
	now := date(2024, 1, 1)
	b := Batch{Quantity: types.NewQuantityFromInt(10), ExpiryDate: datePtr(2024, 2, 15)}

	assert.Equal(t, StatusNormal, ClassifyWithWindow(b, 30, now).Status, "45 days out, 30-day window")
	assert.Equal(t, StatusWarning, ClassifyWithWindow(b, 60, now).Status, "45 days out, 60-day window")
	assert.Equal(t, Classify(b, now), ClassifyWithWindow(b, DefaultWarningDays, now))
}

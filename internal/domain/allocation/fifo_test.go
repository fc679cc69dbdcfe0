package allocation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockpick/internal/core/id"
	"stockpick/internal/core/types"
	"stockpick/internal/domain/batch"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func qty(v int64) types.Quantity {
	return types.NewQuantityFromInt(v)
}

func testBatch(no string, inbound time.Time, quantity int64) batch.Batch {
	return batch.Batch{
		ID:          id.New(),
		BatchNo:     no,
		ItemCode:    "ITEM-1",
		WarehouseID: "WH-1",
		InboundDate: inbound,
		Quantity:    qty(quantity),
		UnitPrice:   1250,
	}
}

func testPool() []batch.Batch {
	return []batch.Batch{
		testBatch("B2", date(2024, 1, 15), 75),
		testBatch("B3", date(2024, 1, 20), 50),
		testBatch("B1", date(2024, 1, 10), 25),
	}
}

func planOf(quantity int64, batches []batch.Batch) Result {
	return Plan(Request{
		ItemCode:    "ITEM-1",
		WarehouseID: "WH-1",
		Quantity:    qty(quantity),
		Batches:     batches,
		Now:         date(2024, 2, 1),
	})
}

func TestPlan_FullAllocation(t *testing.T) {
	// Request 90 against 25+75+50: oldest batch drained, second partially.
	result := planOf(90, testPool())

	require.True(t, result.Success)
	require.Len(t, result.Lines, 2)

	assert.Equal(t, "B1", result.Lines[0].BatchNo)
	assert.Equal(t, qty(25), result.Lines[0].Quantity)
	assert.Equal(t, qty(0), result.Lines[0].QuantityAfter)

	assert.Equal(t, "B2", result.Lines[1].BatchNo)
	assert.Equal(t, qty(65), result.Lines[1].Quantity)
	assert.Equal(t, qty(10), result.Lines[1].QuantityAfter)

	assert.Equal(t, qty(90), result.Allocated)
	assert.True(t, result.Shortage.IsZero())
}

func TestPlan_PartialAllocation(t *testing.T) {
	result := planOf(200, testPool())

	require.False(t, result.Success)
	require.Len(t, result.Lines, 3)

	assert.Equal(t, "B1", result.Lines[0].BatchNo)
	assert.Equal(t, "B2", result.Lines[1].BatchNo)
	assert.Equal(t, "B3", result.Lines[2].BatchNo)
	assert.Equal(t, qty(150), result.Allocated)
	assert.Equal(t, qty(50), result.Shortage)
	assert.Contains(t, result.Message, "short")
}

func TestPlan_NoEligibleBatches(t *testing.T) {
	result := planOf(10, nil)

	assert.False(t, result.Success)
	assert.Empty(t, result.Lines)
	assert.True(t, result.Allocated.IsZero())
	assert.Equal(t, qty(10), result.Shortage)
	assert.Equal(t, "no batches available", result.Message)
}

func TestPlan_ExcludesIneligibleBatches(t *testing.T) {
	t.Run("exhausted batch skipped even when oldest", func(t *testing.T) {
		empty := testBatch("B0", date(2024, 1, 1), 0)
		result := planOf(90, append(testPool(), empty))

		for _, line := range result.Lines {
			assert.NotEqual(t, "B0", line.BatchNo)
		}
		assert.True(t, result.Success)
	})

	t.Run("expired batch skipped", func(t *testing.T) {
		expired := testBatch("B0", date(2024, 1, 1), 100)
		expired.ExpiryDate = datePtr(2024, 1, 25) // before the planning date
		result := planOf(90, append(testPool(), expired))

		for _, line := range result.Lines {
			assert.NotEqual(t, "B0", line.BatchNo)
		}
	})

	t.Run("warning batch stays eligible", func(t *testing.T) {
		soon := testBatch("B0", date(2024, 1, 1), 100)
		soon.ExpiryDate = datePtr(2024, 2, 20) // within the warning window
		result := planOf(90, append(testPool(), soon))

		require.NotEmpty(t, result.Lines)
		assert.Equal(t, "B0", result.Lines[0].BatchNo, "near-expiry stock is consumed first, not skipped")
	})

	t.Run("other item and warehouse filtered out", func(t *testing.T) {
		otherItem := testBatch("BX", date(2024, 1, 1), 100)
		otherItem.ItemCode = "ITEM-2"
		otherWH := testBatch("BY", date(2024, 1, 1), 100)
		otherWH.WarehouseID = "WH-2"

		result := planOf(200, append(testPool(), otherItem, otherWH))
		assert.Equal(t, qty(150), result.Allocated)
	})
}

func TestPlan_TieBreaks(t *testing.T) {
	inbound := date(2024, 1, 10)

	t.Run("production date breaks inbound ties", func(t *testing.T) {
		a := testBatch("B9", inbound, 10)
		a.ProductionDate = datePtr(2024, 1, 1)
		b := testBatch("B1", inbound, 10)
		b.ProductionDate = datePtr(2024, 1, 5)

		result := planOf(15, []batch.Batch{b, a})
		require.Len(t, result.Lines, 2)
		assert.Equal(t, "B9", result.Lines[0].BatchNo, "earlier production wins despite later batch number")
	})

	t.Run("production tiebreak skipped when one side lacks it", func(t *testing.T) {
		a := testBatch("B2", inbound, 10)
		a.ProductionDate = datePtr(2024, 1, 1)
		b := testBatch("B1", inbound, 10)

		result := planOf(15, []batch.Batch{a, b})
		require.Len(t, result.Lines, 2)
		assert.Equal(t, "B1", result.Lines[0].BatchNo, "falls through to batch number order")
	})

	t.Run("batch number is the final tiebreak", func(t *testing.T) {
		a := testBatch("B2", inbound, 10)
		b := testBatch("B1", inbound, 10)

		result := planOf(5, []batch.Batch{a, b})
		require.Len(t, result.Lines, 1)
		assert.Equal(t, "B1", result.Lines[0].BatchNo)
	})
}

func TestPlan_Conservation(t *testing.T) {
	// allocated + shortage == requested for any demand size.
	for _, requested := range []int64{1, 25, 90, 150, 151, 500} {
		result := planOf(requested, testPool())
		assert.Equal(t, qty(requested), result.Allocated+result.Shortage,
			"requested %d", requested)
	}
}

func TestPlan_Deterministic(t *testing.T) {
	// Planning twice over the same pool yields identical plans.
	pool := testPool()
	first := planOf(90, pool)
	second := planOf(90, pool)
	assert.Equal(t, first, second)

	// Input order must not matter either.
	reversed := []batch.Batch{pool[2], pool[1], pool[0]}
	third := planOf(90, reversed)
	assert.Equal(t, first, third)
}

func TestPlan_NonPositiveRequest(t *testing.T) {
	// A zero or negative demand is a no-op success, not an error.
	for _, requested := range []int64{0, -5} {
		result := planOf(requested, testPool())
		assert.True(t, result.Success)
		assert.Empty(t, result.Lines)
		assert.True(t, result.Allocated.IsZero())
		assert.True(t, result.Shortage.IsZero())
	}
}

func TestPlan_FractionalQuantities(t *testing.T) {
	a := testBatch("B1", date(2024, 1, 10), 0)
	a.Quantity = types.NewQuantityFromFloat64(2.5)
	b := testBatch("B2", date(2024, 1, 15), 0)
	b.Quantity = types.NewQuantityFromFloat64(4.25)

	result := Plan(Request{
		ItemCode:    "ITEM-1",
		WarehouseID: "WH-1",
		Quantity:    types.NewQuantityFromFloat64(5.75),
		Batches:     []batch.Batch{a, b},
		Now:         date(2024, 2, 1),
	})

	require.True(t, result.Success)
	require.Len(t, result.Lines, 2)
	assert.Equal(t, types.NewQuantityFromFloat64(2.5), result.Lines[0].Quantity)
	assert.Equal(t, types.NewQuantityFromFloat64(3.25), result.Lines[1].Quantity)
	assert.Equal(t, types.NewQuantityFromFloat64(1.0), result.Lines[1].QuantityAfter)
}

func TestPlan_DoesNotMutateInput(t *testing.T) {
	pool := testPool()
	before := make([]types.Quantity, len(pool))
	for i, b := range pool {
		before[i] = b.Quantity
	}

	_ = planOf(200, pool)

	for i, b := range pool {
		assert.Equal(t, before[i], b.Quantity)
	}
}

package analyst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidesmith/slidesmith/pkg/models"
)

func growth(v float64) *float64 { return &v }

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		language string
		want     string
	}{
		{"korean eok", 12_000_000_000, "ko", "120억"},
		{"korean below eok", 15_000_000, "ko", "15,000,000"},
		{"korean jo", 1_500_000_000_000, "ko", "1.5조"},
		{"korean small", 3200, "ko", "3,200"},
		{"english thousands", 1_234_567, "en", "1,234,567"},
		{"english small", 42, "en", "42"},
		{"english fraction", 12.5, "en", "12.5"},
		{"negative", -5000, "en", "-5,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatValue(tt.value, tt.language))
		})
	}
}

func TestLadder_GrowthComparison(t *testing.T) {
	ladder := NewLadder("en")
	dp := models.DataPoint{
		ID:     "data_001",
		Metric: "revenue",
		Value:  120,
		Unit:   "억원",
		Period: "2025",
		Comparison: &models.Comparison{
			Previous: 100,
		},
	}

	ins := ladder.Build(dp)
	assert.Equal(t, "data_001", ins.DataPointID)
	assert.Equal(t, "2025 revenue is 120억원", ins.Observation)
	assert.Equal(t, "Up 20% YoY", ins.Comparison)
	assert.Contains(t, ins.Implication, "expansion")
	assert.Contains(t, ins.Action, "revenue")
	assert.InDelta(t, 0.9, ins.Confidence, 1e-9)
}

func TestLadder_DeclineComparison(t *testing.T) {
	ladder := NewLadder("en")
	dp := models.DataPoint{
		ID:     "data_002",
		Metric: "market share",
		Value:  18,
		Unit:   "%",
		Period: "Q2",
		Comparison: &models.Comparison{
			GrowthRate: growth(-12.5),
		},
	}

	ins := ladder.Build(dp)
	assert.Equal(t, "Down 12.5% YoY", ins.Comparison)
	assert.Contains(t, ins.Implication, "deterioration")
	assert.Contains(t, ins.Action, "market share")
}

// An explicit zero growth rate is a real comparison (flat year over
// year), not a missing one.
func TestLadder_ZeroGrowthRateIsFlat(t *testing.T) {
	ladder := NewLadder("en")
	dp := models.DataPoint{
		ID:     "data_006",
		Metric: "revenue",
		Value:  120,
		Unit:   "억원",
		Period: "2025",
		Comparison: &models.Comparison{
			GrowthRate: growth(0),
		},
	}

	ins := ladder.Build(dp)
	assert.Equal(t, "Up 0% YoY", ins.Comparison)
	assert.InDelta(t, 0.9, ins.Confidence, 1e-9)
}

func TestLadder_BenchmarkRatio(t *testing.T) {
	ladder := NewLadder("en")
	dp := models.DataPoint{
		ID:     "data_003",
		Metric: "churn",
		Value:  3,
		Unit:   "%",
		Comparison: &models.Comparison{
			Benchmark: 2,
		},
	}

	ins := ladder.Build(dp)
	assert.Equal(t, "1.5× industry average", ins.Comparison)
	assert.InDelta(t, 0.9, ins.Confidence, 1e-9)
}

func TestLadder_NoComparisonLowersConfidence(t *testing.T) {
	ladder := NewLadder("en")
	dp := models.DataPoint{ID: "data_004", Metric: "headcount", Value: 250, Unit: "FTE"}

	ins := ladder.Build(dp)
	assert.Equal(t, "headcount at elevated level", ins.Comparison)
	assert.InDelta(t, 0.6, ins.Confidence, 1e-9)
	assert.Contains(t, ins.Observation, "Current headcount")
}

func TestLadder_DriversWinImplication(t *testing.T) {
	ladder := NewLadder("en")
	dp := models.DataPoint{
		ID:     "data_005",
		Metric: "revenue",
		Value:  200,
		Unit:   "억원",
		Comparison: &models.Comparison{
			Previous: 150,
		},
		Drivers: map[string]float64{
			"new product line": 60,
			"pricing":          25,
		},
	}

	ins := ladder.Build(dp)
	assert.Equal(t, "new product line contributes 60% of change", ins.Implication)
	assert.Contains(t, ins.Action, "primary driver")
}

// The ladder must return identical output for identical input: no hidden
// state, clock, or randomness.
func TestLadder_Pure(t *testing.T) {
	ladder := NewLadder("ko")
	dp := models.DataPoint{
		ID:     "data_001",
		Metric: "매출",
		Value:  32_000_000_000,
		Unit:   "원",
		Period: "2025",
		Comparison: &models.Comparison{
			Previous:  25_000_000_000,
			Benchmark: 30_000_000_000,
		},
		Drivers: map[string]float64{"국내": 55, "해외": 45},
	}

	first := ladder.Build(dp)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, ladder.Build(dp))
	}
}

// Every data point, however sparse, must yield four non-empty levels.
func TestLadder_FourNonEmptyLevels(t *testing.T) {
	ladder := NewLadder("en")
	points := []models.DataPoint{
		{ID: "a", Metric: "m1", Value: 1, Unit: "%"},
		{ID: "b", Metric: "m2", Value: 0, Unit: "x", Comparison: &models.Comparison{GrowthRate: growth(5)}},
		{ID: "c", Metric: "m3", Value: -10, Unit: "pt", Comparison: &models.Comparison{Previous: 10}},
	}
	for _, dp := range points {
		ins := ladder.Build(dp)
		require.NotEmpty(t, ins.Observation, dp.ID)
		require.NotEmpty(t, ins.Comparison, dp.ID)
		require.NotEmpty(t, ins.Implication, dp.ID)
		require.NotEmpty(t, ins.Action, dp.ID)
		require.GreaterOrEqual(t, ins.Confidence, 0.0)
		require.LessOrEqual(t, ins.Confidence, 1.0)
	}
}

package confinement

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEstimateWidthsBackCalc(t *testing.T) {
	ws := EstimateWidths([]RawReach{{
		COMID:              "101",
		LengthKm:           2,
		ChannelAreaM2:      100000, // 50 m over 2 km
		FloodplainAreaM2:   600000, // 300 m over 2 km
		FloodplainLengthKm: 2,
	}}, 0, nil)

	require.Len(t, ws, 1)
	require.InDelta(t, 50., ws[0].WidthM, 1e-9)
	require.InDelta(t, 300., ws[0].FloodplainWidthM, 1e-9)
	require.InDelta(t, 6., ws[0].Confinement, 1e-9)
}

func TestEstimateWidthsMinWidthClamp(t *testing.T) {
	rs := []RawReach{{COMID: "101", LengthKm: 10, ChannelAreaM2: 10000, FloodplainAreaM2: 500000, FloodplainLengthKm: 10}} // 1 m wide

	ws := EstimateWidths(rs, 5, nil)
	require.InDelta(t, 5., ws[0].WidthM, 1e-9) // raised to the floor
	require.InDelta(t, 10., ws[0].Confinement, 1e-9)

	// floor of zero is a no-op
	ws = EstimateWidths(rs, 0, nil)
	require.InDelta(t, 1., ws[0].WidthM, 1e-9)
}

func TestEstimateWidthsPreferred(t *testing.T) {
	rs := []RawReach{{COMID: "101", LengthKm: 10, ChannelAreaM2: 10000, FloodplainAreaM2: 500000, FloodplainLengthKm: 10}}

	// preferred width replaces the back-calculated one and is never clamped
	ws := EstimateWidths(rs, 5, map[string]float64{"101": 2})
	require.InDelta(t, 2., ws[0].WidthM, 1e-9)
	require.InDelta(t, 25., ws[0].Confinement, 1e-9)
	require.InDelta(t, 5., ws[0].WidthCalcM, 1e-9) // auxiliary back-calc kept

	// a missing preferred entry falls back to back-calculation
	ws = EstimateWidths(rs, 0, map[string]float64{"999": 2})
	require.InDelta(t, 1., ws[0].WidthM, 1e-9)
}

func TestConfinementNeverZeroOrInf(t *testing.T) {
	for _, rr := range []RawReach{
		{COMID: "a", LengthKm: 2, ChannelAreaM2: 100000, FloodplainAreaM2: 600000, FloodplainLengthKm: 0}, // degenerate denominator
		{COMID: "b", LengthKm: 2, ChannelAreaM2: 0, FloodplainAreaM2: 600000, FloodplainLengthKm: 2},      // zero channel width
		{COMID: "c", LengthKm: 2, ChannelAreaM2: 100000, FloodplainAreaM2: 0, FloodplainLengthKm: 2},      // zero floodplain width
		{COMID: "d", LengthKm: 2, ChannelAreaM2: math.NaN(), FloodplainAreaM2: 600000, FloodplainLengthKm: 2},
	} {
		ws := EstimateWidths([]RawReach{rr}, 0, nil)
		require.True(t, math.IsNaN(ws[0].Confinement), "comid %s: confinement must be missing, got %v", rr.COMID, ws[0].Confinement)
	}
}

func TestRatio(t *testing.T) {
	require.InDelta(t, 3., Ratio(300, 100), 1e-9)
	require.True(t, math.IsNaN(Ratio(0, 100)))
	require.True(t, math.IsNaN(Ratio(300, 0)))
	require.True(t, math.IsNaN(Ratio(math.NaN(), 100)))
	require.False(t, math.IsInf(Ratio(300, 0), 0))
}

package network

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func nan() float64 { return math.NaN() }

func testMatrix() *DistanceMatrix {
	// S2 lies 1.5 km upstream of S1, S3 0.8 km downstream; S4 unconnected
	return New(map[string][]Neighbor{
		"S1": {{ID: "S2", DistM: 1500}, {ID: "S3", DistM: -800}, {ID: "S4", DistM: math.NaN()}},
		"S2": {{ID: "S1", DistM: -1500}},
		"S3": {{ID: "S1", DistM: 800}},
	})
}

func TestCandidatesDirections(t *testing.T) {
	dm := testMatrix()
	require.Equal(t, []Neighbor{{ID: "S2", DistM: 1500}}, dm.Candidates("S1", Upstream))
	require.Equal(t, []Neighbor{{ID: "S3", DistM: -800}}, dm.Candidates("S1", Downstream))
	require.Equal(t, []Neighbor{{ID: "S3", DistM: -800}, {ID: "S2", DistM: 1500}}, dm.Candidates("S1", Nearest))
}

func TestFillFromNeighbor(t *testing.T) {
	dm := testMatrix()
	vals := map[string]float64{"S1": nan(), "S2": 2., "S3": 3.}

	fr := FillMissing("confinement", vals, dm, Upstream)
	require.InDelta(t, 2., fr.Values["S1"], 1e-9)
	require.Equal(t, "confinement was filled from neighbors: S2 (1.5 km away).", fr.Flags["S1"])
	require.Equal(t, 1, fr.NFromNeighbor)
	require.Equal(t, 0, fr.NFromMedian)

	fr = FillMissing("confinement", vals, dm, Downstream)
	require.InDelta(t, 3., fr.Values["S1"], 1e-9)
	require.Equal(t, "confinement was filled from neighbors: S3 (0.8 km away).", fr.Flags["S1"])

	fr = FillMissing("confinement", vals, dm, Nearest)
	require.InDelta(t, 3., fr.Values["S1"], 1e-9) // 800 m beats 1500 m
}

func TestFillDirectionSignStrict(t *testing.T) {
	// only a downstream neighbor carries a value; upstream fill must not use it
	dm := New(map[string][]Neighbor{"S1": {{ID: "S3", DistM: -800}}})
	vals := map[string]float64{"S1": nan(), "S3": 3., "S5": 7.}

	fr := FillMissing("confinement", vals, dm, Upstream)
	require.InDelta(t, 5., fr.Values["S1"], 1e-9) // median of {3, 7}
	require.Equal(t, "confinement was filled using median value from non-NA segments.", fr.Flags["S1"])
	require.Equal(t, 1, fr.NFromMedian)
}

func TestFillSkipsMissingNeighbors(t *testing.T) {
	// nearest neighbor S2 is itself missing: skip to S3, never chain a fill
	dm := New(map[string][]Neighbor{"S1": {{ID: "S2", DistM: 100}, {ID: "S3", DistM: -200}}})
	vals := map[string]float64{"S1": nan(), "S2": nan(), "S3": 1.}

	fr := FillMissing("confinement", vals, dm, Nearest)
	require.InDelta(t, 1., fr.Values["S1"], 1e-9)
	require.Equal(t, "confinement was filled from neighbors: S3 (0.2 km away).", fr.Flags["S1"])
	require.InDelta(t, 1., fr.Values["S2"], 1e-9) // no row of its own: median of {1}
}

func TestFillMedianFromOriginalColumn(t *testing.T) {
	// the fallback median is computed before any imputation
	dm := New(map[string][]Neighbor{})
	vals := map[string]float64{"S1": nan(), "S2": nan(), "S3": 1., "S4": 9.}

	fr := FillMissing("confinement", vals, dm, Nearest)
	require.InDelta(t, 5., fr.Values["S1"], 1e-9)
	require.InDelta(t, 5., fr.Values["S2"], 1e-9)
	require.Equal(t, 2, fr.NFromMedian)
}

func TestFillCompleteColumnIsNoOp(t *testing.T) {
	dm := testMatrix()
	vals := map[string]float64{"S1": 1., "S2": 2., "S3": 3.}

	fr := FillMissing("confinement", vals, dm, Nearest)
	require.Equal(t, vals, fr.Values)
	require.Empty(t, fr.Flags)
	require.Zero(t, fr.NFromNeighbor)
	require.Zero(t, fr.NFromMedian)

	// and the input map was not mutated
	require.InDelta(t, 1., vals["S1"], 1e-9)
}

func TestFillNeverOverwritesPresentValues(t *testing.T) {
	dm := testMatrix()
	vals := map[string]float64{"S1": nan(), "S2": 2., "S3": 3.}

	fr := FillMissing("confinement", vals, dm, Nearest)
	require.InDelta(t, 2., fr.Values["S2"], 1e-9)
	require.InDelta(t, 3., fr.Values["S3"], 1e-9)
	require.NotContains(t, fr.Flags, "S2")
	require.NotContains(t, fr.Flags, "S3")
	require.True(t, math.IsNaN(vals["S1"]), "caller's table must stay untouched")
}

func TestFillEqualDistanceTieBreak(t *testing.T) {
	dm := New(map[string][]Neighbor{"S1": {{ID: "B", DistM: 100}, {ID: "A", DistM: 100}}})
	vals := map[string]float64{"S1": nan(), "A": 4., "B": 8.}

	fr := FillMissing("confinement", vals, dm, Upstream)
	require.InDelta(t, 4., fr.Values["S1"], 1e-9) // lexicographic winner
}

func TestParseDirection(t *testing.T) {
	for s, want := range map[string]Direction{"upstream": Upstream, "downstream": Downstream, "nearest": Nearest} {
		got, err := ParseDirection(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseDirection("sideways")
	require.Error(t, err)
}

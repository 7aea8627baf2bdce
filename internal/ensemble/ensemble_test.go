package ensemble

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/landingrange"
	"github.com/HaruTakeuchi/TrajecSim-USE2026/internal/trajectory"
)

type stubZone struct{ v float64 }

func (z stubZone) SignedDistance(lat, lon float64) float64 { return z.v }

func testSites(v float64) landingrange.Registry {
	return landingrange.Registry{"test_site": stubZone{v: v}}
}

func makeRun(id string, speed, dir, lat, lon float64) RunSummary {
	return RunSummary{
		RunID:           id,
		Condition:       Condition{GroundWindSpeed: speed, GroundWindDir: dir},
		LandedLatitude:  lat,
		LandedLongitude: lon,
	}
}

func TestSummarize(t *testing.T) {
	traj := trajectory.Trajectory{
		{Time: 0, Altitude: 5, TrueVelocity: 0},
		{Time: 1, Altitude: 20, TrueVelocity: 45, DynamicPressure: 700},
		{Time: 2, Altitude: 900, TrueVelocity: 120, DynamicPressure: 4000},
		{Time: 3, Altitude: 10, TrueVelocity: 15, Latitude: 40.25, Longitude: 139.98},
	}
	cond := Condition{GroundWindSpeed: 4, GroundWindDir: 90}

	s, err := Summarize("run-1", traj, 10, cond)
	require.NoError(t, err)

	assert.Equal(t, 900.0, s.MaxAltitude)
	assert.Equal(t, 120.0, s.MaxSpeed)
	assert.Equal(t, 4000.0, s.MaxDynamicPressure)
	assert.Equal(t, 45.0, s.LaunchClearSpeed) // first record above 10m
	assert.Equal(t, 40.25, s.LandedLatitude)
	assert.Equal(t, 139.98, s.LandedLongitude)
	assert.Equal(t, cond, s.Condition)
}

func TestSummarizeLaunchClearNotReached(t *testing.T) {
	traj := trajectory.Trajectory{
		{Time: 0, Altitude: 1},
		{Time: 1, Altitude: 3},
	}
	_, err := Summarize("run-1", traj, 50, Condition{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, trajectory.ErrLaunchClearNotReached))
}

func TestGroupByPreservesFirstSeenOrder(t *testing.T) {
	summaries := []RunSummary{
		makeRun("a", 3, 90, 40, 140),
		makeRun("b", 3, 180, 40, 140),
		makeRun("c", 5, 90, 40, 140),
	}
	groups := GroupBy(summaries, ByWindDirection)
	require.Len(t, groups, 2)
	assert.Equal(t, "dir_90", groups[0].Key)
	assert.Equal(t, "dir_180", groups[1].Key)
	assert.Len(t, groups[0].Runs, 2)
	assert.Len(t, groups[1].Runs, 1)
}

func TestFootprintPointThenPolygonSwitch(t *testing.T) {
	// Five runs, one shared direction group with three landed points
	// plus a two-point group: both stay point-wise.
	summaries := []RunSummary{
		makeRun("a", 3, 90, 40.01, 140.01),
		makeRun("b", 3, 90, 40.02, 140.00),
		makeRun("c", 3, 90, 40.00, 140.02),
		makeRun("d", 3, 180, 40.05, 140.05),
		makeRun("e", 3, 180, 40.06, 140.04),
	}
	groups := GroupBy(summaries, ByWindDirection)
	fps := Footprints(groups)
	require.Len(t, fps, 2)
	for _, fp := range fps {
		assert.Nil(t, fp.Ring, "group %s should emit points, not a polygon", fp.GroupKey)
	}

	// A sixth run pushes the first group past three points and its
	// output switches to a closed polygon ring.
	summaries = append(summaries, makeRun("f", 3, 90, 40.03, 140.03))
	fps = Footprints(GroupBy(summaries, ByWindDirection))
	require.Len(t, fps, 2)

	first := fps[0]
	require.NotNil(t, first.Ring)
	assert.Len(t, first.Ring, 5) // 4 points + closing vertex
	assert.Equal(t, first.Ring[0], first.Ring[len(first.Ring)-1])

	second := fps[1]
	assert.Nil(t, second.Ring)
	assert.Len(t, second.Points, 2)
}

func TestAngleSortedRingOrder(t *testing.T) {
	// A square given in scrambled order comes back sorted by angle
	// around the centroid.
	points := [][2]float64{
		{1, 1}, {0, 0}, {1, 0}, {0, 1},
	}
	ring := angleSortedRing(points)
	require.Len(t, ring, 5)

	// Walking the ring, consecutive vertices always differ in exactly
	// one coordinate: the angular order admits no diagonal.
	for i := 1; i < len(ring); i++ {
		dx := ring[i][0] - ring[i-1][0]
		dy := ring[i][1] - ring[i-1][1]
		if dx != 0 && dy != 0 {
			t.Fatalf("diagonal step %v -> %v in angle-sorted ring", ring[i-1], ring[i])
		}
	}
}

func TestColorGradient(t *testing.T) {
	g := ColorGradient([3]uint8{248, 112, 128}, [3]uint8{247, 93, 139}, 5)
	require.Len(t, g, 5)
	assert.Equal(t, [3]uint8{248, 112, 128}, g[0])
	assert.Equal(t, [3]uint8{247, 93, 139}, g[4])

	single := ColorGradient([3]uint8{10, 20, 30}, [3]uint8{200, 200, 200}, 1)
	require.Len(t, single, 1)
	assert.Equal(t, [3]uint8{10, 20, 30}, single[0])

	assert.Nil(t, ColorGradient([3]uint8{}, [3]uint8{}, 0))
}

func TestBuildPivot(t *testing.T) {
	sites := testSites(-250)
	summaries := []RunSummary{
		makeRun("a", 2, 90, 40, 140),
		makeRun("b", 2, 90, 40, 140),
		makeRun("c", 2, 180, 40, 140),
		makeRun("d", 5, 90, 40, 140),
	}

	p := BuildPivot(summaries, sites, "test_site")
	assert.Equal(t, []float64{2, 5}, p.Speeds)
	assert.Equal(t, []float64{90, 180}, p.Directions)

	v, ok := p.Mean(2, 90)
	require.True(t, ok)
	assert.InDelta(t, -250, v, 1e-9)

	// Missing combination stays absent.
	_, ok = p.Mean(5, 180)
	assert.False(t, ok)
}

func TestBuildPivotDegenerateInputs(t *testing.T) {
	sites := testSites(0)

	assert.True(t, BuildPivot(nil, sites, "test_site").Empty())
	assert.True(t, BuildPivot([]RunSummary{makeRun("a", 2, 90, 40, 140)}, sites, "nowhere").Empty())
}

func TestFinalPointsUnknownSiteDegrades(t *testing.T) {
	groups := GroupBy([]RunSummary{makeRun("a", 2, 90, 40, 140)}, ByWindDirection)

	points := FinalPoints(groups, testSites(0), "nowhere")
	require.Len(t, points, 1)
	assert.Equal(t, FinalPoint{}, points[0])

	scored := FinalPoints(groups, testSites(-77), "test_site")
	require.Len(t, scored, 1)
	assert.Equal(t, -77.0, scored[0].LandingRange)
	assert.Equal(t, "dir_90", scored[0].GroupKey)
}

func TestDispersion(t *testing.T) {
	zone := stubZone{v: 100}
	groups := []Group{
		{Key: "g1", Runs: []RunSummary{makeRun("a", 2, 90, 40, 140), makeRun("b", 2, 90, 40, 140)}},
		{Key: "g2", Runs: []RunSummary{makeRun("c", 2, 180, 40, 140)}},
	}
	stats := Dispersion(groups, zone)
	require.Len(t, stats, 2)
	assert.Equal(t, 2, stats[0].Count)
	assert.InDelta(t, 100, stats[0].MeanRange, 1e-9)
	assert.Equal(t, 0.0, stats[0].StdDev)
	assert.Equal(t, 1, stats[1].Count)
	assert.Equal(t, 0.0, stats[1].StdDev)
}

func TestWriteCSVOutputs(t *testing.T) {
	dir := t.TempDir()
	summaries := []RunSummary{
		makeRun("a", 2, 90, 40, 140),
		makeRun("b", 5, 180, 40.1, 140.1),
	}

	require.NoError(t, WriteSummariesCSV(dir+"/summary.csv", summaries))

	p := BuildPivot(summaries, testSites(-10), "test_site")
	require.NoError(t, p.WriteCSV(dir+"/pivot.csv"))

	points := FinalPoints(GroupBy(summaries, ByWindDirection), testSites(-10), "test_site")
	require.NoError(t, WriteFinalPointsCSV(dir+"/final_points.csv", points))

	table, err := trajectory.ReadTable(dir + "/pivot.csv")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	// Row for speed 2: direction 90 filled, direction 180 empty.
	assert.Equal(t, "2", table.Rows[0][0])
	assert.Equal(t, "", table.Rows[0][2])
}

package export

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accelviz/internal/sample"
)

var testStart = time.Date(2026, 8, 23, 14, 5, 9, 0, time.UTC)

func testLog() []sample.Sample {
	return []sample.Sample{
		{Time: testStart.Add(0), Values: []float64{0.1, -0.2, 1.0}},
		{Time: testStart.Add(500 * time.Millisecond), Values: []float64{0.15, -0.25, 0.98}},
		{Time: testStart.Add(1020 * time.Millisecond), Values: []float64{0.2, -0.3, 0.95}},
	}
}

func TestToSeriesSplitsPerChannel(t *testing.T) {
	series := ToSeries(testLog(), testStart)
	require.Len(t, series, 3)
	for ch := range series {
		require.Len(t, series[ch], 3)
	}

	assert.Equal(t, 0.0, series[0][0].Elapsed)
	assert.Equal(t, 0.5, series[1][1].Elapsed)
	assert.Equal(t, 1.02, series[2][2].Elapsed)
	assert.Equal(t, 0.15, series[0][1].Value)
	assert.Equal(t, -0.3, series[1][2].Value)
}

func TestToSeriesIsPure(t *testing.T) {
	log := testLog()
	a := ToSeries(log, testStart)
	b := ToSeries(log, testStart)
	assert.Equal(t, a, b)

	// elapsed non-decreasing for a time-ordered log
	for _, s := range a {
		for i := 1; i < len(s); i++ {
			assert.GreaterOrEqual(t, s[i].Elapsed, s[i-1].Elapsed)
		}
	}
}

func TestToSeriesEmptyLog(t *testing.T) {
	assert.Nil(t, ToSeries(nil, testStart))
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testLog(), testStart, sample.AccelChannels))

	sc := bufio.NewScanner(&buf)
	require.True(t, sc.Scan())
	header := sc.Text()
	assert.True(t, strings.HasPrefix(header, "#"))
	assert.Equal(t, 4, len(strings.Split(header, "\t")))

	want := testLog()
	row := 0
	for sc.Scan() {
		fields := strings.Split(sc.Text(), "\t")
		require.Len(t, fields, 4)

		elapsed, err := strconv.ParseFloat(fields[0], 64)
		require.NoError(t, err)
		assert.InDelta(t, want[row].Time.Sub(testStart).Seconds(), elapsed, 1e-6)

		for ch := 0; ch < 3; ch++ {
			v, err := strconv.ParseFloat(fields[ch+1], 64)
			require.NoError(t, err)
			assert.InDelta(t, want[row].Values[ch], v, 1e-6)
		}
		row++
	}
	assert.Equal(t, len(want), row)
}

func TestCSVFileName(t *testing.T) {
	name := CSVFileName("accelerometer-log", testStart)
	assert.Equal(t,
		"accelerometer-log-"+testStart.Local().Format(TimestampLayout)+".csv",
		name)
}

func TestSaveCSV(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveCSV(dir, "accelerometer-log", testLog(), testStart, sample.AccelChannels)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	assert.Len(t, lines, 4) // header + 3 samples
}

func TestSaveCSVWriteError(t *testing.T) {
	_, err := SaveCSV(filepath.Join(t.TempDir(), "missing"), "p", testLog(), testStart, sample.AccelChannels)
	var wErr *WriteError
	require.ErrorAs(t, err, &wErr)
	assert.NotEmpty(t, wErr.Path)
}

func TestSavePlots(t *testing.T) {
	dir := t.TempDir()
	series := ToSeries(testLog(), testStart)

	paths, err := SavePlots(dir, "accelerometer-plot", testStart, series, sample.AccelChannels, -2, 2)
	require.NoError(t, err)
	require.Len(t, paths, 4) // combined + one per channel

	base := "accelerometer-plot-" + testStart.Local().Format(TimestampLayout)
	assert.Equal(t, filepath.Join(dir, base+".png"), paths[0])
	assert.Equal(t, filepath.Join(dir, base+"-X.png"), paths[1])
	assert.Equal(t, filepath.Join(dir, base+"-Y.png"), paths[2])
	assert.Equal(t, filepath.Join(dir, base+"-Z.png"), paths[3])

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestSavePlotsChannelMismatch(t *testing.T) {
	series := ToSeries(testLog(), testStart)
	_, err := SavePlots(t.TempDir(), "p", testStart, series[:2], sample.AccelChannels, -2, 2)
	assert.Error(t, err)
}

package jsonline

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pitch.report/internal/testutil"
	"github.com/banshee-data/pitch.report/internal/tracking"
)

const sampleLines = `{"period":1,"frameNum":120,"periodGameClockTime":4.8,"ballsSmoothed":{"x":0.4,"y":-1.1,"z":0.2},"homePlayersSmoothed":[{"jerseyNum":7,"x":-12.0,"y":3.0,"speed":2.5}],"awayPlayersSmoothed":[{"jerseyNum":9,"x":14.0,"y":-2.0}],"game_event":{"home_ball":true}}
{"period":1,"frameNum":121,"periodGameClockTime":4.84,"homePlayersSmoothed":[{"jerseyNum":7,"x":-11.9,"y":3.0}],"awayPlayersSmoothed":null}
{"period":null,"frameNum":122,"periodGameClockTime":0,"homePlayersSmoothed":null,"awayPlayersSmoothed":null}
`

func lineMeta() *tracking.MatchMeta {
	meta := testutil.TwoTeamMeta(25)
	meta.HomeStartsLeft = testutil.BoolPtr(true)
	return meta
}

func gzipped(t *testing.T, s string) io.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return &buf
}

func TestReaderDecodesPlainInput(t *testing.T) {
	t.Parallel()

	rd, err := NewReader(strings.NewReader(sampleLines), lineMeta(), 0)
	require.NoError(t, err)

	rec, err := rd.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(120), rec.FrameID)
	assert.Equal(t, 1, rec.PeriodID)
	require.NotNil(t, rec.BallCoordinates)
	assert.Equal(t, tracking.Point3D{X: 0.4, Y: -1.1, Z: 0.2}, *rec.BallCoordinates)
	require.NotNil(t, rec.BallOwning)
	assert.Equal(t, tracking.GroundHome, *rec.BallOwning)
	assert.Equal(t, tracking.BallStateUnset, rec.BallState, "feed carries no alive/dead indicator")

	require.Len(t, rec.Players, 2)
	assert.Equal(t, 7, rec.Players[0].JerseyNo)
	assert.Equal(t, tracking.Point{X: -12.0, Y: 3.0}, *rec.Players[0].Coordinates)
	assert.Equal(t, 2.5, *rec.Players[0].Speed)
	assert.Equal(t, tracking.GroundAway, rec.Players[1].Ground)
	assert.Nil(t, rec.Players[1].Speed)

	// Second line: no ball entry, no possession event.
	rec, err = rd.Next()
	require.NoError(t, err)
	assert.Nil(t, rec.BallCoordinates)
	assert.Nil(t, rec.BallOwning)

	// Third line: explicit null period.
	rec, err = rd.Next()
	require.NoError(t, err)
	assert.Equal(t, 0, rec.PeriodID)

	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderDecodesGzipInput(t *testing.T) {
	t.Parallel()

	rd, err := NewReader(gzipped(t, sampleLines), lineMeta(), 0)
	require.NoError(t, err)

	rec, err := rd.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(120), rec.FrameID)
}

func TestReaderMalformedLineIsFatal(t *testing.T) {
	t.Parallel()

	input := sampleLines + "{not json}\n"
	rd, err := NewReader(strings.NewReader(input), lineMeta(), 0)
	require.NoError(t, err)

	var lastErr error
	for i := 0; i < 4; i++ {
		_, lastErr = rd.Next()
		if lastErr != nil {
			break
		}
	}
	assert.ErrorIs(t, lastErr, tracking.ErrParse)
}

func TestReaderReadCap(t *testing.T) {
	t.Parallel()

	rd, err := NewReader(strings.NewReader(sampleLines), lineMeta(), 2)
	require.NoError(t, err)

	_, err = rd.Next()
	require.NoError(t, err)
	_, err = rd.Next()
	require.NoError(t, err)
	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF, "read cap must stop decoding the source early")
}

func TestReaderRequiredMetadata(t *testing.T) {
	t.Parallel()

	t.Run("home-starts-left flag is required", func(t *testing.T) {
		t.Parallel()
		meta := testutil.TwoTeamMeta(25)
		_, err := NewReader(strings.NewReader(sampleLines), meta, 0)
		assert.ErrorIs(t, err, tracking.ErrMissingField)
	})

	t.Run("frame rate is required", func(t *testing.T) {
		t.Parallel()
		meta := lineMeta()
		meta.FrameRate = 0
		_, err := NewReader(strings.NewReader(sampleLines), meta, 0)
		assert.ErrorIs(t, err, tracking.ErrMissingField)
	})
}

func TestReaderFlags(t *testing.T) {
	t.Parallel()

	rd, err := NewReader(strings.NewReader(""), lineMeta(), 0)
	require.NoError(t, err)
	assert.Equal(t, tracking.DatasetFlag(0), rd.Flags())
	assert.Equal(t, Provider, rd.Provider())
}

package datline

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/pitch.report/internal/testutil"
	"github.com/banshee-data/pitch.report/internal/tracking"
	"github.com/banshee-data/pitch.report/internal/tracking/pipeline"
)

const sampleLine = "100:1,7,10,5.0,2.0,3.0;0,5,9,-5.0,-2.0,1.0;:10.0,0.0,0.5,9.0,H,Alive;:"

func newTestReader(t *testing.T, input string) *Reader {
	t.Helper()
	rd, err := NewReader(strings.NewReader(input), testutil.TwoTeamMeta(25))
	require.NoError(t, err)
	return rd
}

func TestReaderParsesTick(t *testing.T) {
	t.Parallel()

	rd := newTestReader(t, sampleLine)
	rec, err := rd.Next()
	require.NoError(t, err)

	assert.Equal(t, int64(100), rec.FrameID)
	assert.Equal(t, 4*time.Second, rec.Timestamp) // frame 100 at 25 fps
	assert.Equal(t, 0, rec.PeriodID, "period bounds come out of band")

	require.Len(t, rec.Players, 2)
	home, away := rec.Players[0], rec.Players[1]
	assert.Equal(t, tracking.GroundHome, home.Ground)
	assert.Equal(t, 10, home.JerseyNo)
	assert.Equal(t, tracking.Point{X: 5.0, Y: 2.0}, *home.Coordinates)
	assert.Equal(t, 3.0, *home.Speed)
	assert.Equal(t, tracking.GroundAway, away.Ground)
	assert.Equal(t, 9, away.JerseyNo)

	require.NotNil(t, rec.BallCoordinates)
	assert.Equal(t, tracking.Point3D{X: 10.0, Y: 0.0, Z: 0.5}, *rec.BallCoordinates)
	assert.Equal(t, 9.0, *rec.BallSpeed)
	require.NotNil(t, rec.BallOwning)
	assert.Equal(t, tracking.GroundHome, *rec.BallOwning)
	assert.Equal(t, tracking.BallStateAlive, rec.BallState)

	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderFullPipelineScenario(t *testing.T) {
	t.Parallel()
	testutil.MuteLogs(t)

	meta := testutil.TwoTeamMeta(25)
	meta.Periods = []*tracking.Period{{ID: 1, Start: 0, End: 10 * time.Second}}

	rd, err := NewReader(strings.NewReader(sampleLine), meta)
	require.NoError(t, err)

	des := pipeline.NewDeserializer(pipeline.DeserializerConfig{SampleRate: 1.0})
	dataset, err := des.Deserialize(rd, meta)
	require.NoError(t, err)
	require.Len(t, dataset.Frames, 1)

	frame := dataset.Frames[0]
	assert.Equal(t, int64(100), frame.FrameID)
	assert.Len(t, frame.PlayersData, 2)
	assert.Equal(t, tracking.Point3D{X: 10.0, Y: 0.0, Z: 0.5}, *frame.BallCoordinates)
	assert.Equal(t, 9.0, *frame.BallSpeed)
	assert.Same(t, meta.Home, frame.BallOwningTeam)
	assert.Equal(t, tracking.BallStateAlive, frame.BallState)
	assert.True(t, dataset.Metadata.Flags.Has(tracking.FlagBallState|tracking.FlagBallOwningTeam))
}

func TestReaderUnknownBallOwningCodeIsFatal(t *testing.T) {
	t.Parallel()
	testutil.MuteLogs(t)

	line := strings.Replace(sampleLine, ",H,", ",X,", 1)
	meta := testutil.TwoTeamMeta(25)
	meta.Periods = []*tracking.Period{{ID: 1, Start: 0, End: 10 * time.Second}}

	rd, err := NewReader(strings.NewReader(line), meta)
	require.NoError(t, err)

	des := pipeline.NewDeserializer(pipeline.DeserializerConfig{SampleRate: 1.0})
	dataset, err := des.Deserialize(rd, meta)
	assert.ErrorIs(t, err, tracking.ErrFormat)
	assert.Nil(t, dataset, "fatal errors must not return a partial dataset")
}

func TestReaderFieldValidation(t *testing.T) {
	t.Parallel()

	t.Run("sentinel team flags are skipped", func(t *testing.T) {
		t.Parallel()
		line := "1:-1,1,2,0,0,0;3,2,4,0,0,0;4,3,6,0,0,0;1,7,10,1.0,1.0,0.5;:0,0,0,0,A,Dead;:"
		rd := newTestReader(t, line)
		rec, err := rd.Next()
		require.NoError(t, err)
		require.Len(t, rec.Players, 1)
		assert.Equal(t, 10, rec.Players[0].JerseyNo)
	})

	t.Run("unknown team flag is fatal", func(t *testing.T) {
		t.Parallel()
		line := "1:7,1,2,0,0,0;:0,0,0,0,H,Alive;:"
		rd := newTestReader(t, line)
		_, err := rd.Next()
		assert.ErrorIs(t, err, tracking.ErrFormat)
	})

	t.Run("unknown ball state code is fatal", func(t *testing.T) {
		t.Parallel()
		line := "1:1,7,10,0,0,0;:0,0,0,0,H,Paused;:"
		rd := newTestReader(t, line)
		_, err := rd.Next()
		assert.ErrorIs(t, err, tracking.ErrFormat)
	})

	t.Run("malformed numeric field is a parse error", func(t *testing.T) {
		t.Parallel()
		line := "1:1,7,10,abc,0,0;:0,0,0,0,H,Alive;:"
		rd := newTestReader(t, line)
		_, err := rd.Next()
		assert.ErrorIs(t, err, tracking.ErrParse)
	})

	t.Run("truncated ball segment is a parse error", func(t *testing.T) {
		t.Parallel()
		line := "1:1,7,10,0,0,0;:0,0,0;:"
		rd := newTestReader(t, line)
		_, err := rd.Next()
		assert.ErrorIs(t, err, tracking.ErrParse)
	})
}

func TestReaderSkipsBlankLines(t *testing.T) {
	t.Parallel()

	rd := newTestReader(t, "\n"+sampleLine+"\n\n")
	rec, err := rd.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(100), rec.FrameID)
	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderRequiresFrameRate(t *testing.T) {
	t.Parallel()

	meta := testutil.TwoTeamMeta(25)
	meta.FrameRate = 0
	_, err := NewReader(strings.NewReader(sampleLine), meta)
	assert.ErrorIs(t, err, tracking.ErrMissingField)
}

// Package jsonline reads the compressed line-delimited feed: one JSON
// object per tick. The byte source may be gzip- or bzip2-compressed, or
// plain; the compression is sniffed from the leading magic bytes. Every
// line must decode — a malformed line is fatal and aborts the whole load.
package jsonline

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/banshee-data/pitch.report/internal/tracking"
	"github.com/banshee-data/pitch.report/internal/tracking/pipeline"
)

// Provider is the feed variant name reported in dataset metadata.
const Provider = "jsonline"

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{'B', 'Z', 'h'}
)

type rawLine struct {
	Period              *int          `json:"period"`
	FrameNum            int64         `json:"frameNum"`
	PeriodGameClockTime float64       `json:"periodGameClockTime"`
	BallsSmoothed       *ballEntry    `json:"ballsSmoothed"`
	HomePlayersSmoothed []playerEntry `json:"homePlayersSmoothed"`
	AwayPlayersSmoothed []playerEntry `json:"awayPlayersSmoothed"`
	GameEvent           *gameEvent    `json:"game_event"`
}

type ballEntry struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
	Z *float64 `json:"z"`
}

type playerEntry struct {
	JerseyNum int      `json:"jerseyNum"`
	X         *float64 `json:"x"`
	Y         *float64 `json:"y"`
	Speed     *float64 `json:"speed"`
}

type gameEvent struct {
	HomeBall *bool `json:"home_ball"`
}

// Reader produces raw tick records from a compressed line-delimited byte
// source, one line at a time.
type Reader struct {
	scanner   *bufio.Scanner
	frameRate float64
	readCap   int // stop decoding after this many records; 0 = unbounded
	read      int
	line      int
}

// NewReader creates a reader over r. The feed depends on the metadata's
// home-starts-left flag for orientation, so its absence is fatal here
// rather than surfacing later as a silently unresolved orientation.
// readCap bounds how many records are decoded from the source
// (see pipeline.ReadCap); pass 0 for no cap.
func NewReader(r io.Reader, meta *tracking.MatchMeta, readCap int) (*Reader, error) {
	if meta == nil || meta.FrameRate <= 0 {
		return nil, fmt.Errorf("jsonline: frame rate required: %w", tracking.ErrMissingField)
	}
	if meta.HomeStartsLeft == nil {
		return nil, fmt.Errorf("jsonline: home-starts-left flag required: %w", tracking.ErrMissingField)
	}

	decoded, err := decompress(r)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 256*1024), 16*1024*1024)
	return &Reader{scanner: scanner, frameRate: meta.FrameRate, readCap: readCap}, nil
}

// decompress sniffs the leading magic bytes and wraps r accordingly.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("jsonline: sniff compression: %w", err)
	}
	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("jsonline: gzip: %v: %w", err, tracking.ErrParse)
		}
		return zr, nil
	case bytes.HasPrefix(magic, bzip2Magic):
		return bzip2.NewReader(br), nil
	default:
		return br, nil
	}
}

// Provider implements pipeline.RecordReader.
func (rd *Reader) Provider() string { return Provider }

// Flags implements pipeline.RecordReader. The feed has no alive/dead
// indicator, and possession appears only on event-tagged ticks, so neither
// fact is guaranteed per tick.
func (rd *Reader) Flags() tracking.DatasetFlag { return 0 }

// Next decodes the next line, or returns io.EOF once the stream or the
// read cap is exhausted.
func (rd *Reader) Next() (*pipeline.RawTickRecord, error) {
	if rd.readCap > 0 && rd.read >= rd.readCap {
		return nil, io.EOF
	}
	for rd.scanner.Scan() {
		rd.line++
		data := bytes.TrimSpace(rd.scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		var raw rawLine
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("jsonline: line %d: %v: %w", rd.line, err, tracking.ErrParse)
		}
		rd.read++
		return rd.record(&raw), nil
	}
	if err := rd.scanner.Err(); err != nil {
		return nil, fmt.Errorf("jsonline: read: %w", err)
	}
	return nil, io.EOF
}

func (rd *Reader) record(raw *rawLine) *pipeline.RawTickRecord {
	rec := &pipeline.RawTickRecord{
		FrameID:   raw.FrameNum,
		Timestamp: time.Duration(float64(raw.FrameNum) / rd.frameRate * float64(time.Second)),
	}
	if raw.Period != nil {
		rec.PeriodID = *raw.Period
	}

	if ball := raw.BallsSmoothed; ball != nil && ball.X != nil && ball.Y != nil {
		coords := tracking.Point3D{X: *ball.X, Y: *ball.Y}
		if ball.Z != nil {
			coords.Z = *ball.Z
		}
		rec.BallCoordinates = &coords
	}

	if raw.GameEvent != nil && raw.GameEvent.HomeBall != nil {
		ground := tracking.GroundAway
		if *raw.GameEvent.HomeBall {
			ground = tracking.GroundHome
		}
		rec.BallOwning = &ground
	}

	rec.Players = appendSide(rec.Players, raw.HomePlayersSmoothed, tracking.GroundHome)
	rec.Players = appendSide(rec.Players, raw.AwayPlayersSmoothed, tracking.GroundAway)
	return rec
}

func appendSide(players []pipeline.RawPlayer, entries []playerEntry, ground tracking.Ground) []pipeline.RawPlayer {
	for _, entry := range entries {
		player := pipeline.RawPlayer{
			Ground:   ground,
			JerseyNo: entry.JerseyNum,
			Speed:    entry.Speed,
		}
		if entry.X != nil && entry.Y != nil {
			player.Coordinates = &tracking.Point{X: *entry.X, Y: *entry.Y}
		}
		players = append(players, player)
	}
	return players
}

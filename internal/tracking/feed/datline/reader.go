// Package datline reads the delimited text-line feed: one line per tick,
// three semicolon-delimited segments (players; ball; trailer). Period
// boundaries arrive out of band in the match metadata, so records are
// emitted without a period id and attributed by timestamp containment.
package datline

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/banshee-data/pitch.report/internal/tracking"
	"github.com/banshee-data/pitch.report/internal/tracking/pipeline"
)

// Provider is the feed variant name reported in dataset metadata.
const Provider = "datline"

// Player team flags. Substitutes, officials, and unmatched entries carry
// sentinel flags and are skipped; anything else unknown is fatal because
// the entry cannot be attributed to a side.
const (
	teamFlagHome = "1"
	teamFlagAway = "0"
)

var skippedTeamFlags = map[string]bool{
	"-1": true, // unmatched
	"3":  true, // substitute
	"4":  true, // official
}

// Reader produces raw tick records from a delimited text-line byte source.
type Reader struct {
	scanner   *bufio.Scanner
	frameRate float64
	line      int
}

// NewReader creates a reader over r. The match metadata must carry the
// frame rate; period boundaries are resolved downstream from the preset
// periods the metadata supplies.
func NewReader(r io.Reader, meta *tracking.MatchMeta) (*Reader, error) {
	if meta == nil || meta.FrameRate <= 0 {
		return nil, fmt.Errorf("datline: frame rate required: %w", tracking.ErrMissingField)
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: scanner, frameRate: meta.FrameRate}, nil
}

// Provider implements pipeline.RecordReader.
func (rd *Reader) Provider() string { return Provider }

// Flags implements pipeline.RecordReader. The feed carries both ball state
// and possession on every tick.
func (rd *Reader) Flags() tracking.DatasetFlag {
	return tracking.FlagBallState | tracking.FlagBallOwningTeam
}

// Next returns the record for the next non-empty line, or io.EOF.
func (rd *Reader) Next() (*pipeline.RawTickRecord, error) {
	for rd.scanner.Scan() {
		rd.line++
		text := strings.TrimSpace(rd.scanner.Text())
		if text == "" {
			continue
		}
		rec, err := rd.parseLine(text)
		if err != nil {
			return nil, fmt.Errorf("datline: line %d: %w", rd.line, err)
		}
		return rec, nil
	}
	if err := rd.scanner.Err(); err != nil {
		return nil, fmt.Errorf("datline: read: %w", err)
	}
	return nil, io.EOF
}

func (rd *Reader) parseLine(line string) (*pipeline.RawTickRecord, error) {
	segments := strings.Split(line, ":")
	if len(segments) < 3 {
		return nil, fmt.Errorf("expected tick:players;ball;trailer segments: %w", tracking.ErrParse)
	}

	frameID, err := strconv.ParseInt(segments[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("tick %q: %w", segments[0], tracking.ErrParse)
	}

	players, err := rd.parsePlayers(segments[1])
	if err != nil {
		return nil, err
	}

	rec, err := rd.parseBall(segments[2])
	if err != nil {
		return nil, err
	}

	rec.FrameID = frameID
	rec.Timestamp = time.Duration(float64(frameID) / rd.frameRate * float64(time.Second))
	rec.Players = players
	return rec, nil
}

func (rd *Reader) parsePlayers(segment string) ([]pipeline.RawPlayer, error) {
	var players []pipeline.RawPlayer
	for _, chunk := range strings.Split(segment, ";") {
		if chunk == "" {
			continue
		}
		fields := strings.Split(chunk, ",")
		if len(fields) < 6 {
			return nil, fmt.Errorf("player entry %q: expected 6 fields: %w", chunk, tracking.ErrParse)
		}
		teamFlag := fields[0]
		if skippedTeamFlags[teamFlag] {
			continue
		}

		var ground tracking.Ground
		switch teamFlag {
		case teamFlagHome:
			ground = tracking.GroundHome
		case teamFlagAway:
			ground = tracking.GroundAway
		default:
			return nil, fmt.Errorf("unknown player team flag %q: %w", teamFlag, tracking.ErrFormat)
		}

		jerseyNo, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("jersey %q: %w", fields[2], tracking.ErrParse)
		}
		x, y, speed, err := parseFloats3(fields[3], fields[4], fields[5])
		if err != nil {
			return nil, err
		}

		players = append(players, pipeline.RawPlayer{
			Ground:      ground,
			JerseyNo:    jerseyNo,
			Coordinates: &tracking.Point{X: x, Y: y},
			Speed:       &speed,
		})
	}
	return players, nil
}

// parseBall decodes the fixed 6-field ball tuple:
// x, y, z, speed, owning side code, alive/dead code.
func (rd *Reader) parseBall(segment string) (*pipeline.RawTickRecord, error) {
	fields := strings.Split(strings.TrimSuffix(segment, ";"), ",")
	if len(fields) < 6 {
		return nil, fmt.Errorf("ball segment %q: expected 6 fields: %w", segment, tracking.ErrParse)
	}

	x, y, z, err := parseFloats3(fields[0], fields[1], fields[2])
	if err != nil {
		return nil, err
	}
	speed, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, fmt.Errorf("ball speed %q: %w", fields[3], tracking.ErrParse)
	}

	var owning tracking.Ground
	switch fields[4] {
	case "H":
		owning = tracking.GroundHome
	case "A":
		owning = tracking.GroundAway
	default:
		return nil, fmt.Errorf("unknown ball owning team %q: %w", fields[4], tracking.ErrFormat)
	}

	var state tracking.BallState
	switch fields[5] {
	case "Alive":
		state = tracking.BallStateAlive
	case "Dead":
		state = tracking.BallStateDead
	default:
		return nil, fmt.Errorf("unknown ball state %q: %w", fields[5], tracking.ErrFormat)
	}

	return &pipeline.RawTickRecord{
		BallCoordinates: &tracking.Point3D{X: x, Y: y, Z: z},
		BallSpeed:       &speed,
		BallState:       state,
		BallOwning:      &owning,
	}, nil
}

func parseFloats3(a, b, c string) (float64, float64, float64, error) {
	fa, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("coordinate %q: %w", a, tracking.ErrParse)
	}
	fb, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("coordinate %q: %w", b, tracking.ErrParse)
	}
	fc, err := strconv.ParseFloat(c, 64)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("coordinate %q: %w", c, tracking.ErrParse)
	}
	return fa, fb, fc, nil
}

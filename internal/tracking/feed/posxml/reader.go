// Package posxml reads the attribute-markup feed: frame nodes grouped into
// FrameSet elements per game section and per team-or-ball track, with per-tick
// attributes N, X, Y, Z, S, BallPossession, and BallStatus. The ball track
// additionally carries height, possession, and alive/dead state; a tick
// missing its ball entry is corrupt and is dropped with a diagnostic.
package posxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/banshee-data/pitch.report/internal/monitoring"
	"github.com/banshee-data/pitch.report/internal/tracking"
	"github.com/banshee-data/pitch.report/internal/tracking/pipeline"
)

// Provider is the feed variant name reported in dataset metadata.
const Provider = "posxml"

// ballTrackID marks the FrameSet carrying ball data rather than one
// player's track.
const ballTrackID = "BALL"

// Game section names in period order.
var gameSections = []struct {
	name     string
	periodID int
}{
	{"firstHalf", tracking.PeriodFirstHalf},
	{"secondHalf", tracking.PeriodSecondHalf},
	{"firstHalfExtra", tracking.PeriodFirstHalfExtra},
	{"secondHalfExtra", tracking.PeriodSecondHalfExtra},
}

// Ball possession codes.
const (
	possessionHome = 1
	possessionAway = 2
)

// ballStatusAlive is the in-play status code; everything else is dead ball.
const ballStatusAlive = 1

type positionsDoc struct {
	FrameSets []frameSet `xml:"Positions>FrameSet"`
}

type frameSet struct {
	GameSection string      `xml:"GameSection,attr"`
	TeamID      string      `xml:"TeamId,attr"`
	PersonID    string      `xml:"PersonId,attr"`
	Frames      []frameNode `xml:"Frame"`
}

type frameNode struct {
	N              int64    `xml:"N,attr"`
	X              float64  `xml:"X,attr"`
	Y              float64  `xml:"Y,attr"`
	Z              *float64 `xml:"Z,attr"`
	S              *float64 `xml:"S,attr"`
	BallPossession *int     `xml:"BallPossession,attr"`
	BallStatus     *int     `xml:"BallStatus,attr"`
}

// Reader produces raw tick records from an attribute-markup document. The
// document format interleaves one track per object, so the whole document
// is decoded up front and regrouped by (period, tick); records are then
// handed out one at a time.
type Reader struct {
	records []*pipeline.RawTickRecord
	next    int
	dropped int
}

// NewReader decodes the document and regroups it into tick order. Match
// metadata must carry the frame rate and both teams' provider ids so each
// track can be attributed to a side.
func NewReader(r io.Reader, meta *tracking.MatchMeta) (*Reader, error) {
	if meta == nil || meta.FrameRate <= 0 {
		return nil, fmt.Errorf("posxml: frame rate required: %w", tracking.ErrMissingField)
	}
	if meta.Home == nil || meta.Away == nil {
		return nil, fmt.Errorf("posxml: both teams required: %w", tracking.ErrMissingField)
	}

	var doc positionsDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("posxml: decode document: %v: %w", err, tracking.ErrParse)
	}

	rd := &Reader{}
	for _, section := range gameSections {
		records, err := rd.readSection(&doc, section.name, section.periodID, meta)
		if err != nil {
			return nil, err
		}
		rd.records = append(rd.records, records...)
	}
	if rd.dropped > 0 {
		monitoring.Logf("posxml: dropped %d ticks missing their ball entry", rd.dropped)
	}
	return rd, nil
}

// Provider implements pipeline.RecordReader.
func (rd *Reader) Provider() string { return Provider }

// Flags implements pipeline.RecordReader. The ball track carries both
// possession and alive/dead state.
func (rd *Reader) Flags() tracking.DatasetFlag {
	return tracking.FlagBallState | tracking.FlagBallOwningTeam
}

// Next implements pipeline.RecordReader.
func (rd *Reader) Next() (*pipeline.RawTickRecord, error) {
	if rd.next >= len(rd.records) {
		return nil, io.EOF
	}
	rec := rd.records[rd.next]
	rd.next++
	return rec, nil
}

// Dropped returns the count of ticks discarded as corrupt.
func (rd *Reader) Dropped() int { return rd.dropped }

// tickEntry is one object's sample at a tick, keyed by its originating
// track.
type tickEntry struct {
	set  *frameSet
	node frameNode
}

func (rd *Reader) readSection(doc *positionsDoc, section string, periodID int, meta *tracking.MatchMeta) ([]*pipeline.RawTickRecord, error) {
	byTick := make(map[int64][]tickEntry)
	for i := range doc.FrameSets {
		set := &doc.FrameSets[i]
		if set.GameSection != section {
			continue
		}
		for _, node := range set.Frames {
			byTick[node.N] = append(byTick[node.N], tickEntry{set: set, node: node})
		}
	}
	if len(byTick) == 0 {
		return nil, nil
	}

	ticks := make([]int64, 0, len(byTick))
	for tick := range byTick {
		ticks = append(ticks, tick)
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i] < ticks[j] })

	records := make([]*pipeline.RawTickRecord, 0, len(ticks))
	for _, tick := range ticks {
		rec, err := rd.assembleTick(tick, periodID, byTick[tick], meta)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			continue // corrupt tick dropped, diagnostic already counted
		}
		records = append(records, rec)
	}
	return records, nil
}

func (rd *Reader) assembleTick(tick int64, periodID int, entries []tickEntry, meta *tracking.MatchMeta) (*pipeline.RawTickRecord, error) {
	rec := &pipeline.RawTickRecord{
		FrameID:   tick,
		PeriodID:  periodID,
		Timestamp: time.Duration(float64(tick) / meta.FrameRate * float64(time.Second)),
	}

	haveBall := false
	for _, entry := range entries {
		if entry.set.TeamID == ballTrackID {
			applyBall(rec, entry.node)
			haveBall = true
			continue
		}

		ground, err := groundForTeamID(entry.set.TeamID, meta)
		if err != nil {
			return nil, err
		}
		node := entry.node
		rec.Players = append(rec.Players, pipeline.RawPlayer{
			Ground:      ground,
			PlayerID:    entry.set.PersonID,
			Coordinates: &tracking.Point{X: node.X, Y: node.Y},
			Speed:       node.S,
		})
	}

	if !haveBall {
		rd.dropped++
		monitoring.Debugf("posxml: tick %d has no ball entry, dropped", tick)
		return nil, nil
	}
	return rec, nil
}

func applyBall(rec *pipeline.RawTickRecord, node frameNode) {
	ball := tracking.Point3D{X: node.X, Y: node.Y}
	if node.Z != nil {
		ball.Z = *node.Z
	}
	rec.BallCoordinates = &ball
	rec.BallSpeed = node.S

	if node.BallPossession != nil {
		switch *node.BallPossession {
		case possessionHome:
			ground := tracking.GroundHome
			rec.BallOwning = &ground
		case possessionAway:
			ground := tracking.GroundAway
			rec.BallOwning = &ground
		}
	}
	if node.BallStatus != nil {
		if *node.BallStatus == ballStatusAlive {
			rec.BallState = tracking.BallStateAlive
		} else {
			rec.BallState = tracking.BallStateDead
		}
	}
}

func groundForTeamID(teamID string, meta *tracking.MatchMeta) (tracking.Ground, error) {
	switch teamID {
	case meta.Home.TeamID:
		return tracking.GroundHome, nil
	case meta.Away.TeamID:
		return tracking.GroundAway, nil
	default:
		return "", fmt.Errorf("posxml: unknown team id %q: %w", teamID, tracking.ErrFormat)
	}
}

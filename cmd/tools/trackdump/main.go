// Command trackdump loads one raw tracking archive, runs it through the
// ingestion pipeline, and prints a dataset summary. With -db it also
// persists the dataset to a SQLite file for downstream analysis.
//
// Roster and metadata extraction is owned by an external collaborator, so
// this tool builds a minimal two-team metadata fixture from flags; it is a
// diagnostic utility, not a production ingest entry point.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banshee-data/pitch.report/internal/tracking"
	"github.com/banshee-data/pitch.report/internal/tracking/feed/datline"
	"github.com/banshee-data/pitch.report/internal/tracking/feed/jsonline"
	"github.com/banshee-data/pitch.report/internal/tracking/feed/posxml"
	"github.com/banshee-data/pitch.report/internal/tracking/pipeline"
	"github.com/banshee-data/pitch.report/internal/tracking/storage/sqlite"
	"github.com/banshee-data/pitch.report/internal/units"
	"github.com/banshee-data/pitch.report/internal/version"
)

func main() {
	format := flag.String("format", "", "feed format: datline, posxml, or jsonline")
	dataPath := flag.String("data", "", "path to the raw tracking archive")
	sampleRate := flag.Float64("sample", 1.0, "fraction of eligible records to retain")
	limit := flag.Int("limit", 0, "stop after this many retained frames (0 = all)")
	includeDead := flag.Bool("include-dead", false, "keep dead-ball ticks")
	window := flag.Int("window", pipeline.DefaultDirectionWindow, "direction inference window (frames)")
	fps := flag.Float64("fps", 25, "feed frame rate")
	homeName := flag.String("home", "Home", "home team name")
	awayName := flag.String("away", "Away", "away team name")
	homeTeamID := flag.String("home-id", "HOME", "home team provider id")
	awayTeamID := flag.String("away-id", "AWAY", "away team provider id")
	homeStartsLeft := flag.String("home-starts-left", "", "true/false when the provider metadata states it")
	periodsSpec := flag.String("periods", "", "preset period bounds, e.g. 1=0-67500,2=90000-157500 (frame numbers)")
	dbPath := flag.String("db", "", "optional SQLite file to persist the dataset into")
	speedUnits := flag.String("speed-units", units.MPS, "display units for ball speed: "+units.GetValidUnitsString())
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("trackdump %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if *format == "" || *dataPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if !units.IsValid(*speedUnits) {
		log.Fatalf("invalid -speed-units %q, want one of %s", *speedUnits, units.GetValidUnitsString())
	}

	meta, err := buildMeta(*fps, *homeName, *awayName, *homeTeamID, *awayTeamID, *homeStartsLeft, *periodsSpec)
	if err != nil {
		log.Fatalf("metadata: %v", err)
	}

	f, err := os.Open(*dataPath)
	if err != nil {
		log.Fatalf("open archive: %v", err)
	}
	defer f.Close()

	var reader pipeline.RecordReader
	switch *format {
	case "datline":
		reader, err = datline.NewReader(f, meta)
	case "posxml":
		reader, err = posxml.NewReader(f, meta)
	case "jsonline":
		reader, err = jsonline.NewReader(f, meta, pipeline.ReadCap(*limit, *sampleRate))
	default:
		log.Fatalf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("open %s feed: %v", *format, err)
	}

	des := pipeline.NewDeserializer(pipeline.DeserializerConfig{
		SampleRate:      *sampleRate,
		Limit:           *limit,
		IncludeDead:     *includeDead,
		DirectionWindow: *window,
	})

	started := time.Now()
	dataset, err := des.Deserialize(reader, meta)
	if err != nil {
		log.Fatalf("deserialize: %v", err)
	}
	printSummary(dataset, *speedUnits, time.Since(started))

	if *dbPath != "" {
		if err := persist(*dbPath, *dataPath, dataset); err != nil {
			log.Fatalf("persist: %v", err)
		}
	}
}

func buildMeta(fps float64, homeName, awayName, homeTeamID, awayTeamID, homeStartsLeft, periodsSpec string) (*tracking.MatchMeta, error) {
	meta := &tracking.MatchMeta{
		Home:      &tracking.Team{TeamID: homeTeamID, Name: homeName, Ground: tracking.GroundHome},
		Away:      &tracking.Team{TeamID: awayTeamID, Name: awayName, Ground: tracking.GroundAway},
		FrameRate: fps,
	}
	if homeStartsLeft != "" {
		v, err := strconv.ParseBool(homeStartsLeft)
		if err != nil {
			return nil, fmt.Errorf("parse -home-starts-left: %w", err)
		}
		meta.HomeStartsLeft = &v
	}
	if periodsSpec != "" {
		periods, err := parsePeriods(periodsSpec, fps)
		if err != nil {
			return nil, err
		}
		meta.Periods = periods
	}
	return meta, nil
}

// parsePeriods decodes "id=startFrame-endFrame,..." into period bounds on
// the match clock.
func parsePeriods(spec string, fps float64) ([]*tracking.Period, error) {
	var periods []*tracking.Period
	for _, part := range strings.Split(spec, ",") {
		id, bounds, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("period spec %q: expected id=start-end", part)
		}
		startStr, endStr, ok := strings.Cut(bounds, "-")
		if !ok {
			return nil, fmt.Errorf("period spec %q: expected id=start-end", part)
		}
		periodID, err := strconv.Atoi(id)
		if err != nil {
			return nil, fmt.Errorf("period id %q: %w", id, err)
		}
		startFrame, err := strconv.ParseInt(startStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("period %d start %q: %w", periodID, startStr, err)
		}
		endFrame, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("period %d end %q: %w", periodID, endStr, err)
		}
		periods = append(periods, &tracking.Period{
			ID:    periodID,
			Start: time.Duration(float64(startFrame) / fps * float64(time.Second)),
			End:   time.Duration(float64(endFrame) / fps * float64(time.Second)),
		})
	}
	return periods, nil
}

func printSummary(dataset *tracking.Dataset, speedUnits string, elapsed time.Duration) {
	meta := &dataset.Metadata
	log.Printf("provider=%s frames=%d orientation=%s fps=%.1f elapsed=%v",
		meta.Provider, len(dataset.Frames), meta.Orientation, meta.FrameRate, elapsed)
	for _, period := range meta.Periods {
		log.Printf("  period %d: %v to %v direction=%s",
			period.ID, period.Start, period.End, period.AttackingDirection())
	}
	for _, team := range meta.Teams {
		log.Printf("  %s (%s): %d rostered players", team.Name, team.Ground, len(team.Players))
	}
	if peak, ok := peakBallSpeed(dataset.Frames); ok {
		log.Printf("  peak ball speed: %.2f %s", units.ConvertSpeed(peak, speedUnits), speedUnits)
	}
}

// peakBallSpeed returns the fastest reported ball speed in m/s.
func peakBallSpeed(frames []*tracking.Frame) (float64, bool) {
	var peak float64
	var seen bool
	for _, frame := range frames {
		if frame.BallSpeed == nil {
			continue
		}
		if !seen || *frame.BallSpeed > peak {
			peak = *frame.BallSpeed
			seen = true
		}
	}
	return peak, seen
}

func persist(dbPath, name string, dataset *tracking.Dataset) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", dbPath, err)
	}
	defer db.Close()

	store := sqlite.NewFrameStore(db)
	if err := store.Init(); err != nil {
		return err
	}
	datasetID, err := store.SaveDataset(name, dataset)
	if err != nil {
		return err
	}
	log.Printf("✓ Saved dataset %d to %s", datasetID, dbPath)
	return nil
}

// Package pipeline turns a feed reader's raw tick records into a canonical,
// time-ordered frame sequence.
//
// Stages are lazy and pull-based: the deserializer consumes one record at a
// time from the reader, resolves its period, applies eligibility filtering
// and sampling, assembles a frame, and hands it to the coordinate
// transformer. Only two stages buffer: direction inference holds a bounded
// window per segment, and extra-time correction holds the extra-time frames
// until their orientation verdict is known.
package pipeline

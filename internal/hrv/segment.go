// Package hrv loads RR-interval segments and the bookkeeping files around
// them: per-timescale segment directories, subject inclusion lists, and the
// physiological band filter applied before any measure is computed.
package hrv

import (
	"fmt"
	"regexp"
	"strconv"
)

// Segment is one subject's RR-interval series at one timescale.
type Segment struct {
	SubjectID int
	Minutes   int
	RR        []float64 // milliseconds, preprocessing order preserved
}

// Band is the accepted RR range in milliseconds; samples outside it are
// treated as artifacts and removed before analysis.
type Band struct {
	LowerMS float64
	UpperMS float64
}

// DefaultBand matches the reference analysis configuration.
var DefaultBand = Band{LowerMS: 300, UpperMS: 2000}

// Filter returns the samples of rr that fall inside the band, preserving
// order. The input slice is not modified.
func (b Band) Filter(rr []float64) []float64 {
	out := make([]float64, 0, len(rr))
	for _, v := range rr {
		if v >= b.LowerMS && v <= b.UpperMS {
			out = append(out, v)
		}
	}
	return out
}

// Validate rejects an empty or inverted band.
func (b Band) Validate() error {
	if b.LowerMS <= 0 || b.UpperMS <= b.LowerMS {
		return fmt.Errorf("invalid RR band [%g, %g] ms", b.LowerMS, b.UpperMS)
	}
	return nil
}

var leadingID = regexp.MustCompile(`^(\d+)`)

// SubjectIDFromName extracts the numeric subject ID from a segment file
// stem ("103_5min" -> 103). The second return is false when the name does
// not start with digits.
func SubjectIDFromName(stem string) (int, bool) {
	m := leadingID.FindString(stem)
	if m == "" {
		return 0, false
	}
	id, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return id, true
}

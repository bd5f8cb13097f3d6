// Package hotspot decodes fire-detection observations and seeds grids with them.
package hotspot

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the acquisition date format used by FIRMS feeds and exports.
const DateLayout = "2006-01-02"

var (
	// ErrMissingCoordinate reports a record without latitude or longitude.
	ErrMissingCoordinate = errors.New("missing coordinate")
	// ErrBadCoordinate reports a coordinate that is not a finite number.
	ErrBadCoordinate = errors.New("invalid coordinate")
)

// Field names recognised in tabular records. Lookups are case-insensitive.
const (
	FieldLatitude   = "latitude"
	FieldLongitude  = "longitude"
	FieldDate       = "acq_date"
	FieldConfidence = "confidence"
	FieldFRP        = "frp"
	FieldBrightTI4  = "bright_ti4"
	FieldBrightness = "brightness"
)

// Record is a single tabular row addressable by column name.
type Record map[string]string

// Get returns the trimmed value stored under name, matching names
// case-insensitively.
func (r Record) Get(name string) (string, bool) {
	if v, ok := r[name]; ok {
		v = strings.TrimSpace(v)
		return v, v != ""
	}
	for k, v := range r {
		if strings.EqualFold(strings.TrimSpace(k), name) {
			v = strings.TrimSpace(v)
			return v, v != ""
		}
	}
	return "", false
}

// Hotspot is one observed fire detection.
type Hotspot struct {
	Latitude  float64   `json:"latitude" yaml:"latitude"`
	Longitude float64   `json:"longitude" yaml:"longitude"`
	Observed  time.Time `json:"observed,omitempty" yaml:"observed,omitempty"`

	// Confidence is kept verbatim: VIIRS reports l/n/h, MODIS 0-100.
	Confidence string `json:"confidence,omitempty" yaml:"confidence,omitempty"`

	Intensity    float64 `json:"intensity,omitempty" yaml:"intensity,omitempty"`
	HasIntensity bool    `json:"-" yaml:"-"`
}

// HasDate reports whether an acquisition date was present.
func (h Hotspot) HasDate() bool { return !h.Observed.IsZero() }

// Valid reports whether both coordinates are finite.
func (h Hotspot) Valid() bool {
	return finite(h.Latitude) && finite(h.Longitude)
}

// Parse converts a record into a Hotspot. Only the coordinates are required;
// unparseable optional fields are left unset.
func Parse(rec Record) (Hotspot, error) {
	lat, err := coordinate(rec, FieldLatitude)
	if err != nil {
		return Hotspot{}, err
	}
	lon, err := coordinate(rec, FieldLongitude)
	if err != nil {
		return Hotspot{}, err
	}
	h := Hotspot{Latitude: lat, Longitude: lon}

	if v, ok := rec.Get(FieldDate); ok {
		if t, err := time.Parse(DateLayout, v); err == nil {
			h.Observed = t
		}
	}
	if v, ok := rec.Get(FieldConfidence); ok {
		h.Confidence = v
	}
	for _, name := range []string{FieldFRP, FieldBrightTI4, FieldBrightness} {
		v, ok := rec.Get(name)
		if !ok {
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil && finite(f) {
			h.Intensity = f
			h.HasIntensity = true
			break
		}
	}
	return h, nil
}

// Decode parses every record, skipping malformed ones. It returns the decoded
// hotspots and the number of records skipped.
func Decode(records []Record) ([]Hotspot, int) {
	out := make([]Hotspot, 0, len(records))
	skipped := 0
	for _, rec := range records {
		h, err := Parse(rec)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, h)
	}
	return out, skipped
}

// LatestObserved returns the most recent acquisition date among hotspots.
func LatestObserved(hotspots []Hotspot) (time.Time, bool) {
	var latest time.Time
	for _, h := range hotspots {
		if h.Observed.After(latest) {
			latest = h.Observed
		}
	}
	return latest, !latest.IsZero()
}

func coordinate(rec Record, name string) (float64, error) {
	v, ok := rec.Get(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingCoordinate, name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || !finite(f) {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadCoordinate, name, v)
	}
	return f, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

package frame

import (
	"bytes"
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"

	"github.com/rileyhilliard/corewatch/internal/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MinUsage and MaxUsage bound every usage and history value.
const (
	MinUsage = 0.0
	MaxUsage = 100.0
)

// wireReading mirrors CoreReading with pointers so missing fields can be told
// apart from zero values.
type wireReading struct {
	CoreID  *int      `json:"core_id"`
	Usage   *float64  `json:"usage"`
	History []float64 `json:"history"`
}

// Decode parses one feed message into a Frame. Any structural problem rejects
// the whole message; a partial frame is never returned.
func Decode(raw []byte) (Frame, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New(errors.ErrDecode,
			"Frame is not a JSON array",
			"The feed must send an array of {core_id, usage, history} objects")
	}

	var wire []*wireReading
	if err := json.Unmarshal(trimmed, &wire); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrDecode,
			"Frame is not valid JSON", "")
	}

	f := make(Frame, 0, len(wire))
	seen := make(map[int]bool, len(wire))
	for i, w := range wire {
		r, err := w.reading(i)
		if err != nil {
			return nil, err
		}
		if seen[r.CoreID] {
			return nil, errors.New(errors.ErrDecode,
				fmt.Sprintf("Duplicate core_id %d in frame", r.CoreID), "")
		}
		seen[r.CoreID] = true
		f = append(f, r)
	}
	return f, nil
}

func (w *wireReading) reading(index int) (CoreReading, error) {
	if w == nil {
		return CoreReading{}, errors.New(errors.ErrDecode,
			fmt.Sprintf("Reading %d is null", index), "")
	}
	if w.CoreID == nil {
		return CoreReading{}, errors.New(errors.ErrDecode,
			fmt.Sprintf("Reading %d has no core_id", index), "")
	}
	if *w.CoreID < 0 {
		return CoreReading{}, errors.New(errors.ErrDecode,
			fmt.Sprintf("Reading %d has negative core_id %d", index, *w.CoreID), "")
	}
	if w.Usage == nil {
		return CoreReading{}, errors.New(errors.ErrDecode,
			fmt.Sprintf("Core %d has no usage", *w.CoreID), "")
	}
	if !inRange(*w.Usage) {
		return CoreReading{}, errors.New(errors.ErrDecode,
			fmt.Sprintf("Core %d usage %v is outside 0-100", *w.CoreID, *w.Usage), "")
	}
	for j, v := range w.History {
		if !inRange(v) {
			return CoreReading{}, errors.New(errors.ErrDecode,
				fmt.Sprintf("Core %d history[%d] %v is outside 0-100", *w.CoreID, j, v), "")
		}
	}

	history := w.History
	if history == nil {
		history = []float64{}
	}
	return CoreReading{CoreID: *w.CoreID, Usage: *w.Usage, History: history}, nil
}

func inRange(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= MinUsage && v <= MaxUsage
}

// Encode marshals a frame back to indented JSON for the JSON output surface.
func Encode(f Frame) ([]byte, error) {
	if f == nil {
		f = Frame{}
	}
	return json.MarshalIndent(f, "", "  ")
}

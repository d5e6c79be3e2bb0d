package model

import (
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/panoptes/pkg/domain/types"
)

// SeverityCount is one entry of a severity distribution. Input order is
// preserved through to the rendered chart, so the distribution is a
// slice of pairs rather than a Go map.
type SeverityCount struct {
	Label types.SeverityID `json:"label"`
	Count int              `json:"count"`
}

// SeverityCounts is an ordered severity distribution
type SeverityCounts []SeverityCount

// Add increments the count for the given label, appending a new entry
// when the label has not been seen yet
func (c SeverityCounts) Add(label types.SeverityID, n int) SeverityCounts {
	for i := range c {
		if c[i].Label == label {
			c[i].Count += n
			return c
		}
	}
	return append(c, SeverityCount{Label: label, Count: n})
}

// ChartSlice is one wedge of the severity donut chart. Recomputed on
// every render; never stored.
type ChartSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// ParseSeverityCounts decodes a JSON object of label -> count into an
// ordered distribution, preserving the document order of the keys.
// encoding/json map decoding would lose the order, so the object is
// walked token by token.
func ParseSeverityCounts(r io.Reader) (SeverityCounts, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read severity counts")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, goerr.New("severity counts must be a JSON object",
			goerr.V("token", tok))
	}

	var counts SeverityCounts
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read severity label")
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, goerr.New("severity label must be a string",
				goerr.V("token", keyTok))
		}

		var count int
		if err := dec.Decode(&count); err != nil {
			return nil, goerr.Wrap(err, "severity count must be an integer",
				goerr.V("label", key))
		}

		counts = append(counts, SeverityCount{
			Label: types.SeverityID(key),
			Count: count,
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, goerr.Wrap(err, "failed to read end of severity counts")
	}

	return counts, nil
}

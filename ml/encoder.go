package ml

import (
	"errors"
	"sort"
)

// LabelEncoder maps category strings to float indices. Classes are
// sorted so encodings are stable across training runs on the same
// corpus. Unknown values at predict time map to 0.
type LabelEncoder struct {
	Classes []string `json:"classes"`

	index map[string]float64
}

// Fit collects the distinct values and assigns sorted indices.
func (e *LabelEncoder) Fit(values []string) error {
	if len(values) == 0 {
		return errors.New("no values to encode")
	}

	seen := make(map[string]bool, len(values))
	for _, v := range values {
		seen[v] = true
	}
	e.Classes = make([]string, 0, len(seen))
	for v := range seen {
		e.Classes = append(e.Classes, v)
	}
	sort.Strings(e.Classes)

	e.buildIndex()
	return nil
}

// Transform encodes one value. The index is rebuilt lazily after the
// encoder comes back from a JSON model artifact.
func (e *LabelEncoder) Transform(value string) float64 {
	if e.index == nil {
		e.buildIndex()
	}
	if idx, ok := e.index[value]; ok {
		return idx
	}
	return 0
}

func (e *LabelEncoder) buildIndex() {
	e.index = make(map[string]float64, len(e.Classes))
	for i, c := range e.Classes {
		e.index[c] = float64(i)
	}
}

package colour

import "fmt"

// MaxExcluded is the largest number of colours an ExclusionSet may hold.
const MaxExcluded = 5

// DefaultThreshold is the minimum normalised distance a pixel must keep
// from every excluded colour to survive filtering.
const DefaultThreshold = 0.05

// ExclusionSet is an ordered, read-only list of colours to filter out.
type ExclusionSet struct {
	colors []Color
}

func NewExclusionSet(colors ...Color) (ExclusionSet, error) {
	if len(colors) > MaxExcluded {
		return ExclusionSet{}, fmt.Errorf("at most %d colours can be excluded, got %d", MaxExcluded, len(colors))
	}
	return ExclusionSet{colors: append([]Color(nil), colors...)}, nil
}

func (s ExclusionSet) Len() int {
	return len(s.colors)
}

func (s ExclusionSet) Empty() bool {
	return len(s.colors) == 0
}

// Colors returns a copy of the excluded colours.
func (s ExclusionSet) Colors() []Color {
	return append([]Color(nil), s.colors...)
}

// Excludes reports whether c is too close to any colour in the set.
func (s ExclusionSet) Excludes(c Color, threshold float64) bool {
	for _, ex := range s.colors {
		if float64(c.Distance(ex)/MaxDistance) < threshold {
			return true
		}
	}
	return false
}

// Filter drops every pixel of buf that lies within threshold of an excluded
// colour and returns the survivors as packed RGB triples.
//
// With an empty set buf is returned as is, still in format f; callers must
// only treat the result as RGB when the set is non-empty.
func Filter(buf []byte, f PixelFormat, excluded ExclusionSet, threshold float64) ([]byte, error) {
	if excluded.Empty() {
		return buf, nil
	}
	if err := f.Validate(buf); err != nil {
		return nil, err
	}

	stride := f.Stride()
	out := make([]byte, 0, len(buf)/stride*3)
	for i := 0; i < len(buf); i += stride {
		c, err := Decode(buf[i:i+stride], f)
		if err != nil {
			return nil, err
		}
		if excluded.Excludes(c, threshold) {
			continue
		}
		out = append(out, c.R, c.G, c.B)
	}
	return out, nil
}

package riasec

import "fmt"

// Dimension is one of the six RIASEC interest dimensions. The order of the
// constants is significant: profiles, catalog columns and tie-breaks all use it.
type Dimension int

const (
	Realistic Dimension = iota
	Investigative
	Artistic
	Social
	Enterprising
	Conventional
)

// NumDimensions is the fixed size of a profile vector.
const NumDimensions = 6

var codes = [NumDimensions]string{"R", "I", "A", "S", "E", "C"}

var names = [NumDimensions]string{
	"Realistic",
	"Investigative",
	"Artistic",
	"Social",
	"Enterprising",
	"Conventional",
}

var descriptions = [NumDimensions]string{
	"Realistic people prefer practical, hands-on activities and like working with tools, machines, plants or animals.",
	"Investigative people prefer activities that involve thinking, observing and solving problems.",
	"Artistic people prefer unstructured, creative activities such as art, music or writing.",
	"Social people enjoy helping, teaching or serving other people.",
	"Enterprising people enjoy leading, influencing others and doing business.",
	"Conventional people prefer structured work that involves data and detail.",
}

// Dimensions returns all six dimensions in their fixed order.
func Dimensions() [NumDimensions]Dimension {
	return [NumDimensions]Dimension{Realistic, Investigative, Artistic, Social, Enterprising, Conventional}
}

// Code returns the single-letter code for the dimension.
func (d Dimension) Code() string {
	if !d.valid() {
		return ""
	}
	return codes[d]
}

// Name returns the full dimension name, e.g. "Realistic".
func (d Dimension) Name() string {
	if !d.valid() {
		return ""
	}
	return names[d]
}

// Description returns a short human-readable description of the dimension.
func (d Dimension) Description() string {
	if !d.valid() {
		return ""
	}
	return descriptions[d]
}

func (d Dimension) String() string {
	return d.Code()
}

func (d Dimension) valid() bool {
	return d >= Realistic && d <= Conventional
}

// ParseDimension resolves a single-letter code or a full name to a Dimension.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions() {
		if s == codes[d] || s == names[d] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown dimension %q", s)
}

// UnmarshalYAML lets questionnaire files tag questions with "R".."C" codes.
func (d *Dimension) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseDimension(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML emits the single-letter code.
func (d Dimension) MarshalYAML() (any, error) {
	return d.Code(), nil
}

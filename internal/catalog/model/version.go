package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Version is either a bare integer or a dotted semantic version. The
// two forms stay distinct and marshal back to the wire shape they were
// decoded from: a JSON number for the numeric form, a quoted dotted
// string for the semantic one.
type Version struct {
	parts   []int
	numeric int
}

func NumericVersion(n int) Version { return Version{numeric: n} }

func SemanticVersion(parts ...int) Version {
	p := make([]int, len(parts))
	copy(p, parts)
	return Version{parts: p}
}

func (v Version) IsSemantic() bool { return v.parts != nil }

// Numeric returns the bare integer value; zero for semantic versions.
func (v Version) Numeric() int { return v.numeric }

// Parts returns a copy of the semantic components; nil for numeric versions.
func (v Version) Parts() []int {
	if v.parts == nil {
		return nil
	}
	p := make([]int, len(v.parts))
	copy(p, v.parts)
	return p
}

func (v Version) String() string {
	if !v.IsSemantic() {
		return strconv.Itoa(v.numeric)
	}
	segs := make([]string, len(v.parts))
	for i, p := range v.parts {
		segs[i] = strconv.Itoa(p)
	}
	return strings.Join(segs, ".")
}

// ParseVersion accepts "3" or dotted forms such as "1.2.0".
func ParseVersion(s string) (Version, error) {
	if !strings.Contains(s, ".") {
		n, err := strconv.Atoi(s)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q", s)
		}
		return NumericVersion(n), nil
	}
	segs := strings.Split(s, ".")
	parts := make([]int, len(segs))
	for i, seg := range segs {
		n, err := strconv.Atoi(seg)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q", s)
		}
		parts[i] = n
	}
	return Version{parts: parts}, nil
}

func (v Version) MarshalJSON() ([]byte, error) {
	if v.IsSemantic() {
		return json.Marshal(v.String())
	}
	return json.Marshal(v.numeric)
}

func (v *Version) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*v = NumericVersion(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("version must be a number or a string, got %s", data)
	}
	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

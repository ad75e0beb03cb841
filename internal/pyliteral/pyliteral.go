// Package pyliteral parses the narrow subset of Python literal syntax that
// appears in a .npy header: a dict literal with string keys, whose values
// are a quoted string, a bool, or a tuple of integers. It is deliberately
// not a general Python parser — it only needs to survive whatever NumPy's
// own header writer produces.
package pyliteral

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingKey is wrapped into the error ParseDict returns when one of
// expectedKeys is absent from the input, so callers can distinguish "key
// not present" from "value present but malformed" without string matching.
var ErrMissingKey = errors.New("missing key")

// ParseDict extracts the raw (untrimmed of surrounding literal syntax)
// right-hand side of each key in expectedKeys from a Python dict literal.
// Keys not in expectedKeys are never discovered, by design: the .npy header
// format allows future keys, and this parser only cares about the three it
// was told to look for.
func ParseDict(input string, expectedKeys []string) (map[string]string, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")

	type found struct {
		key   string
		start int
	}

	var positions []found
	for _, key := range expectedKeys {
		needle := "'" + key + "'"
		idx := strings.Index(s, needle)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingKey, key)
		}
		positions = append(positions, found{key: key, start: idx})
	}

	// Sort by position so each key's value can be sliced up to the next key.
	for i := 1; i < len(positions); i++ {
		for j := i; j > 0 && positions[j].start < positions[j-1].start; j-- {
			positions[j], positions[j-1] = positions[j-1], positions[j]
		}
	}

	out := make(map[string]string, len(expectedKeys))
	for i, p := range positions {
		end := len(s)
		if i+1 < len(positions) {
			end = positions[i+1].start
		}
		segment := s[p.start:end]

		colon := strings.Index(segment, ":")
		if colon < 0 {
			return nil, fmt.Errorf("malformed entry for key %q: no colon found", p.key)
		}
		value := strings.TrimSpace(segment[colon+1:])
		value = strings.TrimSuffix(value, ",")
		value = strings.TrimSpace(value)
		out[p.key] = value
	}

	return out, nil
}

// ParseBool parses the literal "True" or "False".
func ParseBool(s string) (bool, error) {
	switch strings.TrimSpace(s) {
	case "True":
		return true, nil
	case "False":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool literal %q", s)
	}
}

// ParseStr parses a single-quoted string literal and returns its interior.
func ParseStr(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '\'' || s[len(s)-1] != '\'' {
		return "", fmt.Errorf("invalid string literal %q", s)
	}
	return s[1 : len(s)-1], nil
}

// ParseTuple parses a tuple of non-negative integers, e.g. "(3, 4)" or
// "(5,)". An empty tuple "()" returns a nil, non-error slice. NumPy's
// writer emits a trailing comma for 1-tuples; the resulting empty trailing
// piece is dropped rather than treated as a parse error.
func ParseTuple(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	pieces := strings.Split(s, ",")
	out := make([]int, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		v, err := strconv.Atoi(piece)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q in tuple", piece)
		}
		if v < 0 {
			return nil, fmt.Errorf("negative dimension %d in tuple", v)
		}
		out = append(out, v)
	}
	return out, nil
}

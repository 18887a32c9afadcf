package models

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
)

var numericPattern = regexp.MustCompile(`^[+-]?([0-9]*[.])?[0-9]+$`)

// Numeric holds a JSON value that should be a number. Decoding never fails so
// that a wrong type is reported by validation alongside the other field errors.
// Numbers and numeric strings are both accepted; null or a missing key leaves it empty.
type Numeric string

func (n *Numeric) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		*n = Numeric(data)
		return nil
	}
	switch v := v.(type) {
	case nil:
		*n = ""
	case json.Number:
		if f, err := v.Float64(); err == nil {
			*n = Numeric(strconv.FormatFloat(f, 'f', -1, 64))
		} else {
			*n = Numeric(v)
		}
	case string:
		*n = Numeric(v)
	default:
		// bool, object or array: keep the raw text so validation rejects it
		*n = Numeric(data)
	}
	return nil
}

// Float64 parses the value. Call only after ValidNumeric accepted it.
func (n Numeric) Float64() float64 {
	f, _ := strconv.ParseFloat(string(n), 64)
	return f
}

// ValidNumeric reports whether s is a plain decimal number with a finite value.
// Exponents, hex and surrounding spaces are rejected.
func ValidNumeric(s string) bool {
	if !numericPattern.MatchString(s) {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(f, 0) && !math.IsNaN(f)
}

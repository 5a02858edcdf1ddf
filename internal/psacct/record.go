package psacct

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// AnonymousProcess labels summary lines that carry no command name.
const AnonymousProcess = "ANONYMOUS"

// recordFields is the token count of a normalized `sa -ajlp` line.
const recordFields = 8

var (
	ErrEmptyLine       = errors.New("empty psacct line")
	ErrMalformedRecord = errors.New("malformed psacct record")
)

// unit suffixes printed by `sa -ajlp` for tokens 2..7
var unitSuffixes = [recordFields - 1]string{"", "re", "u", "s", "min", "maj", "swp"}

// Record is one `sa -ajlp` line, e.g.
//
//	1  0.01re  0.00u  0.01s  231min  0maj  0swp  sadc
type Record struct {
	Host        string
	Process     string
	NumCalls    int64
	ElapsedTime float64 // seconds
	UserTime    float64 // seconds
	SystemTime  float64 // seconds
	MinFaults   int64
	MajFaults   int64
	SwapEvents  int64
}

// Key returns the series identity "process@host".
func (r Record) Key() string {
	return r.Process + "@" + r.Host
}

// Normalize turns a whitespace separated line into comma separated values,
// stripping unit suffixes and filling in the anonymous process name.
func Normalize(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	if len(fields) == recordFields-1 {
		fields = append(fields, AnonymousProcess)
	}
	for i := 1; i < len(fields) && i < len(unitSuffixes); i++ {
		fields[i] = strings.TrimSuffix(fields[i], unitSuffixes[i])
	}
	return strings.Join(fields, ",")
}

// IsValid reports whether a normalized line has exactly eight tokens.
func IsValid(csv string) bool {
	if csv == "" {
		return false
	}
	return len(strings.Split(csv, ",")) == recordFields
}

// ParseLine normalizes, validates and decodes one line for host.
func ParseLine(host, line string) (Record, error) {
	csv := Normalize(line)
	if csv == "" {
		return Record{}, ErrEmptyLine
	}
	if !IsValid(csv) {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
	}

	tok := strings.Split(csv, ",")
	rec := Record{Host: host, Process: tok[7]}

	var err error
	ints := []struct {
		dst *int64
		src string
	}{
		{&rec.NumCalls, tok[0]},
		{&rec.MinFaults, tok[4]},
		{&rec.MajFaults, tok[5]},
		{&rec.SwapEvents, tok[6]},
	}
	for _, f := range ints {
		if *f.dst, err = strconv.ParseInt(f.src, 10, 64); err != nil {
			return Record{}, fmt.Errorf("%w: %q: %v", ErrMalformedRecord, line, err)
		}
		if *f.dst < 0 {
			return Record{}, fmt.Errorf("%w: %q: negative value %s", ErrMalformedRecord, line, f.src)
		}
	}

	floats := []struct {
		dst *float64
		src string
	}{
		{&rec.ElapsedTime, tok[1]},
		{&rec.UserTime, tok[2]},
		{&rec.SystemTime, tok[3]},
	}
	for _, f := range floats {
		if *f.dst, err = strconv.ParseFloat(f.src, 64); err != nil {
			return Record{}, fmt.Errorf("%w: %q: %v", ErrMalformedRecord, line, err)
		}
		if math.IsNaN(*f.dst) || math.IsInf(*f.dst, 0) || *f.dst < 0 {
			return Record{}, fmt.Errorf("%w: %q: invalid time %s", ErrMalformedRecord, line, f.src)
		}
	}

	return rec, nil
}

package sysstat

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrDecode is returned when a sadf document cannot be turned into a Snapshot.
var ErrDecode = errors.New("decode sadf document")

type sadfDocument struct {
	Sysstat struct {
		Hosts []sadfHost `json:"hosts"`
	} `json:"sysstat"`
}

type sadfHost struct {
	Nodename     string     `json:"nodename"`
	NumberOfCPUs int        `json:"number-of-cpus"`
	Statistics   []Snapshot `json:"statistics"`
}

// Decode reads a `sadf -j -- -A` document and returns the first statistics
// entry of the first host, with the host name and CPU count lifted into it.
func Decode(r io.Reader) (*Snapshot, error) {
	var doc sadfDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if len(doc.Sysstat.Hosts) == 0 {
		return nil, fmt.Errorf("%w: no hosts", ErrDecode)
	}
	h := doc.Sysstat.Hosts[0]

	if len(h.Statistics) == 0 {
		return nil, fmt.Errorf("%w: no statistics for host %q", ErrDecode, h.Nodename)
	}

	snap := h.Statistics[0]
	snap.Hostname = h.Nodename
	snap.NumCPUs = h.NumberOfCPUs
	return &snap, nil
}

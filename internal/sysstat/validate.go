package sysstat

import "errors"

// ErrIncompleteSnapshot is returned for snapshots missing a required section.
var ErrIncompleteSnapshot = errors.New("incomplete sysstat snapshot")

// MissingSections returns the sadf names of all required sections that are
// absent from s. Present but empty collections are not reported.
func MissingSections(s *Snapshot) []string {
	if s == nil {
		return []string{"snapshot"}
	}

	var missing []string
	check := func(present bool, name string) {
		if !present {
			missing = append(missing, name)
		}
	}

	check(s.CPULoad != nil, "cpu-load")
	check(s.ProcessAndContextSwitch != nil, "process-and-context-switch")
	check(s.SwapPages != nil, "swap-pages")
	check(s.Paging != nil, "paging")
	check(s.IO != nil, "io")
	check(s.Memory != nil, "memory")
	check(s.Hugepages != nil, "hugepages")
	check(s.Kernel != nil, "kernel")
	check(s.Queue != nil, "queue")
	check(s.Disk != nil, "disk")
	check(s.Network != nil, "network")
	check(s.PSI != nil, "psi")

	return missing
}

// IsValid reports whether every required section of s is present.
func IsValid(s *Snapshot) bool {
	return len(MissingSections(s)) == 0
}

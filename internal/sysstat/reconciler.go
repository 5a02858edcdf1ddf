package sysstat

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/neox5/acctstat/internal/series"
)

// Entity label names.
const (
	LabelCPU    = "cpu"
	LabelBlkdev = "blkdev"
	LabelIface  = "iface"
)

// hostState is the retained snapshot of one host and the gauges bound to it.
type hostState struct {
	mu sync.Mutex

	snap  *Snapshot
	fixed []*series.Series

	cpus    *collection[CPULoad]
	disks   *collection[Disk]
	netDev  *collection[NetDev]
	netEDev *collection[NetEDev]
	softnet *collection[Softnet]
}

// Reconciler folds successive snapshots into one retained snapshot per host
// and keeps the registered gauges in step with it.
type Reconciler struct {
	registry *series.Registry
	logger   *slog.Logger

	mu    sync.Mutex
	hosts map[string]*hostState
}

// NewReconciler creates a reconciler publishing into registry.
func NewReconciler(registry *series.Registry, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		registry: registry,
		logger:   logger,
		hosts:    make(map[string]*hostState),
	}
}

// ProcessSnapshot validates snap and reconciles it into the retained state of
// its host. The first valid snapshot of a host is adopted as is; the caller
// must not modify it afterwards. Incomplete snapshots are rejected with
// ErrIncompleteSnapshot and change nothing.
func (r *Reconciler) ProcessSnapshot(snap *Snapshot) error {
	if missing := MissingSections(snap); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteSnapshot, strings.Join(missing, ", "))
	}

	hs := r.state(snap.Hostname)

	hs.mu.Lock()
	defer hs.mu.Unlock()

	if hs.snap == nil {
		r.adopt(hs, snap)
	} else {
		r.reconcile(hs, snap)
	}
	hs.publish()

	return nil
}

func (r *Reconciler) state(host string) *hostState {
	r.mu.Lock()
	defer r.mu.Unlock()

	hs, ok := r.hosts[host]
	if !ok {
		hs = &hostState{}
		r.hosts[host] = hs
	}
	return hs
}

// adopt binds every leaf and entity row of snap to a gauge.
func (r *Reconciler) adopt(hs *hostState, snap *Snapshot) {
	host := snap.Hostname
	key := series.NewKey("host", host)

	hs.snap = snap
	hs.fixed = make([]*series.Series, len(fixedFields))
	for i, f := range fixedFields {
		hs.fixed[i] = r.registry.GetOrCreate(f.name, key, series.KindGauge)
	}

	hs.cpus = newCollection(LabelCPU, func(c *CPULoad) string { return c.CPU }, cpuFields, &snap.CPULoad)
	hs.disks = newCollection(LabelBlkdev, func(d *Disk) string { return d.DiskDevice }, diskFields, &snap.Disk)
	hs.netDev = newCollection(LabelIface, func(n *NetDev) string { return n.Iface }, netDevFields, &snap.Network.NetDev)
	hs.netEDev = newCollection(LabelIface, func(n *NetEDev) string { return n.Iface }, netEDevFields, &snap.Network.NetEDev)
	hs.softnet = newCollection(LabelCPU, func(s *Softnet) string { return s.CPU }, softnetFields, &snap.Network.Softnet)

	hs.cpus.adopt(r.registry, host)
	hs.disks.adopt(r.registry, host)
	hs.netDev.adopt(r.registry, host)
	hs.netEDev.adopt(r.registry, host)
	hs.softnet.adopt(r.registry, host)

	r.logger.Info("adopted sysstat snapshot",
		"host", host,
		"cpus", hs.cpus.size(),
		"disks", hs.disks.size(),
		"interfaces", hs.netDev.size(),
		"series", r.registry.Len())
}

// reconcile copies snap into the retained snapshot, keeping section pointers.
func (r *Reconciler) reconcile(hs *hostState, snap *Snapshot) {
	dst := hs.snap
	host := dst.Hostname

	dst.NumCPUs = snap.NumCPUs
	*dst.ProcessAndContextSwitch = *snap.ProcessAndContextSwitch
	*dst.SwapPages = *snap.SwapPages
	*dst.Paging = *snap.Paging
	*dst.IO = *snap.IO
	*dst.Memory = *snap.Memory
	*dst.Hugepages = *snap.Hugepages
	*dst.Kernel = *snap.Kernel
	*dst.Queue = *snap.Queue
	dst.Network.NFS = snap.Network.NFS
	dst.Network.NFSD = snap.Network.NFSD
	dst.Network.Sock = snap.Network.Sock
	*dst.PSI = *snap.PSI

	r.logGrowth(host, "cpu-load", hs.cpus.merge(r.registry, host, snap.CPULoad))
	r.logGrowth(host, "disk", hs.disks.merge(r.registry, host, snap.Disk))
	r.logGrowth(host, "net-dev", hs.netDev.merge(r.registry, host, snap.Network.NetDev))
	r.logGrowth(host, "net-edev", hs.netEDev.merge(r.registry, host, snap.Network.NetEDev))
	r.logGrowth(host, "softnet", hs.softnet.merge(r.registry, host, snap.Network.Softnet))
}

func (r *Reconciler) logGrowth(host, section string, added []string) {
	if len(added) == 0 {
		return
	}
	r.logger.Info("sysstat cardinality grew",
		"host", host,
		"section", section,
		"added", added,
		"series", r.registry.Len())
}

func (hs *hostState) publish() {
	for i, f := range fixedFields {
		hs.fixed[i].Set(f.get(hs.snap))
	}
	hs.cpus.publish()
	hs.disks.publish()
	hs.netDev.publish()
	hs.netEDev.publish()
	hs.softnet.publish()
}

// Retained returns a copy of the retained snapshot of host.
func (r *Reconciler) Retained(host string) (*Snapshot, bool) {
	r.mu.Lock()
	hs, ok := r.hosts[host]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}

	hs.mu.Lock()
	defer hs.mu.Unlock()

	if hs.snap == nil {
		return nil, false
	}
	return hs.snap.Clone(), true
}

// Hosts returns the sorted names of all hosts with a retained snapshot.
func (r *Reconciler) Hosts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	hosts := make([]string, 0, len(r.hosts))
	for h := range r.hosts {
		hosts = append(hosts, h)
	}
	sort.Strings(hosts)
	return hosts
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.CPULoad = cloneSlice(s.CPULoad)
	c.Disk = cloneSlice(s.Disk)
	c.ProcessAndContextSwitch = clonePtr(s.ProcessAndContextSwitch)
	c.SwapPages = clonePtr(s.SwapPages)
	c.Paging = clonePtr(s.Paging)
	c.IO = clonePtr(s.IO)
	c.Memory = clonePtr(s.Memory)
	c.Hugepages = clonePtr(s.Hugepages)
	c.Kernel = clonePtr(s.Kernel)
	c.Queue = clonePtr(s.Queue)
	c.PSI = clonePtr(s.PSI)
	if s.Network != nil {
		n := *s.Network
		n.NetDev = cloneSlice(s.Network.NetDev)
		n.NetEDev = cloneSlice(s.Network.NetEDev)
		n.Softnet = cloneSlice(s.Network.Softnet)
		c.Network = &n
	}
	return &c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}

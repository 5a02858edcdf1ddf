package sysstat

// field binds one exported gauge name to a leaf of T.
type field[T any] struct {
	name string
	get  func(*T) float64
}

// fixedFields covers every scalar leaf of the non-collection sections.
// Entries are only evaluated on snapshots that passed IsValid.
var fixedFields = []field[Snapshot]{
	{"sysstat.sched.ctxswitch", func(s *Snapshot) float64 { return s.ProcessAndContextSwitch.Cswch }},
	{"sysstat.sched.newproc", func(s *Snapshot) float64 { return s.ProcessAndContextSwitch.Proc }},

	{"sysstat.vm.paging.pg.in", func(s *Snapshot) float64 { return s.SwapPages.Pswpin }},
	{"sysstat.vm.paging.pg.out", func(s *Snapshot) float64 { return s.SwapPages.Pswpout }},

	{"sysstat.vm.paging.kb.in", func(s *Snapshot) float64 { return s.Paging.Pgpgin }},
	{"sysstat.vm.paging.kb.out", func(s *Snapshot) float64 { return s.Paging.Pgpgout }},
	{"sysstat.vm.fault.total", func(s *Snapshot) float64 { return s.Paging.Fault }},
	{"sysstat.vm.fault.major", func(s *Snapshot) float64 { return s.Paging.Majflt }},
	{"sysstat.vm.pg.freed", func(s *Snapshot) float64 { return s.Paging.Pgfree }},
	{"sysstat.vm.pg.scan.kswapd", func(s *Snapshot) float64 { return s.Paging.Pgscank }},
	{"sysstat.vm.pg.scan.direct", func(s *Snapshot) float64 { return s.Paging.Pgscand }},
	{"sysstat.vm.pg.cache.reclaimed", func(s *Snapshot) float64 { return s.Paging.Pgsteal }},
	{"sysstat.vm.efficiency.pct", func(s *Snapshot) float64 { return s.Paging.VmeffPercent }},

	{"sysstat.io.tps.total", func(s *Snapshot) float64 { return s.IO.TPS }},
	{"sysstat.io.tps.read", func(s *Snapshot) float64 { return s.IO.Reads.Rtps }},
	{"sysstat.io.blk.read", func(s *Snapshot) float64 { return s.IO.Reads.Bread }},
	{"sysstat.io.tps.write", func(s *Snapshot) float64 { return s.IO.Writes.Wtps }},
	{"sysstat.io.blk.write", func(s *Snapshot) float64 { return s.IO.Writes.Bwrtn }},
	{"sysstat.io.tps.discard", func(s *Snapshot) float64 { return s.IO.Discard.Dtps }},
	{"sysstat.io.blk.discard", func(s *Snapshot) float64 { return s.IO.Discard.Bdscd }},

	{"sysstat.mem.kb.free", func(s *Snapshot) float64 { return float64(s.Memory.Memfree) }},
	{"sysstat.mem.kb.avail", func(s *Snapshot) float64 { return float64(s.Memory.Avail) }},
	{"sysstat.mem.kb.used", func(s *Snapshot) float64 { return float64(s.Memory.Memused) }},
	{"sysstat.mem.pct.used", func(s *Snapshot) float64 { return s.Memory.MemusedPercent }},
	{"sysstat.mem.kb.buf", func(s *Snapshot) float64 { return float64(s.Memory.Buffers) }},
	{"sysstat.mem.kb.cache", func(s *Snapshot) float64 { return float64(s.Memory.Cached) }},
	{"sysstat.mem.kb.commit", func(s *Snapshot) float64 { return float64(s.Memory.Commit) }},
	{"sysstat.mem.pct.commit", func(s *Snapshot) float64 { return s.Memory.CommitPercent }},
	{"sysstat.mem.kb.active", func(s *Snapshot) float64 { return float64(s.Memory.Active) }},
	{"sysstat.mem.kb.inactive", func(s *Snapshot) float64 { return float64(s.Memory.Inactive) }},
	{"sysstat.mem.kb.dirty", func(s *Snapshot) float64 { return float64(s.Memory.Dirty) }},
	{"sysstat.mem.kb.anonpg", func(s *Snapshot) float64 { return float64(s.Memory.Anonpg) }},
	{"sysstat.mem.kb.slab", func(s *Snapshot) float64 { return float64(s.Memory.Slab) }},
	{"sysstat.mem.kb.kstack", func(s *Snapshot) float64 { return float64(s.Memory.Kstack) }},
	{"sysstat.mem.kb.pgtbl", func(s *Snapshot) float64 { return float64(s.Memory.Pgtbl) }},
	{"sysstat.mem.kb.vmused", func(s *Snapshot) float64 { return float64(s.Memory.Vmused) }},
	{"sysstat.mem.swap.kb.free", func(s *Snapshot) float64 { return float64(s.Memory.Swpfree) }},
	{"sysstat.mem.swap.kb.used", func(s *Snapshot) float64 { return float64(s.Memory.Swpused) }},
	{"sysstat.mem.swap.pct.used", func(s *Snapshot) float64 { return s.Memory.SwpusedPercent }},
	{"sysstat.mem.swap.kb.cached", func(s *Snapshot) float64 { return float64(s.Memory.Swpcad) }},
	{"sysstat.mem.swap.pct.cached", func(s *Snapshot) float64 { return s.Memory.SwpcadPercent }},

	{"sysstat.mem.huge.kb.free", func(s *Snapshot) float64 { return float64(s.Hugepages.Hugfree) }},
	{"sysstat.mem.huge.kb.used", func(s *Snapshot) float64 { return float64(s.Hugepages.Hugused) }},
	{"sysstat.mem.huge.pct.used", func(s *Snapshot) float64 { return s.Hugepages.HugusedPercent }},
	{"sysstat.mem.huge.kb.reserved", func(s *Snapshot) float64 { return float64(s.Hugepages.Hugrsvd) }},
	{"sysstat.mem.huge.kb.surplus", func(s *Snapshot) float64 { return float64(s.Hugepages.Hugsurp) }},

	{"sysstat.kernel.dentry.unused", func(s *Snapshot) float64 { return float64(s.Kernel.Dentunusd) }},
	{"sysstat.kernel.nr.file", func(s *Snapshot) float64 { return float64(s.Kernel.FileNr) }},
	{"sysstat.kernel.nr.inode", func(s *Snapshot) float64 { return float64(s.Kernel.InodeNr) }},
	{"sysstat.kernel.nr.pty", func(s *Snapshot) float64 { return float64(s.Kernel.PtyNr) }},

	{"sysstat.sched.sz.runq", func(s *Snapshot) float64 { return float64(s.Queue.RunqSz) }},
	{"sysstat.sched.sz.plist", func(s *Snapshot) float64 { return float64(s.Queue.PlistSz) }},
	{"sysstat.sched.load.1", func(s *Snapshot) float64 { return s.Queue.Ldavg1 }},
	{"sysstat.sched.load.5", func(s *Snapshot) float64 { return s.Queue.Ldavg5 }},
	{"sysstat.sched.load.15", func(s *Snapshot) float64 { return s.Queue.Ldavg15 }},
	{"sysstat.sched.sz.blocked", func(s *Snapshot) float64 { return float64(s.Queue.Blocked) }},

	{"sysstat.net.nfs.total", func(s *Snapshot) float64 { return s.Network.NFS.Call }},
	{"sysstat.net.nfs.retrans", func(s *Snapshot) float64 { return s.Network.NFS.Retrans }},
	{"sysstat.net.nfs.read", func(s *Snapshot) float64 { return s.Network.NFS.Read }},
	{"sysstat.net.nfs.write", func(s *Snapshot) float64 { return s.Network.NFS.Write }},
	{"sysstat.net.nfs.access", func(s *Snapshot) float64 { return s.Network.NFS.Access }},
	{"sysstat.net.nfs.getattr", func(s *Snapshot) float64 { return s.Network.NFS.Getatt }},

	{"sysstat.net.nfsd.total", func(s *Snapshot) float64 { return s.Network.NFSD.Scall }},
	{"sysstat.net.nfsd.error", func(s *Snapshot) float64 { return s.Network.NFSD.Badcall }},
	{"sysstat.net.nfsd.packets.total", func(s *Snapshot) float64 { return s.Network.NFSD.Packet }},
	{"sysstat.net.nfsd.packets.udp", func(s *Snapshot) float64 { return s.Network.NFSD.UDP }},
	{"sysstat.net.nfsd.packets.tcp", func(s *Snapshot) float64 { return s.Network.NFSD.TCP }},
	{"sysstat.net.nfsd.cache.hit", func(s *Snapshot) float64 { return s.Network.NFSD.Hit }},
	{"sysstat.net.nfsd.cache.miss", func(s *Snapshot) float64 { return s.Network.NFSD.Miss }},
	{"sysstat.net.nfsd.op.read", func(s *Snapshot) float64 { return s.Network.NFSD.Sread }},
	{"sysstat.net.nfsd.op.write", func(s *Snapshot) float64 { return s.Network.NFSD.Swrite }},
	{"sysstat.net.nfsd.op.access", func(s *Snapshot) float64 { return s.Network.NFSD.Saccess }},
	{"sysstat.net.nfsd.op.getattr", func(s *Snapshot) float64 { return s.Network.NFSD.Sgetatt }},

	{"sysstat.net.sock.total", func(s *Snapshot) float64 { return float64(s.Network.Sock.Totsck) }},
	{"sysstat.net.sock.tcp", func(s *Snapshot) float64 { return float64(s.Network.Sock.Tcpsck) }},
	{"sysstat.net.sock.udp", func(s *Snapshot) float64 { return float64(s.Network.Sock.Udpsck) }},
	{"sysstat.net.sock.raw", func(s *Snapshot) float64 { return float64(s.Network.Sock.Rawsck) }},
	{"sysstat.net.ip.fragments", func(s *Snapshot) float64 { return float64(s.Network.Sock.IPFrag) }},
	{"sysstat.net.sock.timewait", func(s *Snapshot) float64 { return float64(s.Network.Sock.TCPTw) }},

	{"sysstat.pressure.cpu.some.10", func(s *Snapshot) float64 { return s.PSI.CPU.SomeAvg10 }},
	{"sysstat.pressure.cpu.some.60", func(s *Snapshot) float64 { return s.PSI.CPU.SomeAvg60 }},
	{"sysstat.pressure.cpu.some.300", func(s *Snapshot) float64 { return s.PSI.CPU.SomeAvg300 }},
	{"sysstat.pressure.cpu.some.fromlast", func(s *Snapshot) float64 { return s.PSI.CPU.SomeAvg }},

	{"sysstat.pressure.io.some.10", func(s *Snapshot) float64 { return s.PSI.IO.SomeAvg10 }},
	{"sysstat.pressure.io.some.60", func(s *Snapshot) float64 { return s.PSI.IO.SomeAvg60 }},
	{"sysstat.pressure.io.some.300", func(s *Snapshot) float64 { return s.PSI.IO.SomeAvg300 }},
	{"sysstat.pressure.io.some.fromlast", func(s *Snapshot) float64 { return s.PSI.IO.SomeAvg }},
	{"sysstat.pressure.io.all.10", func(s *Snapshot) float64 { return s.PSI.IO.FullAvg10 }},
	{"sysstat.pressure.io.all.60", func(s *Snapshot) float64 { return s.PSI.IO.FullAvg60 }},
	{"sysstat.pressure.io.all.300", func(s *Snapshot) float64 { return s.PSI.IO.FullAvg300 }},
	{"sysstat.pressure.io.all.fromlast", func(s *Snapshot) float64 { return s.PSI.IO.FullAvg }},

	{"sysstat.pressure.mem.some.10", func(s *Snapshot) float64 { return s.PSI.Mem.SomeAvg10 }},
	{"sysstat.pressure.mem.some.60", func(s *Snapshot) float64 { return s.PSI.Mem.SomeAvg60 }},
	{"sysstat.pressure.mem.some.300", func(s *Snapshot) float64 { return s.PSI.Mem.SomeAvg300 }},
	{"sysstat.pressure.mem.some.fromlast", func(s *Snapshot) float64 { return s.PSI.Mem.SomeAvg }},
	{"sysstat.pressure.mem.all.10", func(s *Snapshot) float64 { return s.PSI.Mem.FullAvg10 }},
	{"sysstat.pressure.mem.all.60", func(s *Snapshot) float64 { return s.PSI.Mem.FullAvg60 }},
	{"sysstat.pressure.mem.all.300", func(s *Snapshot) float64 { return s.PSI.Mem.FullAvg300 }},
	{"sysstat.pressure.mem.all.fromlast", func(s *Snapshot) float64 { return s.PSI.Mem.FullAvg }},
}

var cpuFields = []field[CPULoad]{
	{"sysstat.cpu.usr", func(c *CPULoad) float64 { return c.Usr }},
	{"sysstat.cpu.sys", func(c *CPULoad) float64 { return c.Sys }},
	{"sysstat.cpu.nice", func(c *CPULoad) float64 { return c.Nice }},
	{"sysstat.cpu.iowait", func(c *CPULoad) float64 { return c.IOWait }},
	{"sysstat.cpu.steal", func(c *CPULoad) float64 { return c.Steal }},
	{"sysstat.cpu.irq", func(c *CPULoad) float64 { return c.IRQ }},
	{"sysstat.cpu.soft", func(c *CPULoad) float64 { return c.Soft }},
	{"sysstat.cpu.guest", func(c *CPULoad) float64 { return c.Guest }},
	{"sysstat.cpu.gnice", func(c *CPULoad) float64 { return c.GNice }},
	{"sysstat.cpu.idle", func(c *CPULoad) float64 { return c.Idle }},
}

var diskFields = []field[Disk]{
	{"sysstat.io.dev.tps", func(d *Disk) float64 { return d.TPS }},
	{"sysstat.io.dev.read", func(d *Disk) float64 { return d.RkB }},
	{"sysstat.io.dev.write", func(d *Disk) float64 { return d.WkB }},
	{"sysstat.io.dev.discard", func(d *Disk) float64 { return d.DkB }},
	{"sysstat.io.dev.queue.kb", func(d *Disk) float64 { return d.AreqSz }},
	{"sysstat.io.dev.queue.req", func(d *Disk) float64 { return d.AquSz }},
	{"sysstat.io.dev.queue.wait", func(d *Disk) float64 { return d.Await }},
	{"sysstat.io.dev.saturation", func(d *Disk) float64 { return d.UtilPercent }},
}

var netDevFields = []field[NetDev]{
	{"sysstat.net.if.pkt.recv", func(n *NetDev) float64 { return n.Rxpck }},
	{"sysstat.net.if.pkt.xmit", func(n *NetDev) float64 { return n.Txpck }},
	{"sysstat.net.if.kb.recv", func(n *NetDev) float64 { return n.RxkB }},
	{"sysstat.net.if.kb.xmit", func(n *NetDev) float64 { return n.TxkB }},
	{"sysstat.net.if.pkt.compressed.recv", func(n *NetDev) float64 { return n.Rxcmp }},
	{"sysstat.net.if.pkt.compressed.xmit", func(n *NetDev) float64 { return n.Txcmp }},
	{"sysstat.net.if.pkt.multicast.recv", func(n *NetDev) float64 { return n.Rxmcst }},
	{"sysstat.net.if.saturation", func(n *NetDev) float64 { return n.IfutilPercent }},
}

var netEDevFields = []field[NetEDev]{
	{"sysstat.net.if.err.recv.total", func(n *NetEDev) float64 { return n.Rxerr }},
	{"sysstat.net.if.err.xmit.total", func(n *NetEDev) float64 { return n.Txerr }},
	{"sysstat.net.if.err.xmit.collision", func(n *NetEDev) float64 { return n.Coll }},
	{"sysstat.net.if.err.recv.drop", func(n *NetEDev) float64 { return n.Rxdrop }},
	{"sysstat.net.if.err.xmit.drop", func(n *NetEDev) float64 { return n.Txdrop }},
	{"sysstat.net.if.err.xmit.carrier", func(n *NetEDev) float64 { return n.Txcarr }},
	{"sysstat.net.if.err.recv.framing", func(n *NetEDev) float64 { return n.Rxfram }},
	{"sysstat.net.if.err.recv.fifo", func(n *NetEDev) float64 { return n.Rxfifo }},
	{"sysstat.net.if.err.xmit.fifo", func(n *NetEDev) float64 { return n.Txfifo }},
}

var softnetFields = []field[Softnet]{
	{"sysstat.net.frames.total", func(s *Softnet) float64 { return s.Total }},
	{"sysstat.net.frames.drop", func(s *Softnet) float64 { return s.Dropd }},
	{"sysstat.net.irq.squeeze", func(s *Softnet) float64 { return s.Squeezd }},
	{"sysstat.net.irq.recv", func(s *Softnet) float64 { return s.RxRps }},
	{"sysstat.net.irq.flowlimit", func(s *Softnet) float64 { return s.FlwLim }},
}

package sysstat

// Snapshot is one `sadf -j -- -A` statistics entry for a single host.
// Section pointers are nil when the section was absent from the input.
type Snapshot struct {
	Hostname string `json:"hostname"`
	NumCPUs  int    `json:"num-cpus"`

	CPULoad                 []CPULoad                `json:"cpu-load"`
	ProcessAndContextSwitch *ProcessAndContextSwitch `json:"process-and-context-switch"`
	SwapPages               *SwapPages               `json:"swap-pages"`
	Paging                  *Paging                  `json:"paging"`
	IO                      *IO                      `json:"io"`
	Memory                  *Memory                  `json:"memory"`
	Hugepages               *Hugepages               `json:"hugepages"`
	Kernel                  *Kernel                  `json:"kernel"`
	Queue                   *Queue                   `json:"queue"`
	Disk                    []Disk                   `json:"disk"`
	Network                 *Network                 `json:"network"`
	PSI                     *PSI                     `json:"psi"`
}

// CPULoad is the utilisation of one logical CPU ("all" for the aggregate).
// "user" and "system" are omitted as they are sums of other fields.
type CPULoad struct {
	CPU    string  `json:"cpu"`
	Usr    float64 `json:"usr"`
	Nice   float64 `json:"nice"`
	Sys    float64 `json:"sys"`
	IOWait float64 `json:"iowait"`
	Steal  float64 `json:"steal"`
	IRQ    float64 `json:"irq"`
	Soft   float64 `json:"soft"`
	Guest  float64 `json:"guest"`
	GNice  float64 `json:"gnice"`
	Idle   float64 `json:"idle"`
}

type ProcessAndContextSwitch struct {
	Proc  float64 `json:"proc"`
	Cswch float64 `json:"cswch"`
}

type SwapPages struct {
	Pswpin  float64 `json:"pswpin"`
	Pswpout float64 `json:"pswpout"`
}

type Paging struct {
	Pgpgin       float64 `json:"pgpgin"`
	Pgpgout      float64 `json:"pgpgout"`
	Fault        float64 `json:"fault"`
	Majflt       float64 `json:"majflt"`
	Pgfree       float64 `json:"pgfree"`
	Pgscank      float64 `json:"pgscank"`
	Pgscand      float64 `json:"pgscand"`
	Pgsteal      float64 `json:"pgsteal"`
	VmeffPercent float64 `json:"vmeff-percent"`
}

// IO holds aggregate transfer rates.
type IO struct {
	TPS     float64   `json:"tps"`
	Reads   IOReads   `json:"io-reads"`
	Writes  IOWrites  `json:"io-writes"`
	Discard IODiscard `json:"io-discard"`
}

type IOReads struct {
	Rtps  float64 `json:"rtps"`
	Bread float64 `json:"bread"`
}

type IOWrites struct {
	Wtps  float64 `json:"wtps"`
	Bwrtn float64 `json:"bwrtn"`
}

type IODiscard struct {
	Dtps  float64 `json:"dtps"`
	Bdscd float64 `json:"bdscd"`
}

// Memory sizes are in kB.
type Memory struct {
	Memfree        int64   `json:"memfree"`
	Avail          int64   `json:"avail"`
	Memused        int64   `json:"memused"`
	MemusedPercent float64 `json:"memused-percent"`
	Buffers        int64   `json:"buffers"`
	Cached         int64   `json:"cached"`
	Commit         int64   `json:"commit"`
	CommitPercent  float64 `json:"commit-percent"`
	Active         int64   `json:"active"`
	Inactive       int64   `json:"inactive"`
	Dirty          int64   `json:"dirty"`
	Anonpg         int64   `json:"anonpg"`
	Slab           int64   `json:"slab"`
	Kstack         int64   `json:"kstack"`
	Pgtbl          int64   `json:"pgtbl"`
	Vmused         int64   `json:"vmused"`
	Swpfree        int64   `json:"swpfree"`
	Swpused        int64   `json:"swpused"`
	SwpusedPercent float64 `json:"swpused-percent"`
	Swpcad         int64   `json:"swpcad"`
	SwpcadPercent  float64 `json:"swpcad-percent"`
}

type Hugepages struct {
	Hugfree        int64   `json:"hugfree"`
	Hugused        int64   `json:"hugused"`
	HugusedPercent float64 `json:"hugused-percent"`
	Hugrsvd        int64   `json:"hugrsvd"`
	Hugsurp        int64   `json:"hugsurp"`
}

// Kernel holds kernel table sizes.
type Kernel struct {
	Dentunusd int64 `json:"dentunusd"`
	FileNr    int64 `json:"file-nr"`
	InodeNr   int64 `json:"inode-nr"`
	PtyNr     int64 `json:"pty-nr"`
}

// Queue holds run queue length and load averages.
type Queue struct {
	RunqSz  int64   `json:"runq-sz"`
	PlistSz int64   `json:"plist-sz"`
	Ldavg1  float64 `json:"ldavg-1"`
	Ldavg5  float64 `json:"ldavg-5"`
	Ldavg15 float64 `json:"ldavg-15"`
	Blocked int64   `json:"blocked"`
}

// Disk is the activity of one block device. Sector based fields are not kept.
type Disk struct {
	DiskDevice  string  `json:"disk-device"`
	TPS         float64 `json:"tps"`
	RkB         float64 `json:"rkB"`
	WkB         float64 `json:"wkB"`
	DkB         float64 `json:"dkB"`
	AreqSz      float64 `json:"areq-sz"`
	AquSz       float64 `json:"aqu-sz"`
	Await       float64 `json:"await"`
	UtilPercent float64 `json:"util-percent"`
}

type Network struct {
	NetDev  []NetDev  `json:"net-dev"`
	NetEDev []NetEDev `json:"net-edev"`
	NFS     NetNFS    `json:"net-nfs"`
	NFSD    NetNFSD   `json:"net-nfsd"`
	Sock    NetSock   `json:"net-sock"`
	Softnet []Softnet `json:"softnet"`
}

// NetDev is the traffic of one interface.
type NetDev struct {
	Iface         string  `json:"iface"`
	Rxpck         float64 `json:"rxpck"`
	Txpck         float64 `json:"txpck"`
	RxkB          float64 `json:"rxkB"`
	TxkB          float64 `json:"txkB"`
	Rxcmp         float64 `json:"rxcmp"`
	Txcmp         float64 `json:"txcmp"`
	Rxmcst        float64 `json:"rxmcst"`
	IfutilPercent float64 `json:"ifutil-percent"`
}

// NetEDev is the error counters of one interface.
type NetEDev struct {
	Iface  string  `json:"iface"`
	Rxerr  float64 `json:"rxerr"`
	Txerr  float64 `json:"txerr"`
	Coll   float64 `json:"coll"`
	Rxdrop float64 `json:"rxdrop"`
	Txdrop float64 `json:"txdrop"`
	Txcarr float64 `json:"txcarr"`
	Rxfram float64 `json:"rxfram"`
	Rxfifo float64 `json:"rxfifo"`
	Txfifo float64 `json:"txfifo"`
}

type NetNFS struct {
	Call    float64 `json:"call"`
	Retrans float64 `json:"retrans"`
	Read    float64 `json:"read"`
	Write   float64 `json:"write"`
	Access  float64 `json:"access"`
	Getatt  float64 `json:"getatt"`
}

type NetNFSD struct {
	Scall   float64 `json:"scall"`
	Badcall float64 `json:"badcall"`
	Packet  float64 `json:"packet"`
	UDP     float64 `json:"udp"`
	TCP     float64 `json:"tcp"`
	Hit     float64 `json:"hit"`
	Miss    float64 `json:"miss"`
	Sread   float64 `json:"sread"`
	Swrite  float64 `json:"swrite"`
	Saccess float64 `json:"saccess"`
	Sgetatt float64 `json:"sgetatt"`
}

type NetSock struct {
	Totsck int64 `json:"totsck"`
	Tcpsck int64 `json:"tcpsck"`
	Udpsck int64 `json:"udpsck"`
	Rawsck int64 `json:"rawsck"`
	IPFrag int64 `json:"ip-frag"`
	TCPTw  int64 `json:"tcp-tw"`
}

// Softnet is the soft-IRQ network activity of one CPU.
type Softnet struct {
	CPU     string  `json:"cpu"`
	Total   float64 `json:"total"`
	Dropd   float64 `json:"dropd"`
	Squeezd float64 `json:"squeezd"`
	RxRps   float64 `json:"rx_rps"`
	FlwLim  float64 `json:"flw_lim"`
}

// PSI holds pressure-stall averages in percent.
type PSI struct {
	CPU PSISome `json:"psi-cpu"`
	IO  PSIFull `json:"psi-io"`
	Mem PSIFull `json:"psi-mem"`
}

type PSISome struct {
	SomeAvg10  float64 `json:"some_avg10"`
	SomeAvg60  float64 `json:"some_avg60"`
	SomeAvg300 float64 `json:"some_avg300"`
	SomeAvg    float64 `json:"some_avg"`
}

// PSIFull adds the "full" stall averages reported for IO and memory.
type PSIFull struct {
	PSISome
	FullAvg10  float64 `json:"full_avg10"`
	FullAvg60  float64 `json:"full_avg60"`
	FullAvg300 float64 `json:"full_avg300"`
	FullAvg    float64 `json:"full_avg"`
}

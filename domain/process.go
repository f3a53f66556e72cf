package domain

import "time"

// Protocol is the transport protocol of a socket binding.
type Protocol string

const (
	ProtocolTCP Protocol = "tcp"
	ProtocolUDP Protocol = "udp"
	// ProtocolAll is only valid inside a FilterSpec.
	ProtocolAll Protocol = "all"
)

// SocketState is the lifecycle stage of a TCP/UDP connection as reported
// by the backend's socket table scan.
type SocketState string

const (
	SocketListening   SocketState = "LISTENING"
	SocketEstablished SocketState = "ESTABLISHED"
	SocketSynSent     SocketState = "SYN_SENT"
	SocketSynReceived SocketState = "SYN_RECEIVED"
	SocketFinWait1    SocketState = "FIN_WAIT_1"
	SocketFinWait2    SocketState = "FIN_WAIT_2"
	SocketCloseWait   SocketState = "CLOSE_WAIT"
	SocketClosing     SocketState = "CLOSING"
	SocketLastAck     SocketState = "LAST_ACK"
	SocketTimeWait    SocketState = "TIME_WAIT"
	SocketClosed      SocketState = "CLOSED"
	SocketUnknown     SocketState = "UNKNOWN"
	// SocketStateAll is only valid inside a FilterSpec.
	SocketStateAll SocketState = "all"
)

// PortBinding is one socket-layer binding owned by a process. Bindings are
// recreated wholesale on every snapshot fetch, never patched individually.
type PortBinding struct {
	Protocol      Protocol    `json:"protocol"`
	LocalAddress  string      `json:"localAddress"`
	LocalPort     uint16      `json:"localPort"`
	RemoteAddress string      `json:"remoteAddress,omitempty"`
	RemotePort    uint16      `json:"remotePort,omitempty"`
	State         SocketState `json:"state"`
}

// ContainerRuntime identifies the engine that manages a container.
type ContainerRuntime string

const (
	RuntimeDocker     ContainerRuntime = "docker"
	RuntimePodman     ContainerRuntime = "podman"
	RuntimeContainerd ContainerRuntime = "containerd"
	RuntimeUnknown    ContainerRuntime = "unknown"
)

// ContainerPort is a host-to-container port mapping.
type ContainerPort struct {
	HostPort      uint16   `json:"hostPort"`
	ContainerPort uint16   `json:"containerPort"`
	Protocol      Protocol `json:"protocol"`
	HostIP        string   `json:"hostIP,omitempty"`
}

// ContainerInfo describes the container a process is fronting, when the
// backend resolved one.
type ContainerInfo struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Image   string           `json:"image"`
	Status  string           `json:"status"`
	State   string           `json:"state"`
	Runtime ContainerRuntime `json:"runtime"`
	Ports   []ContainerPort  `json:"ports"`
}

// ProcessRecord is one OS process holding zero or more ports at scan time.
// ID is unique within a single scan but not stable across scans: the OS may
// reuse the PID.
type ProcessRecord struct {
	ID            string          `json:"id"`
	PID           int32           `json:"pid"`
	Name          string          `json:"name"`
	ExePath       string          `json:"exePath,omitempty"`
	CommandLine   string          `json:"commandLine,omitempty"`
	User          string          `json:"user"`
	MemoryBytes   uint64          `json:"memoryBytes"`
	CPUPercent    float64         `json:"cpuPercent"`
	StartTime     *time.Time      `json:"startTime,omitempty"`
	Ports         []PortBinding   `json:"ports"`
	IsDockerProxy bool            `json:"isDockerProxy"`
	Container     *ContainerInfo  `json:"container,omitempty"`
	IsProtected   bool            `json:"isProtected"`
}

// FirstPort returns the local port of the record's first binding, or zero
// when the process holds no ports.
func (p *ProcessRecord) FirstPort() uint16 {
	if len(p.Ports) == 0 {
		return 0
	}
	return p.Ports[0].LocalPort
}

// HasPort reports whether any binding listens on the given local port.
func (p *ProcessRecord) HasPort(port uint16) bool {
	for _, b := range p.Ports {
		if b.LocalPort == port {
			return true
		}
	}
	return false
}

// Snapshot is the atomic unit of truth: a full point-in-time enumeration of
// processes with their port bindings. It is replaced wholesale on every
// successful fetch; readers never observe a mix of two scan generations.
type Snapshot struct {
	Processes        []*ProcessRecord `json:"processes"`
	TotalConnections int              `json:"totalConnections"`
	ListeningPorts   int              `json:"listeningPorts"`
	BackendAvailable bool             `json:"backendAvailable"`
	CapturedAt       time.Time        `json:"capturedAt"`
}

// FindByPID returns the record for pid, or nil when no record matches.
func (s *Snapshot) FindByPID(pid int32) *ProcessRecord {
	for _, p := range s.Processes {
		if p.PID == pid {
			return p
		}
	}
	return nil
}

// FindByContainerID returns the record whose container matches id. Both
// full 64-char ids and the truncated 12-char form match.
func (s *Snapshot) FindByContainerID(id string) *ProcessRecord {
	for _, p := range s.Processes {
		if p.Container == nil {
			continue
		}
		cid := p.Container.ID
		if cid == id || (len(id) >= 12 && len(cid) >= 12 && cid[:12] == id[:12]) {
			return p
		}
	}
	return nil
}

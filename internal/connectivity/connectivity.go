// ABOUTME: Connectivity checker whose verdict (not the request error) drives fallback
// ABOUTME: Default implementation probes a well-known address with a short TCP dial

package connectivity

import (
	"net"
	"time"
)

// Checker reports whether the network is currently usable. The engine treats
// this verdict as authoritative: a failed request while the checker says
// online is a remote failure, not an offline condition.
type Checker interface {
	Online() bool
}

// DefaultProbeAddr is a public DNS endpoint that answers TCP quickly.
const DefaultProbeAddr = "1.1.1.1:53"

// DialChecker probes reachability with a short TCP dial.
type DialChecker struct {
	Addr    string
	Timeout time.Duration
}

// NewDialChecker returns a checker probing addr, or DefaultProbeAddr if empty.
func NewDialChecker(addr string) *DialChecker {
	if addr == "" {
		addr = DefaultProbeAddr
	}
	return &DialChecker{Addr: addr, Timeout: 2 * time.Second}
}

// Online dials the probe address and reports success.
func (c *DialChecker) Online() bool {
	conn, err := net.DialTimeout("tcp", c.Addr, c.Timeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

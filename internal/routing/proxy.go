package routing

import (
	"fmt"
	"net"
)

// TrustedProxies decides whether a peer's X-Forwarded-* headers may be
// honored. An empty list trusts no one.
type TrustedProxies struct {
	nets []*net.IPNet
}

func NewTrustedProxies(cidrs []string) (*TrustedProxies, error) {
	tp := &TrustedProxies{}
	for _, cidr := range cidrs {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("parse trusted proxy CIDR %q: %w", cidr, err)
		}
		tp.nets = append(tp.nets, ipNet)
	}
	return tp, nil
}

// Trusted reports whether remoteAddr ("ip:port" or bare IP) is a trusted
// forwarding hop.
func (t *TrustedProxies) Trusted(remoteAddr string) bool {
	if len(t.nets) == 0 {
		return false
	}
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, n := range t.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

package connurl

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// HostSpec is a resolved host that takes precedence over the host and port properties.
// URL returns the pre-formatted authority, normally "host[:port]/".
type HostSpec interface {
	URL() string
}

// Host is a HostSpec for a single host. A zero Port means the driver default.
type Host struct {
	Host string
	Port int
}

func (h Host) URL() string {
	url := h.Host
	switch {
	case h.Port > 0:
		url = net.JoinHostPort(strings.Trim(h.Host, "[]"), strconv.Itoa(h.Port))
	case strings.Contains(h.Host, ":") && !strings.HasPrefix(h.Host, "["):
		url = "[" + h.Host + "]"
	}

	if !strings.HasSuffix(url, "/") {
		url += "/"
	}

	return url
}

func (h Host) String() string {
	return strings.TrimSuffix(h.URL(), "/")
}

// ParseHost parses "host", "host:port" or "[ipv6]:port".
func ParseHost(hostport string) (Host, error) {
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		host, port = strings.Trim(hostport, "[]"), ""
	}

	if host == "" {
		return Host{}, fmt.Errorf("%w: host is required in %q", ErrInvalidArgument, hostport)
	}

	if port == "" {
		return Host{Host: host}, nil
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return Host{}, fmt.Errorf("%w: invalid port %q", ErrInvalidArgument, port)
	}

	return Host{Host: host, Port: n}, nil
}

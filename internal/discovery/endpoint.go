package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Endpoint represents a catalog API found on the network
type Endpoint struct {
	// Instance is the mDNS service instance name (e.g., "catalog-api")
	Instance string

	// Hostname is the mDNS hostname (e.g., "shop-server.local.")
	Hostname string

	// IP is the address to connect to (IPv4 preferred)
	IP string

	// Port is the HTTP port
	Port int

	// Path is the products resource path (from the "path" TXT record)
	Path string

	// Metadata contains all mDNS TXT record data
	Metadata map[string]string

	// DiscoveredAt is when the endpoint was discovered
	DiscoveredAt time.Time
}

// String returns a human-readable string representation of the endpoint
func (e *Endpoint) String() string {
	return fmt.Sprintf("%s (%s) at %s", e.Instance, strings.TrimSuffix(e.Hostname, "."), e.URL())
}

// URL returns the products resource URL, e.g. "http://192.168.1.20:5000/products"
func (e *Endpoint) URL() string {
	path := e.Path
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return "http://" + net.JoinHostPort(e.IP, strconv.Itoa(e.Port)) + path
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (e *Endpoint) GetMetadata(key string) string {
	if e.Metadata == nil {
		return ""
	}
	return e.Metadata[key]
}

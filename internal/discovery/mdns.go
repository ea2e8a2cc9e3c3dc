package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/muurk/catalog-admin/internal/logging"
)

const (
	// ServiceType is the mDNS service type catalog APIs advertise as
	ServiceType = "_http._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is used when an entry carries no port
	DefaultPort = 80

	// DefaultPath is the products resource path
	DefaultPath = "/products"

	// ConsoleService is the TXT "service" value the web console advertises
	ConsoleService = "catalog-admin"
)

// Scanner handles mDNS discovery of catalog APIs
type Scanner struct {
	// Timeout is the maximum time to wait for responses
	Timeout time.Duration
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
	}
}

// Scan discovers catalog APIs on the local network until the timeout or ctx ends
func (s *Scanner) Scan(ctx context.Context) ([]*Endpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)

	var mu sync.Mutex
	endpoints := make([]*Endpoint, 0)
	seen := make(map[string]bool)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			endpoint := parseServiceEntry(entry)
			if endpoint == nil {
				continue
			}
			mu.Lock()
			if !seen[endpoint.URL()] {
				seen[endpoint.URL()] = true
				endpoints = append(endpoints, endpoint)
				logging.Debug("Discovered catalog API", zap.String("url", endpoint.URL()))
			}
			mu.Unlock()
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	<-ctx.Done()

	mu.Lock()
	defer mu.Unlock()
	return append([]*Endpoint(nil), endpoints...), nil
}

// First returns the first catalog API that answers within the timeout
func (s *Scanner) First(ctx context.Context) (*Endpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Endpoint, 1)

	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %w", err)
	}

	go func() {
		for entry := range entries {
			if endpoint := parseServiceEntry(entry); endpoint != nil {
				select {
				case found <- endpoint:
				default:
				}
				cancel()
			}
		}
	}()

	if err := resolver.Browse(ctx, ServiceType, ServiceDomain, entries); err != nil {
		return nil, fmt.Errorf("failed to browse for mDNS services: %w", err)
	}

	select {
	case endpoint := <-found:
		return endpoint, nil
	case <-ctx.Done():
		select {
		case endpoint := <-found:
			return endpoint, nil
		default:
		}
		return nil, fmt.Errorf("no catalog API found within %s", s.Timeout)
	}
}

// parseServiceEntry converts a zeroconf service entry to an Endpoint.
// Returns nil unless the TXT records mark it as a catalog API
// ("path=/products" or "service=catalog").
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Endpoint {
	if entry == nil {
		return nil
	}

	metadata := parseTXT(entry.Text)
	path := metadata["path"]
	if metadata["service"] != "catalog" && strings.TrimSuffix(path, "/") != DefaultPath {
		return nil
	}

	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	if path == "" {
		path = DefaultPath
	}

	return &Endpoint{
		Instance:     entry.Instance,
		Hostname:     entry.HostName,
		IP:           ip,
		Port:         port,
		Path:         strings.TrimSuffix(path, "/"),
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}

// parseTXT splits "key=value" TXT records; a key without value maps to ""
func parseTXT(records []string) map[string]string {
	metadata := make(map[string]string, len(records))
	for _, txt := range records {
		parts := strings.SplitN(txt, "=", 2)
		if len(parts) == 2 {
			metadata[parts[0]] = parts[1]
		} else {
			metadata[parts[0]] = ""
		}
	}
	return metadata
}

// Advertiser keeps an mDNS registration alive until Shutdown
type Advertiser struct {
	server *zeroconf.Server
}

// Advertise announces the web console on the local network as
// "_http._tcp" with TXT service=catalog-admin.
func Advertise(instance string, port int, txt map[string]string) (*Advertiser, error) {
	records := []string{"service=" + ConsoleService, "path=/"}
	for k, v := range txt {
		records = append(records, k+"="+v)
	}

	server, err := zeroconf.Register(instance, ServiceType, ServiceDomain, port, records, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service: %w", err)
	}

	logging.Info("Advertising web console over mDNS",
		zap.String("instance", instance),
		zap.Int("port", port),
	)
	return &Advertiser{server: server}, nil
}

// Shutdown withdraws the registration
func (a *Advertiser) Shutdown() {
	if a != nil && a.server != nil {
		a.server.Shutdown()
	}
}

package discovery

import (
	"net"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name     string
		entry    *zeroconf.ServiceEntry
		wantNil  bool
		wantURL  string
		wantPort int
	}{
		{
			name: "catalog API with path record",
			entry: &zeroconf.ServiceEntry{
				ServiceRecord: zeroconf.ServiceRecord{Instance: "catalog-api"},
				HostName:      "shop.local.",
				Port:          5000,
				AddrIPv4:      []net.IP{net.ParseIP("192.168.1.20")},
				Text:          []string{"path=/products", "version=1"},
			},
			wantURL:  "http://192.168.1.20:5000/products",
			wantPort: 5000,
		},
		{
			name: "service record without path uses default",
			entry: &zeroconf.ServiceEntry{
				HostName: "shop.local.",
				Port:     8000,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.5")},
				Text:     []string{"service=catalog"},
			},
			wantURL:  "http://10.0.0.5:8000/products",
			wantPort: 8000,
		},
		{
			name: "trailing slash on path",
			entry: &zeroconf.ServiceEntry{
				HostName: "shop.local.",
				Port:     5000,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.6")},
				Text:     []string{"path=/products/"},
			},
			wantURL:  "http://10.0.0.6:5000/products",
			wantPort: 5000,
		},
		{
			name: "missing port defaults to 80",
			entry: &zeroconf.ServiceEntry{
				HostName: "shop.local.",
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.7")},
				Text:     []string{"service=catalog"},
			},
			wantURL:  "http://10.0.0.7:80/products",
			wantPort: DefaultPort,
		},
		{
			name: "IPv6 fallback",
			entry: &zeroconf.ServiceEntry{
				HostName: "shop.local.",
				Port:     5000,
				AddrIPv6: []net.IP{net.ParseIP("fe80::1")},
				Text:     []string{"service=catalog"},
			},
			wantURL:  "http://[fe80::1]:5000/products",
			wantPort: 5000,
		},
		{
			name: "unrelated HTTP service",
			entry: &zeroconf.ServiceEntry{
				HostName: "printer.local.",
				Port:     80,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.9")},
				Text:     []string{"path=/", "model=LaserJet"},
			},
			wantNil: true,
		},
		{
			name: "our own console is not an API",
			entry: &zeroconf.ServiceEntry{
				HostName: "ops.local.",
				Port:     8080,
				AddrIPv4: []net.IP{net.ParseIP("10.0.0.10")},
				Text:     []string{"service=" + ConsoleService, "path=/"},
			},
			wantNil: true,
		},
		{
			name: "no address",
			entry: &zeroconf.ServiceEntry{
				HostName: "shop.local.",
				Port:     5000,
				Text:     []string{"service=catalog"},
			},
			wantNil: true,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if endpoint != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", endpoint)
				}
				return
			}

			if endpoint == nil {
				t.Fatal("parseServiceEntry() returned nil, want endpoint")
			}
			if endpoint.URL() != tt.wantURL {
				t.Errorf("URL() = %s, want %s", endpoint.URL(), tt.wantURL)
			}
			if endpoint.Port != tt.wantPort {
				t.Errorf("Port = %d, want %d", endpoint.Port, tt.wantPort)
			}
			if endpoint.DiscoveredAt.IsZero() {
				t.Error("DiscoveredAt should be set")
			}
		})
	}
}

func TestParseTXT(t *testing.T) {
	metadata := parseTXT([]string{"path=/products", "flag", "eq=a=b"})

	if metadata["path"] != "/products" {
		t.Errorf("path = %q", metadata["path"])
	}
	if v, ok := metadata["flag"]; !ok || v != "" {
		t.Errorf("flag = %q (present %v), want empty value", v, ok)
	}
	if metadata["eq"] != "a=b" {
		t.Errorf("eq = %q, want a=b", metadata["eq"])
	}
}

func TestEndpointHelpers(t *testing.T) {
	e := &Endpoint{
		Instance: "catalog-api",
		Hostname: "shop.local.",
		IP:       "192.168.1.20",
		Port:     5000,
		Metadata: map[string]string{"version": "1"},
	}

	if e.URL() != "http://192.168.1.20:5000/products" {
		t.Errorf("URL() = %s", e.URL())
	}
	if e.String() != "catalog-api (shop.local) at http://192.168.1.20:5000/products" {
		t.Errorf("String() = %s", e.String())
	}
	if e.GetMetadata("version") != "1" || e.GetMetadata("missing") != "" {
		t.Error("GetMetadata returned unexpected values")
	}

	e.Path = "api/items"
	if e.URL() != "http://192.168.1.20:5000/api/items" {
		t.Errorf("URL() with relative path = %s", e.URL())
	}

	var empty Endpoint
	if empty.GetMetadata("x") != "" {
		t.Error("nil metadata should give empty string")
	}
}

func TestNewScanner(t *testing.T) {
	if NewScanner().Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", NewScanner().Timeout, DefaultScanTimeout)
	}
	if DefaultScanTimeout > 10*time.Second {
		t.Error("default scan should stay short for interactive use")
	}
}

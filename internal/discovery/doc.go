// Package discovery finds catalog APIs on the local network over mDNS and
// advertises the web console.
//
// Catalog backends are expected to register an "_http._tcp" service whose
// TXT records contain "path=/products" or "service=catalog". Everything else
// answering on _http._tcp is ignored.
//
//	scanner := discovery.NewScanner()
//	scanner.Timeout = 3 * time.Second
//	endpoints, err := scanner.Scan(ctx)
//	for _, ep := range endpoints {
//	    fmt.Println(ep.URL()) // http://192.168.1.20:5000/products
//	}
//
// The web console announces itself the same way with TXT
// "service=catalog-admin" so other operators can find it:
//
//	adv, err := discovery.Advertise("catalog-admin", 8080, nil)
//	defer adv.Shutdown()
package discovery

// Package catalog is the HTTP client for the product catalog REST API.
//
// The backend exposes a single products resource:
//
//	GET    /products?skip=0&limit=1000[&min_price=10]
//	GET    /products/{id}
//	POST   /products          {"name","sku","price","active"}
//	PUT    /products/{id}     same body
//	DELETE /products/{id}
//
// Errors from the backend carry a "detail" field. Every failure is returned
// as an *APIError whose ErrorType says whether it came from the network, an
// HTTP status, an unreadable body or local validation:
//
//	client := catalog.NewClient("http://localhost:5000/products")
//	p, err := client.Create(ctx, catalog.ProductInput{Name: "Mouse", SKU: "M-1", Price: 10, Active: true})
//	if err != nil {
//	    fmt.Println(catalog.ShortMessage(err))
//	}
//
// The client never retries and never caches. Every call hits the network.
// There is no timeout unless SetTimeout is used; cancel through the context.
//
// The package also holds the price helpers shared by every front-end:
// FormatPrice, FormatMoney, ParsePrice and the pt-BR currency input mask
// FormatCurrencyInput.
package catalog

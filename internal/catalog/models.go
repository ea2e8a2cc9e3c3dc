package catalog

// Product is a catalog entry as returned by the backend.
// The ID is assigned by the backend and never changes.
type Product struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	SKU    string  `json:"sku"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

// ProductInput is the request body for create and update
type ProductInput struct {
	Name   string  `json:"name"`
	SKU    string  `json:"sku"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

// Input returns the writable fields of p, e.g. to resubmit an edited product
func (p Product) Input() ProductInput {
	return ProductInput{
		Name:   p.Name,
		SKU:    p.SKU,
		Price:  p.Price,
		Active: p.Active,
	}
}

// ProductPage is one page of the list endpoint.
// Older backends return a bare array; the client fills Total/Skip/Limit itself then.
type ProductPage struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
	Skip  int       `json:"skip"`
	Limit int       `json:"limit"`
}

// DeleteResult is the body returned by a successful delete
type DeleteResult struct {
	Detail string `json:"detail"`
}

// errorBody is the FastAPI error shape. Detail is either a string or a list
// of field errors.
type errorBody struct {
	Detail any `json:"detail"`
}

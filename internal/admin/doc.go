// Package admin holds the console's application logic.
//
// A Controller owns the product list loaded from the catalog API, the name
// and id filters, the current page, the form modal and the pending delete.
// Front-ends call its methods in response to user input; the Controller
// calls the API and reflects the result through a Renderer.
//
// The whole catalog (up to catalog.BulkFetchLimit products) is fetched once
// per Load. Filtering and paging happen locally, and every successful
// mutation is followed by a full reload.
//
//	ctrl := admin.NewController(client, doc)
//	_ = ctrl.Load(ctx)
//	ctrl.SetFilterName("key")
//	ctrl.GoToPage(2)
package admin

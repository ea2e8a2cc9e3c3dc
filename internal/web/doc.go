// Package web is the browser front-end of catalog-admin.
//
// Every tab talks to one admin.Controller and one view.Document, so the page
// is a rendering of the shared document. Buttons post small forms
// (new, edit, delete, save, confirm) and are answered with a 303 back to "/".
// A websocket at /ws pushes a revision number whenever the document changes
// and the page reloads itself unless the user is typing.
//
// Routes:
//
//	GET  /                       the console
//	GET  /filter?name=&id=       set the filters
//	GET  /page/{n}               go to page n
//	POST /filter/clear           clear both filters
//	POST /products/new           open an empty form
//	POST /products/{id}/edit     load a product into the form
//	POST /products/{id}/delete   ask to confirm a delete
//	POST /products               save the form
//	POST /modal/close            close the form
//	POST /confirm                delete the pending product
//	POST /confirm/cancel         forget the pending delete
//	GET  /ws                     change feed
//	GET  /healthz                liveness and connected tabs
//	GET  /metrics                prometheus metrics
//
// Routes that change the console state are rate limited per client address. Every request carries an
// X-Request-ID that is echoed back and forwarded to the catalog API.
package web

// Package view renders the console into a Document.
//
// The Document stands in for the page: loading indicator, error and success
// banners, the product form modal, the delete confirmation, table rows and
// the pagination bar. The admin.Controller writes to it through the
// admin.Renderer interface and front-ends paint Snapshots of it, repainting
// whenever the channel returned by Subscribe fires.
package view

// Package signatures exposes signature rendering over net/http.
//
// Routes (relative to the component root):
//
//	GET  /api/signatures/variants   layouts and the elements each honors
//	POST /api/signatures/render     render a signature; ?download=1 attaches it
//	GET  /signatures/preview        demo page for a directory employee
package signatures

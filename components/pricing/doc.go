// Package pricing exposes the pricing calculator over net/http: the package
// list, quotes for a user count, and the SKU lookup used by checkout.
//
// Error kinds from pkg/pricing map to status codes (unknown package or SKU is
// 404, an invalid user count is 422) and are returned as
// {"error":{"kind":...,"message":...}}.
package pricing

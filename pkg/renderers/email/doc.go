// Package email renders signatures as table-based HTML with inline styles and
// absolute image URLs, the subset of markup mail client signature editors
// accept. Each template identifier maps to a Layout; identifiers without a
// layout are rejected when the renderer is constructed.
package email

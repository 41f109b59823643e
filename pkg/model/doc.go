// Package model defines the inputs consumed by signature renderers: the
// per-person Employee record, the per-tenant Company branding, the
// ShowElements toggle set, and the closed TemplateID enumeration.
//
// All types are plain values constructed per render call. Optional fields are
// empty strings; renderers omit the corresponding block instead of emitting
// an empty element. Employee.Name is the only required field and even that
// degrades to a placeholder via DisplayName.
package model

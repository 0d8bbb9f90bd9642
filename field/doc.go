// Package field describes where and how each value is stamped onto a
// document template.
//
// A [Spec] is the declarative layout record for one field: its reference
// rectangle, offset, font, colour and the transforms the compositor applies
// before pasting. A [Table] maps field ids to specs and is immutable once
// loaded.
//
// # Placement
//
// [Resolve] computes the paste anchor of a field as base position plus
// offset. Every [Alignment] resolves through that one formula: the anchor
// never depends on the size of the rendered content, so ink may overflow
// the nominal rectangle without moving. The alignment enum is kept so that
// layout files stay forward compatible.
package field

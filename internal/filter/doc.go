// Package filter holds the achievements filter: the canonical filter State,
// its URL query and form projections, the Manager that moves between them,
// and Apply, the pure predicate that narrows a record list.
//
// The URL query is the source of truth for the applied filter. Form edits
// stay local until submitted, so an invalid form never reaches the query.
package filter

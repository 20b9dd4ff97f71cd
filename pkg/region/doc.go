// Package region defines beacon regions and the results reported for them.
//
// A Region is a named matching criterion: an identifier plus an optional
// proximity UUID, major and minor. Criteria are hierarchical; a minor is only
// meaningful with a major, and a major only with a proximity UUID. A region
// with no UUID matches every beacon.
//
// Regions are keyed by identifier. Adding a region whose identifier is already
// present replaces the earlier criteria.
package region

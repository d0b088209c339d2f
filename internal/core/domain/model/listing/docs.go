// Package listing provides the Listing aggregate: one crop or product line
// a seller offers on the marketplace. Listings carry the available
// quantity that the order creation flow checks and reserves against.
package listing

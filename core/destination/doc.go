// Package destination provides the client for the destination CMS.
//
// All item writes are field overlays: the payload names only the fields the
// sync engine owns, and the CMS leaves every other field untouched. Full-item
// replacement is never issued. Point lookups treat 404 as a normal absent
// result rather than an error, since out-of-band deletion of mirrored items
// is an expected state.
package destination

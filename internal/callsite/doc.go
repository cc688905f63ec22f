// Package callsite dispatches syntax nodes of interest through catalog rules.
//
// The traversal delivers each site once. The dispatcher resolves it, feeds
// the declaration to every rule subscribed to the site kind and reports the
// hits at the site itself. It never descends into the site: nested calls
// come from the traversal as sites of their own.
package callsite

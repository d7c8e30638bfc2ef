// Package reembed rebuilds the vectors of an existing index with a new
// embedding model. Switching embedding models invalidates every stored
// vector at once; rather than re-ingesting the source documents, the
// Reembedder walks the stored chunks and catalog entries, re-embeds their
// text in batches and writes the refreshed vectors back in place.
package reembed

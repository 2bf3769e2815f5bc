// Package importer implements the product import reconciliation pipeline.
//
// # Architecture
//
// One batch runs as a single ordered pass:
//
//	Fetch → DecodeJSON → schema check → per record: Normalize → Resolve image → Reconcile → Save
//
// A fetch or schema failure aborts the batch. Everything after that is
// isolated per record: a malformed record, an unresolvable image or a save
// failure produces a diagnostic message and the pass continues.
package importer

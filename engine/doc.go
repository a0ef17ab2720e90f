// Package engine owns the editing state of one design session and keeps
// its stages in step.
//
// A [Context] holds a tiling maker, a [PrototypeMaker] and a
// [MosaicMaker]. Every edit becomes an [event.Event] that [Context.Dispatch]
// hands to each stage in turn:
//
//	tiling maker → prototype maker → mosaic maker
//
// Each coordinator exposes Handle, which applies the event to the state
// it owns and returns the event to forward. Invalidation is synchronous:
// when Dispatch returns, every stage has seen the edit. A stage that
// rejects an edit leaves its own state unchanged, and an edit made
// through the tiling maker is then undone so that all stages keep
// describing the same tiling.
//
// The session is single threaded. Dispatch is guarded by a busy flag and
// fails with [ErrBusy] instead of overlapping a pass already in flight;
// [Cycler] relies on this to run scheduled passes serially.
package engine

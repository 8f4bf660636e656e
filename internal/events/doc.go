// Package events carries task activity notifications from the service layer
// to any number of in-process handlers.
//
// Services build a TaskEvent after a mutation has been persisted and hand it
// to an EventEmitter. The emitter does not know what the handlers do with it;
// the server wires a LogHandler that writes one audit line per event.
package events

// Package controller implements the client side of the risk analysis
// workflow: validating operator input, submitting it to the backend,
// announcing the verdict, and keeping the history and stats regions fresh.
//
// Each region is guarded by a sequencer. A fetch takes a sequence number
// before its request is sent and its response is applied only when no later
// fetch has already been applied, so a slow response can never overwrite a
// newer one.
//
// Submissions are independent of each other. There is no queue, lock, or
// cancellation between them; overlapping submissions each trigger their own
// history and stats refresh.
package controller

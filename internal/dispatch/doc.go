// Package dispatch runs search tasks one at a time with a pause between them.
//
// A Queue has a single consumer: tasks start strictly in submission order and
// never overlap. Between two tasks the queue waits on a Pacer, which is either
// a fixed delay or a token-bucket limiter that also backs off after the
// provider throttles. Cancelling the context stops the queue before the next
// task starts.
package dispatch

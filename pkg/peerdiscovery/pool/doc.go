// Package pool runs probe tasks on a bounded set of reusable workers.
//
// A Pool grows one worker per submitted task up to its ceiling and reclaims
// workers that stayed idle for the configured timeout. Each submission
// returns a Handle to await the task's outcome.
package pool

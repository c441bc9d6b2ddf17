// Package courier provides the courier's availability and profile state.
//
// State holds the online/offline flag, last-known location, auth token, and
// running delivery count. It is one of the few pieces of state that survives
// process restarts.
package courier

// Package task
// Author: momentics <momentics@gmail.com>
//
// Owning-worker tasks for hioload-kit: a common base carrying name, stack,
// affinity and priority, plus three derivations: Worker (delegate queue),
// Periodic (drift-free deadline loop) and Data (typed bounded input queue).
// Each task owns exactly one worker thread; Close stops the worker and drops
// pending work.
package task

// Package fastener implements named, owned values that inherit from the
// same-named value on an ancestor owner, resolve competing writes by
// affinity, and animate between states.
//
// An owner type declares its fasteners once in a Class and embeds a *Host
// built from it. Fasteners are constructed on first access through their
// declaration's Get accessor, or when the owner mounts if declared Eager.
// Mounting binds each inheriting fastener to its super fastener, found by
// name on the nearest ancestor owner that provides one.
//
// Animators do not run on their own. Starting a transition decoheres the
// animator, queueing it on its owner; the owner's RecohereFasteners(t),
// called once per frame, advances every queued fastener by one tick.
//
// Everything here runs on a single goroutine. Nothing is locked.
package fastener

package errors

var ErrOptimisticLock = conflict("optimistic locking conflict")

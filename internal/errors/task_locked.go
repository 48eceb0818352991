package errors

var ErrTaskLocked = conflict("task is being modified by another request, retry later")

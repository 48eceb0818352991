package errors

var (
	ErrTaskNotFound            = notFound("task not found")
	ErrNotTaskOwner            = forbidden("only the task owner can perform this action")
	ErrNotAssignedProvider     = forbidden("you are not the provider assigned to this task")
	ErrTaskNotOpen             = conflict("cannot modify a task that is already in progress or completed")
	ErrTaskNotActive           = conflict("task is not in progress")
	ErrTaskNotAwaitingApproval = conflict("task completion has not been reported by the provider")
)

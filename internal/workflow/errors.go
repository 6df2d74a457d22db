package workflow

import "errors"

var (
	ErrAlreadyJoined     = errors.New("user already joined this task")
	ErrCapacityExceeded  = errors.New("task participant limit reached")
	ErrTaskNotFound      = errors.New("task not found")
	ErrBranchNotFound    = errors.New("branch not found")
	ErrInvalidTransition = errors.New("action not valid for current request status")
	ErrMissingReason     = errors.New("a reason is required to decline a request")

	ErrMessageNotFound  = errors.New("message not found")
	ErrNotRecipient     = errors.New("only the current recipient may act on this message")
	ErrNotBranchMember  = errors.New("user does not belong to the branch")
	ErrNotMainTask      = errors.New("operation requires a main task")
	ErrInvalidTask      = errors.New("invalid task")
	ErrInvalidSale      = errors.New("invalid sale")
	ErrInvalidRequest   = errors.New("invalid stock request")
	ErrInventoryFailure = errors.New("inventory update failed")
)

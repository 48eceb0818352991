package errors

var (
	ErrOfferNotFound          = notFound("offer not found")
	ErrOfferTaskNotOpen       = badRequest("can only make offers on open tasks")
	ErrOfferRateNotPositive   = badRequest("hourly rate must be positive")
	ErrDuplicatePendingOffer  = badRequest("provider already has a pending offer for this task")
	ErrOfferNotPending        = badRequest("can only accept or reject pending offers")
	ErrTaskAlreadyHasAccepted = conflict("task already has an accepted offer")
)

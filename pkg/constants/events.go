package constants

type EventKind string

const (
	EventTaskCreated        EventKind = "task.created"
	EventTaskUpdated        EventKind = "task.updated"
	EventTaskDeleted        EventKind = "task.deleted"
	EventProgressRecorded   EventKind = "task.progress_recorded"
	EventProviderCompleted  EventKind = "task.provider_completed"
	EventCompletionAccepted EventKind = "task.completion_accepted"
	EventCompletionRejected EventKind = "task.completion_rejected"
	EventOfferCreated       EventKind = "offer.created"
	EventOfferAccepted      EventKind = "offer.accepted"
	EventOfferRejected      EventKind = "offer.rejected"
)

package errors

var (
	ErrSkillNotFound          = notFound("skill not found")
	ErrNotSkillOwner          = forbidden("only the skill owner can modify the skill")
	ErrSkillExperienceInvalid = badRequest("experience cannot be negative")
	ErrSkillRateNotPositive   = badRequest("hourly rate must be positive")
)

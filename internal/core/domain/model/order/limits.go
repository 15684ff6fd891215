package order

// Intake limits on customer-provided text, counted in characters.
const (
	MaxClientNameLength    = 100
	MaxAddressLength       = 500
	MaxCommentLength       = 1000
	MaxScheduledTimeLength = 50
	MaxCartLines           = 50
)

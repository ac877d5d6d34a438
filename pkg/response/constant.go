package response

const (
	MessageSuccess          = "Success"
	DefaultErrorMessage     = "Something went wrong"
	InternalServerErrorCode = 500

	// TimestampFormat is the fixed-width UTC layout used for every timestamp on the wire.
	TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"
)

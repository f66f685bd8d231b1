package response

// Stable error codes clients branch on.
const (
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeNotFound             = "NOT_FOUND"
	CodeForbidden            = "FORBIDDEN"
	CodeAlreadyShared        = "ALREADY_SHARED"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeInvalidContent       = "INVALID_CONTENT"
	CodeInternal             = "INTERNAL_ERROR"
	CodeFeedError            = "FEED_ERROR"
	CodePostNotFound         = "POST_NOT_FOUND"
	CodePostDetailError      = "POST_DETAIL_ERROR"
	CodeCommentsFetchError   = "COMMENTS_FETCH_ERROR"
	CodeCommentCreationError = "COMMENT_CREATION_ERROR"
	CodeUpdateFailed         = "UPDATE_FAILED"
	CodeDeleteFailed         = "DELETE_FAILED"
)

var (
	ErrInvalidRequestFormat = Error(CodeInvalidInput, "invalid request format")
	ErrAuthRequired         = Error(CodeUnauthorized, "authentication required")
)

package apperror

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var grpcCodes = map[ErrorCode]codes.Code{
	CodeInvalidInput:    codes.InvalidArgument,
	CodeReferential:     codes.FailedPrecondition,
	CodeNotFound:        codes.NotFound,
	CodeConflict:        codes.FailedPrecondition,
	CodeUnauthenticated: codes.Unauthenticated,
	CodeDatabase:        codes.Internal,
	CodeUnavailable:     codes.Unavailable,
	CodeInternal:        codes.Internal,
}

// Localize renders the client-facing message for a code. detail is the error's own message.
type Localize func(code ErrorCode, detail, fallback string) string

// ToStatus converts err into a gRPC status error. Causes of persistence and
// internal errors are never exposed to the client.
func ToStatus(err error, localize Localize) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		appErr = Wrap(CodeInternal, err, "internal error")
	}
	detail := appErr.Message
	if len(appErr.Fields) > 0 {
		detail = (&Error{Message: appErr.Message, Fields: appErr.Fields}).Error()
	}
	fallback := detail
	if appErr.Code == CodeDatabase || appErr.Code == CodeInternal {
		fallback = string(appErr.Code)
	}
	msg := fallback
	if localize != nil {
		msg = localize(appErr.Code, detail, fallback)
	}
	code, ok := grpcCodes[appErr.Code]
	if !ok {
		code = codes.Unknown
	}
	return status.Error(code, msg)
}

package api

import (
	"errors"

	"connectrpc.com/connect"
)

// ErrorKindHeader carries the machine-checkable error kind on every
// failed response.
const ErrorKindHeader = "Fintrack-Error-Kind"

// ErrorKind classifies failures for callers.
type ErrorKind string

const (
	KindInvalidInput       ErrorKind = "InvalidInput"
	KindDuplicateIdentity  ErrorKind = "DuplicateIdentity"
	KindInvalidCredentials ErrorKind = "InvalidCredentials"
	KindUnauthenticated    ErrorKind = "Unauthenticated"
	KindNotFound           ErrorKind = "NotFound"
	KindStoreUnavailable   ErrorKind = "StoreUnavailable"
	KindInternal           ErrorKind = "Internal"
)

// Code returns the connect code (and so the HTTP status) for k.
func (k ErrorKind) Code() connect.Code {
	switch k {
	case KindInvalidInput, KindInvalidCredentials:
		return connect.CodeInvalidArgument
	case KindDuplicateIdentity:
		return connect.CodeAlreadyExists
	case KindUnauthenticated:
		return connect.CodeUnauthenticated
	case KindNotFound:
		return connect.CodeNotFound
	case KindStoreUnavailable:
		return connect.CodeUnavailable
	default:
		return connect.CodeInternal
	}
}

// Retryable reports whether the same request may succeed later.
func (k ErrorKind) Retryable() bool {
	return k == KindStoreUnavailable
}

// NewError builds a connect error tagged with kind.
func NewError(kind ErrorKind, err error) *connect.Error {
	connectErr := connect.NewError(kind.Code(), err)
	connectErr.Meta().Set(ErrorKindHeader, string(kind))
	return connectErr
}

// KindOf extracts the error kind from an RPC error. Errors without the
// header fall back to a kind derived from the connect code.
func KindOf(err error) ErrorKind {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) {
		return ""
	}
	if kind := connectErr.Meta().Get(ErrorKindHeader); kind != "" {
		return ErrorKind(kind)
	}
	switch connectErr.Code() {
	case connect.CodeInvalidArgument:
		return KindInvalidInput
	case connect.CodeAlreadyExists:
		return KindDuplicateIdentity
	case connect.CodeUnauthenticated:
		return KindUnauthenticated
	case connect.CodeNotFound:
		return KindNotFound
	case connect.CodeUnavailable:
		return KindStoreUnavailable
	default:
		return KindInternal
	}
}

package errors

import (
	"errors"
	"fmt"
)

// 표준 라이브러리 함수 재노출
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// AppError는 에러 코드를 함께 전달하는 기본 에러 구현체입니다
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewAppError는 새 애플리케이션 에러를 생성합니다
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// 코드별 생성 헬퍼
func NotFound(message string) *AppError {
	return NewAppError(ErrNotFound, message, nil)
}

func InvalidArgument(message string) *AppError {
	return NewAppError(ErrInvalidArgument, message, nil)
}

func Unauthenticated(message string) *AppError {
	return NewAppError(ErrUnauthenticated, message, nil)
}

func Unauthorized(message string) *AppError {
	return NewAppError(ErrUnauthorized, message, nil)
}

func Conflict(message string) *AppError {
	return NewAppError(ErrConflict, message, nil)
}

func Internal(message string, err error) *AppError {
	return NewAppError(ErrInternal, message, err)
}

// Wrap은 기존 에러를 래핑합니다. 기존 AppError인 경우 코드를 유지합니다.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), message, err)
	}

	return NewAppError(ErrInternal, message, err)
}

// CodeOf는 에러에서 코드를 추출합니다. AppError가 아니면 INTERNAL을 반환합니다.
func CodeOf(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}

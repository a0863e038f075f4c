package usecase

import (
	"errors"
	"fmt"
)

// HTTPError はhandlerでそのままステータスとメッセージに変換する
type HTTPError struct {
	Status  int
	Message string
	Err     error // 原因（errors.Isで辿れる）
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func wrapHTTPError(status int, message string, cause error) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Err:     cause,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

package usecase

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	//400 入力不正（変更前に返す）
	ErrInvalidInput = errors.New("invalid input")
	//400 商品が無い・INACTIVE・他の加盟店（注文全体を中止）
	ErrProductNotFound = errors.New("product not found")
	//404 対象の注文が無い
	ErrNotFound = errors.New("not found")
	//500 DB接続・Tx失敗
	ErrStorage = errors.New("storage error")
)

// storageError の利用者向けメッセージ（内部情報は出さない）
const serverErrorMessage = "server error"

type HTTPError struct {
	Status  int
	Message string

	kind  error
	cause error
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.cause)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// errors.Is(err, ErrNotFound) などで種類を判定できる
func (e *HTTPError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// ログ用の元エラー
func (e *HTTPError) Cause() error {
	return e.cause
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func invalidInput(format string, args ...any) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...), kind: ErrInvalidInput}
}

func productNotFound(productID int64, merchantID int64) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("product not found or inactive: productId=%d, merchantId=%d", productID, merchantID),
		kind:    ErrProductNotFound,
	}
}

func notFound() error {
	return &HTTPError{Status: http.StatusNotFound, Message: "not found", kind: ErrNotFound}
}

func storageError(cause error) error {
	return &HTTPError{Status: http.StatusInternalServerError, Message: serverErrorMessage, kind: ErrStorage, cause: cause}
}

// InvalidInputErrorはusecaseの外（handlerの型変換など）で同じ種類のエラーを作る
func InvalidInputError(message string) error {
	return invalidInput("%s", message)
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"qrorder/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// usecaseのHTTPErrorをそのままJSONへ。500は中身を出さずにログだけ残す
func writeError(c echo.Context, log *zap.Logger, err error) error {
	if err == nil {
		return nil
	}

	he, ok := usecase.AsHTTPError(err)
	if !ok {
		he = &usecase.HTTPError{Status: http.StatusInternalServerError, Message: "server error"}
	}

	if he.Status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			zap.Error(err),
		)
	}
	return c.JSON(he.Status, ErrorResponse{Error: he.Message})
}

// 金額は小数2桁のJSON数値で返す（floatを通さない）
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

// numberFieldは数値でも数値文字列でも受け取り、生の文字列を残す。
// 型の不一致でBind全体を失敗させず、後で項目ごとのエラーにする。
type numberField struct {
	raw string
}

func (n *numberField) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		n.raw = strings.TrimSpace(str)
		return nil
	}
	n.raw = s
	return nil
}

func (n numberField) present() bool {
	return n.raw != ""
}

// 正の整数だけを受け付ける（"3"や3.0はOK、2.5や"abc"はNG）
func (n numberField) positiveInt() (int64, bool) {
	return parsePositiveInt(n.raw)
}

func parsePositiveInt(raw string) (int64, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.IsInteger() || !d.IsPositive() {
		return 0, false
	}
	bi := d.BigInt()
	if !bi.IsInt64() {
		return 0, false
	}
	return bi.Int64(), true
}

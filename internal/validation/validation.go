// Package validation turns raw request bodies into typed inputs. Every parser
// returns a ValidationError-kind DomainError on bad input and never panics.
package validation

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/apexautomovers/quote-service/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// object is a decoded top-level JSON object with its members left raw.
type object map[string]json.RawMessage

func decodeObject(body []byte) (object, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj object
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func (o object) has(key string) bool {
	_, ok := o[key]
	return ok
}

// str returns the member as a string when it is a JSON string.
func (o object) str(key string) (string, bool) {
	raw, ok := o[key]
	if !ok || isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// nullableStr accepts an absent member, null or a string.
func (o object) nullableStr(key string) (domain.Optional[string], bool) {
	raw, ok := o[key]
	if !ok {
		return domain.Optional[string]{}, true
	}
	if isNull(raw) {
		return domain.Null[string](), true
	}
	s, ok := o.str(key)
	if !ok {
		return domain.Optional[string]{}, false
	}
	return domain.Some(s), true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// maxAmount is the first value that no longer fits NUMERIC(12,2).
var maxAmount = decimal.New(1, 10)

// coerceAmount accepts a JSON number or a numeric string. A blank string reads as
// zero. The result is rounded to cents and must stay below maxAmount.
func coerceAmount(raw json.RawMessage) (decimal.Decimal, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.Decimal{}, false
	}
	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return decimal.Decimal{}, false
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return decimal.Zero, true
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		text = string(raw)
	default:
		return decimal.Decimal{}, false
	}
	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if amount.IsZero() {
		return decimal.Zero, true
	}
	// integer digits checked before rounding so huge exponents never get expanded
	if amount.NumDigits()+int(amount.Exponent()) > 10 {
		return decimal.Decimal{}, false
	}
	amount = amount.Round(2)
	if amount.Abs().GreaterThanOrEqual(maxAmount) {
		return decimal.Decimal{}, false
	}
	return amount, true
}

// IsValidStatus reports membership in the canonical status vocabulary.
func IsValidStatus(status string) bool {
	return domain.QuoteStatus(status).Valid()
}

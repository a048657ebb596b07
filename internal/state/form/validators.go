package form

import (
	"fmt"
	"math"
	"net/mail"
	"strings"
)

func Required(msg string) Validator {
	return func(v any) string {
		switch x := v.(type) {
		case nil:
			return msg
		case string:
			if strings.TrimSpace(x) == "" {
				return msg
			}
		}
		return ""
	}
}

// Email accepts an empty value; combine with Required when mandatory.
func Email(msg string) Validator {
	return func(v any) string {
		s, _ := v.(string)
		if s == "" {
			return ""
		}
		if _, err := mail.ParseAddress(s); err != nil {
			return msg
		}
		return ""
	}
}

func OneOf(msg string, allowed ...string) Validator {
	return func(v any) string {
		s := fmt.Sprint(v)
		if v == nil || s == "" {
			return ""
		}
		for _, a := range allowed {
			if s == a {
				return ""
			}
		}
		return msg
	}
}

// MinInt accepts ints and whole JSON numbers; nil passes.
func MinInt(min int, msg string) Validator {
	return func(v any) string {
		switch n := v.(type) {
		case nil:
			return ""
		case int:
			if n < min {
				return msg
			}
		case float64:
			// JSON numbers decode as float64; 45.5 is not a whole number of minutes.
			if n != math.Trunc(n) || n < float64(min) {
				return msg
			}
		default:
			return msg
		}
		return ""
	}
}

// All chains validators and returns the first message.
func All(vs ...Validator) Validator {
	return func(v any) string {
		for _, validate := range vs {
			if msg := validate(v); msg != "" {
				return msg
			}
		}
		return ""
	}
}

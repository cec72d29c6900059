package errors

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

// problemDetails is the ASP.NET style validation envelope.
type problemDetails struct {
	Title   string              `json:"title"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// envelope is the development backend's error shape.
type envelope struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

// FromStatus translates a non-2xx HTTP response into the client taxonomy.
// Validation failures keep the backend's field messages, keyed by lower camelCase
// field name so they line up with client model fields.
func FromStatus(status int, body []byte) *AppError {
	switch {
	case status == http.StatusUnauthorized:
		return WithMessage(ErrUnauthorized, ErrUnauthorized.Message)
	case status == http.StatusForbidden:
		return WithMessage(ErrForbidden, ErrForbidden.Message)
	case status == http.StatusNotFound:
		return WithMessage(ErrNotFound, messageOr(body, ErrNotFound.Message))
	case status == http.StatusConflict:
		return WithMessage(ErrConflict, messageOr(body, ErrConflict.Message))
	case status >= 500:
		return WithMessage(ErrServer, ErrServer.Message)
	case status >= 400:
		fields := fieldErrors(body)
		e := WithMessage(ErrValidation, messageOr(body, ErrValidation.Message))
		e.StatusCode = status
		if len(fields) > 0 {
			e.Fields = fields
		}
		return e
	}
	return WithMessage(ErrServer, "Unexpected response from server")
}

func messageOr(body []byte, fallback string) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		return env.Error.Message
	}
	var pd problemDetails
	if err := json.Unmarshal(body, &pd); err == nil {
		if pd.Title != "" {
			return pd.Title
		}
		if pd.Message != "" {
			return pd.Message
		}
	}
	return fallback
}

func fieldErrors(body []byte) map[string]string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Error.Fields) > 0 {
		return env.Error.Fields
	}
	var pd problemDetails
	if err := json.Unmarshal(body, &pd); err != nil || len(pd.Errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(pd.Errors))
	for field, msgs := range pd.Errors {
		if len(msgs) == 0 {
			continue
		}
		sort.Strings(msgs)
		out[NormalizeField(strings.TrimPrefix(field, "$."))] = msgs[0]
	}
	return out
}

// fieldAliases maps backend field names that differ from the client model.
var fieldAliases = map[string]string{
	"Ammount":      "balance",
	"CategoryName": "name",
	"Login":        "login",
}

// NormalizeField maps a backend or Go struct field name to the client model field name.
func NormalizeField(s string) string {
	if alias, ok := fieldAliases[s]; ok {
		return alias
	}
	if s == "" {
		return s
	}
	if strings.HasSuffix(s, "ID") {
		s = strings.TrimSuffix(s, "ID") + "Id"
	}
	return strings.ToLower(s[:1]) + s[1:]
}

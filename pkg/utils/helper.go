package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// maximum accepted request body
const maxBodyBytes = 1 << 20

// DecodeJSON decodes the request body into dst. Type mismatches (a string
// or fractional number where an integer is expected) are returned as a
// field -> message map so they can be reported like validation failures.
func DecodeJSON(r *http.Request, dst any) (map[string]string, error) {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return map[string]string{typeErr.Field: "Must be a " + typeName(typeErr.Type.String())}, nil
		}
		return nil, err
	}

	return nil, nil
}

func typeName(goType string) string {
	switch goType {
	case "int", "*int", "int32", "int64":
		return "whole number"
	case "string", "*string":
		return "string"
	default:
		return goType
	}
}

package eia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var nullLiteral = []byte("null")

// envelope is the outer wrapper common to every API response.
type envelope struct {
	Response json.RawMessage `json:"response"`
}

// childDescriptor is one entry of an intermediate node's route listing.
type childDescriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// idDescriptor is a facet or frequency listing entry.
type idDescriptor struct {
	ID string `json:"id"`
}

// metaPayload is a metadata response body. Pointer fields distinguish
// absent keys from present-but-empty listings, which drives node
// classification. Data stays raw so column order can be recovered.
type metaPayload struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Routes      *[]childDescriptor `json:"routes"`
	Facets      *[]idDescriptor    `json:"facets"`
	Frequency   *[]idDescriptor    `json:"frequency"`
	Data        json.RawMessage    `json:"data"`
}

// dataPayload is a data response body. Rows stay raw so each row's key
// order can be recovered before decoding.
type dataPayload struct {
	Total    flexCount         `json:"total"`
	Data     []json.RawMessage `json:"data"`
	Warnings []warning         `json:"warnings"`
}

// warning is an advisory note attached to a data response, such as the
// incomplete-return notice on truncated pages.
type warning struct {
	Warning     string `json:"warning"`
	Description string `json:"description"`
}

func (w warning) text() string {
	switch {
	case w.Warning == "":
		return w.Description
	case w.Description == "":
		return w.Warning
	default:
		return w.Warning + ": " + w.Description
	}
}

// flexCount decodes a count that the API serves as either a JSON string
// or a JSON number, depending on the endpoint.
type flexCount int64

func (n *flexCount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("count %q: %w", s, err)
	}
	*n = flexCount(v)
	return nil
}

// decodeEnvelope unwraps the response envelope from a raw body.
func decodeEnvelope(route Route, body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &DecodeError{Route: route, Err: err}
	}
	if len(env.Response) == 0 || bytes.Equal(env.Response, nullLiteral) {
		return nil, &DecodeError{Route: route, Err: errMissingEnvelope}
	}
	return env.Response, nil
}

// orderedKeys returns the top-level keys of a JSON object in document
// order. Go maps lose that order, so the object is walked token by token.
func orderedKeys(raw []byte) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	keys := []string{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected key token %v", keyTok)
		}
		keys = append(keys, key)

		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return keys, nil
}

// skipValue consumes one JSON value, descending through nested containers.
func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); ok && (d == '{' || d == '[') {
		for dec.More() {
			if err := skipValue(dec); err != nil {
				return err
			}
		}
		if _, err := dec.Token(); err != nil {
			return err
		}
	}
	return nil
}

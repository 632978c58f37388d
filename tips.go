package places

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

var ErrMissingText = errors.New("tip is missing its text")

const TIPS_SEPARATOR string = ", "

// Tips returns the "text" value of every element in a tips payload. Unlike Normalize this
// is strict: a payload that is not a list, or any element without "text", is an error.
func Tips(body []byte) ([]string, error) {

	body = bytes.TrimSpace(body)

	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty tips payload", ErrUnexpectedPayload)
	}

	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidJSON
	}

	root := gjson.ParseBytes(body)

	if !root.IsArray() {
		return nil, fmt.Errorf("%w: tips payload is not a list", ErrUnexpectedPayload)
	}

	items := root.Array()
	texts := make([]string, len(items))

	for idx, item := range items {

		t := item.Get("text")

		if !item.IsObject() || !t.Exists() {
			return nil, &ShapeError{Index: idx, Field: "text", Err: ErrMissingText}
		}

		texts[idx] = t.String()
	}

	return texts, nil
}

// JoinTips reduces a list of tips to the single value stored in a table column.
func JoinTips(texts []string) string {
	return strings.Join(texts, TIPS_SEPARATOR)
}

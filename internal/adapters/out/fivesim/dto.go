package fivesim

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type buyResponse struct {
	ID    activationID `json:"id"`
	Phone string       `json:"phone"`
}

type checkResponse struct {
	SMS []struct {
		Code string `json:"code"`
	} `json:"sms"`
}

// activationID is the provider's order id. 5sim sends a JSON number; a quoted
// string is accepted as well. Either way it is kept as its decimal text so
// large ids survive without float rounding.
type activationID string

func (a *activationID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = activationID(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("id is neither a number nor a string: %w", err)
		}
		*a = activationID(n.String())
		return nil
	}
}

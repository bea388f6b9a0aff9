package homework

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// CheckResponse validates the decoded statuses payload and extracts the
// homework records.
//
// The payload must be a JSON object carrying a list-typed "homeworks" field;
// any other shape yields a MalformedResponseError. An empty list is valid
// and simply means there is nothing to process.
func CheckResponse(payload []byte) (*Response, error) {
	var envelope struct {
		Homeworks   json.RawMessage `json:"homeworks"`
		CurrentDate int64           `json:"current_date"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, &MalformedResponseError{Reason: "payload is not a JSON object", Err: err}
	}
	if envelope.Homeworks == nil {
		return nil, &MalformedResponseError{Reason: "homeworks key is absent"}
	}
	if bytes.Equal(bytes.TrimSpace(envelope.Homeworks), jsonNull) {
		return nil, &MalformedResponseError{Reason: "homeworks is null, expected a list"}
	}

	var hws []Homework
	if err := json.Unmarshal(envelope.Homeworks, &hws); err != nil {
		return nil, &MalformedResponseError{Reason: "homeworks is not a list of records", Err: err}
	}
	return &Response{Homeworks: hws, CurrentDate: envelope.CurrentDate}, nil
}

package homework

import (
	"errors"
	"testing"
)

func TestCheckResponseValid(t *testing.T) {
	t.Parallel()
	payload := []byte(`{"homeworks":[{"id":42,"homework_name":"X","status":"approved"}],"current_date":1700000000}`)

	resp, err := CheckResponse(payload)
	if err != nil {
		t.Fatalf("CheckResponse error: %v", err)
	}
	if len(resp.Homeworks) != 1 {
		t.Fatalf("expected 1 homework, got %d", len(resp.Homeworks))
	}
	hw := resp.Homeworks[0]
	if hw.ID != 42 || hw.Name != "X" || hw.Status != "approved" {
		t.Fatalf("unexpected record: %+v", hw)
	}
	if resp.CurrentDate != 1700000000 {
		t.Fatalf("CurrentDate = %d, want 1700000000", resp.CurrentDate)
	}
}

func TestCheckResponseEmptyListIsValid(t *testing.T) {
	t.Parallel()
	resp, err := CheckResponse([]byte(`{"homeworks":[],"current_date":1}`))
	if err != nil {
		t.Fatalf("CheckResponse error: %v", err)
	}
	if len(resp.Homeworks) != 0 {
		t.Fatalf("expected empty list, got %d records", len(resp.Homeworks))
	}
}

func TestCheckResponseMalformed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		payload string
	}{
		{name: "not an object", payload: `[1,2,3]`},
		{name: "missing homeworks key", payload: `{"current_date":1}`},
		{name: "homeworks is null", payload: `{"homeworks":null,"current_date":1}`},
		{name: "homeworks is a string", payload: `{"homeworks":"nope","current_date":1}`},
		{name: "homeworks is an object", payload: `{"homeworks":{"id":1},"current_date":1}`},
		{name: "not json at all", payload: `<html>`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := CheckResponse([]byte(tt.payload))
			var malformed *MalformedResponseError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedResponseError, got %v", err)
			}
		})
	}
}

package pkg

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError(t *testing.T) {
	cause := errors.New("dynamo down")
	e := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, 0)
	if e.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected default 500, got %d", e.HTTPStatus)
	}
	if !errors.Is(e, cause) {
		t.Fatalf("expected wrapped cause")
	}
	if e.Error() != "An internal error occurred: dynamo down" {
		t.Fatalf("unexpected message %q", e.Error())
	}
	body := e.ToHTTPError()
	if body.Code != "INTERNAL_ERROR" || body.Message != "An internal error occurred" {
		t.Fatalf("unexpected body %+v", body)
	}

	simple := NewDomainErrorSimple("ASSIGNMENT_NOT_FOUND", "Assignment not found", http.StatusNotFound)
	if simple.Error() != "Assignment not found" || simple.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected simple error %+v", simple)
	}
}

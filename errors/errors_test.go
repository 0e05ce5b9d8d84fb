package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found", http.StatusNotFound)
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeStorage, "bucket unreachable", http.StatusBadGateway)
	if !err.Retryable {
		t.Error("STORAGE_ERROR should be retryable")
	}
}

func TestParseError_WrapsCause(t *testing.T) {
	cause := fmt.Errorf("XML syntax error on line 3")
	err := ParseError(cause)
	if err.Code != ErrCodeParse {
		t.Errorf("expected PARSE_ERROR, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("expected cause text in message, got %q", err.Error())
	}
}

func TestEmptyResult_IsDistinctFromParseError(t *testing.T) {
	empty := EmptyResult()
	if !IsEmptyResult(empty) {
		t.Error("expected IsEmptyResult to match")
	}
	if IsParseError(empty) {
		t.Error("empty result must not classify as parse error")
	}
	if IsEmptyResult(ParseError(fmt.Errorf("boom"))) {
		t.Error("parse error must not classify as empty result")
	}
}

func TestHasCode_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("analyze: %w", ParseError(fmt.Errorf("eof")))
	if !IsParseError(wrapped) {
		t.Error("expected wrapped parse error to be detected")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeParse) {
		t.Error("plain errors carry no code")
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("report", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
	if err.Details["resource"] != "report" {
		t.Errorf("expected resource=report, got %v", err.Details["resource"])
	}
}

func TestAppError_Internal_Success(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Internal(cause)
	if err.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", err.Code)
	}
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if err.Retryable {
		t.Error("Internal should not be retryable")
	}
}

func TestAppError_InvalidInput(t *testing.T) {
	err := InvalidInput("format", "unknown format \"xls\"")
	if err.Details["field"] != "format" {
		t.Errorf("expected field=format, got %v", err.Details["field"])
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", err.HTTPStatus)
	}
}

func TestAppError_Unavailable(t *testing.T) {
	err := Unavailable("too many concurrent reports")
	if err.HTTPStatus != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", err.HTTPStatus)
	}
	if !err.Retryable || !IsRetryableCode(err.Code) {
		t.Error("Unavailable should be retryable")
	}
}

func TestAppError_ToResponse(t *testing.T) {
	err := StorageError("download", fmt.Errorf("timeout")).WithDetail("key", "in/model.bpmn")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeStorage {
		t.Errorf("expected STORAGE_ERROR, got %s", resp.Error.Code)
	}
	if !resp.Error.Retryable {
		t.Error("expected retryable in response")
	}
	if resp.Error.Details["key"] != "in/model.bpmn" {
		t.Errorf("expected key detail, got %v", resp.Error.Details["key"])
	}
}

func TestAsAppError(t *testing.T) {
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected plain error not to convert")
	}
	appErr, ok := AsAppError(fmt.Errorf("wrap: %w", Timeout("analyze", nil)))
	if !ok || appErr.Code != ErrCodeTimeout {
		t.Errorf("expected TIMEOUT app error, got %v", appErr)
	}
}

package envelope

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type payload struct {
	Name string `json:"name"`
}

func TestWrite(t *testing.T) {
	t.Run("WriteSuccess", func(t *testing.T) {
		rec := httptest.NewRecorder()
		if err := WriteSuccess(rec, payload{Name: "Blue Monday"}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected application/json, got %s", ct)
		}

		got := strings.TrimSpace(rec.Body.String())
		want := `{"success":true,"data":{"name":"Blue Monday"}}`
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("WriteSuccess Nil Data", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteSuccess(rec, nil)

		got := strings.TrimSpace(rec.Body.String())
		if got != `{"success":true,"data":{}}` {
			t.Errorf("unexpected body %s", got)
		}
	})

	t.Run("WriteError", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, "Query parameter 'q' is required.", http.StatusBadRequest)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}

		var env Envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if env.Success {
			t.Error("expected success=false")
		}
		if env.Message() != "Query parameter 'q' is required." {
			t.Errorf("unexpected message %q", env.Message())
		}
	})

	t.Run("WriteError Empty Message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		WriteError(rec, "", http.StatusInternalServerError)

		if !strings.Contains(rec.Body.String(), DefaultMessage) {
			t.Errorf("expected default message, got %s", rec.Body.String())
		}
	})
}

func TestDecode(t *testing.T) {
	tc := []struct {
		name    string
		body    string
		ok      bool
		message string
		value   string
	}{
		{name: "Success", body: `{"success":true,"data":{"name":"x"}}`, ok: true, value: "x"},
		{name: "Success Without Data", body: `{"success":true}`, ok: true},
		{name: "Success Null Data", body: `{"success":true,"data":null}`, ok: true},
		{name: "Failure With Message", body: `{"success":false,"error":{"message":"No active device"}}`, message: "No active device"},
		{name: "Failure Without Error", body: `{"success":false}`, message: DefaultMessage},
		{name: "Failure Empty Message", body: `{"success":false,"error":{}}`, message: DefaultMessage},
		{name: "Not JSON", body: `<html>oops</html>`, message: "invalid response"},
		{name: "Wrong Data Shape", body: `{"success":true,"data":[1,2]}`, message: "invalid response data"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			result := Decode[payload](strings.NewReader(tt.body))

			if result.OK() != tt.ok {
				t.Fatalf("expected OK()=%v, got %v (%s)", tt.ok, result.OK(), result.Message())
			}

			value, err := result.Unwrap()
			if tt.ok {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				if value.Name != tt.value {
					t.Errorf("expected value %q, got %q", tt.value, value.Name)
				}
				return
			}

			if !strings.HasPrefix(result.Message(), tt.message) {
				t.Errorf("expected message starting with %q, got %q", tt.message, result.Message())
			}

			var envErr *Error
			if !errors.As(err, &envErr) {
				t.Errorf("expected *Error, got %T", err)
			}
		})
	}
}

func TestResult(t *testing.T) {
	t.Run("Err Defaults Message", func(t *testing.T) {
		if got := Err[int]("").Message(); got != DefaultMessage {
			t.Errorf("expected %q, got %q", DefaultMessage, got)
		}
	})

	t.Run("FromError", func(t *testing.T) {
		if !FromError[int](nil).OK() {
			t.Error("nil error should be Ok")
		}

		r := FromError[int](errors.New("boom"))
		if r.OK() || r.Message() != "boom" {
			t.Errorf("unexpected result %+v", r)
		}
	})

	t.Run("Ok Message Empty", func(t *testing.T) {
		if Ok(1).Message() != "" {
			t.Error("Ok result should have no message")
		}
	})
}

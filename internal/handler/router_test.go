package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vaultpass/passgen/internal/crypto"
	"github.com/vaultpass/passgen/internal/middleware"
	"github.com/vaultpass/passgen/internal/model"
	"github.com/vaultpass/passgen/internal/service"
)

const testPopupSecret = "test-secret"

// zeroSource always picks the first candidate.
type zeroSource struct{}

func (zeroSource) Index(bound int) (int, error) { return 0, nil }

func newTestRouter(src crypto.IndexSource) http.Handler {
	gen := service.NewGeneratorService(crypto.NewGenerator(src, nil))
	popup := service.NewPopupService(gen, testPopupSecret, time.Hour)
	return NewRouter(Routes{
		Generator:   NewGeneratorHandler(gen),
		Popup:       NewPopupHandler(popup),
		PopupSecret: testPopupSecret,
		Limiter:     middleware.NewIPRateLimiter(100, 100),
	})
}

func doRequest(t *testing.T, h http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, newTestRouter(nil), http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("health = %d %q", rec.Code, rec.Body.String())
	}
}

func TestHandleGenerate(t *testing.T) {
	h := newTestRouter(zeroSource{})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		want       string
	}{
		{name: "empty body defaults", body: "", wantStatus: http.StatusOK, want: "aaaaaaaaaaaaaaaa"},
		{name: "pin", body: `{"mode":"pin","length":6}`, wantStatus: http.StatusOK, want: "000000"},
		{name: "lowercase only", body: `{"length":5,"uppercase":false,"numbers":false,"symbols":false}`, wantStatus: http.StatusOK, want: "aaaaa"},
		{name: "passphrase", body: `{"mode":"passphrase","length":4}`, wantStatus: http.StatusOK, want: "Apple-Apple-Apple-Apple0!"},
		{name: "no classes", body: `{"uppercase":false,"lowercase":false,"numbers":false,"symbols":false}`, wantStatus: http.StatusBadRequest},
		{name: "negative length", body: `{"mode":"pin","length":-4}`, wantStatus: http.StatusBadRequest},
		{name: "too long", body: `{"length":500}`, wantStatus: http.StatusBadRequest},
		{name: "unknown mode", body: `{"mode":"emoji"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{"mode":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, "/api/v1/generate", tt.body, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if rec.Header().Get("Cache-Control") != "no-store" {
				t.Error("generated secrets must not be cached")
			}
			if tt.wantStatus != http.StatusOK {
				body := decodeBody[map[string]string](t, rec)
				if body["error"] == "" {
					t.Error("expected an error message")
				}
				return
			}
			resp := decodeBody[model.GenerateResponse](t, rec)
			if resp.Password != tt.want {
				t.Errorf("password = %q, want %q", resp.Password, tt.want)
			}
			if resp.Length != len(tt.want) {
				t.Errorf("length = %d, want %d", resp.Length, len(tt.want))
			}
		})
	}
}

func TestHandleGenerateBodyTooLarge(t *testing.T) {
	body := `{"mode":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	rec := doRequest(t, newTestRouter(nil), http.MethodPost, "/api/v1/generate", body, nil)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rec.Code)
	}
}

func TestHandleGenerateAndVerify(t *testing.T) {
	h := newTestRouter(nil)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/generate", `{"mode":"pin","hash":true}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate status = %d (%s)", rec.Code, rec.Body.String())
	}
	gen := decodeBody[model.GenerateResponse](t, rec)
	if gen.Hash == "" {
		t.Fatal("expected a hash")
	}

	verify := func(password string) model.VerifyResponse {
		body, _ := json.Marshal(model.VerifyRequest{Password: password, Hash: gen.Hash})
		rec := doRequest(t, h, http.MethodPost, "/api/v1/verify", string(body), nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("verify status = %d (%s)", rec.Code, rec.Body.String())
		}
		return decodeBody[model.VerifyResponse](t, rec)
	}

	if !verify(gen.Password).Match {
		t.Error("expected generated PIN to verify")
	}
	if verify(gen.Password + "x").Match {
		t.Error("expected altered PIN not to verify")
	}
}

func TestHandleVerifyInvalid(t *testing.T) {
	h := newTestRouter(nil)

	tests := []struct {
		name string
		body string
	}{
		{name: "empty body", body: ""},
		{name: "missing hash", body: `{"password":"x"}`},
		{name: "bad hash", body: `{"password":"x","hash":"plain"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, h, http.MethodPost, "/api/v1/verify", tt.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestPopupFlow(t *testing.T) {
	h := newTestRouter(zeroSource{})

	rec := doRequest(t, h, http.MethodPost, "/api/v1/popup", `{"mode":"passphrase","length":2}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("open status = %d (%s)", rec.Code, rec.Body.String())
	}
	opened := decodeBody[model.PopupResponse](t, rec)
	if opened.Token == "" || opened.Password != "Apple-Apple0!" {
		t.Fatalf("unexpected popup response %+v", opened)
	}

	auth := http.Header{"Authorization": {"Bearer " + opened.Token}}
	rec = doRequest(t, h, http.MethodPost, "/api/v1/popup/generate", "", auth)
	if rec.Code != http.StatusOK {
		t.Fatalf("regenerate status = %d (%s)", rec.Code, rec.Body.String())
	}
	resp := decodeBody[model.GenerateResponse](t, rec)
	if resp.Password != "Apple-Apple0!" || resp.Mode != "passphrase" {
		t.Errorf("unexpected regenerated secret %+v", resp)
	}
}

func TestPopupRegenerateRequiresToken(t *testing.T) {
	h := newTestRouter(nil)

	rec := doRequest(t, h, http.MethodPost, "/api/v1/popup/generate", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	token, _, err := crypto.GeneratePopupToken(crypto.GenerationRequest{Mode: crypto.ModePIN, Size: 6}, "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("GeneratePopupToken() unexpected error: %v", err)
	}
	rec = doRequest(t, h, http.MethodPost, "/api/v1/popup/generate", "", http.Header{"Authorization": {"Bearer " + token}})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("foreign token status = %d, want 401", rec.Code)
	}
}

func TestPopupOpenInvalid(t *testing.T) {
	rec := doRequest(t, newTestRouter(nil), http.MethodPost, "/api/v1/popup", `{"mode":"pin","length":40}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// failingSource simulates an exhausted entropy source.
type failingSource struct{}

func (failingSource) Index(int) (int, error) { return 0, errors.New("entropy source exhausted") }

func TestHandleGenerateSourceFailure(t *testing.T) {
	rec := doRequest(t, newTestRouter(failingSource{}), http.MethodPost, "/api/v1/generate", `{"mode":"pin"}`, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeBody[map[string]string](t, rec)
	if body["error"] != "internal server error" {
		t.Errorf("error = %q", body["error"])
	}
}

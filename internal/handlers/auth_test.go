package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSignupAndLoginFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	body := `{"username":"a","email":"a@x.com","password":"longenough"}`
	rec := httptest.NewRecorder()
	Signup(env.users)(rec, httptest.NewRequest("POST", "/signup", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	Login(env.users)(rec, httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":"a@x.com","password":"longenough"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success  bool   `json:"success"`
		Token    string `json:"token"`
		UserID   int    `json:"userId"`
		Username string `json:"username"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success=true")
	}
	if resp.Username != "a" {
		t.Fatalf("username = %q, want %q", resp.Username, "a")
	}

	claims, err := testJWTUtil().ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	if claims.UserID != resp.UserID {
		t.Fatalf("token user id = %d, want %d", claims.UserID, resp.UserID)
	}
}

func TestMeReturnsCallerProfile(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	user := env.seedUser("a", "a@x.com")

	req := asCaller(httptest.NewRequest("GET", "/me", nil), user)
	rec := httptest.NewRecorder()
	Me(env.users)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		User    struct {
			ID       int    `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.User.ID != user.ID || resp.User.Username != "a" {
		t.Fatalf("user = %+v, want id %d username %q", resp.User, user.ID, "a")
	}
	if strings.Contains(rec.Body.String(), "longenough") || strings.Contains(rec.Body.String(), `"password"`) {
		t.Fatalf("password leaked in response: %s", rec.Body.String())
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	body := `{"username":"a","email":"a@x.com","password":"longenough"}`
	rec := httptest.NewRecorder()
	Signup(env.users)(rec, httptest.NewRequest("POST", "/signup", strings.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("first signup status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	Signup(env.users)(rec, httptest.NewRequest("POST", "/signup", strings.NewReader(`{"username":"b","email":"a@x.com","password":"longenough"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup status = %d, want 400", rec.Code)
	}
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	rec := httptest.NewRecorder()
	Signup(env.users)(rec, httptest.NewRequest("POST", "/signup", strings.NewReader(`{"username":"a","email":"not-an-email","password":"short"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "errors") {
		t.Fatalf("expected validation error list, got %s", rec.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	env := newTestEnv()

	rec := httptest.NewRecorder()
	Signup(env.users)(rec, httptest.NewRequest("POST", "/signup", strings.NewReader(`{"username":"a","email":"a@x.com","password":"longenough"}`)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	Login(env.users)(rec, httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":"a@x.com","password":"wrongpass"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	// Unknown email gets the same response shape and status.
	rec2 := httptest.NewRecorder()
	Login(env.users)(rec2, httptest.NewRequest("POST", "/login", strings.NewReader(`{"email":"nobody@x.com","password":"wrongpass"}`)))
	if rec2.Code != http.StatusBadRequest {
		t.Fatalf("unknown email status = %d, want 400", rec2.Code)
	}
	if rec.Body.String() != rec2.Body.String() {
		t.Fatalf("responses differ: %s vs %s", rec.Body.String(), rec2.Body.String())
	}
}

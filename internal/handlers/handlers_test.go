package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/logger"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/middleware"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/models"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/repository"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/resetcode"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/services"
	"github.com/Nahuel-a/Equipo-17-Pymes/internal/token"
)

var (
	userCols = []string{"id", "first_name", "last_name", "email", "password_hash", "role", "is_active", "created_at"}
	pymeCols = []string{"id", "user_id", "name_company", "cuit", "legal_form", "activity", "corporate_email",
		"phone_number", "country", "state", "city", "address", "postal_code", "created_at"}
	creditCols = []string{"id", "pyme_id", "amount", "employees", "annual_sales", "fiscal_year_closing",
		"total_assets", "status", "created_at", "updated_at"}
)

type fixture struct {
	mock    sqlmock.Sqlmock
	repos   repository.Manager
	auth    *AuthHandler
	users   *UserHandler
	pymes   *PymeHandler
	credits *CreditHandler
}

func newFixture(t *testing.T, returnCode bool) *fixture {
	t.Helper()
	raw, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { raw.Close() })

	log := logger.Discard()
	repos := repository.NewManager(sqlx.NewDb(raw, "postgres"))
	authSvc, err := services.NewAuthService(repos, token.NewIssuer("test-secret", "HS256", 30*time.Minute), log)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	codes := resetcode.NewManager(resetcode.NewMemoryStore())
	resets := services.NewPasswordResetService(repos, codes, &services.LogSender{Log: log}, log, returnCode)

	return &fixture{
		mock:    mock,
		repos:   repos,
		auth:    NewAuthHandler(authSvc, resets, log),
		users:   NewUserHandler(authSvc, log),
		pymes:   NewPymeHandler(services.NewPymeService(repos, log), log),
		credits: NewCreditHandler(services.NewCreditService(repos, nil, log), log),
	}
}

func asUser(u *models.User) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), u)))
		})
	}
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return body
}

func userRow(id, email, password string) *sqlmock.Rows {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return sqlmock.NewRows(userCols).AddRow(id, "Ana", "Diaz", email, string(hash), "user", true, time.Now())
}

func loginRequest(username, password string) *http.Request {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginReturnsBearerToken(t *testing.T) {
	fx := newFixture(t, true)
	fx.mock.ExpectQuery("FROM users").WithArgs("a@x.com").WillReturnRows(userRow("u1", "a@x.com", "password123"))

	w := httptest.NewRecorder()
	fx.auth.Login(w, loginRequest("a@x.com", "password123"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["token_type"] != "bearer" || body["access_token"] == "" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestLoginBadPasswordReturns401(t *testing.T) {
	fx := newFixture(t, true)
	fx.mock.ExpectQuery("FROM users").WithArgs("a@x.com").WillReturnRows(userRow("u1", "a@x.com", "password123"))

	w := httptest.NewRecorder()
	fx.auth.Login(w, loginRequest("a@x.com", "wrong-password1"))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
	if body := decodeBody(t, w); body["error"] != "authentication_error" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestLoginMissingPasswordIsValidationError(t *testing.T) {
	fx := newFixture(t, true)

	w := httptest.NewRecorder()
	fx.auth.Login(w, loginRequest("a@x.com", ""))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "password is required" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	for _, returnCode := range []bool{true, false} {
		fx := newFixture(t, returnCode)
		fx.mock.ExpectQuery("FROM users").WillReturnError(sql.ErrNoRows)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/password-reset/request", strings.NewReader(`{"email":"ghost@x.com"}`))
		w := httptest.NewRecorder()
		fx.auth.RequestPasswordReset(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		_, hasCode := body["reset_code"]
		if hasCode != returnCode {
			t.Fatalf("returnCode=%v: unexpected body %v", returnCode, body)
		}
	}
}

func TestRequestPasswordResetBadEmail(t *testing.T) {
	fx := newFixture(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/password-reset/request", strings.NewReader(`{"email":"nope"}`))
	w := httptest.NewRecorder()
	fx.auth.RequestPasswordReset(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestVerifyResetCodeStatuses(t *testing.T) {
	fx := newFixture(t, true)
	fx.mock.ExpectQuery("FROM users").WillReturnError(sql.ErrNoRows)
	fx.mock.ExpectQuery("FROM users").WillReturnRows(userRow("u1", "a@x.com", "password123"))

	body := `{"email":"a@x.com","reset_code":"123456"}`

	w := httptest.NewRecorder()
	fx.auth.VerifyResetCode(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown account, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	fx.auth.VerifyResetCode(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a code never issued, got %d", w.Code)
	}
	if got := decodeBody(t, w)["message"]; got != "invalid or expired reset code" {
		t.Fatalf("unexpected message %v", got)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	fx := newFixture(t, true)
	fx.mock.ExpectExec("INSERT INTO users").WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/users",
		strings.NewReader(`{"first_name":"Ana","last_name":"Diaz","email":"a@x.com","password":"password123"}`))
	w := httptest.NewRecorder()
	fx.users.Register(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["message"]; got != "email already registered" {
		t.Fatalf("unexpected message %v", got)
	}
}

func TestMeRequiresUser(t *testing.T) {
	fx := newFixture(t, true)

	w := httptest.NewRecorder()
	fx.users.Me(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	fx.users.Me(w, req.WithContext(middleware.WithUser(context.Background(), &models.User{ID: "u1", Email: "a@x.com"})))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body := decodeBody(t, w); body["password_hash"] != nil {
		t.Fatalf("password hash leaked: %v", body)
	}
}

func TestCreateCreditWithInlinePyme(t *testing.T) {
	fx := newFixture(t, true)
	user := &models.User{ID: uuid.NewString(), Role: models.RoleUser}

	fx.mock.ExpectBegin()
	fx.mock.ExpectQuery(`FROM pymes WHERE user_id = \$1 FOR UPDATE`).WithArgs(user.ID).WillReturnError(sql.ErrNoRows)
	fx.mock.ExpectExec("INSERT INTO pymes").WillReturnResult(sqlmock.NewResult(0, 1))
	fx.mock.ExpectExec("INSERT INTO credits").WillReturnResult(sqlmock.NewResult(0, 1))
	fx.mock.ExpectCommit()

	payload := map[string]any{
		"amount": 1000, "employees": 5, "annual_sales": 50000,
		"fiscal_year_closing": time.Now().Year(), "total_assets": 20000,
		"pyme": map[string]any{
			"name_company": "Acme SRL", "cuit": "30-12345678-9", "legal_form": "SRL", "activity": "Retail",
			"corporate_email": "info@acme.com", "phone_number": "+5491144445555", "country": "AR",
			"state": "BA", "city": "CABA", "address": "Calle 1", "postal_code": "C1000",
		},
	}
	b, _ := json.Marshal(payload)

	r := chi.NewRouter()
	r.With(asUser(user)).Post("/credits", fx.credits.CreateCredit)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/credits", bytes.NewReader(b)))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["pyme_created"] != true {
		t.Fatalf("expected pyme_created, got %v", body)
	}
	credit, _ := body["credit"].(map[string]any)
	if credit["status"] != "pending" {
		t.Fatalf("unexpected credit %v", credit)
	}
	if err := fx.mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGetCreditOfAnotherUserIsForbidden(t *testing.T) {
	fx := newFixture(t, true)
	user := &models.User{ID: uuid.NewString(), Role: models.RoleUser}
	creditID, pymeID := uuid.NewString(), uuid.NewString()
	now := time.Now()

	fx.mock.ExpectQuery(`FROM credits WHERE id = \$1`).WithArgs(creditID).
		WillReturnRows(sqlmock.NewRows(creditCols).AddRow(creditID, pymeID, 1000.0, 5, 50000.0, 2024, 20000.0, "pending", now, now))
	fx.mock.ExpectQuery(`FROM pymes WHERE id = \$1`).WithArgs(pymeID).
		WillReturnRows(sqlmock.NewRows(pymeCols).AddRow(pymeID, "someone-else", "Acme", "30-12345678-9", "SRL", "Retail",
			"info@acme.com", "+5491144445555", "AR", "BA", "CABA", "Calle 1", "C1000", now))

	r := chi.NewRouter()
	r.With(asUser(user)).Get("/credits/{id}", fx.credits.GetCredit)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/credits/"+creditID, nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetPymeRejectsMalformedID(t *testing.T) {
	fx := newFixture(t, true)

	r := chi.NewRouter()
	r.With(asUser(&models.User{ID: "u1"})).Get("/pymes/{id}", fx.pymes.GetPyme)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pymes/42", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUploadDocumentWithoutStorage(t *testing.T) {
	fx := newFixture(t, true)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "balance.pdf")
	_, _ = part.Write([]byte("%PDF-1.4"))
	_ = mw.Close()

	r := chi.NewRouter()
	r.With(asUser(&models.User{ID: "u1"})).Post("/credits/{id}/documents", fx.credits.UploadDocument)
	req := httptest.NewRequest(http.MethodPost, "/credits/"+uuid.NewString()+"/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
}

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dopust-hr/leave-backend-go/internal/domain/auth"
	"github.com/dopust-hr/leave-backend-go/internal/domain/leave"
	"github.com/dopust-hr/leave-backend-go/internal/domain/user"
	"github.com/dopust-hr/leave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestAccessExp = "1h"
	handlerTestSecret    = "test-secret-key-for-jwt"
)

type fakeAuthService struct {
	registered map[string]bool
	jwt        jwt.Service
}

func (f *fakeAuthService) Register(ctx context.Context, req auth.RegisterRequest) (user.UserResponse, error) {
	if f.registered[req.Email] {
		return user.UserResponse{}, user.ErrUserAlreadyExists
	}
	f.registered[req.Email] = true
	return user.NewUserResponse(user.User{ID: int64(len(f.registered)), Email: req.Email, Type: user.TypeEmployee}), nil
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if !f.registered[req.Email] || req.Password != "password123" {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	token, exp, err := f.jwt.GenerateAccessToken(user.User{ID: 1, Email: req.Email, Type: user.TypeEmployee})
	if err != nil {
		return auth.LoginResponse{}, err
	}
	return auth.LoginResponse{Token: token, UserID: 1, ExpiresAt: exp}, nil
}

type fakeUserService struct {
	users  []user.UserResponse
	listed []user.UserResponse
}

// GetByID backs the role lookup done by AuthRequired.
func (f *fakeUserService) GetByID(ctx context.Context, id int64) (user.User, error) {
	u, err := f.GetProfile(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	return user.User{ID: u.ID, Email: u.Email, Type: u.UserType}, nil
}

func (f *fakeUserService) GetProfile(ctx context.Context, id int64) (user.UserResponse, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.UserResponse{}, user.ErrUserNotFound
}

func (f *fakeUserService) List(ctx context.Context) ([]user.UserResponse, error) {
	if f.listed != nil {
		return f.listed, nil
	}
	return append([]user.UserResponse{}, f.users...), nil
}

func (f *fakeUserService) ToggleType(ctx context.Context, id int64) (user.UserResponse, error) {
	for i, u := range f.users {
		if u.ID == id {
			f.users[i].UserType = u.UserType.Toggled()
			f.users[i].Role = f.users[i].UserType.String()
			return f.users[i], nil
		}
	}
	return user.UserResponse{}, user.ErrUserNotFound
}

func (f *fakeUserService) PromoteByEmail(ctx context.Context, email string) (user.UserResponse, error) {
	return user.UserResponse{}, user.ErrUserNotFound
}

type fakeLeaveService struct {
	leaves   map[int64]int64 // leave id -> owner id
	statuses map[int64]leave.RequestStatus
	created  []leave.CreateRequestRequest
	year     *int
}

func (f *fakeLeaveService) CreateRequest(ctx context.Context, userID int64, req leave.CreateRequestRequest) (leave.CreateRequestResponse, error) {
	f.created = append(f.created, req)
	return leave.CreateRequestResponse{ID: int64(len(f.created)), Status: "in progress", LeaveCount: len(req.Leaves)}, nil
}

func (f *fakeLeaveService) ListMyRequests(ctx context.Context, userID int64) ([]leave.RequestWithLeaves, error) {
	return []leave.RequestWithLeaves{{ID: 1, UserID: userID, Leaves: []leave.LeaveItem{}}}, nil
}

func (f *fakeLeaveService) ListAllRequests(ctx context.Context) ([]leave.RequestWithLeaves, error) {
	return []leave.RequestWithLeaves{}, nil
}

func (f *fakeLeaveService) UpdateStatus(ctx context.Context, req leave.UpdateStatusRequest) error {
	status, err := leave.ParseStatus(req.Status)
	if err != nil {
		return err
	}
	if _, ok := f.statuses[req.ID]; !ok {
		return leave.ErrRequestNotFound
	}
	f.statuses[req.ID] = status
	return nil
}

func (f *fakeLeaveService) Stats(ctx context.Context, year *int) ([]leave.UserLeaveStats, error) {
	f.year = year
	return []leave.UserLeaveStats{{UserID: 1, ApprovedDays: 36, CountedDays: 30}}, nil
}

func (f *fakeLeaveService) ListAllLeaves(ctx context.Context) ([]leave.LeaveListing, error) {
	return []leave.LeaveListing{}, nil
}

func (f *fakeLeaveService) DeleteLeave(ctx context.Context, callerID int64, isAdmin bool, leaveID int64) error {
	owner, ok := f.leaves[leaveID]
	if !ok || (!isAdmin && owner != callerID) {
		return leave.ErrLeaveNotFound
	}
	delete(f.leaves, leaveID)
	return nil
}

func (f *fakeLeaveService) ListLeaveTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return []leave.LeaveType{{ID: 1, Label: "vacation"}}, nil
}

type testServer struct {
	router   *chi.Mux
	jwt      *jwt.JWTService
	users    *fakeUserService
	leaves   *fakeLeaveService
	employee string
	admin    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	jwtService, err := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp)
	require.NoError(t, err)

	users := &fakeUserService{users: []user.UserResponse{
		user.NewUserResponse(user.User{ID: 1, FirstName: "Ana", Email: "ana@example.com", Type: user.TypeEmployee}),
		user.NewUserResponse(user.User{ID: 2, FirstName: "Bor", Email: "bor@example.com", Type: user.TypeAdmin}),
	}}
	leaves := &fakeLeaveService{
		leaves:   map[int64]int64{100: 1, 101: 1, 200: 2},
		statuses: map[int64]leave.RequestStatus{10: leave.RequestStatusInProgress},
	}
	authSvc := &fakeAuthService{registered: map[string]bool{"ana@example.com": true}, jwt: jwtService}

	router := NewRouter(
		RouterConfig{FrontendURL: "http://localhost:3000", Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		jwtService,
		users,
		NewAuthHandler(authSvc),
		NewUserHandler(users),
		NewLeaveHandler(leaves),
	)

	employeeToken, _, err := jwtService.GenerateAccessToken(user.User{ID: 1, Email: "ana@example.com", Type: user.TypeEmployee})
	require.NoError(t, err)
	adminToken, _, err := jwtService.GenerateAccessToken(user.User{ID: 2, Email: "bor@example.com", Type: user.TypeAdmin})
	require.NoError(t, err)

	return &testServer{
		router:   router,
		jwt:      jwtService,
		users:    users,
		leaves:   leaves,
		employee: employeeToken,
		admin:    adminToken,
	}
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		payload, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return rec.Code, resp
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)
	body := map[string]string{
		"first_name":       "Janez",
		"last_name":        "Novak",
		"email":            "janez@example.com",
		"password":         "password123",
		"confirm_password": "password123",
	}

	code, resp := s.do(t, http.MethodPost, "/api/users", "", body)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "User registered successfully", resp.Message)

	code, resp = s.do(t, http.MethodPost, "/api/users", "", body)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "User already exists", resp.Message)
}

func TestRegister_ValidationAndMalformed(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"first_name":       "Janez",
		"last_name":        "Novak",
		"email":            "janez@example.com",
		"password":         "password123",
		"confirm_password": "password124",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", resp.Message)

	code, resp = s.do(t, http.MethodPost, "/api/users", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid request format", resp.Message)
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ana@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Login successful", resp.Message)

	var login auth.LoginResponse
	require.NoError(t, json.Unmarshal(resp.Data, &login))
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, int64(1), login.UserID)

	code, resp = s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "ana@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid credentials", resp.Message)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodGet, "/api/users/loggedIn", "", nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.NotEmpty(t, resp.Message)

	code, _ = s.do(t, http.MethodGet, "/api/requests/user-requests", "not-a-token", nil)
	assert.Equal(t, http.StatusForbidden, code)

	other, err := jwt.NewJWTService("another-secret", handlerTestAccessExp)
	require.NoError(t, err)
	forged, _, err := other.GenerateAccessToken(user.User{ID: 2, Type: user.TypeAdmin})
	require.NoError(t, err)
	code, _ = s.do(t, http.MethodGet, "/api/users", forged, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestAdminRoutes_RejectEmployees(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/users", "/api/requests", "/api/requests/all-leaves", "/api/requests/user-request-statuses"} {
		code, resp := s.do(t, http.MethodGet, path, s.employee, nil)
		assert.Equal(t, http.StatusForbidden, code, path)
		assert.Equal(t, "Admin privilege required", resp.Message, path)
	}

	code, _ := s.do(t, http.MethodGet, "/api/users", s.admin, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestAdminRoutes_UseCurrentRole(t *testing.T) {
	s := newTestServer(t)

	// demote the admin after their token was issued
	code, _ := s.do(t, http.MethodPut, "/api/users/2/type", s.admin, nil)
	require.Equal(t, http.StatusOK, code)

	code, resp := s.do(t, http.MethodGet, "/api/users", s.admin, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "Admin privilege required", resp.Message)

	code, _ = s.do(t, http.MethodDelete, "/api/requests/leave/100", s.admin, nil)
	assert.Equal(t, http.StatusNotFound, code)

	// promotion applies to an employee token already in use
	s.users.users[0].UserType = user.TypeAdmin
	code, _ = s.do(t, http.MethodGet, "/api/requests/all-leaves", s.employee, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestProtectedRoutes_RejectDeletedUser(t *testing.T) {
	s := newTestServer(t)
	s.users.users = s.users.users[1:]

	code, resp := s.do(t, http.MethodGet, "/api/users/loggedIn", s.employee, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.NotEmpty(t, resp.Message)
}

func TestLoggedIn(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodGet, "/api/users/loggedIn", s.employee, nil)
	require.Equal(t, http.StatusOK, code)

	var profile user.UserResponse
	require.NoError(t, json.Unmarshal(resp.Data, &profile))
	assert.Equal(t, int64(1), profile.ID)
	assert.Equal(t, "ana@example.com", profile.Email)
}

func TestListUsers_Empty(t *testing.T) {
	s := newTestServer(t)
	s.users.listed = []user.UserResponse{}

	code, resp := s.do(t, http.MethodGet, "/api/users", s.admin, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(resp.Data))
}

func TestToggleUserType(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPut, "/api/users/1/type", s.admin, nil)
	require.Equal(t, http.StatusOK, code)
	var updated user.UserResponse
	require.NoError(t, json.Unmarshal(resp.Data, &updated))
	assert.Equal(t, user.TypeAdmin, updated.UserType)

	code, _ = s.do(t, http.MethodPut, "/api/users/abc/type", s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPut, "/api/users/99/type", s.admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCreateRequest(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodPost, "/api/users/request", s.employee, map[string]interface{}{
		"comment": "summer",
		"leaves": []map[string]interface{}{
			{"reason": "trip", "type": 1, "start_date": "2024-07-01", "end_date": "2024-07-05"},
			{"reason": "trip", "type": 1, "start_date": "2024-08-01", "end_date": "2024-08-02"},
		},
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Request created successfully", resp.Message)

	var created leave.CreateRequestResponse
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, 2, created.LeaveCount)

	code, _ = s.do(t, http.MethodPost, "/api/users/request", s.employee, map[string]interface{}{
		"leaves": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Len(t, s.leaves.created, 1)
}

func TestDeleteLeave(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodDelete, "/api/requests/leave/", s.employee, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Leave ID is required", resp.Message)

	code, resp = s.do(t, http.MethodDelete, "/api/requests/leave", s.employee, nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Leave ID is required", resp.Message)

	code, _ = s.do(t, http.MethodDelete, "/api/requests/leave/abc", s.employee, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = s.do(t, http.MethodDelete, "/api/requests/leave/999", s.employee, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Leave not found", resp.Message)

	// another user's leave looks missing to an employee
	code, _ = s.do(t, http.MethodDelete, "/api/requests/leave/200", s.employee, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = s.do(t, http.MethodDelete, "/api/requests/leave/100", s.employee, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Leave deleted successfully", resp.Message)
	_, gone := s.leaves.leaves[100]
	assert.False(t, gone)
	_, kept := s.leaves.leaves[101]
	assert.True(t, kept)

	code, _ = s.do(t, http.MethodDelete, "/api/requests/leave/200", s.admin, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestUpdateStatus_Idempotent(t *testing.T) {
	s := newTestServer(t)
	body := map[string]interface{}{"id": 10, "status": "accepted"}

	for i := 0; i < 2; i++ {
		code, resp := s.do(t, http.MethodPut, "/api/requests", s.admin, body)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Request status updated successfully", resp.Message)
	}
	assert.Equal(t, leave.RequestStatusAccepted, s.leaves.statuses[10])

	code, _ := s.do(t, http.MethodPut, "/api/requests", s.admin, map[string]interface{}{"id": 10, "status": "approved"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp := s.do(t, http.MethodPut, "/api/requests", s.admin, map[string]interface{}{"id": 77, "status": "rejected"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Request not found", resp.Message)
}

func TestStats_YearParam(t *testing.T) {
	s := newTestServer(t)

	code, _ := s.do(t, http.MethodGet, "/api/requests/user-request-statuses?year=2024", s.admin, nil)
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, s.leaves.year)
	assert.Equal(t, 2024, *s.leaves.year)

	code, _ = s.do(t, http.MethodGet, "/api/requests/user-request-statuses?year=last", s.admin, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestListMyRequests(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodGet, "/api/requests/user-requests", s.employee, nil)
	require.Equal(t, http.StatusOK, code)

	var requests []leave.RequestWithLeaves
	require.NoError(t, json.Unmarshal(resp.Data, &requests))
	require.Len(t, requests, 1)
	assert.Equal(t, int64(1), requests[0].UserID)
}

func TestListLeaveTypes(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(t, http.MethodGet, "/api/leave-types", s.employee, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[{"id":1,"label":"vacation"}]`, string(resp.Data))
}

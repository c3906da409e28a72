package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/authsvc/domain"
	"github.com/you/authsvc/internal/http/middleware"
	"github.com/you/authsvc/internal/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerFixture struct {
	authSvc  *mocks.MockAuthService
	otpSvc   *mocks.MockOTPService
	tokenSvc *mocks.MockTokenService
	userRepo *mocks.MockUserRepository
	router   *gin.Engine
}

func setupRouter(t *testing.T) *handlerFixture {
	t.Helper()

	f := &handlerFixture{
		authSvc:  mocks.NewMockAuthService(),
		otpSvc:   mocks.NewMockOTPService(),
		tokenSvc: mocks.NewMockTokenService(),
		userRepo: mocks.NewMockUserRepository(),
	}

	ah := NewAuthHandlers(f.authSvc, f.otpSvc)
	mw := middleware.NewAuthMW(f.tokenSvc, f.userRepo)

	r := gin.New()
	auth := r.Group("/auth")
	auth.POST("/get-otp", ah.GetOTP)
	auth.POST("/login", ah.Login)
	auth.POST("/refresh", ah.Refresh)

	authed := r.Group("/auth").Use(mw.WithJWT())
	authed.POST("/logout", ah.Logout)
	authed.GET("/account", ah.Account)
	authed.POST("/account", ah.UpdateAccount)
	authed.GET("/public-profiles", ah.PublicProfiles)

	f.router = r
	return f
}

func (f *handlerFixture) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("failed to parse response body %q: %v", w.Body.String(), err)
		}
	}
	return w, parsed
}

func bearerHeader() map[string]string {
	return map[string]string{"Authorization": "Bearer valid-token"}
}

func activeUser() *domain.User {
	return &domain.User{
		ID:          1,
		UID:         "uid-1",
		Email:       "a@x.com",
		Name:        "A",
		Role:        domain.RoleUser,
		AccountType: domain.AccountPublic,
		Active:      true,
		CreatedAt:   time.Now(),
	}
}

func TestAuthHandlers_GetOTP(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(f *handlerFixture)
		expectedStatus int
		validate       func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "successful request",
			body: gin.H{"email": "Person@X.com"},
			setupMocks: func(f *handlerFixture) {
				f.otpSvc.RequestCodeFunc = func(ctx context.Context, email string) (string, error) {
					return "person@x.com", nil
				}
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]interface{}) {
				want := "Login code has been sent to person@x.com"
				if body["message"] != want {
					t.Errorf("expected message %q, got %v", want, body["message"])
				}
			},
		},
		{
			name:           "missing email",
			body:           gin.H{},
			setupMocks:     func(*handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed email",
			body:           gin.H{"email": "not-an-email"},
			setupMocks:     func(*handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "delivery failure",
			body: gin.H{"email": "a@x.com"},
			setupMocks: func(f *handlerFixture) {
				f.otpSvc.RequestCodeFunc = func(ctx context.Context, email string) (string, error) {
					return "", domain.ErrDeliveryFailed
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "storage failure",
			body: gin.H{"email": "a@x.com"},
			setupMocks: func(f *handlerFixture) {
				f.otpSvc.RequestCodeFunc = func(ctx context.Context, email string) (string, error) {
					return "", domain.ErrStorageFailed
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupRouter(t)
			tt.setupMocks(f)

			w, body := f.do(t, http.MethodPost, "/auth/get-otp", tt.body, nil)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (body: %v)", tt.expectedStatus, w.Code, body)
			}
			if tt.validate != nil {
				tt.validate(t, body)
			}
		})
	}
}

func TestAuthHandlers_Login(t *testing.T) {
	successResult := &domain.AuthResult{
		User:         activeUser(),
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    31536000,
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(f *handlerFixture)
		expectedStatus int
		validate       func(t *testing.T, body map[string]interface{})
	}{
		{
			name: "successful code login",
			body: gin.H{"email": "a@x.com", "code": "ABCDEF", "type": "email"},
			setupMocks: func(f *handlerFixture) {
				f.authSvc.LoginFunc = func(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
					if req.Email != "a@x.com" || req.Code != "ABCDEF" || req.AuthType != "email" {
						t.Errorf("unexpected login request: %+v", req)
					}
					return successResult, nil
				}
			},
			expectedStatus: http.StatusOK,
			validate: func(t *testing.T, body map[string]interface{}) {
				if body["tokenType"] != "Bearer" {
					t.Errorf("expected token type Bearer, got %v", body["tokenType"])
				}
				if body["accessToken"] != "access-token" {
					t.Errorf("expected access token, got %v", body["accessToken"])
				}
				if body["refreshToken"] != "refresh-token" {
					t.Errorf("expected refresh token, got %v", body["refreshToken"])
				}
				if body["expiresIn"] != float64(31536000) {
					t.Errorf("expected expiresIn 31536000, got %v", body["expiresIn"])
				}
			},
		},
		{
			name: "successful google login",
			body: gin.H{"type": "google", "access_token": "google-token"},
			setupMocks: func(f *handlerFixture) {
				f.authSvc.LoginFunc = func(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
					if req.AuthType != "google" || req.FederatedToken != "google-token" {
						t.Errorf("unexpected login request: %+v", req)
					}
					return successResult, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "email login without code",
			body:           gin.H{"email": "a@x.com", "type": "email"},
			setupMocks:     func(*handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "google login without token",
			body:           gin.H{"type": "google"},
			setupMocks:     func(*handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown login type",
			body:           gin.H{"email": "a@x.com", "code": "ABCDEF", "type": "facebook"},
			setupMocks:     func(*handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "code with wrong length",
			body:           gin.H{"email": "a@x.com", "code": "ABC", "type": "email"},
			setupMocks:     func(*handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "invalid code",
			body: gin.H{"email": "a@x.com", "code": "ABCDEF", "type": "email"},
			setupMocks: func(f *handlerFixture) {
				f.authSvc.LoginFunc = func(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
					return nil, domain.ErrCodeInvalid
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "expired code",
			body: gin.H{"email": "a@x.com", "code": "ABCDEF", "type": "email"},
			setupMocks: func(f *handlerFixture) {
				f.authSvc.LoginFunc = func(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
					return nil, domain.ErrCodeExpired
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "rejected federated token",
			body: gin.H{"type": "google", "access_token": "bad-token"},
			setupMocks: func(f *handlerFixture) {
				f.authSvc.LoginFunc = func(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
					return nil, domain.ErrFederatedTokenInvalid
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "creation conflict",
			body: gin.H{"email": "a@x.com", "code": "ABCDEF", "type": "email"},
			setupMocks: func(f *handlerFixture) {
				f.authSvc.LoginFunc = func(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
					return nil, domain.ErrUserConflict
				}
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "storage failure",
			body: gin.H{"email": "a@x.com", "code": "ABCDEF", "type": "email"},
			setupMocks: func(f *handlerFixture) {
				f.authSvc.LoginFunc = func(ctx context.Context, req domain.LoginRequest) (*domain.AuthResult, error) {
					return nil, domain.ErrStorageFailed
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupRouter(t)
			tt.setupMocks(f)

			w, body := f.do(t, http.MethodPost, "/auth/login", tt.body, nil)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (body: %v)", tt.expectedStatus, w.Code, body)
			}
			if tt.validate != nil {
				tt.validate(t, body)
			}
		})
	}
}

func TestAuthHandlers_Refresh(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(f *handlerFixture)
		expectedStatus int
	}{
		{
			name: "successful refresh",
			body: gin.H{"email": "a@x.com", "refresh_token": "refresh-token"},
			setupMocks: func(f *handlerFixture) {
				f.authSvc.RefreshFunc = func(ctx context.Context, email, refreshToken string) (*domain.AuthResult, error) {
					return &domain.AuthResult{
						User:         activeUser(),
						AccessToken:  "new-access-token",
						RefreshToken: refreshToken,
						TokenType:    "Bearer",
						ExpiresIn:    31536000,
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing refresh token",
			body:           gin.H{"email": "a@x.com"},
			setupMocks:     func(*handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown refresh token",
			body: gin.H{"email": "a@x.com", "refresh_token": "bad-token"},
			setupMocks: func(f *handlerFixture) {
				f.authSvc.RefreshFunc = func(ctx context.Context, email, refreshToken string) (*domain.AuthResult, error) {
					return nil, domain.ErrRefreshTokenInvalid
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "expired refresh token",
			body: gin.H{"email": "a@x.com", "refresh_token": "old-token"},
			setupMocks: func(f *handlerFixture) {
				f.authSvc.RefreshFunc = func(ctx context.Context, email, refreshToken string) (*domain.AuthResult, error) {
					return nil, domain.ErrRefreshTokenExpired
				}
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupRouter(t)
			tt.setupMocks(f)

			w, body := f.do(t, http.MethodPost, "/auth/refresh", tt.body, nil)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (body: %v)", tt.expectedStatus, w.Code, body)
			}
		})
	}
}

func TestAuthHandlers_Logout(t *testing.T) {
	f := setupRouter(t)
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return activeUser(), nil
	}

	var loggedOut string
	f.authSvc.LogoutFunc = func(ctx context.Context, email string) error {
		loggedOut = email
		return nil
	}

	w, body := f.do(t, http.MethodPost, "/auth/logout", nil, bearerHeader())

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body: %v)", w.Code, body)
	}
	if loggedOut != "a@x.com" {
		t.Errorf("expected logout for a@x.com, got %s", loggedOut)
	}
	if body["message"] != "Logout successful" {
		t.Errorf("unexpected message: %v", body["message"])
	}
}

func TestAuthHandlers_Account(t *testing.T) {
	f := setupRouter(t)
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return activeUser(), nil
	}
	f.authSvc.AccountFunc = func(ctx context.Context, userID uint) (*domain.User, error) {
		if userID != 1 {
			t.Errorf("expected lookup for user 1, got %d", userID)
		}
		return activeUser(), nil
	}

	w, body := f.do(t, http.MethodGet, "/auth/account", nil, bearerHeader())

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body: %v)", w.Code, body)
	}
	details, ok := body["accountDetails"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected accountDetails object, got %v", body)
	}
	if details["email"] != "a@x.com" {
		t.Errorf("expected email a@x.com, got %v", details["email"])
	}
	if details["uid"] != "uid-1" {
		t.Errorf("expected uid uid-1, got %v", details["uid"])
	}
	if _, present := details["id"]; present {
		t.Error("internal id must not appear in responses")
	}
}

func TestAuthHandlers_UpdateAccount(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMocks     func(t *testing.T, f *handlerFixture)
		expectedStatus int
	}{
		{
			name: "partial update",
			body: gin.H{"name": "New Name"},
			setupMocks: func(t *testing.T, f *handlerFixture) {
				f.authSvc.UpdateAccountFunc = func(ctx context.Context, userID uint, update domain.ProfileUpdate) (*domain.User, error) {
					if update.Name == nil || *update.Name != "New Name" {
						t.Errorf("expected name update, got %+v", update)
					}
					if update.Bio != nil || update.Phone != nil || update.AccountType != nil {
						t.Errorf("expected untouched fields to stay nil, got %+v", update)
					}
					user := activeUser()
					user.Name = "New Name"
					return user, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "account type change",
			body: gin.H{"accountType": "private"},
			setupMocks: func(t *testing.T, f *handlerFixture) {
				f.authSvc.UpdateAccountFunc = func(ctx context.Context, userID uint, update domain.ProfileUpdate) (*domain.User, error) {
					if update.AccountType == nil || *update.AccountType != domain.AccountPrivate {
						t.Errorf("expected account type update, got %+v", update)
					}
					user := activeUser()
					user.AccountType = domain.AccountPrivate
					return user, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid account type",
			body:           gin.H{"accountType": "hidden"},
			setupMocks:     func(*testing.T, *handlerFixture) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupRouter(t)
			f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
				return activeUser(), nil
			}
			tt.setupMocks(t, f)

			w, body := f.do(t, http.MethodPost, "/auth/account", tt.body, bearerHeader())

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (body: %v)", tt.expectedStatus, w.Code, body)
			}
		})
	}
}

func TestAuthHandlers_PublicProfiles(t *testing.T) {
	f := setupRouter(t)
	f.userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return activeUser(), nil
	}
	f.authSvc.PublicProfilesFunc = func(ctx context.Context, requester *domain.User) ([]*domain.User, error) {
		if requester.Email != "a@x.com" {
			t.Errorf("expected requester a@x.com, got %s", requester.Email)
		}
		other := activeUser()
		other.ID = 2
		other.UID = "uid-2"
		other.Email = "b@x.com"
		return []*domain.User{other}, nil
	}

	w, body := f.do(t, http.MethodGet, "/auth/public-profiles", nil, bearerHeader())

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (body: %v)", w.Code, body)
	}
	profiles, ok := body["publicProfiles"].([]interface{})
	if !ok {
		t.Fatalf("expected publicProfiles array, got %v", body)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	profile := profiles[0].(map[string]interface{})
	if profile["email"] != "b@x.com" {
		t.Errorf("expected email b@x.com, got %v", profile["email"])
	}
}

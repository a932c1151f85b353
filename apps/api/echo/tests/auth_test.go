package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/unirecords/apps/api/echo"
	"github.com/trezcool/unirecords/core/university"
)

func Test_authApi_token(t *testing.T) {
	srv, _ := setup(t)

	tests := []httpTest{
		{
			name:     "missing credentials",
			method:   http.MethodPost,
			path:     "/v1/auth/token",
			body:     marchallObj(t, LoginRequest{}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{
				"username": "username is required",
				"password": "password is required",
			}),
		},
		{
			name:     "wrong username",
			method:   http.MethodPost,
			path:     "/v1/auth/token",
			body:     marchallObj(t, LoginRequest{Username: "root", Password: staffPassword}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "wrong password",
			method:   http.MethodPost,
			path:     "/v1/auth/token",
			body:     marchallObj(t, LoginRequest{Username: "admin", Password: "wrong"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
	}
	runHTTPTests(t, srv, tests)

	t.Run("success", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/auth/token", marchallObj(t, LoginRequest{
			Username: " admin ",
			Password: staffPassword,
		}))
		srv.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)

		// the token grants staff access
		req, rec = newAuthRequest(http.MethodPost, "/v1/students", resp.Token, marchallObj(t, university.StudentDto{
			FirstName: "Grace",
			LastName:  "Hopper",
		}))
		srv.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func Test_server_home(t *testing.T) {
	srv, _ := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to UniRecords API!", rec.Body.String())

	_, err := uuid.Parse(rec.Header().Get(echo.HeaderXRequestID))
	assert.NoError(t, err, "X-Request-ID should be a uuid")
}

func Test_server_metrics(t *testing.T) {
	srv, _ := setup(t)

	req, rec := newRequest(http.MethodGet, "/v1/groups/13")
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req, rec = newRequest(http.MethodGet, "/v1/groups/99")
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	req, rec = newRequest(http.MethodGet, "/metrics")
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `unirecords_http_requests_total{code="200",method="GET",route="/v1/groups/:id"} 1`)
	assert.Contains(t, body, `unirecords_http_requests_total{code="404",method="GET",route="/v1/groups/:id"} 1`)
	assert.Contains(t, body, "unirecords_http_request_duration_seconds")
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("test-secret")

func newRouter(ttl time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", JWTAuth(secret, ttl), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetInt("user_id"), "name": c.GetString("user_name")})
	})
	return r
}

func get(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	r := newRouter(time.Hour)
	token, exp, err := IssueToken(secret, 7, "alice", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if time.Until(exp) < 59*time.Minute {
		t.Fatalf("exp = %s", exp)
	}

	w := get(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", w.Code, w.Body)
	}
	if w.Body.String() != `{"name":"alice","uid":7}` {
		t.Fatalf("body = %s", w.Body)
	}
	if w.Header().Get("X-New-Token") != "" {
		t.Error("fresh token renewed")
	}
}

func TestJWTAuthRejects(t *testing.T) {
	r := newRouter(time.Hour)
	other, _, _ := IssueToken([]byte("other"), 7, "alice", time.Hour)
	expired, _, _ := IssueToken(secret, 7, "alice", -time.Minute)
	noUID, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(secret)

	for name, auth := range map[string]string{
		"missing":      "",
		"not bearer":   "Token abc",
		"garbage":      "Bearer abc.def.ghi",
		"wrong secret": "Bearer " + other,
		"expired":      "Bearer " + expired,
		"no uid":       "Bearer " + noUID,
	} {
		if w := get(r, auth); w.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d", name, w.Code)
		}
	}
}

func TestJWTAuthRenewsNearExpiry(t *testing.T) {
	r := newRouter(time.Hour)
	token, _, _ := IssueToken(secret, 7, "alice", 10*time.Minute)
	w := get(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get("X-New-Token") == "" {
		t.Fatal("no renewed token")
	}
}

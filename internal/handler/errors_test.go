package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"datasync/internal/service"

	"github.com/gin-gonic/gin"
)

func TestWriteErrorStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("plan 3: %w", service.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("deadline: %w", service.ErrInvalidInput), http.StatusBadRequest},
		{fmt.Errorf("moi: %w", service.ErrMissingCredential), http.StatusBadRequest},
		{fmt.Errorf("name: %w", service.ErrConflict), http.StatusConflict},
		{service.ErrUnauthorized, http.StatusUnauthorized},
		{fmt.Errorf("upload: %w", service.ErrUpstreamUnavailable), http.StatusBadGateway},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		writeError(c, tc.err)
		if w.Code != tc.want {
			t.Errorf("writeError(%v) = %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}

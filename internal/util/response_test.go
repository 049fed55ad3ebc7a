package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHandleErrorMapsSentinels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", Validationf("weight must not be negative"), http.StatusBadRequest},
		{"not found", NotFoundf("assignment %d", 7), http.StatusNotFound},
		{"conflict", Conflictf("already signed"), http.StatusConflict},
		{"forbidden", Forbiddenf("not the author"), http.StatusForbidden},
		{"credentials", ErrInvalidCredentials, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(recorder)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleError(ctx, tc.err)

			assert.Equal(t, tc.code, recorder.Code)
		})
	}
}

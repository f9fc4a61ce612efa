package healthz_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pesapots/backend/internal/controllers/healthz"
	"github.com/stretchr/testify/assert"
)

type pinger struct {
	err error
}

func (p pinger) Ping(context.Context) error {
	return p.err
}

func TestOptions(t *testing.T) {
	t.Parallel()
	w := httptest.NewRecorder()
	c, r := gin.CreateTestContext(w)

	r.OPTIONS("/healthz", func(_ *gin.Context) {
		healthz.Options(c)
	})

	c.Request, _ = http.NewRequest(http.MethodOptions, "http://example.com/healthz", nil)
	r.ServeHTTP(w, c.Request)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "OPTIONS, GET", w.Header().Get("allow"))
}

func TestGet(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"Healthy", nil, http.StatusNoContent},
		{"Store unavailable", errors.New("database is locked"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			_, r := gin.CreateTestContext(recorder)
			healthz.Controller{Pinger: pinger{tt.err}}.RegisterRoutes(r.Group("/healthz"))

			req, _ := http.NewRequest(http.MethodGet, "http://example.com/healthz", nil)
			r.ServeHTTP(recorder, req)

			assert.Equal(t, tt.status, recorder.Code)
		})
	}
}

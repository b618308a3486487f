package profiles

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/politiekmatcher/core/internal/modules/matching"
)

func TestWriteErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{}

	cases := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("wrapped: %w", matching.ErrInvalidInput), http.StatusBadRequest},
		{matching.ErrAggregationUndefined, http.StatusUnprocessableEntity},
		{matching.ErrInferenceUnavailable, http.StatusServiceUnavailable},
		{errProfileNotFound, http.StatusNotFound},
		{errStatementNotFound, http.StatusNotFound},
		{errResponseNotFound, http.StatusNotFound},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		h.writeError(c, tc.err)
		if w.Code != tc.code {
			t.Errorf("writeError(%v) = %d, want %d", tc.err, w.Code, tc.code)
		}
	}
}

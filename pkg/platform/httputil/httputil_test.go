package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "esbresolver/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDesc   string
	}{
		{"not found", dErrors.New(dErrors.CodeNotFound, "no policy"), http.StatusNotFound, "not_found", "no policy"},
		{"validation", dErrors.New(dErrors.CodeValidation, "missing token"), http.StatusUnprocessableEntity, "validation_error", "missing token"},
		{"unavailable", dErrors.New(dErrors.CodeUnavailable, "store down"), http.StatusServiceUnavailable, "unavailable", "store down"},
		{"configuration", dErrors.New(dErrors.CodeConfiguration, "no rule store"), http.StatusInternalServerError, "configuration_error", "no rule store"},
		{"wrapped keeps code", dErrors.Wrap(dErrors.New(dErrors.CodeTimeout, "slow"), dErrors.CodeInternal, "outer"), http.StatusGatewayTimeout, "timeout", "outer"},
		{"domain error behind fmt wrap", fmt.Errorf("refresh: %w", dErrors.New(dErrors.CodeBadRequest, "discovery disabled")), http.StatusBadRequest, "bad_request", "discovery disabled"},
		{"plain error hides detail", errors.New("db password leaked"), http.StatusInternalServerError, "internal_error", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body["error"])
			assert.Equal(t, tc.wantDesc, body["error_description"])
		})
	}
}

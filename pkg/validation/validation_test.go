package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "esbresolver/pkg/domain-errors"
)

type sample struct {
	PolicyName string `validate:"required,notblank"`
	Version    string `validate:"policyversion"`
	Direction  string `validate:"omitempty,oneof=in out both"`
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Validate(sample{PolicyName: "Routing", Version: "2.3"}))
		require.NoError(t, Validate(sample{PolicyName: "Routing", Version: "2"}))
		require.NoError(t, Validate(sample{PolicyName: "Routing"}))
	})

	t.Run("missing policy name", func(t *testing.T) {
		err := Validate(sample{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		assert.Equal(t, "policy_name is required", err.Error())
	})

	t.Run("blank policy name", func(t *testing.T) {
		err := Validate(sample{PolicyName: "   "})
		require.Error(t, err)
		assert.Equal(t, "policy_name must not be blank", err.Error())
	})

	t.Run("malformed version", func(t *testing.T) {
		err := Validate(sample{PolicyName: "Routing", Version: "v2.x"})
		require.Error(t, err)
		assert.Equal(t, "version must be in major.minor form", err.Error())
	})

	t.Run("oneof", func(t *testing.T) {
		err := Validate(sample{PolicyName: "Routing", Direction: "sideways"})
		require.Error(t, err)
		assert.Equal(t, "direction must be one of [in out both]", err.Error())
	})
}

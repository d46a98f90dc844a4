package string

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("   "))
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b ,"))
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "policy_name", ToSnakeCase("PolicyName"))
	assert.Equal(t, "inquire_url", ToSnakeCase("InquireURL"))
	assert.Equal(t, "version", ToSnakeCase("Version"))
}

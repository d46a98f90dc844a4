package client

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Category
	}{
		{"typed", NewError(CategoryInvalidKey, "http://dir", "unknown key", nil), CategoryInvalidKey},
		{"wrapped typed", fmt.Errorf("find: %w", NewError(CategoryRemoteFault, "http://dir", "fault", nil)), CategoryRemoteFault},
		{"deadline", context.DeadlineExceeded, CategoryNullConnection},
		{"canceled", fmt.Errorf("dial: %w", context.Canceled), CategoryNullConnection},
		{"plain", errors.New("boom"), CategoryUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewError(CategoryNullConnection, "http://dir/inquire", "post failed", inner)

	assert.Equal(t, "directory http://dir/inquire [null_connection]: post failed: connection refused", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "directory http://dir/inquire [invalid_site]: no url",
		NewError(CategoryInvalidSite, "http://dir/inquire", "no url", nil).Error())
}

func TestDescribe(t *testing.T) {
	for _, c := range []Category{
		CategoryNullConnection, CategoryUnknownMessageType, CategoryInvalidSite,
		CategoryInvalidKey, CategoryRemoteFault, CategoryUnknown,
	} {
		assert.NotEmpty(t, c.Describe())
	}
	assert.Equal(t, CategoryUnknown.Describe(), Category("other").Describe())
}

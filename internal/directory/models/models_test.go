package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "esbresolver/pkg/domain-errors"
)

func TestIdentifier(t *testing.T) {
	t.Run("key and name constructors", func(t *testing.T) {
		key, err := NewKey("uddi:acme:orders")
		require.NoError(t, err)
		assert.True(t, key.IsKey)
		assert.Equal(t, "key:uddi:acme:orders", key.String())

		name, err := NewName("Orders")
		require.NoError(t, err)
		assert.False(t, name.IsKey)
	})

	t.Run("rejects empty value", func(t *testing.T) {
		for _, v := range []string{"", "   "} {
			_, err := NewName(v)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		assert.Error(t, Identifier{}.Validate())
	})
}

func TestSiteLocationInquireURL(t *testing.T) {
	cases := map[string]bool{
		"http://dir.example/uddi/inquire.asmx": true,
		"https://dir.example:8443/inquire":     true,
		"":                                     false,
		"uddi/inquire.asmx":                    false,
		"http://[::1":                          false,
		"mailto:ops@example.com":               false,
	}
	for raw, want := range cases {
		assert.Equal(t, want, SiteLocation{InquireURL: raw}.HasAbsoluteInquireURL(), raw)
	}
}

func TestUseType(t *testing.T) {
	assert.Equal(t, "endPoint", UseTypeEndPoint.String())
	assert.True(t, UseTypeEndPoint.Matches("ENDPOINT"))
	assert.True(t, UseTypeWsdlDeployment.Matches(" wsdldeployment "))
	assert.False(t, UseTypeEndPoint.Matches("hostingRedirector"))

	u, ok := ParseUseType("HostingRedirector")
	require.True(t, ok)
	assert.Equal(t, UseTypeHostingRedirector, u)

	_, ok = ParseUseType("carrier-pigeon")
	assert.False(t, ok)
}

func TestAuthMode(t *testing.T) {
	assert.Equal(t, AuthWindows, ParseAuthMode("windowsauthentication"))
	assert.Equal(t, AuthUnspecified, ParseAuthMode("kerberos"))
}

func TestBusinessEntityServiceLookup(t *testing.T) {
	entity := BusinessEntity{
		Key: "biz-1",
		Services: []BusinessService{
			{Key: "svc-1", Name: "Orders"},
			{Key: "Orders", Name: "Legacy"},
		},
	}

	svc, ok := entity.ServiceByName("Orders")
	require.True(t, ok)
	assert.Equal(t, "svc-1", svc.Key)

	svc, ok = entity.ServiceByKey("Orders")
	require.True(t, ok)
	assert.Equal(t, "Legacy", svc.Name)

	_, ok = entity.ServiceByName("orders")
	assert.False(t, ok)
}

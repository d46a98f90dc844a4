package tracking

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedInterceptor() *Interceptor {
	i := New()
	i.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return i
}

func TestRecordsEventsInOrder(t *testing.T) {
	i := fixedInterceptor()
	i.RuleEvaluated("Routing", "resolve", true)
	i.RuleFired("Routing", "resolve")
	i.FactAssigned("Routing", "resolve", "Interchange.BindingAccessPoint", "http://host/run")

	events := i.Events()
	require.Len(t, events, 3)
	assert.Equal(t, []string{KindEvaluated, KindFired, KindAssigned}, []string{events[0].Kind, events[1].Kind, events[2].Kind})
	assert.True(t, events[0].Matched)

	var buf bytes.Buffer
	_, err := i.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		"2026-03-01T09:00:00Z RULE EVALUATED  Routing/resolve matched=true",
		"2026-03-01T09:00:00Z RULE FIRED      Routing/resolve",
		"2026-03-01T09:00:00Z FACT ASSIGNED   Routing/resolve Interchange.BindingAccessPoint = http://host/run",
		"",
	}, "\n"), buf.String())
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	i := fixedInterceptor()
	i.RuleFired("Routing", "r")

	first, err := i.WriteFile(dir, "Orders/Routing")
	require.NoError(t, err)
	second, err := i.WriteFile(dir, "Orders/Routing")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, dir, filepath.Dir(first))
	assert.True(t, strings.HasPrefix(filepath.Base(first), "Orders_Routing_"))
	assert.True(t, strings.HasSuffix(first, ".trace"))

	content, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(content), "RULE FIRED")

	_, err = i.WriteFile(filepath.Join(dir, "missing"), "Routing")
	assert.Error(t, err)
}

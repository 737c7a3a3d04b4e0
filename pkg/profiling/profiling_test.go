package profiling

import (
	"testing"

	"github.com/artium/indicacoes-api/config"
	"github.com/grafana/pyroscope-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileTypes_Default(t *testing.T) {
	got, err := parseProfileTypes("  ")
	require.NoError(t, err)
	assert.Equal(t, defaultProfileTypes, got)
}

func TestParseProfileTypes_DeduplicatesAndKeepsOrder(t *testing.T) {
	got, err := parseProfileTypes("goroutines, CPU,block,cpu")
	require.NoError(t, err)

	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileGoroutines,
		pyroscope.ProfileCPU,
		pyroscope.ProfileBlockCount,
		pyroscope.ProfileBlockDuration,
	}, got)
}

func TestParseProfileTypes_Invalid(t *testing.T) {
	_, err := parseProfileTypes("cpu,heap")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"heap"`)
}

func TestBuildApplicationName(t *testing.T) {
	got := buildApplicationName("", Target{
		ServiceName: "artium-indicacoes",
		Namespace:   "artium",
		Version:     "1.0.0",
		Environment: "production",
	})
	assert.Equal(t, "artium-indicacoes{service_name=artium-indicacoes,namespace=artium,environment=production,service_version=1.0.0}", got)

	got = buildApplicationName("site", Target{ServiceName: "s", Namespace: "n", Version: "v", Environment: "e", InstanceID: "pod-1"})
	assert.Equal(t, "site{service_name=s,namespace=n,environment=e,service_version=v,instance=pod-1}", got)
}

func TestInitProfiler_Disabled(t *testing.T) {
	stop, err := InitProfiler(config.ProfilingConfig{Enabled: false}, Target{})
	require.NoError(t, err)
	require.NotNil(t, stop)
	stop()
}

func TestInitProfiler_EnabledWithoutEndpoint(t *testing.T) {
	_, err := InitProfiler(config.ProfilingConfig{Enabled: true, Endpoint: " "}, Target{})
	assert.Error(t, err)
}

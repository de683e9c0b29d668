package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ValidStringFields(t *testing.T) {
	// numeric fields as strings, the way older fleet members report
	payload := []byte(`{
		"Application": "Cache1",
		"Version": "1.001",
		"Uptime": "123.45",
		"Request_Count": "100",
		"Error_Count": "10",
		"Success_Count": "90"
	}`)

	rec, err := Parse(payload)
	require.NoError(t, err)

	assert.Equal(t, "Cache1", rec.Application)
	assert.Equal(t, "1.001", rec.Version)
	assert.Equal(t, 123.45, rec.Uptime)
	assert.Equal(t, uint64(100), rec.RequestCount)
	assert.Equal(t, uint64(10), rec.ErrorCount)
	assert.Equal(t, uint64(90), rec.SuccessCount)
}

func TestParse_ValidNumberFields(t *testing.T) {
	payload := []byte(`{
		"Application": "App1",
		"Version": "2.0",
		"Uptime": 3600.5,
		"Request_Count": 42,
		"Error_Count": 0,
		"Success_Count": 42
	}`)

	rec, err := Parse(payload)
	require.NoError(t, err)

	assert.Equal(t, "App1", rec.Application)
	assert.Equal(t, 3600.5, rec.Uptime)
	assert.Equal(t, uint64(42), rec.RequestCount)
	assert.Equal(t, uint64(0), rec.ErrorCount)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "missing application",
			payload: `{"Version": "1.0", "Uptime": 1, "Request_Count": 1, "Error_Count": 0, "Success_Count": 1}`,
		},
		{
			name:    "missing success count",
			payload: `{"Application": "A", "Version": "1.0", "Uptime": 1, "Request_Count": 1, "Error_Count": 0}`,
		},
		{
			name:    "non-numeric count",
			payload: `{"Application": "A", "Version": "1.0", "Uptime": 1, "Request_Count": "lots", "Error_Count": 0, "Success_Count": 1}`,
		},
		{
			name:    "negative count",
			payload: `{"Application": "A", "Version": "1.0", "Uptime": 1, "Request_Count": -5, "Error_Count": 0, "Success_Count": 1}`,
		},
		{
			name:    "fractional count",
			payload: `{"Application": "A", "Version": "1.0", "Uptime": 1, "Request_Count": 1.5, "Error_Count": 0, "Success_Count": 1}`,
		},
		{
			name:    "negative uptime",
			payload: `{"Application": "A", "Version": "1.0", "Uptime": -1, "Request_Count": 1, "Error_Count": 0, "Success_Count": 1}`,
		},
		{
			name:    "not json",
			payload: `not even json`,
		},
		{
			name:    "json array",
			payload: `[1, 2, 3]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}

func TestParse_EmptyStringsAccepted(t *testing.T) {
	// present-but-empty identity fields parse; grouping is exact-literal
	payload := []byte(`{"Application": "", "Version": "", "Uptime": 0, "Request_Count": 0, "Error_Count": 0, "Success_Count": 0}`)

	rec, err := Parse(payload)
	require.NoError(t, err)
	assert.Equal(t, "", rec.Application)
	assert.Equal(t, "", rec.Version)
}

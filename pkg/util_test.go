package pkg

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUserIP(t *testing.T) {
	req, err := http.NewRequest("GET", "/", nil)
	require.NoError(t, err)

	req.RemoteAddr = "10.0.0.5:43210"
	ip, err := ReadUserIP(req)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.5", ip)

	req.Header.Set("X-Real-Ip", "1.2.3.4")
	ip, err = ReadUserIP(req)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3.4", ip)

	req.Header.Set("X-Real-Ip", "127.0.0.1")
	ip, err = ReadUserIP(req)
	require.NoError(t, err)
	assert.Equal(t, "localhost", ip)
}

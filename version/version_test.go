// version_test.go
package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserAgent(t *testing.T) {
	assert.Equal(t, GetAppName()+"/"+GetVersion(), UserAgent())
	assert.Equal(t, "go-api-contagem-client", GetAppName())
}

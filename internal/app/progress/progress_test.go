package progress

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledManager(t *testing.T) {
	m := NewManager(Config{Enabled: false})
	bar := m.CreateBytesBar(10, "upload")

	src := strings.NewReader("0123456789")
	assert.Same(t, io.Reader(src), bar.ProxyReader(src))

	assert.NotPanics(t, func() {
		bar.Complete()
		bar.Abort()
		m.Wait()
	})
}

func TestEnabledManager_ProxyReader(t *testing.T) {
	var out bytes.Buffer
	m := NewManager(Config{Enabled: true, Writer: &out})
	bar := m.CreateBytesBar(10, "upload")

	data, err := io.ReadAll(bar.ProxyReader(strings.NewReader("0123456789")))
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	bar.Complete()
	m.Wait()
}

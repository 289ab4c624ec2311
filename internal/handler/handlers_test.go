package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-configur/internal/config"
	"github.com/MKhiriev/go-configur/internal/logger"
	"github.com/MKhiriev/go-configur/internal/service"
)

type noKeys struct{}

func (noKeys) Keys() []string { return nil }

func TestNewHandlers_AdminDisabled(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, noKeys{}, config.Admin{}, "dev", logger.Nop())

	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrAdminDisabled)
}

func TestNewHandlers_CreatesHTTPHandler(t *testing.T) {
	h, err := NewHandlers(&service.Services{}, noKeys{}, config.Admin{HTTPAddress: "localhost:8081"}, "dev", logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h.HTTP)
	assert.NotNil(t, h.HTTP.Init())
}

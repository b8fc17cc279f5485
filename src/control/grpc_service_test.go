package control

import (
	"context"
	"testing"
	"time"

	"fix-gateway/src/config"
	"fix-gateway/src/logger"
	"fix-gateway/src/models"
	"fix-gateway/src/sessions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func newTestService(t *testing.T) *GRPCService {
	t.Helper()
	// port 0 lets the kernel pick a free port
	cfg := &config.Config{MConfig: &models.MConfig{GRPC_Host: "127.0.0.1", GRPC_Port: 0}}
	registry := sessions.NewRegistry("REM2989", logger.NewNopLogger())
	service, err := NewGRPCService(cfg, logger.NewNopLogger(), registry)
	require.NoError(t, err)
	return service
}

// IsRunning is read while the serve goroutine and Stop flip the flag.
func TestRunningFlagAcrossStartAndStop(t *testing.T) {
	service := newTestService(t)

	require.NoError(t, service.Start())
	require.Eventually(t, service.IsRunning, time.Second, 10*time.Millisecond)

	readsDone := make(chan struct{})
	go func() {
		defer close(readsDone)
		for i := 0; i < 1000; i++ {
			service.IsRunning()
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, service.Stop(ctx))
	<-readsDone

	assert.False(t, service.IsRunning())
}

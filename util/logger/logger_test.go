package logger

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromZap_ForwardsAttrs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := FromZap(zap.New(core))

	log.Info("order placed", "order_id", int64(7))
	log.Debug("dropped")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "order placed", entry.Message)
	require.Equal(t, int64(7), entry.ContextMap()["order_id"])
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := New("loud")
	require.Error(t, err)

	log, zl, err := New("debug")
	require.NoError(t, err)
	require.NotNil(t, log)
	_ = zl.Sync()
}

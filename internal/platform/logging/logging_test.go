package logging

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestSetupLevel(t *testing.T) {
	defer func(l zerolog.Logger) { log.Logger = l }(log.Logger)

	Setup("debug")
	require.Equal(t, zerolog.DebugLevel, log.Logger.GetLevel())

	Setup("nonsense")
	require.Equal(t, zerolog.InfoLevel, log.Logger.GetLevel())
}

func TestSignalContextCancel(t *testing.T) {
	ctx, cancel := SignalContext(context.Background())
	cancel()
	<-ctx.Done()
	require.ErrorIs(t, ctx.Err(), context.Canceled)
}

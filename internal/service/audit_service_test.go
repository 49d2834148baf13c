package service

import (
	"context"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mauledji/cariss/internal/events"
	"github.com/mauledji/cariss/internal/observability"
)

func TestAuditServiceLogsHashedIdentifiers(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core), metrics).RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventLoginFailed, "alice@example.com", "10.0.0.1",
		events.LoginFailedPayload{Reason: "bad_password", FailureCount: 1})))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventLoginLocked, "alice@example.com", "10.0.0.1", nil)))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventLoginSucceeded, "alice", "10.0.0.1", nil)))

	require.Equal(t, 3, logs.Len())
	for _, entry := range logs.All() {
		fields := entry.ContextMap()
		assert.NotContains(t, fields["subject_hash"], "alice")
		assert.Len(t, fields["subject_hash"], 16)
	}
	assert.Equal(t, HashIdentifier("alice@example.com"), logs.All()[0].ContextMap()["subject_hash"])

	expected := `
# HELP login_outcomes_total Login attempts by outcome.
# TYPE login_outcomes_total counter
login_outcomes_total{outcome="failed"} 1
login_outcomes_total{outcome="locked"} 1
login_outcomes_total{outcome="succeeded"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(expected), "login_outcomes_total"))
}

func TestHashIdentifierIsStable(t *testing.T) {
	assert.Equal(t, HashIdentifier("bob"), HashIdentifier("bob"))
	assert.NotEqual(t, HashIdentifier("bob"), HashIdentifier("Bob"))
}

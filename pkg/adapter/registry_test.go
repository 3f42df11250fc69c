package adapter

import (
	"context"
	"log/slog"
	"testing"

	"github.com/leapstack-labs/fluentsql/pkg/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnector struct {
	BaseConnector
}

func (f *fakeConnector) Connect(context.Context, Config) error { return nil }

func TestRegistry_RegisterAndNew(t *testing.T) {
	Register("fake", func(logger *slog.Logger) Connector {
		return &fakeConnector{BaseConnector: BaseConnector{
			Logger:     logger,
			SQLDialect: &dialect.Dialect{Name: "fake"},
		}}
	})

	assert.True(t, IsRegistered("fake"))
	assert.True(t, IsRegistered("FAKE"), "lookup is case-insensitive")
	assert.Contains(t, List(), "fake")

	conn, err := New(Config{Type: "fake"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "fake", conn.Dialect().Name)
}

func TestRegistry_New_UnknownType(t *testing.T) {
	_, err := New(Config{Type: "oracle"}, nil)

	var unknown *UnknownConnectorError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "oracle", unknown.Type)
}

func TestRegistry_New_MissingType(t *testing.T) {
	_, err := New(Config{}, nil)
	assert.ErrorContains(t, err, "connector type not specified")
}

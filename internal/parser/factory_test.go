package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll/internal/config"
	"payroll/internal/parser"
	"payroll/internal/port"
)

// stubExtractor is a minimal RosterExtractor for testing the factory.
type stubExtractor struct {
	model string
}

func (s *stubExtractor) Extract(_ context.Context, _ port.ExtractInput) (*port.ExtractOutput, error) {
	return &port.ExtractOutput{ModelUsed: s.model}, nil
}

func registerStub(name string) {
	parser.RegisterProvider(name, func(cfg *config.ParserProviderConfig) (port.RosterExtractor, error) {
		return &stubExtractor{model: cfg.DefaultModel}, nil
	})
}

func TestFactory_RegisterAndCreate(t *testing.T) {
	registerStub("stub-a")

	ex, err := parser.NewExtractor(&config.ParserProviderConfig{Provider: "stub-a", DefaultModel: "m1"})

	require.NoError(t, err)
	out, err := ex.Extract(context.Background(), port.ExtractInput{})
	require.NoError(t, err)
	assert.Equal(t, "m1", out.ModelUsed)
}

func TestFactory_UnknownProvider(t *testing.T) {
	ex, err := parser.NewExtractor(&config.ParserProviderConfig{Provider: "nonexistent-provider-xyz"})

	assert.Nil(t, ex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser provider")
}

func TestBuild_SingleProvider(t *testing.T) {
	registerStub("stub-single")

	ex, err := parser.Build(&config.ParserConfig{Provider: "stub-single", DefaultModel: "solo"})

	require.NoError(t, err)
	assert.IsType(t, &stubExtractor{}, ex)
}

func TestBuild_Chain(t *testing.T) {
	registerStub("stub-b")
	registerStub("stub-c")

	ex, err := parser.Build(&config.ParserConfig{
		Primary:   config.ParserProviderConfig{Provider: "stub-b", DefaultModel: "first"},
		Secondary: config.ParserProviderConfig{Provider: "stub-c", DefaultModel: "second"},
	})

	require.NoError(t, err)
	require.IsType(t, &parser.FallbackExtractor{}, ex)
	out, err := ex.Extract(context.Background(), port.ExtractInput{})
	require.NoError(t, err)
	assert.Equal(t, "first", out.ModelUsed)
}

func TestBuild_UnknownSecondary(t *testing.T) {
	registerStub("stub-d")

	_, err := parser.Build(&config.ParserConfig{
		Primary:   config.ParserProviderConfig{Provider: "stub-d"},
		Secondary: config.ParserProviderConfig{Provider: "missing"},
	})

	assert.Error(t, err)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range []string{envApiHost, envApiKey, envSecretKey, envOtp, envOutputFile} {
		t.Setenv(env, "")
	}
}

func TestFromArgsAllPositional(t *testing.T) {
	clearEnv(t)
	conf, err := FromArgs([]string{"api.kraken.com", "KEY", "SECRET", "123456", "results.json"})
	require.NoError(t, err)
	assert.Equal(t, "api.kraken.com", conf.ApiHost)
	assert.Equal(t, "KEY", conf.ApiKey)
	assert.Equal(t, "SECRET", conf.SecretKey)
	assert.Equal(t, "123456", conf.Otp)
	assert.Equal(t, "results.json", conf.OutputFile)
}

func TestFromArgsOutputFileOptional(t *testing.T) {
	clearEnv(t)
	conf, err := FromArgs([]string{"api.kraken.com", "KEY", "SECRET", "123456"})
	require.NoError(t, err)
	assert.Empty(t, conf.OutputFile)
}

func TestFromArgsMissingRequired(t *testing.T) {
	clearEnv(t)
	cases := [][]string{
		{},
		{"api.kraken.com"},
		{"api.kraken.com", "KEY"},
		{"api.kraken.com", "KEY", "SECRET"},
	}
	for _, args := range cases {
		_, err := FromArgs(args)
		assert.Error(t, err, "args: %v", args)
	}
}

func TestFromArgsEnvFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv(envSecretKey, "ENVSECRET")
	t.Setenv(envOtp, "654321")
	conf, err := FromArgs([]string{"api.kraken.com", "KEY"})
	require.NoError(t, err)
	assert.Equal(t, "ENVSECRET", conf.SecretKey)
	assert.Equal(t, "654321", conf.Otp)
}

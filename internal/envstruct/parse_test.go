package envstruct_test

import (
	"testing"

	"github.com/myrjola/interrogation-room/internal/envstruct"
	"github.com/stretchr/testify/require"
)

func TestPopulate(t *testing.T) {
	type secrets struct {
		APIKey    string `env:"OPENAI_API_KEY"`
		JWTSecret string `env:"JWT_SECRET" envDefault:"insecure-dev-secret"`
		ignored   string //nolint:unused // verifies untagged unexported fields are skipped
	}

	tests := []struct {
		name      string
		lookupEnv func(string) (string, bool)
		want      secrets
		wantErr   error
	}{
		{
			name: "all set",
			lookupEnv: func(name string) (string, bool) {
				return "value-for-" + name, true
			},
			want: secrets{APIKey: "value-for-OPENAI_API_KEY", JWTSecret: "value-for-JWT_SECRET"},
		},
		{
			name: "default applied",
			lookupEnv: func(name string) (string, bool) {
				if name == "OPENAI_API_KEY" {
					return "sk-test", true
				}
				return "", false
			},
			want: secrets{APIKey: "sk-test", JWTSecret: "insecure-dev-secret"},
		},
		{
			name:      "missing required",
			lookupEnv: func(string) (string, bool) { return "", false },
			wantErr:   envstruct.ErrEnvNotSet,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got secrets
			err := envstruct.Populate(&got, tt.lookupEnv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPopulateRejectsNonStructs(t *testing.T) {
	require.ErrorIs(t, envstruct.Populate(nil, nil), envstruct.ErrInvalidValue)
	require.ErrorIs(t, envstruct.Populate(struct{}{}, nil), envstruct.ErrInvalidValue)

	var number int
	require.ErrorIs(t, envstruct.Populate(&number, nil), envstruct.ErrInvalidValue)
}

package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignup(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		password   string
		wantFields []string
	}{
		{"valid", "alice", "secret1", nil},
		{"short username", "al", "secret1", []string{"username"}},
		{"short password", "alice", "12345", []string{"password"}},
		{"both missing", "", "", []string{"username", "password"}},
		{"both short", "al", "123", []string{"username", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Signup(tt.username, tt.password)
			require.Len(t, errs, len(tt.wantFields))
			for i, f := range tt.wantFields {
				require.Equal(t, f, errs[i].Field)
				require.NotEmpty(t, errs[i].Message)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	require.Empty(t, Login("a", "x"))
	require.Len(t, Login("", "x"), 1)
	require.Len(t, Login("a", ""), 1)
	require.Len(t, Login("", ""), 2)
}

func TestUpdate(t *testing.T) {
	str := func(s string) *string { return &s }

	// Absent fields skip all rules
	require.Empty(t, Update(nil, nil))
	// Present fields follow the signup length rules
	require.Empty(t, Update(str("alice"), nil))
	require.Empty(t, Update(nil, str("secret1")))
	require.Len(t, Update(str("al"), nil), 1)
	require.Len(t, Update(nil, str("123")), 1)
	require.Len(t, Update(str("al"), str("123")), 2)
}

package commands

import (
	"errors"
	"strings"
	"testing"

	apierrors "github.com/diogo/copilotdesk/internal/errors"
)

func TestFormatErrorMessage_Nil(t *testing.T) {
	if got := formatErrorMessage(nil, "ctx"); got != "" {
		t.Fatalf("expected empty for nil error, got %s", got)
	}
}

func TestFormatErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "api error",
			err:  apierrors.NewAPIErrorWithBody(500, "/endpoint", "failure", "detailed body"),
			want: []string{"HTTP Status: 500", "Endpoint: /endpoint"},
		},
		{
			name: "unauthorized",
			err:  apierrors.NewAPIError(401, "/endpoint", "bad key"),
			want: []string{"config show"},
		},
		{
			name: "rate limited",
			err:  apierrors.NewAPIError(429, "/endpoint", "slow down"),
			want: []string{"usage limit"},
		},
		{
			name: "missing credential",
			err:  apierrors.ErrMissingCredential,
			want: []string{"set-key", "GEMINI_API_KEY"},
		},
		{
			name: "network",
			err:  apierrors.NewNetworkError("generate content", "/endpoint", errors.New("refused")),
			want: []string{"internet connection", "Endpoint: /endpoint"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := formatErrorMessage(tt.err, "Failed")
			if !strings.Contains(out, "Failed") {
				t.Errorf("missing context: %s", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("expected %q in %s", w, out)
				}
			}
		})
	}
}

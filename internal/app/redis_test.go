package app

import "testing"

func TestKeyspace(t *testing.T) {
	tests := []struct {
		args []any
		want string
	}{
		{[]any{"get", "cache:weather:50.450:30.523"}, "cache:weather"},
		{[]any{"set", "cache:route:1:2:3:4", "{}"}, "cache:route"},
		{[]any{"get", "idempotency:user-1:POST:/v1/trips:k"}, "idempotency"},
		{[]any{"get", "plain"}, "redis"},
		{[]any{"ping"}, "redis"},
		{[]any{"get", 42}, "redis"},
	}

	for _, tt := range tests {
		if got := keyspace(tt.args); got != tt.want {
			t.Errorf("keyspace(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

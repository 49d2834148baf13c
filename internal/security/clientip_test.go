package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientKey(t *testing.T) {
	tests := []struct {
		name         string
		forwardedFor string
		remoteAddr   string
		want         string
	}{
		{name: "direct peer", remoteAddr: "192.0.2.10", want: "192.0.2.10"},
		{name: "direct peer with port", remoteAddr: "192.0.2.10:53122", want: "192.0.2.10"},
		{name: "ipv6 peer with port", remoteAddr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "single forwarded", forwardedFor: "203.0.113.7", remoteAddr: "10.0.0.1", want: "203.0.113.7"},
		{name: "first of chain", forwardedFor: " 203.0.113.7 , 10.0.0.2, 10.0.0.3", remoteAddr: "10.0.0.1", want: "203.0.113.7"},
		{name: "empty first entry falls back", forwardedFor: " , 10.0.0.2", remoteAddr: "10.0.0.1", want: "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClientKey(tt.forwardedFor, tt.remoteAddr))
		})
	}
}

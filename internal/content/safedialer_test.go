package content

import (
	"net/netip"
	"testing"
)

func TestIsPublic(t *testing.T) {
	tests := []struct {
		ip     string
		public bool
	}{
		{ip: "127.0.0.1", public: false},
		{ip: "::1", public: false},
		{ip: "10.1.2.3", public: false},
		{ip: "172.20.0.1", public: false},
		{ip: "192.168.0.10", public: false},
		{ip: "169.254.169.254", public: false},
		{ip: "fe80::1", public: false},
		{ip: "100.64.0.1", public: false},
		{ip: "198.18.0.1", public: false},
		{ip: "203.0.113.7", public: false},
		{ip: "240.0.0.1", public: false},
		{ip: "2001:db8::1", public: false},
		{ip: "0.0.0.0", public: false},
		{ip: "::ffff:10.0.0.1", public: false},
		{ip: "8.8.8.8", public: true},
		{ip: "1.1.1.1", public: true},
		{ip: "::ffff:8.8.4.4", public: true},
		{ip: "2606:4700:4700::1111", public: true},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			addr, err := netip.ParseAddr(tt.ip)
			if err != nil {
				t.Fatalf("ParseAddr(%q): %v", tt.ip, err)
			}
			if got := isPublic(addr); got != tt.public {
				t.Errorf("isPublic(%s) = %v, want %v", tt.ip, got, tt.public)
			}
		})
	}
}

func TestRefuseNonPublic(t *testing.T) {
	tests := []struct {
		address string
		wantErr bool
	}{
		{address: "93.184.216.34:443", wantErr: false},
		{address: "127.0.0.1:8080", wantErr: true},
		{address: "[::1]:80", wantErr: true},
		{address: "not-an-address", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			err := refuseNonPublic("tcp", tt.address, nil)
			if (err != nil) != tt.wantErr {
				t.Errorf("refuseNonPublic(%q) error = %v, wantErr %v", tt.address, err, tt.wantErr)
			}
		})
	}
}

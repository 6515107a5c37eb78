// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestProxies_ClientIP(t *testing.T) {
	proxies, err := ParseProxies([]string{"10.0.0.0/8", "192.168.1.10"})
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name       string
		proxies    *Proxies
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{"no trust ignores forwarded", nil, "203.0.113.5:1000", map[string]string{"X-Forwarded-For": "198.51.100.1"}, "203.0.113.5"},
		{"no trust ignores real ip", nil, "203.0.113.5:1000", map[string]string{"X-Real-IP": "198.51.100.1"}, "203.0.113.5"},
		{"untrusted peer", proxies, "203.0.113.5:1000", map[string]string{"X-Forwarded-For": "198.51.100.1"}, "203.0.113.5"},
		{"trusted peer", proxies, "10.2.3.4:1000", map[string]string{"X-Forwarded-For": "198.51.100.1"}, "198.51.100.1"},
		{"single trusted address", proxies, "192.168.1.10:1000", map[string]string{"X-Forwarded-For": "198.51.100.1"}, "198.51.100.1"},
		{"address outside single entry", proxies, "192.168.1.11:1000", map[string]string{"X-Forwarded-For": "198.51.100.1"}, "192.168.1.11"},
		{"spoofed prefix in chain", proxies, "10.2.3.4:1000", map[string]string{"X-Forwarded-For": "1.2.3.4, 198.51.100.1"}, "198.51.100.1"},
		{"skips trusted hops", proxies, "10.2.3.4:1000", map[string]string{"X-Forwarded-For": "198.51.100.1, 10.9.9.9"}, "198.51.100.1"},
		{"all hops trusted", proxies, "10.2.3.4:1000", map[string]string{"X-Forwarded-For": "10.5.5.5, 10.9.9.9"}, "10.5.5.5"},
		{"garbage hop", proxies, "10.2.3.4:1000", map[string]string{"X-Forwarded-For": "not-an-ip, 10.9.9.9"}, "10.9.9.9"},
		{"real ip from trusted peer", proxies, "10.2.3.4:1000", map[string]string{"X-Real-IP": "198.51.100.2"}, "198.51.100.2"},
		{"bad real ip", proxies, "10.2.3.4:1000", map[string]string{"X-Real-IP": "nope"}, "10.2.3.4"},
		{"ipv6 peer", nil, "[2001:db8::1]:443", nil, "2001:db8::1"},
		{"no port", nil, "203.0.113.5", nil, "203.0.113.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/submit", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			if got := tc.proxies.ClientIP(req); got != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}

func TestProxies_Wrap(t *testing.T) {
	proxies, err := ParseProxies([]string{"127.0.0.1"})
	if err != nil {
		t.Fatal(err)
	}

	var seen string
	handler := proxies.Wrap(func(w http.ResponseWriter, r *http.Request) {
		seen = ClientIP(r)
	})

	req := httptest.NewRequest("GET", "/api/current-song", nil)
	req.RemoteAddr = "127.0.0.1:39000"
	req.Header.Set("X-Forwarded-For", "198.51.100.30")
	handler(httptest.NewRecorder(), req)

	if seen != "198.51.100.30" {
		t.Errorf("Expected forwarded client, got %s", seen)
	}

	// Without the wrapper only the peer address is used.
	if got := ClientIP(req); got != "127.0.0.1" {
		t.Errorf("Expected peer address, got %s", got)
	}
}

func TestParseProxies_Invalid(t *testing.T) {
	for _, in := range [][]string{{"proxy.local"}, {"10.0.0.0/40"}, {"10.0.0.1", "::g"}} {
		if _, err := ParseProxies(in); err == nil {
			t.Errorf("Expected error for %v", in)
		}
	}
}

package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/registry", "/registry"},
		{"/metrics", "/metrics"},
		{"/health/ready", "/health/ready"},
		{"/organizations/42", "/organizations/{id}"},
		{"/organizations/42/delete", "/organizations/{id}/delete"},
		{"/regions/7", "/regions/{id}"},
		{"/regions/7/delete", "/regions/{id}/delete"},
		// Нечисловой сегмент не нормализуется
		{"/organizations/abc", "/organizations/abc"},
		{"/unknown/42", "/unknown/42"},
	}

	for _, tc := range cases {
		if got := normalizePath(tc.path); got != tc.want {
			t.Errorf("normalizePath(%q) = %q, ожидается %q", tc.path, got, tc.want)
		}
	}
}

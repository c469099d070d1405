package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/platformkit/pkg/environment"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host     string
		expected environment.Environment
	}{
		{host: "localhost", expected: environment.Development},
		{host: "localhost:3000", expected: environment.Development},
		{host: "127.0.0.1", expected: environment.Development},
		{host: "[::1]:8080", expected: environment.Development},
		{host: "192.168.1.20", expected: environment.Development},
		{host: "10.0.0.5:8080", expected: environment.Development},
		{host: "172.16.0.1", expected: environment.Development},
		{host: "172.31.255.1", expected: environment.Development},
		{host: "myapp.local", expected: environment.Development},
		{host: "dev.example.com", expected: environment.Development},
		{host: "staging.example.com", expected: environment.Development},
		{host: "app.example.com", expected: environment.Production},
		{host: "tg.example.com", expected: environment.Production},
		{host: "APP.EXAMPLE.IO", expected: environment.Production},
		{host: "172.32.0.1", expected: environment.Unknown},
		{host: "example.internal", expected: environment.Unknown},
		{host: "", expected: environment.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, environment.Classify(tt.host))
		})
	}
}

func TestDomainModeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host     string
		expected environment.DomainMode
	}{
		{host: "app.example.com", expected: environment.DomainApp},
		{host: "tg.example.com", expected: environment.DomainMiniApp},
		{host: "TG.example.com:443", expected: environment.DomainMiniApp},
		{host: "example.com", expected: environment.DomainUnknown},
		{host: "webapp.example.com", expected: environment.DomainUnknown},
		{host: "", expected: environment.DomainUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, environment.DomainModeOf(tt.host))
		})
	}
}

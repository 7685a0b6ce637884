package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-store", "redis", "-redis", "localhost:6379"},
			allowed: []string{"-store"},
			want:    []string{"-store", "redis"},
		},
		{
			name:    "equals form",
			args:    []string{"-cooldown=30m", "-x", "1"},
			allowed: []string{"-cooldown"},
			want:    []string{"-cooldown=30m"},
		},
		{
			name:    "order preserved across flags",
			args:    []string{"-a", "127.0.0.1:50051", "-c", "conf.json", "-v"},
			allowed: []string{"-c", "-a"},
			want:    []string{"-a", "127.0.0.1:50051", "-c", "conf.json"},
		},
		{
			name:    "unknown only",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-store=redis"},
			allowed: []string{"-c", "-store"},
			want:    []string{"-c", "-store=redis"},
		},
		{
			name:    "value that looks like a flag in equals form",
			args:    []string{"-config=-odd.json"},
			allowed: []string{"-config"},
			want:    []string{"-config=-odd.json"},
		},
		{
			name:    "repeated flag",
			args:    []string{"-c", "one.json", "-c", "two.json"},
			allowed: []string{"-c"},
			want:    []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name: "nil args",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed...))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/epicquest.json"}, "/etc/epicquest.json"},
		{"long", []string{"-config", "/tmp/eq.json", "-store", "redis"}, "/tmp/eq.json"},
		{"double dash equals", []string{"--config=/tmp/x.json"}, "/tmp/x.json"},
		{"last wins", []string{"-c", "1.json", "-config", "2.json"}, "2.json"},
		{"absent", []string{"-store", "sqlite"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFileFlag(tt.args))
		})
	}
}

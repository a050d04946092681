package flagx

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-d", "-driver", "-sweep"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "admin subcommand and its flags are dropped",
			args:    []string{"create-admin", "-email", "ops@example.com", "-driver", "memory"},
			allowed: serverFlags,
			want:    []string{"-driver", "memory"},
		},
		{
			name:    "equals form",
			args:    []string{"-d=postgres://db/jobboard", "-config=cfg.json"},
			allowed: serverFlags,
			want:    []string{"-d=postgres://db/jobboard"},
		},
		{
			name:    "next dash-starting token is not a value",
			args:    []string{"-a", "-sweep", "5m"},
			allowed: serverFlags,
			want:    []string{"-a", "-sweep", "5m"},
		},
		{
			name:    "flag without value at end is kept",
			args:    []string{"-sweep"},
			allowed: serverFlags,
			want:    []string{"-sweep"},
		},
		{
			name:    "repeated flag keeps order",
			args:    []string{"-c", "one.json", "-c", "two.json"},
			allowed: []string{"-c"},
			want:    []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"stats", "-x", "1"},
			allowed: serverFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func Test_jsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", JsonConfigFlags())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", JsonConfigFlags())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-y", "2"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", JsonConfigFlags())
	})

	t.Run("equals form mixed with server flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-a", ":8080", "-config=/etc/jobboard.json", "-d", "dsn"}
		assert.Equal(t, "/etc/jobboard.json", JsonConfigFlags())
	})
}

func TestEnvFileFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-env-file", "prod.env", "-c", "cfg.json"}
	assert.Equal(t, "prod.env", EnvFileFlags())

	os.Args = []string{"testbin"}
	assert.Empty(t, EnvFileFlags())
}

func TestLookupString(t *testing.T) {
	args := []string{"-x", "1", "-name=alice", "positional"}
	assert.Equal(t, "alice", LookupString(args, "name"))
	assert.Empty(t, LookupString(args, "missing"))
}

package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-storage", "-d", "-s", "-t", "-l"}
	cliFlags := []string{"-a", "-t", "-i"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"server picks its own flags", []string{"-storage", "postgres", "-i", "3", "-d", "postgres://x"}, serverFlags,
			[]string{"-storage", "postgres", "-d", "postgres://x"}},
		{"cli drops server-only flags", []string{"-storage", "dynamodb", "-a", "http://h:1", "-i", "9"}, cliFlags,
			[]string{"-a", "http://h:1", "-i", "9"}},
		{"equals form", []string{"-storage=memory", "-u=key"}, serverFlags, []string{"-storage=memory"}},
		{"equals value may start with dash", []string{"-s=-secret-"}, serverFlags, []string{"-s=-secret-"}},
		{"dash token is not a value", []string{"-t", "-l", "debug"}, serverFlags, []string{"-t", "-l", "debug"}},
		{"trailing flag without value", []string{"-l"}, serverFlags, []string{"-l"}},
		{"positionals ignored", []string{"serve", "now", "-a", ":9090"}, serverFlags, []string{"-a", ":9090"}},
		{"repeats kept in order", []string{"-t", "1", "-t", "2"}, cliFlags, []string{"-t", "1", "-t", "2"}},
		{"nothing allowed", []string{"-x", "1", "--y=2"}, cliFlags, []string{}},
		{"nil args", nil, cliFlags, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", ConfigFileFlag())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", ConfigFileFlag())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-y", "2"}
		assert.Empty(t, ConfigFileFlag())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", ConfigFileFlag())
	})
}

func TestEnvOverride(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		t.Setenv("RECIPEBOX_TEST_KEY", "from-env")
		v := "default"
		EnvOverride("RECIPEBOX_TEST_KEY", &v)
		assert.Equal(t, "from-env", v)
	})

	t.Run("empty keeps value", func(t *testing.T) {
		t.Setenv("RECIPEBOX_TEST_KEY", "")
		v := "default"
		EnvOverride("RECIPEBOX_TEST_KEY", &v)
		assert.Equal(t, "default", v)
	})
}

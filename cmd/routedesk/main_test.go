package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

func writeTestConfig(t *testing.T) string {
	id := ulid.Make().String()
	cfgFile := filepath.Join(os.TempDir(), fmt.Sprintf("routedesk_ut_%s.yaml", id))
	content := fmt.Sprintf(`
database:
  driver: sqlite
  dsn: /tmp/routedesk_ut_%s.db
  sql_log_level: silent
auth:
  session_secret: unit-test-session-secret
  bcrypt_cost: 4
logging:
  level: error
`, id)
	assert.Nil(t, os.WriteFile(cfgFile, []byte(content), 0600))
	t.Cleanup(func() { _ = os.Remove(cfgFile) })
	return cfgFile
}

func runCmd(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd("1.2.3", "2026-01-01")
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	assert := assert.New(t)

	out, err := runCmd("version")
	assert.Nil(err)
	assert.Equal("routedesk 1.2.3 (2026-01-01)\n", out)
}

func TestBootstrapAndAuditCmd(t *testing.T) {
	assert := assert.New(t)

	cfgFile := writeTestConfig(t)

	_, err := runCmd("--config", cfgFile, "migrate")
	assert.Nil(err)

	bootstrap := []string{
		"--config", cfgFile, "bootstrap",
		"--email", "ana@jtp.mx", "--name", "Ana", "--last-name", "Lopez", "--password", "secreto",
	}
	out, err := runCmd(bootstrap...)
	assert.Nil(err)
	assert.Contains(out, "administrator ana@jtp.mx created")

	// Only once
	_, err = runCmd(bootstrap...)
	assert.NotNil(err)

	out, err = runCmd("--config", cfgFile, "audit", "list", "--type", "SYSTEM_INITIALIZED")
	assert.Nil(err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(lines, 1)
	assert.Contains(lines[0], "SYSTEM_INITIALIZED")

	out, err = runCmd("--config", cfgFile, "audit", "list", "--limit", "1")
	assert.Nil(err)
	assert.Contains(out, "SYSTEM_INITIALIZING")
}

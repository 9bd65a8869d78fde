package yamlconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"macgate/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "actions.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Basic(t *testing.T) {
	path := writeConfig(t, `
listen: ":9900"
scripts:
  unread_yesterday:
    type: shell
    path: /usr/local/libexec/macgate/mailwindow
    args: ["--policy", "yesterday"]
    timeout: 45s
  todays_meetings:
    type: jxa
    path: /opt/scripts/today_events.js
  new_mail:
    type: shell
    path: /usr/local/libexec/macgate/mailwindow
    args: ["--policy", "lookback"]
    default_hours: 3
reports:
  email_digest:
    unread: unread_yesterday
    meetings: todays_meetings
    new_mail: new_mail
`)

	s, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, ":9900", s.Listen)
	require.Equal(t, DefaultAPIKeyEnv, s.APIKeyEnv)
	require.Len(t, s.Scripts, 3)

	unread := s.Scripts["unread_yesterday"]
	require.Equal(t, "unread_yesterday", unread.Name)
	require.Equal(t, domain.Shell, unread.Type)
	require.Equal(t, 45*time.Second, unread.Timeout)

	newMail := s.Scripts["new_mail"]
	require.Equal(t, 3, newMail.DefaultHours)
	require.Equal(t, domain.DefaultTimeout, newMail.EffectiveTimeout())

	require.NotNil(t, s.Reports.EmailDigest)
	require.Equal(t, "todays_meetings", s.Reports.EmailDigest.Meetings)
}

func TestLoad_DefaultListen(t *testing.T) {
	path := writeConfig(t, `
scripts:
  noop:
    type: shell
    path: /bin/true
`)

	s, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultListen, s.Listen)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "scripts: [not: a: mapping")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_NoScripts(t *testing.T) {
	path := writeConfig(t, `listen: ":8787"`)
	_, err := Load(path)
	require.ErrorContains(t, err, "no scripts defined")
}

func TestLoad_InvalidScript(t *testing.T) {
	path := writeConfig(t, `
scripts:
  broken:
    type: shell
`)
	_, err := Load(path)
	require.ErrorContains(t, err, "path is required")
}

func TestLoad_UnsupportedType(t *testing.T) {
	path := writeConfig(t, `
scripts:
  weird:
    type: binaryplugin
    path: /bin/true
`)
	_, err := Load(path)
	require.ErrorContains(t, err, "unsupported type")
}

func TestLoad_DigestRefersToUnknownScript(t *testing.T) {
	path := writeConfig(t, `
scripts:
  only_one:
    type: shell
    path: /bin/true
reports:
  email_digest:
    unread: only_one
    meetings: missing_script
    new_mail: only_one
`)
	_, err := Load(path)
	require.ErrorContains(t, err, "unknown script")
}

func TestBuildRegistry(t *testing.T) {
	path := writeConfig(t, `
scripts:
  one:
    type: shell
    path: /bin/true
  two:
    type: applescript
    path: /opt/scripts/two.scpt
`)

	s, err := Load(path)
	require.NoError(t, err)

	reg, err := s.BuildRegistry()
	require.NoError(t, err)
	require.Equal(t, 2, reg.Count())

	act, err := reg.Lookup("two")
	require.NoError(t, err)
	require.Equal(t, domain.AppleScript, act.Type)
}

func TestResolveAPIKey_Env(t *testing.T) {
	s := &Settings{APIKeyEnv: "MACGATE_TEST_KEY"}
	t.Setenv("MACGATE_TEST_KEY", "  sekrit  ")

	key, err := s.ResolveAPIKey()
	require.NoError(t, err)
	require.Equal(t, "sekrit", key)
}

func TestResolveAPIKey_Command(t *testing.T) {
	s := &Settings{
		APIKeyEnv:     "MACGATE_TEST_KEY",
		APIKeyCommand: []string{"echo", "from-keychain"},
	}
	t.Setenv("MACGATE_TEST_KEY", "")

	key, err := s.ResolveAPIKey()
	require.NoError(t, err)
	require.Equal(t, "from-keychain", key)
}

func TestResolveAPIKey_Missing(t *testing.T) {
	s := &Settings{APIKeyEnv: "MACGATE_TEST_KEY"}
	t.Setenv("MACGATE_TEST_KEY", "")

	_, err := s.ResolveAPIKey()
	require.Error(t, err)
}

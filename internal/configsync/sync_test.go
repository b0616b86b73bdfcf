package configsync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func allowSSH() FirewallRule {
	return FirewallRule{
		Name:      "allow-ssh",
		Action:    "allow",
		Protocol:  "tcp",
		DestPorts: []int{22},
		Enabled:   true,
	}
}

func TestApplyCreatesDocument(t *testing.T) {
	dir := t.TempDir()
	syncer := NewSyncer(dir)

	result, err := syncer.Apply(allowSSH(), StatePresent)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, `Created firewall rule "allow-ssh"`, result.Message)
	require.NotNil(t, result.Rule)

	path := filepath.Join(dir, "FirewallRule-allow-ssh.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "patronus.firewall/v1", doc.APIVersion)
	assert.Equal(t, "FirewallRule", doc.Kind)
	assert.Equal(t, "allow-ssh", doc.Metadata.Name)
	assert.Equal(t, "allow", doc.Spec["action"])
	assert.Equal(t, false, doc.Spec["log"])
	assert.Equal(t, true, doc.Spec["enabled"])
	assert.Equal(t, "tcp", doc.Spec["protocol"])

	dest, ok := doc.Spec["destination"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{22}, dest["ports"])
	assert.NotContains(t, doc.Spec, "source")
}

func TestApplyIsIdempotent(t *testing.T) {
	syncer := NewSyncer(t.TempDir())

	first, err := syncer.Apply(allowSSH(), StatePresent)
	require.NoError(t, err)
	assert.True(t, first.Changed)

	second, err := syncer.Apply(allowSSH(), StatePresent)
	require.NoError(t, err)
	assert.False(t, second.Changed)
	assert.Equal(t, `Firewall rule "allow-ssh" already exists with desired configuration`, second.Message)
	require.NotNil(t, second.Rule, "rule is reported on the no-op path too")
}

func TestApplyIgnoresDescriptionDrift(t *testing.T) {
	syncer := NewSyncer(t.TempDir())

	rule := allowSSH()
	_, err := syncer.Apply(rule, StatePresent)
	require.NoError(t, err)

	// Only the description differs: name and spec decide drift.
	rule.Description = "ssh from anywhere"
	result, err := syncer.Apply(rule, StatePresent)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestApplyUpdatesOnSpecDrift(t *testing.T) {
	syncer := NewSyncer(t.TempDir())

	_, err := syncer.Apply(allowSSH(), StatePresent)
	require.NoError(t, err)

	changed := allowSSH()
	changed.DestPorts = []int{22, 2222}
	result, err := syncer.Apply(changed, StatePresent)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, `Updated firewall rule "allow-ssh"`, result.Message)
}

func TestApplyAbsent(t *testing.T) {
	dir := t.TempDir()
	syncer := NewSyncer(dir)
	path := filepath.Join(dir, "FirewallRule-allow-ssh.yaml")

	// Absent with no document is a no-op.
	result, err := syncer.Apply(allowSSH(), StateAbsent)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, `Firewall rule "allow-ssh" already absent`, result.Message)
	assert.Nil(t, result.Rule)

	_, err = syncer.Apply(allowSSH(), StatePresent)
	require.NoError(t, err)

	result, err = syncer.Apply(allowSSH(), StateAbsent)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, `Deleted firewall rule "allow-ssh"`, result.Message)
	assert.NoFileExists(t, path)

	result, err = syncer.Apply(allowSSH(), StateAbsent)
	require.NoError(t, err)
	assert.False(t, result.Changed)
}

func TestApplyCheckModeDoesNotTouchDisk(t *testing.T) {
	dir := t.TempDir()
	syncer := NewSyncer(dir)
	syncer.CheckMode = true
	path := filepath.Join(dir, "FirewallRule-allow-ssh.yaml")

	result, err := syncer.Apply(allowSSH(), StatePresent)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.NoFileExists(t, path)

	// Write for real, then verify check-mode absent leaves the file alone.
	syncer.CheckMode = false
	_, err = syncer.Apply(allowSSH(), StatePresent)
	require.NoError(t, err)

	syncer.CheckMode = true
	result, err = syncer.Apply(allowSSH(), StateAbsent)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.FileExists(t, path)
}

func TestApplyTreatsUnparsableFileAsAbsent(t *testing.T) {
	dir := t.TempDir()
	syncer := NewSyncer(dir)
	path := filepath.Join(dir, "FirewallRule-allow-ssh.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{ not yaml"), 0o644))

	result, err := syncer.Apply(allowSSH(), StatePresent)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, `Created firewall rule "allow-ssh"`, result.Message)

	// The corrupt file has been replaced with a valid document.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "allow-ssh", doc.Metadata.Name)
}

func TestApplyRejectsInvalidState(t *testing.T) {
	syncer := NewSyncer(t.TempDir())
	_, err := syncer.Apply(allowSSH(), State("latest"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid state")
}

func TestApplyRejectsInvalidRule(t *testing.T) {
	syncer := NewSyncer(t.TempDir())
	_, err := syncer.Apply(FirewallRule{Name: "x", Action: "accept"}, StatePresent)
	require.Error(t, err)
}

func TestDocumentsEqualNormalization(t *testing.T) {
	desired := allowSSH().Document()
	normalized, err := normalize(desired)
	require.NoError(t, err)

	data, err := yaml.Marshal(desired)
	require.NoError(t, err)
	var fromDisk Document
	require.NoError(t, yaml.Unmarshal(data, &fromDisk))

	assert.True(t, documentsEqual(&fromDisk, normalized))
	assert.False(t, documentsEqual(nil, normalized))
	assert.True(t, documentsEqual(nil, nil))
}

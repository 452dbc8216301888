package charm

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canonical/software-inventory-collector-operator/pkg/collector"
	"github.com/canonical/software-inventory-collector-operator/pkg/hook"
	"github.com/canonical/software-inventory-collector-operator/pkg/snap"
)

// fakeHookRunner fakes the juju hook environment, recording every tool
// invocation.
type fakeHookRunner struct {
	resourcePath string
	resourceErr  error
	configJSON   string
	calls        [][]string
}

func (f *fakeHookRunner) Run(_ context.Context, tool string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{tool}, args...))
	switch tool {
	case "resource-get":
		if f.resourceErr != nil {
			return nil, f.resourceErr
		}
		return []byte(f.resourcePath + "\n"), nil
	case "config-get":
		if f.configJSON == "" {
			return []byte("{}"), nil
		}
		return []byte(f.configJSON), nil
	case "relation-ids":
		return []byte("[]"), nil
	default:
		return nil, nil
	}
}

func (f *fakeHookRunner) callsFor(tool string) [][]string {
	var matched [][]string
	for _, call := range f.calls {
		if call[0] == tool {
			matched = append(matched, call)
		}
	}
	return matched
}

// fakeCmdRunner fakes subprocess execution for the snap client and the
// collector, with per-prefix results.
type fakeCmdRunner struct {
	failing map[string]error
	calls   []string
}

func (f *fakeCmdRunner) CombinedOutput(_ context.Context, name string, args ...string) ([]byte, error) {
	cmd := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, cmd)
	for prefix, err := range f.failing {
		if strings.HasPrefix(cmd, prefix) {
			return []byte("fake failure output"), err
		}
	}
	return []byte("ok"), nil
}

func newTestCharm(hookRunner *fakeHookRunner, cmdRunner *fakeCmdRunner) *Charm {
	c := NewWithTools(hook.NewTools(hookRunner))
	c.Snap = &snap.Client{Runner: cmdRunner}
	c.Collector = &collector.Collector{Runner: cmdRunner}
	return c
}

func writeTempSnap(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "collector.snap")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("0", size)), 0o600))
	return path
}

func TestSnapPath(t *testing.T) {
	tests := []struct {
		name         string
		resourceSize int
		resourceErr  error
		wantPath     bool
	}{
		{"resource not attached", 0, fmt.Errorf("resource not found"), false},
		{"resource is empty file", 0, nil, false},
		{"resource attached with content", 10, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hookRunner := &fakeHookRunner{resourceErr: tt.resourceErr}
			if tt.resourceErr == nil {
				hookRunner.resourcePath = writeTempSnap(t, tt.resourceSize)
			}
			c := newTestCharm(hookRunner, &fakeCmdRunner{})

			got := c.SnapPath(context.Background())
			if tt.wantPath {
				assert.Equal(t, hookRunner.resourcePath, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestSnapPathMemoized(t *testing.T) {
	hookRunner := &fakeHookRunner{resourceErr: fmt.Errorf("resource not found")}
	c := newTestCharm(hookRunner, &fakeCmdRunner{})
	ctx := context.Background()

	_ = c.SnapPath(ctx)
	_ = c.SnapPath(ctx)
	_ = c.SnapPath(ctx)

	assert.Len(t, hookRunner.callsFor("resource-get"), 1,
		"resource lookup must happen exactly once")
}

func TestHandleInstallLocalSnap(t *testing.T) {
	hookRunner := &fakeHookRunner{resourcePath: writeTempSnap(t, 10)}
	cmdRunner := &fakeCmdRunner{}
	c := newTestCharm(hookRunner, cmdRunner)

	require.NoError(t, c.HandleInstall(context.Background()))

	want := "snap install --dangerous " + hookRunner.resourcePath
	assert.Contains(t, cmdRunner.calls, want)
	for _, call := range cmdRunner.calls {
		assert.NotContains(t, call, "--channel",
			"channel install must not happen when a local snap is attached")
	}
}

func TestHandleInstallChannelFallback(t *testing.T) {
	hookRunner := &fakeHookRunner{resourceErr: fmt.Errorf("resource not found")}
	cmdRunner := &fakeCmdRunner{failing: map[string]error{
		"snap list": fmt.Errorf("exit status 1"),
	}}
	c := newTestCharm(hookRunner, cmdRunner)

	// InstalledVersion fails against the fake, which only downgrades the
	// reported application version; install must still succeed.
	require.NoError(t, c.HandleInstall(context.Background()))

	assert.Contains(t, cmdRunner.calls,
		"snap install --channel latest/stable software-inventory-collector")
}

func TestHandleInstallConfiguredChannel(t *testing.T) {
	hookRunner := &fakeHookRunner{
		resourceErr: fmt.Errorf("resource not found"),
		configJSON:  `{"snap_channel":"latest/edge"}`,
	}
	cmdRunner := &fakeCmdRunner{failing: map[string]error{
		"snap list": fmt.Errorf("exit status 1"),
	}}
	c := newTestCharm(hookRunner, cmdRunner)

	require.NoError(t, c.HandleInstall(context.Background()))

	assert.Contains(t, cmdRunner.calls,
		"snap install --channel latest/edge software-inventory-collector")
}

func TestHandleInstallReportsApplicationVersion(t *testing.T) {
	hookRunner := &fakeHookRunner{resourcePath: writeTempSnap(t, 10)}
	cmdRunner := &fakeCmdRunner{}
	c := newTestCharm(hookRunner, cmdRunner)
	// snap.InstalledVersion parses `snap list` output.
	c.Snap = &snap.Client{Runner: &versionedSnapRunner{inner: cmdRunner}}

	require.NoError(t, c.HandleInstall(context.Background()))

	versionCalls := hookRunner.callsFor("application-version-set")
	require.Len(t, versionCalls, 1)
	assert.Equal(t, "0.3.1", versionCalls[0][1])
}

type versionedSnapRunner struct {
	inner *fakeCmdRunner
}

func (v *versionedSnapRunner) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	if name == "snap" && len(args) > 0 && args[0] == "list" {
		return []byte("Name  Version  Rev  Tracking  Publisher  Notes\nsoftware-inventory-collector  0.3.1  12  latest/stable  canonical  -\n"), nil
	}
	return v.inner.CombinedOutput(ctx, name, args...)
}

func TestAssessStatus(t *testing.T) {
	tests := []struct {
		name        string
		probeErr    error
		wantStatus  string
		wantMessage string
	}{
		{
			name:        "probe succeeds",
			wantStatus:  "active",
			wantMessage: "Unit ready.",
		},
		{
			name:        "probe fails",
			probeErr:    fmt.Errorf("exit status 1"),
			wantStatus:  "blocked",
			wantMessage: "Collector is unable to run. Please see logs.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hookRunner := &fakeHookRunner{}
			cmdRunner := &fakeCmdRunner{}
			if tt.probeErr != nil {
				cmdRunner.failing = map[string]error{"software-inventory-collector": tt.probeErr}
			}
			c := newTestCharm(hookRunner, cmdRunner)

			require.NoError(t, c.AssessStatus(context.Background()))

			// The probe must be a dry run.
			require.Len(t, cmdRunner.calls, 1)
			assert.Contains(t, cmdRunner.calls[0], "--dry-run")

			statusCalls := hookRunner.callsFor("status-set")
			require.Len(t, statusCalls, 1)
			assert.Equal(t, tt.wantStatus, statusCalls[0][1])
			assert.Equal(t, tt.wantMessage, statusCalls[0][2])
		})
	}
}

func TestHandleReconfigure(t *testing.T) {
	hookRunner := &fakeHookRunner{}
	cmdRunner := &fakeCmdRunner{}
	c := newTestCharm(hookRunner, cmdRunner)
	c.Renderer = &collector.Renderer{
		Tools: hook.NewTools(hookRunner),
		Path:  filepath.Join(t.TempDir(), "collector.yaml"),
	}

	require.NoError(t, c.HandleReconfigure(context.Background()))

	// Config was rendered and a status assessment followed.
	_, err := os.Stat(c.Renderer.Path)
	require.NoError(t, err)
	assert.Len(t, hookRunner.callsFor("status-set"), 1)
}

func TestHandleCollect(t *testing.T) {
	tests := []struct {
		name       string
		runErr     error
		wantTool   string
		wantResult string
	}{
		{
			name:       "collection succeeds",
			wantTool:   "action-set",
			wantResult: "result=Collection completed.",
		},
		{
			name:       "collection fails",
			runErr:     fmt.Errorf("exit status 2"),
			wantTool:   "action-fail",
			wantResult: "Collection failed. See logs for more info.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hookRunner := &fakeHookRunner{}
			cmdRunner := &fakeCmdRunner{}
			if tt.runErr != nil {
				cmdRunner.failing = map[string]error{"software-inventory-collector": tt.runErr}
			}
			c := newTestCharm(hookRunner, cmdRunner)

			require.NoError(t, c.HandleCollect(context.Background()))

			// A collection is a full run, never a dry run.
			require.Len(t, cmdRunner.calls, 1)
			assert.NotContains(t, cmdRunner.calls[0], "--dry-run")

			calls := hookRunner.callsFor(tt.wantTool)
			require.Len(t, calls, 1)
			assert.Contains(t, calls[0][1:], tt.wantResult)

			// The action outcome never touches unit status.
			assert.Empty(t, hookRunner.callsFor("status-set"))
		})
	}
}

func TestDispatch(t *testing.T) {
	hookRunner := &fakeHookRunner{}
	c := newTestCharm(hookRunner, &fakeCmdRunner{})

	require.NoError(t, c.Dispatch(context.Background(), KindStart))
	assert.Len(t, hookRunner.callsFor("status-set"), 1)
}

func TestDispatchUnknownEvent(t *testing.T) {
	c := newTestCharm(&fakeHookRunner{}, &fakeCmdRunner{})

	err := c.Dispatch(context.Background(), Kind("leader-elected"))
	require.Error(t, err)
}

func TestDispatchTableCoversAllEvents(t *testing.T) {
	c := New()

	for _, kind := range []Kind{
		KindInstall,
		KindUpgradeCharm,
		KindStart,
		KindConfigChanged,
		KindRelationJoined,
		KindRelationChanged,
		KindRelationDeparted,
		KindCollectAction,
	} {
		assert.Contains(t, c.handlers, kind)
	}
}

package patronus_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	patronus "github.com/patronus-sdwan/patronus-go"
	"github.com/patronus-sdwan/patronus-go/internal/fakeapi"
)

func newFakeControlPlane(t *testing.T) (*patronus.Client, *fakeapi.Server) {
	t.Helper()
	api := fakeapi.NewServer("test-key", zerolog.Nop())
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	return patronus.NewClient(srv.URL, "test-key"), api
}

func TestSiteLifecycle(t *testing.T) {
	client, _ := newFakeControlPlane(t)
	ctx := context.Background()

	site, err := client.Sites.Create(ctx, patronus.SiteCreate{
		Name:          "hq",
		Location:      "Oslo",
		WANInterfaces: []string{"eth0", "eth1"},
		Metadata:      map[string]any{"tier": "gold"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, site.ID)
	assert.Equal(t, []string{"eth0", "eth1"}, site.WANInterfaces)
	assert.False(t, site.CreatedAt.IsZero())

	got, err := client.Sites.Get(ctx, site.ID)
	require.NoError(t, err)
	assert.Equal(t, site.ID, got.ID)

	newLoc := "Bergen"
	updated, err := client.Sites.Update(ctx, site.ID, patronus.SiteUpdate{Location: &newLoc})
	require.NoError(t, err)
	assert.Equal(t, "Bergen", updated.Location)
	assert.Equal(t, "hq", updated.Name)

	sites, err := client.Sites.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sites, 1)

	require.NoError(t, client.Sites.Delete(ctx, site.ID))

	_, err = client.Sites.Get(ctx, site.ID)
	require.ErrorIs(t, err, patronus.ErrNotFound)

	err = client.Sites.Delete(ctx, site.ID)
	require.ErrorIs(t, err, patronus.ErrNotFound)
}

func TestTunnelLifecycle(t *testing.T) {
	client, api := newFakeControlPlane(t)
	ctx := context.Background()

	hq, err := client.Sites.Create(ctx, patronus.SiteCreate{
		Name: "hq", Location: "Oslo", WANInterfaces: []string{"eth0"},
	})
	require.NoError(t, err)
	branch, err := client.Sites.Create(ctx, patronus.SiteCreate{
		Name: "branch-1", Location: "Bergen", WANInterfaces: []string{"eth0"},
	})
	require.NoError(t, err)

	tunnel, err := client.Tunnels.Create(ctx, patronus.TunnelCreate{
		Name:         "hq-to-branch-1",
		LocalSiteID:  hq.ID,
		RemoteSiteID: branch.ID,
		Protocol:     patronus.ProtocolWireGuard,
	})
	require.NoError(t, err)
	assert.Equal(t, patronus.TunnelStateDown, tunnel.Status.State)

	// Unknown site references surface as not-found from the API.
	_, err = client.Tunnels.Create(ctx, patronus.TunnelCreate{
		Name:         "hq-to-nowhere",
		LocalSiteID:  hq.ID,
		RemoteSiteID: "missing",
		Protocol:     patronus.ProtocolGRE,
	})
	require.ErrorIs(t, err, patronus.ErrNotFound)

	latency := 12.5
	seen := time.Now().UTC().Truncate(time.Second)
	api.SetTunnelStatus(tunnel.ID, patronus.TunnelStatus{
		State:     patronus.TunnelStateUp,
		LatencyMS: &latency,
		LastSeen:  &seen,
	})

	status, err := client.Tunnels.GetStatus(ctx, tunnel.ID)
	require.NoError(t, err)
	assert.Equal(t, patronus.TunnelStateUp, status.State)
	require.NotNil(t, status.LatencyMS)
	assert.InDelta(t, 12.5, *status.LatencyMS, 0.001)
	assert.Nil(t, status.PacketLoss)

	require.NoError(t, client.Tunnels.Delete(ctx, tunnel.ID))
}

func TestPolicyLifecycle(t *testing.T) {
	client, _ := newFakeControlPlane(t)
	ctx := context.Background()

	policy, err := client.Policies.Create(ctx, patronus.PolicyCreate{
		Name:        "prefer-mpls",
		Description: "steer voice over mpls",
		Rules: []patronus.PolicyRule{
			{Protocol: "udp", Action: patronus.ActionRoute, Priority: 10},
			{Action: patronus.ActionAllow, Priority: 100},
		},
	})
	require.NoError(t, err)
	assert.True(t, policy.Enabled, "enabled defaults to true")
	require.Len(t, policy.Rules, 2)

	disabled := false
	updated, err := client.Policies.Update(ctx, policy.ID, patronus.PolicyUpdate{Enabled: &disabled})
	require.NoError(t, err)
	assert.False(t, updated.Enabled)
	assert.Len(t, updated.Rules, 2)

	empty, err := client.Policies.Create(ctx, patronus.PolicyCreate{Name: "empty"})
	require.NoError(t, err)
	assert.NotNil(t, empty.Rules)
	assert.Empty(t, empty.Rules)

	require.NoError(t, client.Policies.Delete(ctx, policy.ID))
}

func TestOrganizationLifecycle(t *testing.T) {
	client, _ := newFakeControlPlane(t)
	ctx := context.Background()

	org, err := client.Organizations.Create(ctx, patronus.OrganizationCreate{
		Name:        "acme",
		DisplayName: "Acme Corp",
	})
	require.NoError(t, err)
	assert.Equal(t, patronus.TierFree, org.SubscriptionTier)

	tier := patronus.TierEnterprise
	upgraded, err := client.Organizations.Update(ctx, org.ID, patronus.OrganizationUpdate{SubscriptionTier: &tier})
	require.NoError(t, err)
	assert.Equal(t, patronus.TierEnterprise, upgraded.SubscriptionTier)

	orgs, err := client.Organizations.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orgs, 1)

	require.NoError(t, client.Organizations.Delete(ctx, org.ID))
}

func TestMLModelDeploy(t *testing.T) {
	client, api := newFakeControlPlane(t)
	ctx := context.Background()

	model, err := client.MLModels.Create(ctx, patronus.MLModelCreate{
		Name:      "failover-predictor",
		Version:   "1.2.0",
		ModelType: "predictive_failover",
	})
	require.NoError(t, err)
	assert.Equal(t, patronus.ModelStatusTraining, model.Status)
	assert.Nil(t, model.DeployedAt)

	api.MarkValidated(model.ID, 0.93)

	deployed, err := client.MLModels.Deploy(ctx, model.ID)
	require.NoError(t, err)
	assert.Equal(t, patronus.ModelStatusDeployed, deployed.Status)
	require.NotNil(t, deployed.DeployedAt)
	require.NotNil(t, deployed.Accuracy)
	assert.InDelta(t, 0.93, *deployed.Accuracy, 0.001)
}

func TestMetricsQueryWindow(t *testing.T) {
	client, api := newFakeControlPlane(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	api.SeedMetrics("tunnel_latency", []patronus.MetricData{
		{Timestamp: base, Value: 10, Labels: map[string]string{"tunnel": "t1"}},
		{Timestamp: base.Add(time.Hour), Value: 12},
		{Timestamp: base.Add(48 * time.Hour), Value: 99},
	})

	metrics, err := client.Metrics.Query(ctx, patronus.MetricsQuery{
		MetricName: "tunnel_latency",
		StartTime:  base,
		EndTime:    base.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "tunnel_latency", metrics.MetricName)
	require.Len(t, metrics.Data, 2, "samples outside the window are excluded")
	assert.Equal(t, float64(10), metrics.Data[0].Value)
	assert.Equal(t, "t1", metrics.Data[0].Labels["tunnel"])
}

func TestAuthenticationRejected(t *testing.T) {
	api := fakeapi.NewServer("right-key", zerolog.Nop())
	srv := httptest.NewServer(api.Handler())
	defer srv.Close()

	client := patronus.NewClient(srv.URL, "wrong-key")
	_, err := client.Sites.List(context.Background())
	require.ErrorIs(t, err, patronus.ErrAuthentication)

	var apiErr *patronus.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Unauthorized", apiErr.Message)
}

func TestRateLimitSurfaced(t *testing.T) {
	client, api := newFakeControlPlane(t)

	api.InjectError(http.StatusTooManyRequests, "too many requests")

	_, err := client.Sites.List(context.Background())
	require.ErrorIs(t, err, patronus.ErrRateLimit)

	var apiErr *patronus.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "too many requests", apiErr.Message)
}

func TestServerErrorWithEmptyBody(t *testing.T) {
	client, api := newFakeControlPlane(t)

	api.InjectError(http.StatusInternalServerError, "")

	_, err := client.Sites.List(context.Background())
	require.Error(t, err)

	var apiErr *patronus.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, patronus.ErrorKindAPI, apiErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, "Unknown error", apiErr.Message)
	assert.False(t, errors.Is(err, patronus.ErrRateLimit))
}

// TestConcurrentProvisioning fans out independent creates with errgroup and
// joins before the dependent tunnel creates, the intended usage pattern for
// bulk provisioning.
func TestConcurrentProvisioning(t *testing.T) {
	client, api := newFakeControlPlane(t)
	ctx := context.Background()

	hq, err := client.Sites.Create(ctx, patronus.SiteCreate{
		Name: "hq", Location: "Oslo", WANInterfaces: []string{"eth0"},
	})
	require.NoError(t, err)

	const branches = 3
	sites := make([]*patronus.Site, branches)
	g, gctx := errgroup.WithContext(ctx)
	for i := range sites {
		i := i
		g.Go(func() error {
			site, err := client.Sites.Create(gctx, patronus.SiteCreate{
				Name:          fmt.Sprintf("branch-%d", i+1),
				Location:      fmt.Sprintf("Location %d", i+1),
				WANInterfaces: []string{"eth0"},
			})
			sites[i] = site
			return err
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, branches+1, api.SiteCount())

	ids := map[string]bool{}
	for _, site := range sites {
		require.NotNil(t, site)
		ids[site.ID] = true
	}
	assert.Len(t, ids, branches, "every concurrent create yields a distinct site")

	g, gctx = errgroup.WithContext(ctx)
	for i, site := range sites {
		i, site := i, site
		g.Go(func() error {
			_, err := client.Tunnels.Create(gctx, patronus.TunnelCreate{
				Name:         fmt.Sprintf("hq-to-branch-%d", i+1),
				LocalSiteID:  hq.ID,
				RemoteSiteID: site.ID,
				Protocol:     patronus.ProtocolWireGuard,
			})
			return err
		})
	}
	require.NoError(t, g.Wait())

	tunnels, err := client.Tunnels.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tunnels, branches)
}

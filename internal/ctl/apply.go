// Package ctl implements the patronusctl commands.
package ctl

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	patronus "github.com/patronus-sdwan/patronus-go"
)

// Topology declares the sites and tunnels that should exist. Tunnels
// reference sites by name, resolved to IDs at apply time.
type Topology struct {
	Sites   []SiteDef   `yaml:"sites"`
	Tunnels []TunnelDef `yaml:"tunnels"`
}

type SiteDef struct {
	Name          string   `yaml:"name"`
	Location      string   `yaml:"location"`
	WANInterfaces []string `yaml:"wan_interfaces"`
}

type TunnelDef struct {
	Name       string `yaml:"name"`
	LocalSite  string `yaml:"local_site"`
	RemoteSite string `yaml:"remote_site"`
	Protocol   string `yaml:"protocol"`
}

// ApplySummary reports what an apply created. Reapplying an unchanged
// topology yields a zero summary.
type ApplySummary struct {
	SitesCreated   int
	TunnelsCreated int
}

// ApplyTopology converges the control plane to the topology in the YAML
// file at path. Missing sites are created concurrently, then missing
// tunnels; objects that already exist by name are left alone.
func ApplyTopology(ctx context.Context, logger zerolog.Logger, client *patronus.Client, path string) (*ApplySummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read topology: %w", err)
	}
	var topo Topology
	if err := yaml.Unmarshal(data, &topo); err != nil {
		return nil, fmt.Errorf("parse topology: %w", err)
	}

	summary := &ApplySummary{}

	sites, err := client.Sites.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	siteIDs := make(map[string]string, len(sites))
	for _, s := range sites {
		siteIDs[s.Name] = s.ID
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, def := range topo.Sites {
		def := def
		if _, ok := siteIDs[def.Name]; ok {
			logger.Debug().Str("site", def.Name).Msg("site already exists")
			continue
		}
		g.Go(func() error {
			site, err := client.Sites.Create(gctx, patronus.SiteCreate{
				Name:          def.Name,
				Location:      def.Location,
				WANInterfaces: def.WANInterfaces,
			})
			if err != nil {
				return fmt.Errorf("create site %q: %w", def.Name, err)
			}
			mu.Lock()
			siteIDs[def.Name] = site.ID
			summary.SitesCreated++
			mu.Unlock()
			logger.Info().Str("site", site.Name).Str("id", site.ID).Msg("site created")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tunnels, err := client.Tunnels.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tunnels: %w", err)
	}
	existing := make(map[string]bool, len(tunnels))
	for _, t := range tunnels {
		existing[t.Name] = true
	}

	g, gctx = errgroup.WithContext(ctx)
	for _, def := range topo.Tunnels {
		def := def
		if existing[def.Name] {
			logger.Debug().Str("tunnel", def.Name).Msg("tunnel already exists")
			continue
		}
		localID, ok := siteIDs[def.LocalSite]
		if !ok {
			return nil, fmt.Errorf("tunnel %q: unknown local site %q", def.Name, def.LocalSite)
		}
		remoteID, ok := siteIDs[def.RemoteSite]
		if !ok {
			return nil, fmt.Errorf("tunnel %q: unknown remote site %q", def.Name, def.RemoteSite)
		}
		g.Go(func() error {
			tunnel, err := client.Tunnels.Create(gctx, patronus.TunnelCreate{
				Name:         def.Name,
				LocalSiteID:  localID,
				RemoteSiteID: remoteID,
				Protocol:     def.Protocol,
			})
			if err != nil {
				return fmt.Errorf("create tunnel %q: %w", def.Name, err)
			}
			mu.Lock()
			summary.TunnelsCreated++
			mu.Unlock()
			logger.Info().Str("tunnel", tunnel.Name).Str("id", tunnel.ID).Msg("tunnel created")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summary, nil
}

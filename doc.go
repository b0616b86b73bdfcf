// Package patronus is a typed Go client for the Patronus SD-WAN
// control-plane API.
//
// A Client exposes one service per resource group (sites, tunnels,
// policies, organizations, metrics, ML models). Every call is a single
// blocking HTTP request scoped to the passed context; the client holds no
// state between calls, never retries, and never caches, so callers may
// fan out independent calls with errgroup and decide their own retry
// policy from the typed errors:
//
//	client := patronus.NewClient("https://api.patronus.io", apiKey)
//
//	var g errgroup.Group
//	sites := make([]*patronus.Site, 3)
//	for i := range sites {
//		g.Go(func() error {
//			site, err := client.Sites.Create(ctx, patronus.SiteCreate{
//				Name:          fmt.Sprintf("branch-%d", i+1),
//				Location:      "somewhere",
//				WANInterfaces: []string{"eth0"},
//			})
//			sites[i] = site
//			return err
//		})
//	}
//	if err := g.Wait(); err != nil {
//		if errors.Is(err, patronus.ErrRateLimit) {
//			// back off and retry at the caller's discretion
//		}
//	}
//
// Non-2xx responses are classified into *Error values with a Kind tag
// (authentication, not-found, rate-limit, or generic API failure) carrying
// the original status code and raw body. Connection and timeout failures
// below the HTTP layer are returned as plain wrapped errors.
package patronus

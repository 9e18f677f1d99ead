// Package registry exposes the routing facade as an MCP server.
//
// Server publishes the facade's operations as MCP tools (route,
// route_hybrid, router_stats, cache_clear, cache_remove_expired) and
// handles the initialize, tools/list, and tools/call protocol methods.
//
// Features:
//   - MCP protocol handlers (initialize, tools/list, tools/call)
//   - Multiple transports (stdio, HTTP, SSE)
//   - SkillLoader: builds routing catalogs from live MCP servers
//
// Example usage:
//
//	facade, err := router.New(router.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := facade.Initialize(ctx, skills); err != nil {
//	    log.Fatal(err)
//	}
//
//	srv, err := registry.NewServer(facade, registry.Config{
//	    ServerInfo: registry.ServerInfo{
//	        Name:    "toolrouter",
//	        Version: "1.0.0",
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	registry.ServeStdio(ctx, srv)
package registry

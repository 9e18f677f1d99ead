// Package router provides the unified facade for hybrid tool routing.
//
// It combines the functionality of the intent, catalog, search,
// semantic, keyword, confidence, and cache packages into a single,
// easy-to-use API. This package is the recommended entry point for most
// routing use cases.
//
// # Basic Usage
//
// Create a Facade, initialize it with skills, and route queries:
//
//	facade, err := router.New(router.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = facade.Initialize(ctx, []catalog.Skill{{
//	    Name:     "git",
//	    Category: "version_control",
//	    Commands: []catalog.Command{
//	        {Tool: mcp.Tool{Name: "commit", Description: "Record changes"}},
//	    },
//	}})
//
//	result := facade.Route(ctx, "save my changes to version control")
//	fmt.Println(result.Target, result.Confidence)
//
// Route never returns nil: an uninitialized facade or failed retrieval
// falls through to a persona router that always produces a target.
//
// # Bulk Discovery
//
// RouteHybrid returns every candidate above a threshold:
//
//	results := facade.RouteHybrid(ctx, "file operations", 10, 0.2)
//
// # Multiple Instances
//
// A Registry hosts independent named facades (per tenant or session),
// created lazily and individually resettable:
//
//	reg, err := router.NewRegistry(func(name string) (*router.Facade, error) {
//	    return router.New(router.Options{})
//	})
//	facade, err := reg.Get("tenant-a")
//
// # Thread Safety
//
// All Facade and Registry methods are safe for concurrent use.
package router

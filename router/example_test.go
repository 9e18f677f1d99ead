package router_test

import (
	"context"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/toolrouter/catalog"
	"github.com/jonwraymond/toolrouter/router"
)

func Example() {
	ctx := context.Background()

	facade, err := router.New(router.Options{})
	if err != nil {
		log.Fatal(err)
	}

	err = facade.Initialize(ctx, []catalog.Skill{{
		Name:        "git",
		Description: "Version control operations",
		Category:    "version_control",
		Commands: []catalog.Command{
			{Tool: mcp.Tool{Name: "commit", Description: "Record changes to the repository"}},
		},
	}})
	if err != nil {
		log.Fatal(err)
	}

	result := facade.Route(ctx, "git.commit")
	fmt.Printf("%s %s\n", result.Target, result.Confidence)
	// Output: git.commit high
}

func ExampleFacade_RouteHybrid() {
	ctx := context.Background()

	facade, err := router.New(router.Options{})
	if err != nil {
		log.Fatal(err)
	}

	err = facade.Initialize(ctx, []catalog.Skill{{
		Name:        "fs",
		Description: "Filesystem discovery",
		Category:    "file_discovery",
		Commands: []catalog.Command{
			{Tool: mcp.Tool{Name: "glob", Description: "Find files matching a glob pattern"}},
			{Tool: mcp.Tool{Name: "list", Description: "List directory contents"}},
		},
	}})
	if err != nil {
		log.Fatal(err)
	}

	results := facade.RouteHybrid(ctx, "find files matching a glob pattern", 1, 0.1)
	for _, r := range results {
		fmt.Println(r.Target)
	}
	// Output: fs.glob
}

// Command generate-tests scaffolds the test files for a new feature: a page
// object, a browser test, and an API test.
//
//	generate-tests --all room-management
//	generate-tests --api-only billing-report
//	generate-tests --page-only --force tenant-profile
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/miniapartment/e2e/internal/logger"
	"github.com/miniapartment/e2e/internal/scaffold"
)

func main() {
	uiOnly := flag.Bool("ui-only", false, "generate only the browser test")
	apiOnly := flag.Bool("api-only", false, "generate only the API test")
	pageOnly := flag.Bool("page-only", false, "generate only the page object")
	all := flag.Bool("all", false, "generate page object, browser test, and API test")
	force := flag.Bool("force", false, "overwrite existing files")
	root := flag.String("root", ".", "repository root to write into")
	flag.Usage = usage
	flag.Parse()

	feature := flag.Arg(0)
	if feature == "" {
		usage()
		os.Exit(1)
	}

	var kinds []scaffold.Kind
	switch {
	case *all:
		kinds = []scaffold.Kind{scaffold.KindPage, scaffold.KindBrowser, scaffold.KindAPI}
	case *uiOnly:
		kinds = []scaffold.Kind{scaffold.KindBrowser}
	case *apiOnly:
		kinds = []scaffold.Kind{scaffold.KindAPI}
	case *pageOnly:
		kinds = []scaffold.Kind{scaffold.KindPage}
	default:
		// Same default as --all: a new feature usually wants all three.
		kinds = []scaffold.Kind{scaffold.KindPage, scaffold.KindBrowser, scaffold.KindAPI}
	}

	gen := &scaffold.Generator{
		RootDir: *root,
		Force:   *force,
		Log:     logger.Get(),
	}
	written, err := gen.Generate(feature, kinds...)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate-tests:", err)
		os.Exit(1)
	}
	for _, path := range written {
		fmt.Println("created", path)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: generate-tests [flags] <feature-name>

Feature names accept any case convention: room-management, roomManagement,
RoomManagement, room_management.

Flags:`)
	flag.PrintDefaults()
}

// Package scaffold generates boilerplate for new test features: a page
// object, a browser test, and an API test, named after the feature in every
// case convention the codebase uses.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

// Kind selects which artifact to generate.
type Kind string

// Generated artifact kinds.
const (
	KindPage    Kind = "page"
	KindBrowser Kind = "browser"
	KindAPI     Kind = "api"
)

var kindTemplates = map[Kind]string{
	KindPage:    "templates/page.go.tmpl",
	KindBrowser: "templates/browser_test.go.tmpl",
	KindAPI:     "templates/api_test.go.tmpl",
}

// kindPaths maps a kind to its output path relative to the repo root.
func kindPath(kind Kind, feature string) string {
	switch kind {
	case KindPage:
		return filepath.Join("internal", "pages", ToSnake(feature)+".go")
	case KindBrowser:
		return filepath.Join("tests", "browser", ToSnake(feature)+"_test.go")
	case KindAPI:
		return filepath.Join("tests", "e2e", ToSnake(feature)+"_api_test.go")
	}
	return ""
}

// Generator writes test scaffolding for a feature.
type Generator struct {
	// RootDir is the repository root output paths are resolved against.
	RootDir string
	// Force allows overwriting existing files.
	Force bool
	Log   zerolog.Logger
}

// Generate renders the template for each requested kind. It refuses to
// overwrite existing files unless Force is set, and returns the paths it
// wrote.
func (g *Generator) Generate(feature string, kinds ...Kind) ([]string, error) {
	if strings.TrimSpace(feature) == "" {
		return nil, fmt.Errorf("feature name is required")
	}
	replacer := strings.NewReplacer(
		"[FEATURE_NAME]", ToPascal(feature),
		"[featureName]", ToCamel(feature),
		"[feature-name]", ToKebab(feature),
		"[feature_name]", ToSnake(feature),
	)

	var written []string
	for _, kind := range kinds {
		tmplPath, ok := kindTemplates[kind]
		if !ok {
			return written, fmt.Errorf("unknown artifact kind %q", kind)
		}
		raw, err := templateFS.ReadFile(tmplPath)
		if err != nil {
			return written, fmt.Errorf("read template for %s: %w", kind, err)
		}

		outPath := filepath.Join(g.RootDir, kindPath(kind, feature))
		if !g.Force {
			if _, err := os.Stat(outPath); err == nil {
				return written, fmt.Errorf("%s already exists (use force to overwrite)", outPath)
			}
		}
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return written, fmt.Errorf("create output dir for %s: %w", outPath, err)
		}
		if err := os.WriteFile(outPath, []byte(replacer.Replace(string(raw))), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", outPath, err)
		}
		g.Log.Info().Str("kind", string(kind)).Str("path", outPath).Msg("generated")
		written = append(written, outPath)
	}
	return written, nil
}

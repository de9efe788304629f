package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/GhostKellz/ripple/cmd/ripplegen/templates"
	"github.com/GhostKellz/ripple/render"
	"github.com/GhostKellz/ripple/template"
)

const (
	manifestKey = "manifest"
	outKey      = "out"
)

// manifest is the YAML file listing the templates to compile ahead of
// time. Template file paths are relative to the manifest.
type manifest struct {
	Package   string `yaml:"package"`
	Templates []struct {
		Name string `yaml:"name"`
		File string `yaml:"file"`
	} `yaml:"templates"`
}

func main() {
	cmd := &cli.Command{
		Name:  "ripplegen",
		Usage: "Compile ripple templates into Go constant plans and programs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  manifestKey,
				Usage: "YAML manifest listing templates",
				Value: "ripple.yaml",
			},
			&cli.StringFlag{
				Name:  outKey,
				Usage: "Generated Go file to write",
				Value: "ripple_gen.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("ripplegen started")
	defer func() {
		log.Printf("ripplegen finished in %v", time.Since(start))
	}()

	manifestPath := cmd.String(manifestKey)
	raw, err := os.ReadFile(manifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}
	if m.Package == "" {
		return fmt.Errorf("manifest %s has no package name", manifestPath)
	}

	baseDir := filepath.Dir(manifestPath)
	entries := make([]templates.Entry, 0, len(m.Templates))
	for _, t := range m.Templates {
		src, err := os.ReadFile(filepath.Join(baseDir, t.File))
		if err != nil {
			return fmt.Errorf("read template %s: %w", t.Name, err)
		}
		plan, err := template.Compile(string(src))
		if err != nil {
			return fmt.Errorf("compile template %s: %w", t.Name, err)
		}
		prog, err := render.Build(plan)
		if err != nil {
			return fmt.Errorf("build program %s: %w", t.Name, err)
		}
		log.Printf("compiled %s: %d placeholders, %d ops, %d elements",
			t.Name, plan.PlaceholderCount(), len(prog.Ops), prog.MaxHydrationID)
		entries = append(entries, templates.Entry{Name: t.Name, Plan: plan, Program: prog})
	}

	contents := templates.GeneratedSource(m.Package, entries)
	if err := os.WriteFile(cmd.String(outKey), []byte(contents), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

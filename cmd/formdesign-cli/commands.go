package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli"

	"github.com/goliatone/go-formdesign/pkg/arrange"
	"github.com/goliatone/go-formdesign/pkg/design"
	"github.com/goliatone/go-formdesign/pkg/document"
	"github.com/goliatone/go-formdesign/pkg/openapi"
	"github.com/goliatone/go-formdesign/pkg/preview"
	theme "github.com/goliatone/go-theme"
)

var (
	designFlag = cli.StringFlag{Name: "design, d", Usage: "design document path (JSON or YAML)"}
	outputFlag = cli.StringFlag{Name: "output, o", Usage: "output file (stdout if empty)"}
	formatFlag = cli.StringFlag{Name: "format, f", Usage: "output format for stdout (json, yaml)", Value: "json"}
)

func commands(logger *log.Logger) []cli.Command {
	return []cli.Command{
		{
			Name:  "move",
			Usage: "move a top-level block to another position",
			Flags: []cli.Flag{designFlag, outputFlag, formatFlag,
				cli.IntFlag{Name: "from", Usage: "source index (0-based)"},
				cli.IntFlag{Name: "to", Usage: "destination index (0-based)"},
			},
			Action: func(c *cli.Context) error {
				d, err := loadDesign(c)
				if err != nil {
					return err
				}
				next, moved, err := d.MoveBlock(c.Int("from"), c.Int("to"))
				if err != nil {
					return err
				}
				if !moved {
					logger.Info("indices are equal, design unchanged")
				}
				logger.Debug("moved block", "from", c.Int("from"), "to", c.Int("to"))
				return writeDesign(c, next)
			},
		},
		{
			Name:  "move-member",
			Usage: "move a member inside a grouped block",
			Flags: []cli.Flag{designFlag, outputFlag, formatFlag,
				cli.IntFlag{Name: "block", Usage: "index of the grouped block"},
				cli.IntFlag{Name: "from", Usage: "source member index (0-based)"},
				cli.IntFlag{Name: "to", Usage: "destination member index (0-based)"},
			},
			Action: func(c *cli.Context) error {
				d, err := loadDesign(c)
				if err != nil {
					return err
				}
				next, moved, err := d.MoveMember(c.Int("block"), c.Int("from"), c.Int("to"))
				if err != nil {
					return err
				}
				if !moved {
					logger.Info("indices are equal, design unchanged")
				}
				return writeDesign(c, next)
			},
		},
		{
			Name:  "group",
			Usage: "wrap a range of blocks into a group",
			Flags: []cli.Flag{designFlag, outputFlag, formatFlag,
				cli.IntFlag{Name: "from", Usage: "first block index"},
				cli.IntFlag{Name: "to", Usage: "last block index (inclusive)"},
				cli.StringFlag{Name: "label", Usage: "group label"},
			},
			Action: func(c *cli.Context) error {
				d, err := loadDesign(c)
				if err != nil {
					return err
				}
				next, err := d.GroupBlocks(c.Int("from"), c.Int("to"), c.String("label"))
				if err != nil {
					return err
				}
				return writeDesign(c, next)
			},
		},
		{
			Name:  "ungroup",
			Usage: "split a grouped block into its members",
			Flags: []cli.Flag{designFlag, outputFlag, formatFlag,
				cli.IntFlag{Name: "block", Usage: "index of the grouped block"},
			},
			Action: func(c *cli.Context) error {
				d, err := loadDesign(c)
				if err != nil {
					return err
				}
				next, err := d.UngroupBlock(c.Int("block"))
				if err != nil {
					return err
				}
				return writeDesign(c, next)
			},
		},
		{
			Name:  "strip",
			Usage: "remove component UUIDs",
			Flags: []cli.Flag{designFlag, outputFlag, formatFlag},
			Action: func(c *cli.Context) error {
				d, err := loadDesign(c)
				if err != nil {
					return err
				}
				return writeDesign(c, d.StripUUIDs())
			},
		},
		{
			Name:  "check",
			Usage: "report which blocks are grouped",
			Flags: []cli.Flag{designFlag},
			Action: func(c *cli.Context) error {
				d, err := loadDesign(c)
				if err != nil {
					return err
				}
				for i, block := range d.Blocks {
					kind := "single"
					if block.Grouped() {
						kind = "grouped"
					}
					fmt.Fprintf(c.App.Writer, "%d\t%s\t%d\n", i, kind, len(block.Members()))
				}
				return nil
			},
		},
		{
			Name:  "list",
			Usage: "list the designs found in a directory",
			Flags: []cli.Flag{cli.StringFlag{Name: "dir", Value: ".", Usage: "directory to scan"}},
			Action: func(c *cli.Context) error {
				designs, err := document.LoadDir(os.DirFS(c.String("dir")))
				if err != nil {
					return err
				}
				for _, name := range document.Names(designs) {
					fmt.Fprintf(c.App.Writer, "%s\t%d\n", name, len(designs[name].Blocks))
				}
				return nil
			},
		},
		{
			Name:  "seed",
			Usage: "create a design from an OpenAPI operation request body",
			Flags: []cli.Flag{outputFlag, formatFlag,
				cli.StringFlag{Name: "source, s", Usage: "OpenAPI document path"},
				cli.StringFlag{Name: "operation", Usage: "operation id"},
				cli.BoolFlag{Name: "validate", Usage: "validate the OpenAPI document first"},
			},
			Action: func(c *cli.Context) error {
				data, err := os.ReadFile(c.String("source"))
				if err != nil {
					return fmt.Errorf("read source: %w", err)
				}
				var opts []openapi.Option
				if c.Bool("validate") {
					opts = append(opts, openapi.WithValidation())
				}
				d, err := openapi.Seed(context.Background(), data, c.String("operation"), opts...)
				if err != nil {
					return err
				}
				logger.Info("seeded design", "operation", c.String("operation"), "blocks", len(d.Blocks))
				return writeDesign(c, d)
			},
		},
		{
			Name:  "preview",
			Usage: "render an HTML preview",
			Flags: []cli.Flag{designFlag, outputFlag,
				cli.StringFlag{Name: "theme-manifest", Usage: "go-theme manifest (JSON or YAML)"},
				cli.StringFlag{Name: "theme", Usage: "theme name"},
				cli.StringFlag{Name: "variant", Usage: "theme variant"},
				cli.StringFlag{Name: "select", Usage: "UUID of the component to scroll into view"},
			},
			Action: func(c *cli.Context) error {
				d, err := loadDesign(c)
				if err != nil {
					return err
				}
				var opts []preview.Option
				if path := c.String("theme-manifest"); path != "" {
					manifest, err := loadManifest(path)
					if err != nil {
						return err
					}
					opts = append(opts, preview.WithThemeSelector(preview.NewManifestSelector(manifest)))
				}
				renderer, err := preview.New(opts...)
				if err != nil {
					return err
				}
				out, err := renderer.Render(context.Background(), d, preview.RenderOptions{
					Theme:    c.String("theme"),
					Variant:  c.String("variant"),
					Selected: c.String("select"),
				})
				if err != nil {
					return err
				}
				return writeOutput(c, out)
			},
		},
		{
			Name:  "arrange",
			Usage: "reorder blocks interactively",
			Flags: []cli.Flag{designFlag, outputFlag, formatFlag},
			Action: func(c *cli.Context) error {
				d, err := loadDesign(c)
				if err != nil {
					return err
				}
				session := arrange.NewSession(arrange.NewSurveyDriver(), d)
				next, err := session.Run(context.Background())
				if err != nil {
					return err
				}
				logger.Info("arrange finished", "moves", len(session.Moves()))
				return writeDesign(c, next)
			},
		},
	}
}

func loadDesign(c *cli.Context) (design.Design, error) {
	path := strings.TrimSpace(c.String("design"))
	if path == "" {
		return design.Design{}, errors.New("--design is required")
	}
	return document.LoadFile(path)
}

func writeDesign(c *cli.Context, d design.Design) error {
	if path := c.String("output"); path != "" {
		return document.WriteFile(path, d)
	}
	format, err := document.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}
	data, err := document.Encode(d, format)
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(data)
	return err
}

func writeOutput(c *cli.Context, data []byte) error {
	if path := c.String("output"); path != "" {
		return os.WriteFile(path, data, 0o644)
	}
	_, err := c.App.Writer.Write(data)
	return err
}

func loadManifest(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme manifest: %w", err)
	}
	var manifest theme.Manifest
	if err := decodeManifest(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse theme manifest %s: %w", path, err)
	}
	return &manifest, nil
}

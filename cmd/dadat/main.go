// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dadat inspects, extracts, patches, and compiles DarkAges
// ".dat" archives.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/eriscorp/darkages-go/archive"
	"github.com/eriscorp/darkages-go/internal/dalog"
)

func main() {
	log := dalog.New(os.Stderr, slogLevelFromEnv())

	app := &cli.App{
		Name:  "dadat",
		Usage: "inspect and build DarkAges .dat archives",
		Commands: []*cli.Command{
			lsCommand(log),
			extractCommand(log),
			patchCommand(log),
			compileCommand(log),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Error("dadat: " + err.Error())
		os.Exit(1)
	}
}

func lsCommand(log *dalog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list an archive's entries",
		ArgsUsage: "<archive.dat>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "mapped", Usage: "open via mmap instead of reading into memory"},
		},
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("ls: missing archive path", 2)
			}
			a, err := openArchive(path, c.Bool("mapped"))
			if err != nil {
				return err
			}
			defer a.Close()
			for _, e := range a.Entries() {
				fmt.Printf("%-13s %10d bytes @ %d\n", e.Name, e.Length, e.Offset)
			}
			return nil
		},
	}
}

func extractCommand(log *dalog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "extract every entry into a directory",
		ArgsUsage: "<archive.dat> <dir>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 2 {
				return cli.Exit("extract: need <archive.dat> <dir>", 2)
			}
			a, err := archive.Open(c.Args().Get(0))
			if err != nil {
				return err
			}
			defer a.Close()
			if err := a.ExtractTo(c.Args().Get(1), archive.WithLogger(log)); err != nil {
				return err
			}
			log.Info("extracted archive", "entries", len(a.Entries()), "dir", c.Args().Get(1))
			return nil
		},
	}
}

func patchCommand(log *dalog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "patch",
		Usage:     "replace or add one entry and save in place",
		ArgsUsage: "<archive.dat> <name> <file>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 3 {
				return cli.Exit("patch: need <archive.dat> <name> <file>", 2)
			}
			path, name, file := c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)
			a, err := archive.Open(path)
			if err != nil {
				return err
			}
			defer a.Close()
			payload, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			if err := a.Patch(name, payload); err != nil {
				return err
			}
			if err := a.Save(path); err != nil {
				return err
			}
			log.Info("patched entry", "name", name, "bytes", len(payload))
			return nil
		},
	}
}

func compileCommand(log *dalog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "compile",
		Usage:     "pack a directory's files into a new archive",
		ArgsUsage: "<dir> <archive.dat>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 2 {
				return cli.Exit("compile: need <dir> <archive.dat>", 2)
			}
			if err := archive.Compile(c.Args().Get(0), c.Args().Get(1), archive.WithLogger(log)); err != nil {
				return err
			}
			log.Info("compiled archive", "from", c.Args().Get(0), "to", c.Args().Get(1))
			return nil
		},
	}
}

func openArchive(path string, mapped bool) (*archive.Archive, error) {
	if mapped {
		return archive.OpenMapped(path)
	}
	return archive.Open(path)
}

func slogLevelFromEnv() slog.Level {
	if os.Getenv("DADAT_VERBOSE") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

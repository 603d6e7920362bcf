// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dahpf compresses and decompresses standalone HPF-coded blobs.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/eriscorp/darkages-go/hpf"
)

func main() {
	app := &cli.App{
		Name:  "dahpf",
		Usage: "compress/decompress adaptive-Huffman HPF blobs",
		Commands: []*cli.Command{
			{
				Name:      "c",
				Usage:     "compress stdin to stdout",
				ArgsUsage: " ",
				Action: func(*cli.Context) error {
					in, err := io.ReadAll(os.Stdin)
					if err != nil {
						return err
					}
					_, err = os.Stdout.Write(hpf.Compress(in))
					return err
				},
			},
			{
				Name:      "d",
				Usage:     "decompress stdin to stdout",
				ArgsUsage: " ",
				Action: func(*cli.Context) error {
					in, err := io.ReadAll(os.Stdin)
					if err != nil {
						return err
					}
					out, err := hpf.Decompress(in)
					if err != nil {
						return err
					}
					_, err = os.Stdout.Write(out)
					return err
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "dahpf:", err)
		os.Exit(1)
	}
}

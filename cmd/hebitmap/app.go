package main

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/risolvipro/HEBitmap"
	"github.com/risolvipro/HEBitmap/converter"
	"github.com/urfave/cli/v2"
)

// progress receives per-file log lines. It discards everything unless
// --verbose is given.
var progress = log.New(io.Discard, "", 0)

func newApp() *cli.App {
	outputDirFlag := func() cli.Flag {
		return &cli.PathFlag{
			Name:    "output-dir",
			Aliases: []string{"o"},
			Usage: "write output to `DIR` instead of the input's directory (absolute " +
				"paths) or the current directory (relative paths)",
		}
	}

	return &cli.App{
		Name:  "hebitmap",
		Usage: "Convert images to and from the HEBitmap 1-bit format",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log every file read and written",
			},
		},
		Before: func(context *cli.Context) error {
			if context.Bool("verbose") {
				progress = log.New(context.App.ErrWriter, log.Prefix(), log.Flags())
			} else {
				progress = log.New(io.Discard, "", 0)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name: "encode",
				Usage: "Convert an image, an animated GIF or a directory of " +
					"<name>-table-<n> images",
				ArgsUsage: "INPUT",
				Action:    encodeInput,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "raw",
						Usage:   "don't compress pixel data",
						EnvVars: []string{"HEBITMAP_RAW"},
					},
					&cli.UintFlag{
						Name:    "format-version",
						Usage:   "write format version `N`",
						Value:   uint(hebitmap.LatestVersion),
						EnvVars: []string{"HEBITMAP_FORMAT_VERSION"},
					},
					outputDirFlag(),
				},
			},
			{
				Name:      "decode",
				Usage:     "Convert a .heb or .hebt file to PNG",
				ArgsUsage: "INPUT",
				Action:    decodeInput,
				Flags:     []cli.Flag{outputDirFlag()},
			},
			{
				Name:      "inspect",
				Usage:     "Print the header fields of every record in a .heb or .hebt file",
				ArgsUsage: "INPUT",
				Action:    inspectInput,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "print one CSV row per record",
					},
				},
			},
		},
	}
}

func singleInput(context *cli.Context) (string, error) {
	if context.NArg() != 1 {
		return "", fmt.Errorf(
			"%s: expected exactly one INPUT argument, got %d",
			context.Command.Name,
			context.NArg())
	}
	return context.Args().First(), nil
}

func encodeInput(context *cli.Context) error {
	input, err := singleInput(context)
	if err != nil {
		return err
	}

	version := context.Uint("format-version")
	if version > math.MaxUint32 {
		return hebitmap.ErrUnsupportedVersion.WithMessage(fmt.Sprintf("version %d", version))
	}

	opts := converter.Options{
		Encode: hebitmap.EncodeOptions{
			Version:    hebitmap.Version(version),
			Compressed: !context.Bool("raw"),
		},
		OutputDir: context.Path("output-dir"),
	}
	if !opts.Encode.Version.SupportsCompression() && !context.IsSet("raw") {
		// Older versions can't be compressed at all, so there's nothing to
		// turn off explicitly.
		opts.Encode.Compressed = false
	}

	progress.Printf("encoding %s with %s, compressed=%t", input, opts.Encode.Version, opts.Encode.Compressed)
	result, err := converter.EncodePath(input, opts)
	if err != nil {
		return err
	}
	for _, output := range result.Outputs {
		progress.Printf("wrote %s (%d frames)", output, result.Frames)
	}
	return nil
}

func decodeInput(context *cli.Context) error {
	input, err := singleInput(context)
	if err != nil {
		return err
	}

	opts := converter.Options{OutputDir: context.Path("output-dir")}
	progress.Printf("decoding %s", input)
	result, err := converter.DecodePath(input, opts)
	if err != nil {
		return err
	}
	for _, output := range result.Outputs {
		progress.Printf("wrote %s", output)
	}
	return nil
}

func inspectInput(context *cli.Context) error {
	input, err := singleInput(context)
	if err != nil {
		return err
	}

	report, err := converter.Inspect(input, converter.Options{})
	if err != nil {
		return err
	}
	if context.Bool("csv") {
		return report.WriteCSV(context.App.Writer)
	}
	return report.WriteText(context.App.Writer)
}

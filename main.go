package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/navit-tools/binfile-extract/binfile"
	_ "gocloud.dev/blob/azureblob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
	"log"
	"os"
	"strconv"
)

const usage = `Usage: binfile-extract [-input URL] [-output URL] [-region FILE] [-strict] [-quiet] \
    <lon_bl> <lat_bl> <lon_tr> <lat_tr>

Reads a binfile map archive from -input (or stdin), keeps or blanks each
member by whether its tile footprint intersects the query bounding box,
and writes a patched ZIP64 archive to -output (or stdout).`

func main() {
	logger := log.New(os.Stderr, "", log.Ldate|log.Ltime)

	cmd := flag.NewFlagSet("binfile-extract", flag.ContinueOnError)
	cmd.SetOutput(os.Stderr)
	inputURL := cmd.String("input", "", "input archive URL (file://, s3://, gs://, azblob://, https://); empty means stdin")
	outputURL := cmd.String("output", "", "output archive URL; empty means stdout")
	regionFile := cmd.String("region", "", "optional GeoJSON file whose bound overrides the positional bbox")
	strict := cmd.Bool("strict", false, "use strict (non-engine-default) ZIP64 central-directory extras and a comment")
	quiet := cmd.Bool("quiet", false, "suppress the progress meter")

	if err := cmd.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	if cmd.NArg() != 4 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}

	coords := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(cmd.Arg(i), 64)
		if err != nil {
			fmt.Fprintln(os.Stderr, usage)
			os.Exit(1)
		}
		coords[i] = v
	}

	query := binfile.Project(coords[0], coords[1], coords[2], coords[3])
	if *regionFile != "" {
		data, err := os.ReadFile(*regionFile)
		if err != nil {
			logger.Fatalf("reading region file: %v", err)
		}
		query, err = binfile.PolygonRegion(data)
		if err != nil {
			logger.Fatalf("parsing region file: %v", err)
		}
	}

	mode := binfile.EngineCompatibleMode
	if *strict {
		mode = binfile.StrictMode
	}

	ctx := context.Background()
	in, out, err := binfile.OpenStreams(ctx, *inputURL, *outputURL)
	if err != nil {
		logger.Fatalf("opening streams: %v", err)
	}
	defer in.Close()
	defer out.Close()

	var progressWriter binfile.ProgressWriter
	if *quiet {
		progressWriter = binfile.NewQuietProgressWriter()
	} else {
		progressWriter = binfile.NewDefaultProgressWriter()
	}
	progress := progressWriter.NewBytesProgress(-1, "rewriting")
	defer progress.Close()

	rewriter := binfile.NewRewriter(query, mode, logger, progress)
	if err := rewriter.Run(in, out); err != nil {
		logger.Fatalf("rewriting archive: %v", err)
	}

	rewriter.Stats().Summary(os.Stderr)
}

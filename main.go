package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/mgmeyers/pdfsplit/console"
	"github.com/mgmeyers/pdfsplit/pdfutils"
)

var args struct {
	Quiet    bool   `short:"q" help:"Suppress progress messages"`
	NoColor  bool   `name:"no-color" help:"Do not colour messages"`
	Password string `short:"p" help:"Password of an encrypted input PDF"`
	Report   bool   `short:"r" help:"Print the placement of every annotation as JSON to stdout"`

	PreviewDir     string `name:"preview-dir" type:"path" help:"Render every output page into this directory"`
	PreviewName    string `name:"preview-name" help:"Base name of preview images. Defaults to the output file name"`
	PreviewFormat  string `name:"preview-format" enum:"jpg,png" default:"png" help:"Preview image format. Supports png and jpg"`
	PreviewDPI     int    `name:"preview-dpi" default:"72" help:"Preview image DPI"`
	PreviewQuality int    `name:"preview-quality" default:"90" help:"Preview image quality. Only applies to jpg images"`
	PreviewJobs    int    `name:"preview-jobs" default:"4" help:"Number of preview images encoded concurrently"`

	InputPDF  string `arg:"" name:"input-pdf" help:"Path to the input PDF file" type:"existingfile"`
	OutputPDF string `arg:"" name:"output-pdf" help:"Path where the processed PDF will be saved" type:"path"`
}

func logOutput(annots []*pdfutils.Annotation) error {
	jsonAnnots, err := json.Marshal(annots)
	if err != nil {
		return err
	}

	oLog := log.New(os.Stdout, "", 0)
	oLog.Println(string(jsonAnnots))
	return nil
}

func endIfErr(con *console.Console, err error) {
	if err != nil {
		con.Error(err)
		os.Exit(1)
	}
}

func main() {
	kong.Parse(&args,
		kong.Name("pdfsplit"),
		kong.Description("Split each page of a PDF into left and right halves, preserving annotations."),
		kong.UsageOnError(),
	)

	con := console.New(os.Stderr, args.Quiet, args.NoColor)

	res, err := pdfutils.SplitFile(args.InputPDF, args.OutputPDF, pdfutils.Options{
		Password: args.Password,
	}, con)
	endIfErr(con, err)

	if args.Report {
		endIfErr(con, logOutput(res.Annotations))
	}

	if args.PreviewDir != "" {
		paths, err := pdfutils.RenderPreviews(args.OutputPDF, pdfutils.PreviewOptions{
			OutputPath:   args.PreviewDir,
			BaseName:     args.PreviewName,
			ImageFormat:  args.PreviewFormat,
			ImageDPI:     args.PreviewDPI,
			ImageQuality: args.PreviewQuality,
			Jobs:         args.PreviewJobs,
		})
		endIfErr(con, err)
		con.Info(fmt.Sprintf("Rendered %d preview images to %s", len(paths), args.PreviewDir))
	}

	con.Success(fmt.Sprintf("Successfully created: %s", args.OutputPDF))
}

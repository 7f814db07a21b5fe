// Command jxlenc encodes PNG/JPEG/GIF images to lossless JPEG XL from
// the command line.
//
// Usage:
//
//	jxlenc [options] <input>   PNG/JPEG/GIF -> lossless JXL (use "-" for stdin)
package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"golang.org/x/image/draw"

	"github.com/overlaycore/jxlenc"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "jxlenc: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := pflag.NewFlagSet("jxlenc", pflag.ContinueOnError)
	effort := fs.IntP("effort", "e", 5, "encoding effort 1-9")
	colorSpace := fs.String("colorspace", "srgb", "color space: srgb/gray/hdr10/linear")
	bitDepth := fs.IntP("bitdepth", "b", 8, "output bit depth (8 only; image/* decoders are 8-bit per channel)")
	output := fs.StringP("output", "o", "", `output path (default: <input>.jxl, "-" for stdout)`)
	verbose := fs.BoolP("verbose", "v", false, "enable debug-level logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: jxlenc [options] <input>\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("missing input file")
	}
	inputPath := fs.Arg(0)

	logLevel := zerolog.InfoLevel
	if *verbose {
		logLevel = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(logLevel).With().Timestamp().Logger()
	log.Logger = logger

	cs, err := parseColorSpace(*colorSpace)
	if err != nil {
		return err
	}
	// image/png, image/jpeg, and image/gif all decode to 8-bit-per-channel
	// samples; draw.Draw into an *image.RGBA below never produces more
	// than that, so a declared depth beyond 8 would misdescribe the data
	// actually written.
	if *bitDepth != 8 {
		return fmt.Errorf("bitdepth must be 8 (this command's decoders are 8-bit per channel), got %d", *bitDepth)
	}

	return encodeFile(inputPath, *output, *effort, *bitDepth, cs)
}

func parseColorSpace(s string) (jxlenc.ColorSpace, error) {
	switch strings.ToLower(s) {
	case "srgb":
		return jxlenc.SRGB, nil
	case "gray", "grayscale":
		return jxlenc.GraySRGB, nil
	case "hdr10":
		return jxlenc.HDR10PQ, nil
	case "linear":
		return jxlenc.ExtendedLinearHalf, nil
	default:
		return 0, fmt.Errorf("unknown colorspace %q (use srgb/gray/hdr10/linear)", s)
	}
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// encodeFile decodes the input image, converts it to a tightly packed
// RGBA buffer via golang.org/x/image/draw, and writes a lossless JXL
// codestream to the resolved output path.
func encodeFile(inputPath, outputPath string, effort, bitDepth int, cs jxlenc.ColorSpace) error {
	start := time.Now()

	in, err := openInput(inputPath)
	if err != nil {
		return err
	}
	defer in.Close()

	src, format, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding input: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)

	cfg := jxlenc.DefaultFrameConfig(width, height)
	cfg.Effort = effort
	cfg.BitDepth = bitDepth
	cfg.ColorSpace = cs

	fs, err := jxlenc.PrepareFrame(rgbaInputSource{rgba}, cfg)
	if err != nil {
		return fmt.Errorf("prepare_frame: %w", err)
	}
	defer fs.Free()

	runner := jxlenc.NewErrgroupRunner()
	if ok := fs.ProcessFrame(runner); !ok {
		return jxlenc.ErrRunnerFailed
	}
	fs.PrepareHeader(jxlenc.DefaultOptions())

	size := fs.OutputSize()
	data := make([]byte, 0, size)
	buf := make([]byte, 4096)
	for {
		n := fs.WriteOutput(buf)
		if n == 0 {
			break
		}
		data = append(data, buf[:n]...)
	}

	if outputPath == "" {
		if inputPath == "-" {
			outputPath = "output.jxl"
		} else {
			base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
			outputPath = base + ".jxl"
		}
	}

	if outputPath == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return err
	}

	log.Info().
		Str("frame_id", fs.ID()).
		Str("input_format", format).
		Int("width", width).
		Int("height", height).
		Int("effort", effort).
		Int("bytes_written", len(data)).
		Dur("elapsed", time.Since(start)).
		Str("output", outputPath).
		Msg("encoded frame")

	return nil
}

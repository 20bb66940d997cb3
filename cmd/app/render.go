package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/lung-visualizer/internal/domain/lungviz"
	"github.com/yanqian/lung-visualizer/pkg/logger"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one lung illustration to a file",
	Long:  "Renders the lung illustration for a health score offline and writes PNG or SVG bytes to --out (use - for stdout).",
	RunE:  runRender,
}

var (
	renderHealth float64
	renderFormat string
	renderOut    string
	renderWidth  int
	renderHeight int
)

func init() {
	renderCmd.Flags().Float64Var(&renderHealth, "health", 100, "Health score in [0, 100]")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "", "Output format: png or svg (defaults to the --out extension, then png)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Output path, - for stdout (required)")
	renderCmd.Flags().IntVar(&renderWidth, "width", lungviz.DefaultWidth, "Canvas width in pixels")
	renderCmd.Flags().IntVar(&renderHeight, "height", lungviz.DefaultHeight, "Canvas height in pixels")

	if err := renderCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	if renderWidth > lungviz.MaxCanvasSide || renderHeight > lungviz.MaxCanvasSide {
		return fmt.Errorf("--width and --height cannot exceed %d", lungviz.MaxCanvasSide)
	}
	format, err := lungviz.ParseFormat(renderFormat, formatFromPath(renderOut))
	if err != nil {
		return err
	}

	svc := lungviz.NewService(lungviz.Config{
		Width:         renderWidth,
		Height:        renderHeight,
		DefaultFormat: format,
	}, nil, logger.NewWithWriter(cmd.ErrOrStderr()))

	img, err := svc.Render(commandContext(cmd), lungviz.RenderRequest{Health: renderHealth, Format: format})
	if err != nil {
		return err
	}

	if err := writeOutput(renderOut, cmd.OutOrStdout(), img.Data); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "rendered health=%.2f stage=%s seed=%d format=%s bytes=%d\n",
		img.Health, img.Stage, img.Seed, img.Format, len(img.Data))
	return nil
}

func formatFromPath(path string) lungviz.Format {
	if strings.HasSuffix(strings.ToLower(path), ".svg") {
		return lungviz.FormatSVG
	}
	return lungviz.FormatPNG
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

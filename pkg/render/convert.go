package render

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
)

// rsvgBin is the librsvg CLI used for SVG conversion. It ships as
// librsvg2-bin on Debian and librsvg in Homebrew.
const rsvgBin = "rsvg-convert"

// ToPDF converts SVG bytes to PDF. Requires rsvg-convert on PATH.
func ToPDF(svg []byte) ([]byte, error) {
	return convertSVG(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG at the given scale factor; 2.0 doubles
// the pixel dimensions. Requires rsvg-convert on PATH.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convertSVG(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func convertSVG(svg []byte, format string, extra ...string) ([]byte, error) {
	if _, err := exec.LookPath(rsvgBin); err != nil {
		return nil, fmt.Errorf("%s output needs %s (apt install librsvg2-bin, brew install librsvg): %w",
			format, rsvgBin, err)
	}

	cmd := exec.Command(rsvgBin, append([]string{"-f", format}, extra...)...)
	cmd.Stdin = bytes.NewReader(svg)

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%s: %v: %s", rsvgBin, err, bytes.TrimSpace(exitErr.Stderr))
		}
		return nil, fmt.Errorf("%s: %w", rsvgBin, err)
	}
	return out, nil
}

/*kernelprofile plots the smoothing kernels and their first derivatives.

Usage:
    $ kernelprofile plot_dir

Two figures are written, one for the kernel values and one for the
derivatives. The spiky kernel keeps a finite slope all the way to zero
separation, which is the whole reason it exists, and the plots make that
visible.
*/
package main

import (
	"log"
	"os"
	"path"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/gosph/gosph/sph"
)

const (
	h       = 1.0
	samples = 256
)

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("Usage: $ %s plot_dir", os.Args[0])
	}
	plotDir := os.Args[1]

	std, spiky := sph.NewStdKernel(h), sph.NewSpikyKernel(h)

	rs := make([]float64, samples)
	stdVals := make([]float64, samples)
	spikyVals := make([]float64, samples)
	stdDerivs := make([]float64, samples)
	spikyDerivs := make([]float64, samples)

	for i := range rs {
		r := h * float64(i) / float64(samples-1)
		rs[i] = r
		stdVals[i] = std.Value(r)
		spikyVals[i] = spiky.Value(r)
		stdDerivs[i] = std.FirstDerivative(r)
		spikyDerivs[i] = spiky.FirstDerivative(r)
	}

	plt.Reset()

	plt.Figure()
	plt.Plot(rs, stdVals, "b", plt.LW(3))
	plt.Plot(rs, spikyVals, "r", plt.LW(3))
	plt.Title("Smoothing kernels", plt.FontSize(16))
	plt.XLabel(`$r / h$`, plt.FontSize(16))
	plt.YLabel(`$W(r)$`, plt.FontSize(16))
	plt.XLim(0, h)
	plt.Grid(plt.Axis("x"))
	plt.SaveFig(path.Join(plotDir, "kernel_values.png"))

	plt.Figure()
	plt.Plot(rs, stdDerivs, "b", plt.LW(3))
	plt.Plot(rs, spikyDerivs, "r", plt.LW(3))
	plt.Title("Kernel first derivatives", plt.FontSize(16))
	plt.XLabel(`$r / h$`, plt.FontSize(16))
	plt.YLabel(`$W'(r)$`, plt.FontSize(16))
	plt.XLim(0, h)
	plt.Grid(plt.Axis("x"))
	plt.SaveFig(path.Join(plotDir, "kernel_derivs.png"))

	plt.Execute()
}

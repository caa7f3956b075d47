package main

const (
	ExampleConvertFile = `[Convert]

#######################
# Required Parameters #
#######################

# File containing the input particle positions as a whitespace-separated
# table with one particle per row. Lines starting with # are skipped.
Input = path/to/points.txt
# File which the sampled implicit field will be written to.
Output = path/to/field.txt

# The surface reconstruction method. Must be one of:
# [ Sph | Spherical | ZhuBridson ]
Method = Sph

# Number of grid cells along each axis of the output grid.
Resolution = 64

# Corners of the world-space region covered by the output grid.
MinX = 0
MinY = 0
MinZ = 0
MaxX = 1
MaxY = 1
MaxZ = 1

#######################
# Optional Parameters #
#######################

# Zero-indexed columns of the input table holding the x, y, and z
# coordinates. Defaults are 0, 1, and 2.
# XColumn = 0
# YColumn = 1
# ZColumn = 2

# Kernel support radius used by the Sph and ZhuBridson methods. Defaults
# to twice the mean particle spacing implied by the grid if unset.
# KernelRadius = 0.05

# Iso-density level of the Sph method. Default is 0.5.
# CutOffDensity = 0.5

# Cut-off fraction of the ZhuBridson method, in (0, 1). Default is 0.25.
# CutOffThreshold = 0.25

# Particle radius used by the Spherical method.
# Radius = 0.01

# Number of threads used. Overrides the -Threads flag when set. Default
# is the number of logical cores.
# Threads = 8

# Log output file which is useful for debugging. Generally, there isn't
# a reason to use this unless something goes wrong.
# LogFile = log.out`
)

type ConvertConfig struct {
	// Required
	Input, Output string
	Method        string
	Resolution    int

	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64

	// Optional
	XColumn, YColumn, ZColumn int

	KernelRadius    float64
	CutOffDensity   float64
	CutOffThreshold float64
	Radius          float64

	Threads int
	LogFile string
}

type ConvertWrapper struct {
	Convert ConvertConfig
}

func DefaultConvertWrapper() *ConvertWrapper {
	con := ConvertConfig{}
	con.XColumn, con.YColumn, con.ZColumn = 0, 1, 2
	con.CutOffDensity = 0.5
	con.CutOffThreshold = 0.25
	return &ConvertWrapper{con}
}

func (con *ConvertConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *ConvertConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *ConvertConfig) ValidMethod() bool {
	switch con.Method {
	case "Sph", "Spherical", "ZhuBridson":
		return true
	}
	return false
}
func (con *ConvertConfig) ValidResolution() bool {
	return con.Resolution > 0
}
func (con *ConvertConfig) ValidBounds() bool {
	return con.MinX < con.MaxX && con.MinY < con.MaxY && con.MinZ < con.MaxZ
}
func (con *ConvertConfig) ValidColumns() bool {
	return con.XColumn >= 0 && con.YColumn >= 0 && con.ZColumn >= 0
}
func (con *ConvertConfig) ValidLogFile() bool {
	return con.LogFile != ""
}

package shaders

import (
	_ "embed"
)

//go:embed overlay.wgsl
var OverlayWGSL string

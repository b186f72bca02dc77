package stacktobasics

import "embed"

// EmbeddedAssets contains the stylesheet shipped with the site. It is served
// and copied under /public/, where files in the static dir take precedence.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS

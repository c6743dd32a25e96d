//go:build linegraphdebug

package multiline

const debugBuild = true

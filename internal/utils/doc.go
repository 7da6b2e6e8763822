// Package utils holds small helpers shared across transport and catalog
// code that don't belong to any one package: content-type sniffing here,
// plus the UserAgentProvider seam transport/http injects through.
package utils

// Package export orchestrates compiler output: the ROM container
// image, the standalone metadata and data binaries, the rendered C
// library, and the export summary handed to provisioning pipelines.
package export

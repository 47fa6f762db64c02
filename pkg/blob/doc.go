// Package blob serializes compiled descriptors into the binary images
// a configuration reader consumes: the metadata blob describing every
// property, the data blob holding default values, and the container
// image that bundles one data blob with one or more metadata blobs
// behind a digest-checked descriptor table.
package blob

package export

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// encMode is the CBOR encoder mode for export summaries, configured
// for deterministic encoding with integer keys so provisioning
// pipelines can byte-compare re-exports.
var encMode cbor.EncMode

func init() {
	opts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeUnix,
	}
	var err error
	if encMode, err = opts.EncMode(); err != nil {
		panic(fmt.Sprintf("failed to create CBOR encoder mode: %v", err))
	}
}

// Summary describes one export run. Payloads are base64-url encoded so
// the summary survives JSON transport unchanged.
type Summary struct {
	// ExportID uniquely identifies this export run.
	ExportID string `json:"export_id" cbor:"1,keyasint"`

	// CreatedAt is the export timestamp in UTC.
	CreatedAt time.Time `json:"created_at" cbor:"2,keyasint"`

	Metadata MetadataSummary `json:"metadata" cbor:"3,keyasint"`
	Data     DataSummary     `json:"data" cbor:"4,keyasint"`
}

// MetadataSummary carries the metadata blob and its framing.
type MetadataSummary struct {
	// Compressed reports whether Payload holds a deflated blob.
	Compressed bool `json:"compressed" cbor:"1,keyasint"`

	// DeviceID is the base64-url encoding of the 8-byte packed device
	// identifier.
	DeviceID string `json:"device_id" cbor:"2,keyasint"`

	// Payload is the base64-url encoded metadata blob.
	Payload string `json:"payload" cbor:"3,keyasint"`
}

// DataSummary carries the data blob.
type DataSummary struct {
	// Size is the data blob length in bytes, including the reserved
	// timestamp trailer.
	Size int `json:"size" cbor:"1,keyasint"`

	// Payload is the base64-url encoded data blob.
	Payload string `json:"payload" cbor:"2,keyasint"`
}

// newSummary builds the summary for one export run.
func newSummary(deviceID [8]byte, metadata, data []byte, compressed bool) Summary {
	return Summary{
		ExportID:  uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Metadata: MetadataSummary{
			Compressed: compressed,
			DeviceID:   base64.URLEncoding.EncodeToString(deviceID[:]),
			Payload:    base64.URLEncoding.EncodeToString(metadata),
		},
		Data: DataSummary{
			Size:    len(data),
			Payload: base64.URLEncoding.EncodeToString(data),
		},
	}
}

// EncodeJSON returns the summary as indented JSON.
func (s Summary) EncodeJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// EncodeCBOR returns the summary in deterministic integer-keyed CBOR.
func (s Summary) EncodeCBOR() ([]byte, error) {
	return encMode.Marshal(s)
}

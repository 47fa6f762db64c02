package property

// Metadata flag bits for numeric properties. A set bit means the
// corresponding optional field follows in the metadata encoding, in
// flag order.
const (
	flagMinValue       = 0b00000001
	flagMaxValue       = 0b00000010
	flagStepSize       = 0b00000100
	flagContentType    = 0b00001000
	flagContentTypeDef = 0b00010000
)

// contentTypes maps the content-type tag of numeric properties to its
// wire value. The tag tells frontends what kind of quantity a number
// represents so they can render proper units.
var contentTypes = map[string]byte{
	"none":   0,
	"time":   1,
	"weight": 2,
	"length": 3,
}

// contentTypeDefs maps a content type's default-unit name to its wire
// value. Unknown units encode as 0. The weight units all collapsing to
// 0 matches the deployed reader table; see DESIGN.md.
var contentTypeDefs = map[string]map[string]byte{
	"none": {},
	"time": {
		"ms": 0,
		"s":  1,
		"m":  2,
		"h":  3,
		"d":  4,
	},
	"weight": {
		"mg": 0,
		"g":  0,
		"kg": 0,
	},
	"length": {
		"mm": 0,
		"cm": 1,
		"dm": 2,
		"m":  3,
		"km": 4,
	},
}

// contentInfo carries the optional content-type annotation of a
// numeric property.
type contentInfo struct {
	contentType string // "" when absent
	unit        string // "" when absent
}

func newContentInfo(ownerID, contentType, unit string) (contentInfo, error) {
	c := contentInfo{contentType: contentType, unit: unit}
	if contentType == "" {
		if unit != "" {
			return c, nodeErrorf(ownerID, "content_type_def requires content_type")
		}
		return c, nil
	}
	if _, ok := contentTypes[contentType]; !ok {
		return c, nodeErrorf(ownerID, "unknown content_type %q", contentType)
	}
	return c, nil
}

func (c contentInfo) flags() byte {
	var f byte
	if c.contentType != "" {
		f |= flagContentType
		if c.unit != "" {
			f |= flagContentTypeDef
		}
	}
	return f
}

func (c contentInfo) append(dst []byte) []byte {
	if c.contentType == "" {
		return dst
	}
	dst = append(dst, contentTypes[c.contentType])
	if c.unit != "" {
		dst = append(dst, contentTypeDefs[c.contentType][c.unit])
	}
	return dst
}

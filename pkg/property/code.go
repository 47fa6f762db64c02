package property

// Code is the wire type code of a property. It is the first byte of
// every property's metadata encoding. Values are protocol constants;
// changing them breaks every issued blob.
type Code uint8

const (
	CodeDivider         Code = 0x80
	CodeHeader          Code = 0x81
	CodeOneOutOfM       Code = 0x82
	CodeNOutOfM         Code = 0x83
	CodeBool            Code = 0x84
	CodeArray           Code = 0x85
	CodeUint8           Code = 0x86
	CodeUint16          Code = 0x87
	CodeUint32          Code = 0x88
	CodeUint64          Code = 0x89
	CodeInt8            Code = 0x8A
	CodeInt16           Code = 0x8B
	CodeInt32           Code = 0x8C
	CodeInt64           Code = 0x8D
	CodeFloat32         Code = 0x8E
	CodeFloat64         Code = 0x8F
	CodeNumberListInt   Code = 0x90
	CodeNumberListFloat Code = 0x91
	CodeDate            Code = 0x92
	CodeDateTime        Code = 0x93
	CodeTime            Code = 0x94
	CodeZonedDateTime   Code = 0x95
	CodeDateRange       Code = 0x97
	CodeDateTimeRange   Code = 0x98
	CodeTimeRange       Code = 0x99
	CodeStringASCII     Code = 0x9A
	CodeStringUTF8      Code = 0x9B
	CodeEmail           Code = 0x9C
	CodePhone           Code = 0x9D
	CodeURI             Code = 0x9E
	CodePassword        Code = 0x9F
	CodeFixedPoint32    Code = 0xA0
	CodeFixedPoint64    Code = 0xA1
	CodeLanguage        Code = 0xA2

	// MetadataTerminator follows the last property's metadata in the
	// metadata blob. No property code may collide with it.
	MetadataTerminator = 0xFF
)

// String returns the descriptor type name for the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

var codeNames = map[Code]string{
	CodeDivider:         "divider",
	CodeHeader:          "header",
	CodeOneOutOfM:       "one_out_of_m",
	CodeNOutOfM:         "n_out_of_m",
	CodeBool:            "bool",
	CodeArray:           "array",
	CodeUint8:           "uint8_t",
	CodeUint16:          "uint16_t",
	CodeUint32:          "uint32_t",
	CodeUint64:          "uint64_t",
	CodeInt8:            "int8_t",
	CodeInt16:           "int16_t",
	CodeInt32:           "int32_t",
	CodeInt64:           "int64_t",
	CodeFloat32:         "float",
	CodeFloat64:         "double",
	CodeNumberListInt:   "number_list_int",
	CodeNumberListFloat: "number_list_double",
	CodeDate:            "date",
	CodeDateTime:        "date_time",
	CodeTime:            "time",
	CodeZonedDateTime:   "zoned_date_time",
	CodeDateRange:       "date_range",
	CodeDateTimeRange:   "date_time_range",
	CodeTimeRange:       "time_range",
	CodeStringASCII:     "str_ascii",
	CodeStringUTF8:      "str_utf8",
	CodeEmail:           "str_mail",
	CodePhone:           "str_phone",
	CodeURI:             "str_uri",
	CodePassword:        "str_pwd",
	CodeFixedPoint32:    "fixp32",
	CodeFixedPoint64:    "fixp64",
	CodeLanguage:        "language",
}

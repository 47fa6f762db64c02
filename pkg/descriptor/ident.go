package descriptor

import (
	"fmt"
	"regexp"
)

// identPattern matches identifiers usable verbatim in generated C
// code: a letter followed by letters, digits and underscores.
var identPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// langCodePattern matches translation language codes: a two- or
// three-character base tag with optional underscore-joined subtags
// ("en", "de", "pt_BR").
var langCodePattern = regexp.MustCompile(`^[a-zA-Z0-9]{2,3}(_[a-zA-Z0-9]+)*$`)

// reservedWords are identifiers a property id must not use: C keywords
// plus the type and helper names of the generated accessor library.
var reservedWords = map[string]bool{
	"auto": true, "break": true, "case": true, "char": true,
	"const": true, "continue": true, "default": true, "do": true,
	"double": true, "else": true, "enum": true, "extern": true,
	"float": true, "for": true, "goto": true, "if": true,
	"inline": true, "int": true, "long": true, "register": true,
	"restrict": true, "return": true, "short": true, "signed": true,
	"sizeof": true, "static": true, "struct": true, "switch": true,
	"typedef": true, "union": true, "unsigned": true, "void": true,
	"volatile": true, "while": true, "bool": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
	"int8_t": true, "int16_t": true, "int32_t": true, "int64_t": true,
	"time_point": true, "zone_offset": true, "zoned_time": true,
	"hh_mm_ss": true, "time_range": true, "date_range": true,
	"ndef_record": true, "data_last_written_timestamp": true,
}

// validateIdentifier checks that id is usable as a property
// identifier.
func validateIdentifier(id string) error {
	if !identPattern.MatchString(id) {
		return fmt.Errorf("invalid identifier %q", id)
	}
	if reservedWords[id] {
		return fmt.Errorf("identifier %q is a reserved word", id)
	}
	return nil
}

// validateLanguageCode checks a translation set's language code.
func validateLanguageCode(code string) error {
	if !langCodePattern.MatchString(code) {
		return fmt.Errorf("invalid language code %q", code)
	}
	return nil
}

// hasUpper reports whether id contains an uppercase ASCII letter.
// Uppercase ids are legal but warned against.
func hasUpper(id string) bool {
	for i := 0; i < len(id); i++ {
		if id[i] >= 'A' && id[i] <= 'Z' {
			return true
		}
	}
	return false
}

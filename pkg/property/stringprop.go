package property

import "unicode/utf8"

// stringCodes lists the type codes sharing the string encoding. Email,
// phone, URI and password are rendering/input hints for frontends; the
// wire layout is identical.
var stringCodes = map[Code]bool{
	CodeStringASCII: true,
	CodeStringUTF8:  true,
	CodeEmail:       true,
	CodePhone:       true,
	CodeURI:         true,
	CodePassword:    true,
}

// String is a length-limited text property. The descriptor declares
// max_length bytes of storage, of which max_length-1 hold encoded text
// in the data blob; the final byte is the implicit terminator of the
// generated byte-array member. Defaults are zero-padded to size.
type String struct {
	node
	maxLength int
	def       []byte
}

// NewString creates a string property of the kind named by code, which
// must be one of the six string type codes. ASCII-kind defaults must be
// pure ASCII; every default must fit in max_length-1 encoded bytes.
func NewString(code Code, id string, maxLength int, def string) (*String, error) {
	if !stringCodes[code] {
		return nil, nodeErrorf(id, "code %#02x is not a string kind", byte(code))
	}
	if maxLength < 1 {
		return nil, nodeErrorf(id, "max_length must be at least 1")
	}
	if maxLength > 255 {
		return nil, nodeErrorf(id, "max_length must be less than 256")
	}
	p := &String{node: node{code: code, id: id}, maxLength: maxLength}
	if code == CodeStringASCII && !isASCII(def) {
		return nil, nodeErrorf(id, "default value is not valid ASCII")
	}
	if !utf8.ValidString(def) {
		return nil, nodeErrorf(id, "default value is not valid UTF-8")
	}
	if len(def) > p.DataSize() {
		return nil, nodeErrorf(id, "default value must not exceed max_length - 1")
	}
	p.def = make([]byte, p.DataSize())
	copy(p.def, def)
	return p, nil
}

func (p *String) DataSize() int { return p.maxLength - 1 }

func (p *String) AppendMetadata(dst []byte, _ *Registry) ([]byte, error) {
	dst = p.appendHeader(dst)
	return append(dst, byte(p.maxLength)), nil
}

func (p *String) AppendData(dst []byte) []byte {
	return append(dst, p.def...)
}

func (p *String) Accessor() AccessorFacts {
	return AccessorFacts{
		CType:     "uint8_t",
		ByteCopy:  true,
		MemberLen: p.maxLength,
	}
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}

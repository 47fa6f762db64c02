package clib

import (
	"fmt"
	"strings"
	"text/template"
)

// fileData holds the pre-computed content of one rendered library.
// Snippet fields carry fully indented lines; the templates only
// provide the file scaffolding around them.
type fileData struct {
	Namespace     string
	StructName    string
	HeaderName    string
	SourceName    string
	Tab           string
	PayloadLength int
	StructMembers string
	Enums         string
	ReadLines     string
	WriteLines    string
	GetterSigs    string
	GetterBodies  string
}

var templates = template.Must(template.New("").Parse(headerTmpl + sourceTmpl))

// renderTemplate executes a named template into the builder.
func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

const headerTmpl = `{{define "header"}}#ifndef {{.Namespace}}
#define {{.Namespace}}

#include <stddef.h>
#include "eput_utils.h"

typedef struct {
{{.StructMembers}}{{.Tab}}time_point data_last_written_timestamp;
} {{.StructName}};

{{.Enums}}
#define DATA_PAYLOAD_LENGTH {{.PayloadLength}}

/**
 * @brief Create the payload of a data record from a data struct.
 *
 * Assumes ` + "`buf`" + ` is at least ` + "`DATA_PAYLOAD_LENGTH`" + ` long.
 *
 * @param buf Buffer to write data to
 * @param config Pointer to the configuration struct
 *
 * @return status code
 */
int generate_payload(uint8_t *buf, {{.StructName}} *config);

/**
 * @brief Parse the payload of a data record into a struct according to the configuration definition.
 *
 * @param buf Buffer containing the payload from NDEF record
 * @param buf_len Size of payload
 * @param config pointer to an instance of the configuration struct
 *
 * @return status code
 */
int parse_payload(uint8_t *buf, size_t buf_len, {{.StructName}} *config);

/**
 * @brief Parse the contents of NFC memory into a struct according to the configuration definition.
 *
 * @param buf Buffer containing the data from NFC memory
 * @param buf_len Size of ` + "`buf`" + `
 * @param config pointer to an instance of the configuration struct
 *
 * @return status code
 */
int parse_nfc(uint8_t *buf, size_t buf_len, {{.StructName}} *config);

/**
 * @brief Parse an NDEF message into a struct according to the configuration definition.
 *
 * @param buf Buffer containing the NDEF message
 * @param buf_len Size of buffer
 * @param config pointer to an instance of the configuration struct
 *
 * @return status code
 */
int parse_ndef(uint8_t *buf, size_t buf_len, {{.StructName}} *config);

{{.GetterSigs}}

#endif
{{end}}`

const sourceTmpl = `{{define "source"}}#include <stdint.h>
#include "{{.HeaderName}}"

int generate_payload(uint8_t *buf, {{.StructName}} *config) {
{{.WriteLines}}{{.Tab}}return SUCCESS;
}

int parse_payload(uint8_t *buf, size_t buf_len, {{.StructName}} *config) {
{{.Tab}}if (buf_len != {{.PayloadLength}}) {
{{.Tab}}{{.Tab}}return ERR_DATA_BUF_WRONG_LENGTH;
{{.Tab}}}
{{.ReadLines}}{{.Tab}}return SUCCESS;
}

int parse_nfc(uint8_t *buf, size_t buf_len, {{.StructName}} *config) {
{{.Tab}}size_t ndef_offset = 0;
{{.Tab}}uint16_t ndef_length = get_ndef_tlv_offset(buf, buf_len, &ndef_offset);
{{.Tab}}if (ndef_length == 0 || (ndef_offset + ndef_length) > buf_len) {
{{.Tab}}{{.Tab}}return ERR_NO_NDEF_TLV;
{{.Tab}}} else {
{{.Tab}}{{.Tab}}ndef_record meta = {0};
{{.Tab}}{{.Tab}}ndef_record data = {0};
{{.Tab}}{{.Tab}}int parse_ret = get_records(
{{.Tab}}{{.Tab}}{{.Tab}}buf + ndef_offset,
{{.Tab}}{{.Tab}}{{.Tab}}ndef_length,
{{.Tab}}{{.Tab}}{{.Tab}}&meta,
{{.Tab}}{{.Tab}}{{.Tab}}&data);
{{.Tab}}{{.Tab}}if (parse_ret == SUCCESS) {
{{.Tab}}{{.Tab}}{{.Tab}}return parse_payload(
{{.Tab}}{{.Tab}}{{.Tab}}{{.Tab}}data.payload,
{{.Tab}}{{.Tab}}{{.Tab}}{{.Tab}}data.payload_length,
{{.Tab}}{{.Tab}}{{.Tab}}{{.Tab}}config);
{{.Tab}}{{.Tab}}} else {
{{.Tab}}{{.Tab}}{{.Tab}}return parse_ret;
{{.Tab}}{{.Tab}}}
{{.Tab}}}
}

int parse_ndef(uint8_t *buf, size_t buf_len, {{.StructName}} *config) {
{{.Tab}}ndef_record meta = {0};
{{.Tab}}ndef_record data = {0};
{{.Tab}}int record_result = get_records(buf, buf_len, &meta, &data);
{{.Tab}}if (record_result == SUCCESS) {
{{.Tab}}{{.Tab}}return parse_payload(
{{.Tab}}{{.Tab}}{{.Tab}}data.payload,
{{.Tab}}{{.Tab}}{{.Tab}}data.payload_length,
{{.Tab}}{{.Tab}}{{.Tab}}config);
{{.Tab}}} else {
{{.Tab}}{{.Tab}}return record_result;
{{.Tab}}}
}

{{.GetterBodies}}{{end}}`

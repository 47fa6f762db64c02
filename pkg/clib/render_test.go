package clib

import (
	"strings"
	"testing"

	"github.com/eput-protocol/eputgen-go/pkg/layout"
	"github.com/eput-protocol/eputgen-go/pkg/property"
)

func i64(v int64) *int64 { return &v }

// renderProps builds a small mixed property tree: a guarded integer,
// a selection, a string and an array of scalar pairs.
func renderProps(t *testing.T) []property.Property {
	t.Helper()
	var diag property.Diagnostics
	reg := property.NewRegistry()
	for _, id := range []string{"speed", "mode", "eco", "fast", "name", "stages", "duration", "active"} {
		if err := reg.Add(id); err != nil {
			t.Fatalf("Add(%q): %v", id, err)
		}
	}
	reg.Freeze()

	speed, err := property.NewInt(property.CodeUint16, property.IntConfig{
		ID: "speed", Min: i64(0), Max: i64(1400), Step: i64(200),
	}, &diag)
	if err != nil {
		t.Fatalf("NewInt: %v", err)
	}
	mode, err := property.NewOneOf(property.SelectConfig{
		ID:      "mode",
		Entries: []string{"eco", "fast"},
	}, reg)
	if err != nil {
		t.Fatalf("NewOneOf: %v", err)
	}
	name, err := property.NewString(property.CodeStringASCII, "name", 8, "")
	if err != nil {
		t.Fatalf("NewString: %v", err)
	}
	duration, err := property.NewInt(property.CodeUint8, property.IntConfig{ID: "duration"}, &diag)
	if err != nil {
		t.Fatalf("NewInt: %v", err)
	}
	active, err := property.NewBool(property.BoolConfig{ID: "active"}, reg)
	if err != nil {
		t.Fatalf("NewBool: %v", err)
	}
	stages, err := property.NewArray("stages", 2, []property.Property{duration, active})
	if err != nil {
		t.Fatalf("NewArray: %v", err)
	}
	return []property.Property{speed, mode, name, stages}
}

func render(t *testing.T, cfg Config) *Output {
	t.Helper()
	props := renderProps(t)
	out, err := Render(props, layout.Emit(props), cfg)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

func TestRenderNames(t *testing.T) {
	out := render(t, Config{LibName: "washer"})
	if out.HeaderName != "eput_washer.h" {
		t.Errorf("header name = %q", out.HeaderName)
	}
	if out.SourceName != "eput_washer.c" {
		t.Errorf("source name = %q", out.SourceName)
	}
	if !strings.Contains(out.Header, "#ifndef washer\n#define washer\n") {
		t.Error("missing include guard")
	}
	if !strings.Contains(out.Source, `#include "eput_washer.h"`) {
		t.Error("source does not include its header")
	}
}

func TestRenderStruct(t *testing.T) {
	out := render(t, Config{LibName: "washer"})

	// speed(2) + mode(1) + name(7) + 2*(duration(1)+active(1)) + trailer(8)
	if !strings.Contains(out.Header, "#define DATA_PAYLOAD_LENGTH 22\n") {
		t.Errorf("wrong payload length in header:\n%s", out.Header)
	}

	wantStruct := "typedef struct {\n" +
		"    uint16_t speed;\n" +
		"    uint8_t mode;\n" +
		"    uint8_t name[8];\n" +
		"    struct {\n" +
		"        uint8_t duration;\n" +
		"        uint8_t active;\n" +
		"    } stages[2];\n" +
		"    time_point data_last_written_timestamp;\n" +
		"} washer_config;\n"
	if !strings.Contains(out.Header, wantStruct) {
		t.Errorf("struct mismatch:\n%s", out.Header)
	}
}

func TestRenderReadWriteLines(t *testing.T) {
	out := render(t, Config{LibName: "washer"})

	reads := []string{
		"    config->speed = bytes_to_uint16(buf + 0);\n",
		"    config->mode = bytes_to_uint8(buf + 2);\n",
		"    for (int i = 0; i < 7; i++) {\n        config->name[i] = *(buf + 3 + i);\n    }\n",
		"    config->stages[0].duration = bytes_to_uint8(buf + 10);\n",
		"    config->stages[1].active = bytes_to_bool(buf + 13);\n",
		"    config->data_last_written_timestamp = bytes_to_time_point(buf + 14);\n",
	}
	for _, want := range reads {
		if !strings.Contains(out.Source, want) {
			t.Errorf("missing read line %q in:\n%s", want, out.Source)
		}
	}

	writes := []string{
		"    uint16_to_bytes(config->speed, buf + 0);\n",
		"    for (int i = 0; i < 7; i++) {\n        *(buf + 3 + i) = config->name[i];\n    }\n",
		"    uint8_to_bytes(config->stages[1].duration, buf + 12);\n",
		"    time_point_to_bytes(config->data_last_written_timestamp, buf + 14);\n",
	}
	for _, want := range writes {
		if !strings.Contains(out.Source, want) {
			t.Errorf("missing write line %q in:\n%s", want, out.Source)
		}
	}

	if !strings.Contains(out.Source, "if (buf_len != 22) {\n        return ERR_DATA_BUF_WRONG_LENGTH;\n") {
		t.Error("missing payload length check")
	}
}

func TestRenderFixedPointScale(t *testing.T) {
	price, err := property.NewFixedPoint32(property.FixedPointConfig{ID: "price", Scale: 100})
	if err != nil {
		t.Fatalf("NewFixedPoint32: %v", err)
	}
	props := []property.Property{price}
	out, err := Render(props, layout.Emit(props), Config{LibName: "shop"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out.Source, "config->price = bytes_to_fixp32(buf + 0, 100);\n") {
		t.Errorf("fixed-point read missing scale argument:\n%s", out.Source)
	}
	if !strings.Contains(out.Source, "fixp32_to_bytes(config->price, buf + 0);\n") {
		t.Errorf("fixed-point write line missing:\n%s", out.Source)
	}
}

func TestRenderEnums(t *testing.T) {
	out := render(t, Config{LibName: "washer", Enums: true})
	want := "typedef enum {\n    eco=0,\n    fast=1,\n} mode_options;\n"
	if !strings.Contains(out.Header, want) {
		t.Errorf("enum missing:\n%s", out.Header)
	}

	plain := render(t, Config{LibName: "washer"})
	if strings.Contains(plain.Header, "typedef enum") {
		t.Error("enums rendered without the option")
	}
}

func TestRenderGetters(t *testing.T) {
	out := render(t, Config{LibName: "washer", Getters: true})

	if !strings.Contains(out.Header, "uint16_t get_speed(uint16_t speed);\n") {
		t.Errorf("getter declaration missing:\n%s", out.Header)
	}

	wantBody := "uint16_t get_speed(uint16_t speed) {\n" +
		"    if (speed < 0) {\n        return 0;\n    }\n" +
		"    if (speed > 1400) {\n        return 1400;\n    }\n" +
		"    if (speed % 200 != 0) {\n        return (speed / 200) * 200;\n    }\n" +
		"    return speed;\n}\n"
	if !strings.Contains(out.Source, wantBody) {
		t.Errorf("numeric getter body mismatch:\n%s", out.Source)
	}

	// One-of getter caps the 1-based index at the entry count.
	wantMode := "uint8_t get_mode(uint8_t mode) {\n" +
		"    if (mode > 2) {\n        return 0;\n    } else {\n        return mode;\n    }\n}\n"
	if !strings.Contains(out.Source, wantMode) {
		t.Errorf("selection getter body mismatch:\n%s", out.Source)
	}

	plain := render(t, Config{LibName: "washer"})
	if strings.Contains(plain.Source, "get_speed") {
		t.Error("getters rendered without the option")
	}
}

func TestRenderClockGetters(t *testing.T) {
	start := property.NewTime("start", nil)
	window := property.NewTimeRange("window", nil, nil)
	props := []property.Property{start, window}
	out, err := Render(props, layout.Emit(props), Config{LibName: "sched", Getters: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	for _, want := range []string{
		"hh_mm_ss get_start(hh_mm_ss start) {\n",
		"    hh_mm_ss return_val = {\n        start.hours,\n        start.minutes,\n        start.seconds\n    };\n",
		"    if (return_val.hours > 23) {\n        return_val.hours = 23;\n    }\n",
		"time_range get_window(time_range window) {\n",
		"    time_range return_val = {return_val_from, return_val_to};\n",
	} {
		if !strings.Contains(out.Source, want) {
			t.Errorf("missing %q in:\n%s", want, out.Source)
		}
	}
}

func TestRenderNumberListGetter(t *testing.T) {
	def := int64(40)
	temp, err := property.NewIntList("temp", []int64{30, 40, 60}, &def)
	if err != nil {
		t.Fatalf("NewIntList: %v", err)
	}
	props := []property.Property{temp}
	out, err := Render(props, layout.Emit(props), Config{LibName: "washer", Getters: true})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "    if (temp == 30) {\n        return temp;\n    }\n" +
		"    if (temp == 40) {\n        return temp;\n    }\n" +
		"    if (temp == 60) {\n        return temp;\n    }\n" +
		"    return 30;\n"
	if !strings.Contains(out.Source, want) {
		t.Errorf("number-list getter mismatch:\n%s", out.Source)
	}
}

func TestRenderTabWidth(t *testing.T) {
	out := render(t, Config{LibName: "washer", TabWidth: 2})
	if !strings.Contains(out.Header, "  uint16_t speed;\n") {
		t.Errorf("two-space indentation not applied:\n%s", out.Header)
	}
}

func TestRenderEmptyLibName(t *testing.T) {
	props := renderProps(t)
	if _, err := Render(props, layout.Emit(props), Config{}); err == nil {
		t.Fatal("expected error for empty library name")
	}
}

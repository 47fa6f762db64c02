package descriptor

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/eput-protocol/eputgen-go/pkg/property"
)

// rawProperty is the union of every property kind's YAML fields. The
// per-category schema check rejects keys a kind does not declare, so
// decoding into the union never hides a misplaced field.
type rawProperty struct {
	Type           string      `yaml:"type"`
	ID             string      `yaml:"id"`
	Entries        []string    `yaml:"entries"`
	Dependencies   yaml.Node   `yaml:"dependencies"`
	Default        yaml.Node   `yaml:"default"`
	MaxEntries     int         `yaml:"max_entries"`
	Properties     []yaml.Node `yaml:"properties"`
	MinValue       yaml.Node   `yaml:"min_value"`
	MaxValue       yaml.Node   `yaml:"max_value"`
	StepSize       *int64      `yaml:"step_size"`
	ContentType    string      `yaml:"content_type"`
	ContentTypeDef string      `yaml:"content_type_def"`
	MaxLength      int         `yaml:"max_length"`
	Numbers        yaml.Node   `yaml:"numbers"`
	Scale          int32       `yaml:"scale"`
}

// category groups property kinds sharing a YAML schema.
type category string

const (
	catModifier  category = "modifier"
	catSelection category = "item_selection"
	catLanguage  category = "language_selection"
	catTime      category = "time"
	catInteger   category = "integer"
	catFloat     category = "float"
	catFixed     category = "fixed"
	catString    category = "string"
	catBool      category = "bool"
	catArray     category = "array"
	catNumbers   category = "number_list"
)

var typeCategories = map[string]category{
	"divider": catModifier, "header": catModifier,
	"one_out_of_m": catSelection, "n_out_of_m": catSelection,
	"language": catLanguage,
	"date":     catTime, "date_time": catTime, "time": catTime,
	"zoned_date_time": catTime, "date_range": catTime,
	"date_time_range": catTime, "time_range": catTime,
	"uint8_t": catInteger, "uint16_t": catInteger,
	"uint32_t": catInteger, "uint64_t": catInteger,
	"int8_t": catInteger, "int16_t": catInteger,
	"int32_t": catInteger, "int64_t": catInteger,
	"float": catFloat, "double": catFloat,
	"fixp32": catFixed, "fixp64": catFixed,
	"str_ascii": catString, "str_utf8": catString,
	"str_mail": catString, "str_phone": catString,
	"str_uri": catString, "str_pwd": catString,
	"bool":  catBool,
	"array": catArray,
	"number_list_int": catNumbers, "number_list_double": catNumbers,
}

var typeCodes = map[string]property.Code{
	"uint8_t": property.CodeUint8, "uint16_t": property.CodeUint16,
	"uint32_t": property.CodeUint32, "uint64_t": property.CodeUint64,
	"int8_t": property.CodeInt8, "int16_t": property.CodeInt16,
	"int32_t": property.CodeInt32, "int64_t": property.CodeInt64,
	"str_ascii": property.CodeStringASCII, "str_utf8": property.CodeStringUTF8,
	"str_mail": property.CodeEmail, "str_phone": property.CodePhone,
	"str_uri": property.CodeURI, "str_pwd": property.CodePassword,
}

// categoryKeys lists the YAML keys each schema accepts. "type" is
// implicit everywhere.
var categoryKeys = map[category]map[string]bool{
	catModifier:  keySet("id"),
	catSelection: keySet("id", "entries", "dependencies", "default"),
	catLanguage:  keySet("id", "entries", "default"),
	catTime:      keySet("id", "default"),
	catInteger:   keySet("id", "min_value", "max_value", "step_size", "content_type", "content_type_def", "default"),
	catFloat:     keySet("id", "min_value", "max_value", "content_type", "content_type_def", "default"),
	catFixed:     keySet("id", "scale", "min_value", "max_value", "content_type", "content_type_def", "default"),
	catString:    keySet("id", "max_length", "default"),
	catBool:      keySet("id", "dependencies", "default"),
	catArray:     keySet("id", "max_entries", "properties"),
	catNumbers:   keySet("id", "numbers", "default"),
}

// categoryRequired lists keys that must be present, beyond "type".
// Modifiers are the only kind with an optional id.
var categoryRequired = map[category][]string{
	catSelection: {"id", "entries"},
	catLanguage:  {"id", "entries"},
	catTime:      {"id"},
	catInteger:   {"id"},
	catFloat:     {"id"},
	catFixed:     {"id", "scale"},
	catString:    {"id", "max_length"},
	catBool:      {"id"},
	catArray:     {"id", "max_entries", "properties"},
	catNumbers:   {"id", "numbers"},
}

func keySet(keys ...string) map[string]bool {
	set := make(map[string]bool, len(keys)+1)
	set["type"] = true
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// builder constructs typed properties from raw YAML nodes against a
// frozen registry.
type builder struct {
	registry     *property.Registry
	diag         *property.Diagnostics
	languageSeen bool
}

func (b *builder) build(node *yaml.Node, inArray bool) (property.Property, error) {
	var raw rawProperty
	if err := node.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing property: %w", err)
	}
	cat, ok := typeCategories[raw.Type]
	if !ok {
		return nil, fmt.Errorf("property %q: unknown type %q", raw.ID, raw.Type)
	}
	if err := checkSchema(node, raw.ID, cat); err != nil {
		return nil, err
	}
	if raw.ID != "" && hasUpper(raw.ID) {
		b.diag.Warnf(raw.ID, "avoid using uppercase characters in IDs")
	}

	switch cat {
	case catModifier:
		if raw.Type == "divider" {
			return property.NewDivider(raw.ID), nil
		}
		return property.NewHeader(raw.ID), nil
	case catSelection, catLanguage:
		return b.buildSelection(&raw, cat, inArray)
	case catTime:
		return b.buildTime(&raw)
	case catInteger:
		return b.buildInt(&raw)
	case catFloat:
		return b.buildFloat(&raw)
	case catFixed:
		return b.buildFixedPoint(&raw)
	case catString:
		return b.buildString(&raw)
	case catBool:
		return b.buildBool(&raw)
	case catArray:
		return b.buildArray(&raw)
	case catNumbers:
		return b.buildNumberList(&raw)
	}
	return nil, fmt.Errorf("property %q: unhandled category %q", raw.ID, cat)
}

// checkSchema rejects keys outside the category's schema and missing
// required keys.
func checkSchema(node *yaml.Node, id string, cat category) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("property %q: expected a mapping", id)
	}
	allowed := categoryKeys[cat]
	present := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !allowed[key] {
			return fmt.Errorf("property %q: key %q not allowed for this type", id, key)
		}
		present[key] = true
	}
	for _, key := range categoryRequired[cat] {
		if !present[key] {
			return fmt.Errorf("property %q: missing required key %q", id, key)
		}
	}
	return nil
}

func (b *builder) buildSelection(raw *rawProperty, cat category, inArray bool) (property.Property, error) {
	cfg := property.SelectConfig{ID: raw.ID, Entries: raw.Entries}
	var err error
	if cfg.Dependencies, err = decodeDependencyRules(&raw.Dependencies, raw.ID); err != nil {
		return nil, err
	}
	switch raw.Type {
	case "one_out_of_m":
		if err := decodeOptional(&raw.Default, &cfg.DefaultEntry); err != nil {
			return nil, fmt.Errorf("property %q: %w", raw.ID, err)
		}
		return property.NewOneOf(cfg, b.registry)
	case "n_out_of_m":
		if err := decodeNOfMDefault(&raw.Default, &cfg); err != nil {
			return nil, fmt.Errorf("property %q: %w", raw.ID, err)
		}
		return property.NewNOfM(cfg, b.registry)
	case "language":
		if inArray {
			return nil, fmt.Errorf("property %q: language property not allowed in arrays", raw.ID)
		}
		if b.languageSeen {
			return nil, fmt.Errorf("property %q: only one language property allowed", raw.ID)
		}
		b.languageSeen = true
		if err := decodeOptional(&raw.Default, &cfg.DefaultEntry); err != nil {
			return nil, fmt.Errorf("property %q: %w", raw.ID, err)
		}
		return property.NewLanguage(cfg, b.registry)
	}
	return nil, fmt.Errorf("property %q: unhandled selection type %q", raw.ID, raw.Type)
}

func (b *builder) buildTime(raw *rawProperty) (property.Property, error) {
	var def string
	if err := decodeOptional(&raw.Default, &def); err != nil {
		return nil, fmt.Errorf("property %q: %w", raw.ID, err)
	}
	hasDefault := raw.Default.Kind != 0

	switch raw.Type {
	case "date", "date_time":
		var at *time.Time
		if hasDefault {
			t, err := parseTimestamp(def)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", raw.ID, err)
			}
			at = t
		}
		if raw.Type == "date" {
			return property.NewDate(raw.ID, at), nil
		}
		return property.NewDateTime(raw.ID, at), nil
	case "zoned_date_time":
		if !hasDefault {
			return property.NewZonedDateTime(raw.ID, nil), nil
		}
		t, err := parseZonedTimestamp(def)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", raw.ID, err)
		}
		return property.NewZonedDateTime(raw.ID, t), nil
	case "time":
		if !hasDefault {
			return property.NewTime(raw.ID, nil), nil
		}
		c, err := parseClock(def)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", raw.ID, err)
		}
		return property.NewTime(raw.ID, c), nil
	case "date_range", "date_time_range":
		if !hasDefault {
			if raw.Type == "date_range" {
				return property.NewDateRange(raw.ID, nil, nil), nil
			}
			return property.NewDateTimeRange(raw.ID, nil, nil), nil
		}
		fromStr, toStr, err := splitRange(def)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", raw.ID, err)
		}
		from, err := parseTimestamp(fromStr)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", raw.ID, err)
		}
		to, err := parseTimestamp(toStr)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", raw.ID, err)
		}
		if raw.Type == "date_range" {
			return property.NewDateRange(raw.ID, from, to), nil
		}
		return property.NewDateTimeRange(raw.ID, from, to), nil
	case "time_range":
		if !hasDefault {
			return property.NewTimeRange(raw.ID, nil, nil), nil
		}
		fromStr, toStr, err := splitRange(def)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", raw.ID, err)
		}
		from, err := parseClock(fromStr)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", raw.ID, err)
		}
		to, err := parseClock(toStr)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", raw.ID, err)
		}
		return property.NewTimeRange(raw.ID, from, to), nil
	}
	return nil, fmt.Errorf("property %q: unhandled time type %q", raw.ID, raw.Type)
}

func (b *builder) buildInt(raw *rawProperty) (property.Property, error) {
	cfg := property.IntConfig{
		ID:          raw.ID,
		Step:        raw.StepSize,
		ContentType: raw.ContentType,
		Unit:        raw.ContentTypeDef,
	}
	var err error
	if cfg.Min, err = decodeOptionalInt(&raw.MinValue); err != nil {
		return nil, fmt.Errorf("property %q: min_value: %w", raw.ID, err)
	}
	if cfg.Max, err = decodeOptionalInt(&raw.MaxValue); err != nil {
		return nil, fmt.Errorf("property %q: max_value: %w", raw.ID, err)
	}
	if err = decodeOptional(&raw.Default, &cfg.Default); err != nil {
		return nil, fmt.Errorf("property %q: %w", raw.ID, err)
	}
	return property.NewInt(typeCodes[raw.Type], cfg, b.diag)
}

func (b *builder) buildFloat(raw *rawProperty) (property.Property, error) {
	cfg := property.FloatConfig{
		ID:          raw.ID,
		ContentType: raw.ContentType,
		Unit:        raw.ContentTypeDef,
	}
	var err error
	if cfg.Min, err = decodeOptionalFloat(&raw.MinValue); err != nil {
		return nil, fmt.Errorf("property %q: min_value: %w", raw.ID, err)
	}
	if cfg.Max, err = decodeOptionalFloat(&raw.MaxValue); err != nil {
		return nil, fmt.Errorf("property %q: max_value: %w", raw.ID, err)
	}
	if err = decodeOptional(&raw.Default, &cfg.Default); err != nil {
		return nil, fmt.Errorf("property %q: %w", raw.ID, err)
	}
	if raw.Type == "float" {
		return property.NewFloat32(cfg)
	}
	return property.NewFloat64(cfg)
}

func (b *builder) buildFixedPoint(raw *rawProperty) (property.Property, error) {
	cfg := property.FixedPointConfig{
		ID:          raw.ID,
		Scale:       raw.Scale,
		ContentType: raw.ContentType,
		Unit:        raw.ContentTypeDef,
	}
	var err error
	if cfg.Min, err = decodeOptionalInt(&raw.MinValue); err != nil {
		return nil, fmt.Errorf("property %q: min_value: %w", raw.ID, err)
	}
	if cfg.Max, err = decodeOptionalInt(&raw.MaxValue); err != nil {
		return nil, fmt.Errorf("property %q: max_value: %w", raw.ID, err)
	}
	if err = decodeOptional(&raw.Default, &cfg.Default); err != nil {
		return nil, fmt.Errorf("property %q: %w", raw.ID, err)
	}
	if raw.Type == "fixp32" {
		return property.NewFixedPoint32(cfg)
	}
	return property.NewFixedPoint64(cfg)
}

func (b *builder) buildString(raw *rawProperty) (property.Property, error) {
	var def string
	if err := decodeOptional(&raw.Default, &def); err != nil {
		return nil, fmt.Errorf("property %q: %w", raw.ID, err)
	}
	return property.NewString(typeCodes[raw.Type], raw.ID, raw.MaxLength, def)
}

func (b *builder) buildBool(raw *rawProperty) (property.Property, error) {
	cfg := property.BoolConfig{ID: raw.ID}
	if err := decodeOptional(&raw.Default, &cfg.Default); err != nil {
		return nil, fmt.Errorf("property %q: %w", raw.ID, err)
	}
	if raw.Dependencies.Kind != 0 {
		var err error
		cfg.RequiresWhenTrue, cfg.RequiresWhenFalse, err = decodeBoolDependencies(&raw.Dependencies, raw.ID)
		if err != nil {
			return nil, err
		}
	}
	return property.NewBool(cfg, b.registry)
}

func (b *builder) buildArray(raw *rawProperty) (property.Property, error) {
	var children []property.Property
	for i := range raw.Properties {
		child, err := b.build(&raw.Properties[i], true)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return property.NewArray(raw.ID, raw.MaxEntries, children)
}

func (b *builder) buildNumberList(raw *rawProperty) (property.Property, error) {
	if raw.Type == "number_list_int" {
		var values []int64
		if err := raw.Numbers.Decode(&values); err != nil {
			return nil, fmt.Errorf("property %q: numbers: %w", raw.ID, err)
		}
		var def *int64
		if raw.Default.Kind != 0 {
			var v int64
			if err := raw.Default.Decode(&v); err != nil {
				return nil, fmt.Errorf("property %q: default: %w", raw.ID, err)
			}
			def = &v
		}
		return property.NewIntList(raw.ID, values, def)
	}
	var values []float64
	if err := raw.Numbers.Decode(&values); err != nil {
		return nil, fmt.Errorf("property %q: numbers: %w", raw.ID, err)
	}
	var def *float64
	if raw.Default.Kind != 0 {
		var v float64
		if err := raw.Default.Decode(&v); err != nil {
			return nil, fmt.Errorf("property %q: default: %w", raw.ID, err)
		}
		def = &v
	}
	return property.NewFloatList(raw.ID, values, def)
}

// decodeDependencyRules decodes an ordered mapping of selection-entry
// labels to dependency lists. Order is preserved because the metadata
// encoding is order-sensitive.
func decodeDependencyRules(node *yaml.Node, id string) ([]property.DependencyRule, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("property %q: dependencies must be a mapping", id)
	}
	var rules []property.DependencyRule
	for i := 0; i+1 < len(node.Content); i += 2 {
		rule := property.DependencyRule{Option: node.Content[i].Value}
		if err := node.Content[i+1].Decode(&rule.Requires); err != nil {
			return nil, fmt.Errorf("property %q: dependencies for %q: %w", id, rule.Option, err)
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// decodeBoolDependencies decodes a bool property's dependency mapping
// with its True and False keys.
func decodeBoolDependencies(node *yaml.Node, id string) (whenTrue, whenFalse []string, err error) {
	if node.Kind != yaml.MappingNode {
		return nil, nil, fmt.Errorf("property %q: dependencies must be a mapping", id)
	}
	seen := make(map[string]bool)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := strings.ToLower(node.Content[i].Value)
		seen[key] = true
		switch key {
		case "true":
			err = node.Content[i+1].Decode(&whenTrue)
		case "false":
			err = node.Content[i+1].Decode(&whenFalse)
		default:
			return nil, nil, fmt.Errorf("property %q: dependency key must be True or False, got %q", id, node.Content[i].Value)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("property %q: dependencies: %w", id, err)
		}
	}
	if !seen["true"] || !seen["false"] {
		return nil, nil, fmt.Errorf("property %q: dependencies need both True and False lists", id)
	}
	return whenTrue, whenFalse, nil
}

// decodeOptional decodes node into out when present, leaving out
// untouched otherwise.
func decodeOptional[T any](node *yaml.Node, out *T) error {
	if node.Kind == 0 {
		return nil
	}
	return node.Decode(out)
}

func decodeOptionalInt(node *yaml.Node) (*int64, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	var v int64
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func decodeOptionalFloat(node *yaml.Node) (*float64, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	var v float64
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

// decodeNOfMDefault accepts either a single entry label or a list of
// labels as the pre-selected set.
func decodeNOfMDefault(node *yaml.Node, cfg *property.SelectConfig) error {
	switch node.Kind {
	case 0:
		return nil
	case yaml.SequenceNode:
		return node.Decode(&cfg.DefaultEntries)
	default:
		var single string
		if err := node.Decode(&single); err != nil {
			return err
		}
		cfg.DefaultEntries = []string{single}
		return nil
	}
}

package property

import "time"

// epochMillis returns t as signed milliseconds since the Unix epoch,
// or 0 for the zero default.
func epochMillis(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

// Timestamp is an absolute point in time stored as a signed 64-bit
// big-endian count of epoch milliseconds. Two type codes share the
// encoding: date-only and full date-time; the distinction is purely a
// frontend rendering hint.
type Timestamp struct {
	node
	def *time.Time
}

// NewDate creates a date property.
func NewDate(id string, def *time.Time) *Timestamp {
	return &Timestamp{node: node{code: CodeDate, id: id}, def: def}
}

// NewDateTime creates a date-time property.
func NewDateTime(id string, def *time.Time) *Timestamp {
	return &Timestamp{node: node{code: CodeDateTime, id: id}, def: def}
}

func (p *Timestamp) DataSize() int { return 8 }

func (p *Timestamp) AppendMetadata(dst []byte, _ *Registry) ([]byte, error) {
	return p.appendHeader(dst), nil
}

func (p *Timestamp) AppendData(dst []byte) []byte {
	return appendUint(dst, uint64(epochMillis(p.def)), 8)
}

func (p *Timestamp) Accessor() AccessorFacts {
	return AccessorFacts{
		CType:     "time_point",
		ReadFunc:  "bytes_to_time_point",
		WriteFunc: "time_point_to_bytes",
	}
}

// ClockValue is a wall-clock time of day.
type ClockValue struct {
	Hour   uint8
	Minute uint8
	Second uint8
}

// Clock is a wall-clock time property stored as an (hour, minute,
// second) byte triple.
type Clock struct {
	node
	def ClockValue
}

// NewTime creates a wall-clock time property. A nil default encodes
// as 00:00:00.
func NewTime(id string, def *ClockValue) *Clock {
	p := &Clock{node: node{code: CodeTime, id: id}}
	if def != nil {
		p.def = *def
	}
	return p
}

func (p *Clock) DataSize() int { return 3 }

func (p *Clock) AppendMetadata(dst []byte, _ *Registry) ([]byte, error) {
	return p.appendHeader(dst), nil
}

func (p *Clock) AppendData(dst []byte) []byte {
	return append(dst, p.def.Hour, p.def.Minute, p.def.Second)
}

func (p *Clock) Accessor() AccessorFacts {
	return AccessorFacts{
		CType:     "hh_mm_ss",
		ReadFunc:  "bytes_to_hh_mm_ss",
		WriteFunc: "hh_mm_ss_to_bytes",
		Guards:    Guards{Clock: true},
	}
}

// ZonedTimestamp is a date-time with time zone: 8 bytes of epoch
// milliseconds followed by a signed 2-byte UTC offset in minutes.
type ZonedTimestamp struct {
	node
	def *time.Time
}

// NewZonedDateTime creates a zoned date-time property. The UTC offset
// is taken from the default's location.
func NewZonedDateTime(id string, def *time.Time) *ZonedTimestamp {
	return &ZonedTimestamp{node: node{code: CodeZonedDateTime, id: id}, def: def}
}

func (p *ZonedTimestamp) DataSize() int { return 10 }

func (p *ZonedTimestamp) AppendMetadata(dst []byte, _ *Registry) ([]byte, error) {
	return p.appendHeader(dst), nil
}

func (p *ZonedTimestamp) AppendData(dst []byte) []byte {
	var offsetMinutes int64
	if p.def != nil {
		_, offsetSeconds := p.def.Zone()
		offsetMinutes = int64(offsetSeconds / 60)
	}
	dst = appendUint(dst, uint64(epochMillis(p.def)), 8)
	return appendUint(dst, uint64(offsetMinutes), 2)
}

func (p *ZonedTimestamp) Accessor() AccessorFacts {
	return AccessorFacts{
		CType:     "zoned_time",
		ReadFunc:  "bytes_to_zoned_time",
		WriteFunc: "zoned_time_to_bytes",
	}
}

// TimestampRange is a pair of absolute timestamps (from, to), each
// encoded like Timestamp. Date-range and date-time-range share the
// encoding under distinct type codes.
type TimestampRange struct {
	node
	from *time.Time
	to   *time.Time
}

// NewDateRange creates a date-range property.
func NewDateRange(id string, from, to *time.Time) *TimestampRange {
	return &TimestampRange{node: node{code: CodeDateRange, id: id}, from: from, to: to}
}

// NewDateTimeRange creates a date-time-range property.
func NewDateTimeRange(id string, from, to *time.Time) *TimestampRange {
	return &TimestampRange{node: node{code: CodeDateTimeRange, id: id}, from: from, to: to}
}

func (p *TimestampRange) DataSize() int { return 16 }

func (p *TimestampRange) AppendMetadata(dst []byte, _ *Registry) ([]byte, error) {
	return p.appendHeader(dst), nil
}

func (p *TimestampRange) AppendData(dst []byte) []byte {
	dst = appendUint(dst, uint64(epochMillis(p.from)), 8)
	return appendUint(dst, uint64(epochMillis(p.to)), 8)
}

func (p *TimestampRange) Accessor() AccessorFacts {
	return AccessorFacts{
		CType:     "date_range",
		ReadFunc:  "bytes_to_date_range",
		WriteFunc: "date_range_to_bytes",
	}
}

// ClockRange is a pair of wall-clock times, two (h, m, s) triples.
type ClockRange struct {
	node
	from ClockValue
	to   ClockValue
}

// NewTimeRange creates a time-range property. Nil ends encode as
// 00:00:00.
func NewTimeRange(id string, from, to *ClockValue) *ClockRange {
	p := &ClockRange{node: node{code: CodeTimeRange, id: id}}
	if from != nil {
		p.from = *from
	}
	if to != nil {
		p.to = *to
	}
	return p
}

func (p *ClockRange) DataSize() int { return 6 }

func (p *ClockRange) AppendMetadata(dst []byte, _ *Registry) ([]byte, error) {
	return p.appendHeader(dst), nil
}

func (p *ClockRange) AppendData(dst []byte) []byte {
	dst = append(dst, p.from.Hour, p.from.Minute, p.from.Second)
	return append(dst, p.to.Hour, p.to.Minute, p.to.Second)
}

func (p *ClockRange) Accessor() AccessorFacts {
	return AccessorFacts{
		CType:     "time_range",
		ReadFunc:  "bytes_to_time_range",
		WriteFunc: "time_range_to_bytes",
		Guards:    Guards{ClockRange: true},
	}
}

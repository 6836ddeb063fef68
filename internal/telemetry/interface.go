package telemetry

import "context"

// AtomID identifies the record schema a value array belongs to.
type AtomID int32

const (
	AtomChargeStats      AtomID = 105001
	AtomVoltageTierStats AtomID = 105006
)

// ValueKind is the numeric kind of one schema slot.
type ValueKind int

const (
	IntKind ValueKind = iota
	FloatKind
)

// Value is one slot of a record's dense value array. Unwritten slots
// keep the zero value of their kind.
type Value struct {
	Kind  ValueKind
	Int   int32
	Float float32
}

// IntValue builds an integer slot value.
func IntValue(v int32) Value {
	return Value{Kind: IntKind, Int: v}
}

// FloatValue builds a floating-point slot value.
func FloatValue(v float32) Value {
	return Value{Kind: FloatKind, Float: v}
}

// Record is one finished telemetry record: a dense value array sized to
// the atom's schema width, indexed by field ID minus the schema base
// offset.
type Record struct {
	Atom   AtomID
	Values []Value
}

// Reporter accepts finished records. Delivery guarantees past the call
// are the sink's concern.
type Reporter interface {
	Report(ctx context.Context, record *Record) error
	Close() error
}

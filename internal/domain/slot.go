package domain

// SlotKind discriminates the closed union of slot value types.
type SlotKind int

const (
	SlotKindNull SlotKind = iota
	SlotKindString
	SlotKindNumber
	SlotKindBool
	SlotKindStruct
	SlotKindList
)

func (k SlotKind) String() string {
	switch k {
	case SlotKindNull:
		return "null"
	case SlotKindString:
		return "string"
	case SlotKindNumber:
		return "number"
	case SlotKindBool:
		return "bool"
	case SlotKindStruct:
		return "struct"
	case SlotKindList:
		return "list"
	default:
		return "unknown"
	}
}

// SlotValue is a typed slot parameter extracted from a user utterance.
// Dialogflow delivers a full protobuf value union; Alexa and Clova only
// ever produce strings. Handlers switch on Kind() exhaustively instead
// of type-asserting an untyped any.
type SlotValue struct {
	kind SlotKind
	str  string
	num  float64
	b    bool
	obj  map[string]any
	list []SlotValue
}

func NullValue() SlotValue                    { return SlotValue{kind: SlotKindNull} }
func StringValue(s string) SlotValue          { return SlotValue{kind: SlotKindString, str: s} }
func NumberValue(n float64) SlotValue         { return SlotValue{kind: SlotKindNumber, num: n} }
func BoolValue(b bool) SlotValue              { return SlotValue{kind: SlotKindBool, b: b} }
func StructValue(m map[string]any) SlotValue  { return SlotValue{kind: SlotKindStruct, obj: m} }
func ListValue(vals []SlotValue) SlotValue    { return SlotValue{kind: SlotKindList, list: vals} }

func (v SlotValue) Kind() SlotKind { return v.kind }

// StringVal returns the string content; empty for other kinds.
func (v SlotValue) StringVal() string { return v.str }

func (v SlotValue) NumberVal() float64 { return v.num }

func (v SlotValue) BoolVal() bool { return v.b }

func (v SlotValue) StructVal() map[string]any { return v.obj }

func (v SlotValue) ListVal() []SlotValue { return v.list }

// Interface flattens the value back to plain Go types, mainly for
// logging and session round-trips.
func (v SlotValue) Interface() any {
	switch v.kind {
	case SlotKindString:
		return v.str
	case SlotKindNumber:
		return v.num
	case SlotKindBool:
		return v.b
	case SlotKindStruct:
		return v.obj
	case SlotKindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

package normalize

// RecordsKey is the field the RaMP API wraps its record collection in.
const RecordsKey = "data"

type Kind int

const (
	Unrecognized Kind = iota
	RecordSequence
	RecordHolder
	SingleRecord
)

func (k Kind) String() string {
	switch k {
	case RecordSequence:
		return "record sequence"
	case RecordHolder:
		return "record holder"
	case SingleRecord:
		return "single record"
	default:
		return "unrecognized"
	}
}

// Envelope is the outer shape of a decoded response together with the
// records it carries. Records is nil when Kind is Unrecognized.
type Envelope struct {
	Kind    Kind
	Records []any
}

func Classify(raw any) Envelope {
	switch v := raw.(type) {
	case []any:
		return Envelope{Kind: RecordSequence, Records: v}
	case map[string]any:
		data, found := v[RecordsKey]
		if !found {
			return Envelope{Kind: SingleRecord, Records: []any{v}}
		}
		switch d := data.(type) {
		case []any:
			return Envelope{Kind: RecordHolder, Records: d}
		case map[string]any:
			return Envelope{Kind: RecordHolder, Records: []any{d}}
		}
	}
	return Envelope{Kind: Unrecognized}
}

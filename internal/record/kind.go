package record

// Kind classifies a field's declared value type for operation checks.
type Kind int

const (
	KindOther Kind = iota
	KindText
	KindNumber
	KindBool
	KindTime
	KindList
)

var kindNames = map[Kind]string{
	KindOther:  "other",
	KindText:   "text",
	KindNumber: "number",
	KindBool:   "bool",
	KindTime:   "time",
	KindList:   "list",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

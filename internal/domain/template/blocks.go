package template

import "encoding/json"

// Block kinds understood by the renderer. Anything else is passed through to
// the generic fallback, if one is configured, or rendered as nothing.
const (
	KindParagraph = "paragraph"
	KindHeading   = "heading"
	KindImage     = "image"
	KindColumns   = "columns"
	KindColumn    = "column"
	KindSpacer    = "spacer"
	KindList      = "list"
	KindQuote     = "quote"
	KindSeparator = "separator"
)

// Block is one node of the certificate template tree.
//
// Children is populated only for container kinds (columns, column).
// InnerContent is populated only for kinds that own literal text; nil entries
// mark structural gaps where a child block's output would be spliced in.
type Block struct {
	Kind         string         `json:"kind"`
	Attributes   map[string]any `json:"attributes,omitempty"`
	Children     []Block        `json:"children,omitempty"`
	InnerContent []*string      `json:"innerContent,omitempty"`
}

// ParseBlocks decodes a serialized template. Malformed input is treated as an
// empty template rather than an error: rendering then yields an empty
// fragment.
func ParseBlocks(raw []byte) []Block {
	if len(raw) == 0 {
		return nil
	}
	var blocks []Block
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil
	}
	return blocks
}

// AttrString returns a string attribute, tolerating absent or non-string
// values.
func (b Block) AttrString(key string) string {
	if b.Attributes == nil {
		return ""
	}
	if value, ok := b.Attributes[key].(string); ok {
		return value
	}
	return ""
}

// AttrInt returns a numeric attribute. JSON numbers decode as float64;
// template designers may also store them as strings.
func (b Block) AttrInt(key string) (int, bool) {
	if b.Attributes == nil {
		return 0, false
	}
	switch value := b.Attributes[key].(type) {
	case float64:
		return int(value), true
	case int:
		return value, true
	case json.Number:
		if parsed, err := value.Int64(); err == nil {
			return int(parsed), true
		}
	}
	return 0, false
}

// AttrBool returns a boolean attribute.
func (b Block) AttrBool(key string) bool {
	if b.Attributes == nil {
		return false
	}
	value, ok := b.Attributes[key].(bool)
	return ok && value
}

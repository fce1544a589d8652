package domain

// Section groups records under a bracketed header. The implicit section
// holding records that precede any header has an empty Name and Line 0.
type Section struct {
	Name     string    `json:"name" yaml:"name" toml:"name"`
	Line     int       `json:"line" yaml:"line" toml:"line"`
	Defaults []Field   `json:"defaults,omitempty" yaml:"defaults,omitempty" toml:"defaults,omitempty"`
	Records  []*Record `json:"records" yaml:"records" toml:"records"`
}

// Record is a single test vector: a run of key = value lines.
type Record struct {
	Line   int     `json:"line" yaml:"line" toml:"line"`
	Fields []Field `json:"fields" yaml:"fields" toml:"fields"`
}

type Field struct {
	Key   string `json:"key" yaml:"key" toml:"key"`
	Value string `json:"value" yaml:"value" toml:"value"`
	Line  int    `json:"line,omitempty" yaml:"line,omitempty" toml:"line,omitempty"`
}

func (s *Section) IsImplicit() bool {
	return s.Name == "" && s.Line == 0
}

// Default returns the first section default declared under key.
func (s *Section) Default(key string) (string, bool) {
	return lookup(s.Defaults, key)
}

// Add appends a field read from the given 1-based line.
func (r *Record) Add(line int, key, value string) {
	r.Fields = append(r.Fields, Field{Key: key, Value: value, Line: line})
}

// Get returns the value of the first field named key. Keys are case-sensitive.
func (r *Record) Get(key string) (string, bool) {
	return lookup(r.Fields, key)
}

func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.Fields))
	for _, f := range r.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

func lookup(fields []Field, key string) (string, bool) {
	for _, f := range fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

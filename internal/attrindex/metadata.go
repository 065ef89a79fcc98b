package attrindex

// MetadataIndex supports two lookups over an engram's metadata map: every
// engram that carries a given key, and every engram whose key holds a
// specific string value. Only string-valued entries participate in the
// key+value index; non-string values (numbers, bools, nested maps) are
// still indexed by key alone.
type MetadataIndex struct {
	byKey      map[string]map[string]bool
	byKeyValue map[string]map[string]bool
}

// NewMetadataIndex returns an empty MetadataIndex.
func NewMetadataIndex() *MetadataIndex {
	return &MetadataIndex{
		byKey:      make(map[string]map[string]bool),
		byKeyValue: make(map[string]map[string]bool),
	}
}

func keyValueCompositeKey(key, value string) string {
	return key + "\x00" + value
}

// Add indexes engramID under key, and additionally under key+value when
// value is a string.
func (m *MetadataIndex) Add(key string, value interface{}, engramID string) {
	set, ok := m.byKey[key]
	if !ok {
		set = make(map[string]bool)
		m.byKey[key] = set
	}
	set[engramID] = true

	if s, ok := value.(string); ok {
		ck := keyValueCompositeKey(key, s)
		kvSet, ok := m.byKeyValue[ck]
		if !ok {
			kvSet = make(map[string]bool)
			m.byKeyValue[ck] = kvSet
		}
		kvSet[engramID] = true
	}
}

// Remove drops engramID from key's index, and from key+value when value is
// a string, erasing keys whose sets become empty.
func (m *MetadataIndex) Remove(key string, value interface{}, engramID string) {
	if set, ok := m.byKey[key]; ok {
		delete(set, engramID)
		if len(set) == 0 {
			delete(m.byKey, key)
		}
	}

	if s, ok := value.(string); ok {
		ck := keyValueCompositeKey(key, s)
		if kvSet, ok := m.byKeyValue[ck]; ok {
			delete(kvSet, engramID)
			if len(kvSet) == 0 {
				delete(m.byKeyValue, ck)
			}
		}
	}
}

// HasKey returns every engram id that carries key, regardless of value.
func (m *MetadataIndex) HasKey(key string) map[string]bool {
	return m.byKey[key]
}

// Equals returns every engram id whose key holds the string value.
func (m *MetadataIndex) Equals(key, value string) map[string]bool {
	return m.byKeyValue[keyValueCompositeKey(key, value)]
}

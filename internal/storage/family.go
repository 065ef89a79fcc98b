package storage

// Family identifies one of the six logical keyspace partitions the store
// maintains. The family is stored as its own column in the backing KV
// table, beside the entity id verbatim, rather than as a byte-literal
// prefix concatenated into a single byte key, since the embedded engine
// can index on (family, id) directly instead of requiring a byte-prefix
// scan.
type Family string

const (
	FamilyEngram     Family = "engram"
	FamilyConnection Family = "connection"
	FamilyCollection Family = "collection"
	FamilyAgent      Family = "agent"
	FamilyContext    Family = "context"
	FamilyMetadata   Family = "metadata"
)

// allFamilies lists every family; valid checks a family against it.
var allFamilies = []Family{
	FamilyEngram,
	FamilyConnection,
	FamilyCollection,
	FamilyAgent,
	FamilyContext,
	FamilyMetadata,
}

// valid reports whether f is one of the six known families.
func (f Family) valid() bool {
	for _, known := range allFamilies {
		if f == known {
			return true
		}
	}
	return false
}

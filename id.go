package garage

import "github.com/xraph/garage/id"

// ID is the primary identifier type for garages and receipts.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix

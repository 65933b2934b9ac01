package brokerage

// SecurityRecord is the descriptive record of one security from the
// statement's security list. Records are immutable once the catalog is built.
type SecurityRecord struct {
	Ticker         string
	Name           string
	Identifier     string
	IdentifierType string
}

// UnknownSecurity is substituted whenever a catalog lookup misses. A miss is
// not an error: rows referencing an undeclared identifier degrade to this
// sentinel instead of aborting the run.
var UnknownSecurity = SecurityRecord{Ticker: "unknown", Name: "unknown"}

// Catalog maps a security identifier to its record. Built once per run from
// the statement's security list and read-only afterwards.
type Catalog struct {
	byID map[string]SecurityRecord
}

// NewCatalog builds a catalog from the export's security list. Identifiers
// are unique in the source, so there is nothing to merge; an empty list
// yields an empty catalog.
func NewCatalog(records []SecurityRecord) *Catalog {
	c := &Catalog{byID: make(map[string]SecurityRecord, len(records))}
	for _, r := range records {
		c.byID[r.Identifier] = r
	}
	return c
}

// Resolve returns the record for an identifier, or the UnknownSecurity
// sentinel when the identifier is absent. It never fails.
func (c *Catalog) Resolve(identifier string) SecurityRecord {
	if r, ok := c.byID[identifier]; ok {
		return r
	}
	return UnknownSecurity
}

// Len returns the number of securities in the catalog.
func (c *Catalog) Len() int { return len(c.byID) }

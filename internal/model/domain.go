package model

// Domain replication types as stored in the PowerDNS domains.type column.
const (
	DomainTypeNative = "NATIVE"
	DomainTypeMaster = "MASTER"
	DomainTypeSlave  = "SLAVE"
)

// DefaultDomainType is used when a domain is created without a type. With native
// replication PowerDNS neither sends nor reacts to NOTIFY; the backend database
// is expected to replicate the zone data on its own.
const DefaultDomainType = DomainTypeNative

// DomainTypes lists every replication type a domain may have.
var DomainTypes = []string{DomainTypeNative, DomainTypeMaster, DomainTypeSlave}

type Domain struct {
	ID   int64  `json:"-" db:"id"`
	Name string `json:"name" db:"name"`
	Type string `json:"type" db:"type"`
}

// ValidDomainType reports whether t is one of the supported replication types.
func ValidDomainType(t string) bool {
	for _, v := range DomainTypes {
		if v == t {
			return true
		}
	}
	return false
}

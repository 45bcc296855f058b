package model

// DefaultRecordTTL is applied to records submitted without a TTL.
const DefaultRecordTTL = 3600

// Record is a single DNS resource record. Domain carries the owning domain's
// name, which is how records reference their domain over the API.
type Record struct {
	ID       int64  `json:"id" db:"id"`
	DomainID int64  `json:"-" db:"domain_id"`
	Domain   string `json:"domain" db:"-"`
	Name     string `json:"name" db:"name"`
	Type     string `json:"type" db:"type"`
	Content  string `json:"content" db:"content"`
	TTL      int    `json:"ttl" db:"ttl"`
	Prio     int    `json:"prio" db:"prio"`
}

package model

// DefaultZoneTemplateID is the zone template assigned to the ownership link
// created together with a new domain. 0 means "no template".
const DefaultZoneTemplateID int64 = 0

// Zone links a domain to the user who administers it.
type Zone struct {
	ID         int64  `json:"-" db:"id"`
	DomainID   int64  `json:"-" db:"domain_id"`
	Domain     string `json:"domain" db:"-"`
	Owner      int64  `json:"owner" db:"owner"`
	TemplateID int64  `json:"-" db:"zone_templ_id"`
}

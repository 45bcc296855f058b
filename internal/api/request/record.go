package request

// Record is the body of both record creation and full record replacement.
type Record struct {
	Domain  string `json:"domain" validate:"required"`
	Name    string `json:"name" validate:"required,max=255"`
	Type    string `json:"type" validate:"required,oneof=A AAAA CNAME MX TXT SRV NS CAA PTR SOA TLSA DS DNSKEY NAPTR SSHFP HTTPS SVCB LOC ALIAS DNAME SPF"`
	Content string `json:"content" validate:"required"`
	TTL     int    `json:"ttl" validate:"omitempty,min=60,max=2147483647"`
	Prio    int    `json:"prio" validate:"min=0,max=65535"`
}

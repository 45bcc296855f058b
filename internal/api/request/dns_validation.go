package request

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net"
	"strconv"
	"strings"
)

// ValidateRecord checks a record's name against its domain and its content
// against the record type. PowerDNS stores fully qualified names, so the name
// must be the domain itself or a name below it.
func ValidateRecord(domain, recordType, name, content string) error {
	if err := validateRecordName(domain, name); err != nil {
		return &FieldError{Field: "name", Err: err}
	}
	if err := validateRecordContent(recordType, content); err != nil {
		return &FieldError{Field: "content", Err: err}
	}
	return nil
}

// validateRecordName accepts the domain apex, names below the domain and
// wildcard names like "*.example.com".
func validateRecordName(domain, name string) error {
	check := name
	if strings.HasPrefix(name, "*.") {
		check = name[2:]
		if check == "" {
			return fmt.Errorf("record name: wildcard must be followed by a hostname")
		}
	}
	if !isValidHostname(check) {
		return fmt.Errorf("record name %q is not a valid DNS name", name)
	}

	n := strings.ToLower(strings.TrimSuffix(name, "."))
	d := strings.ToLower(strings.TrimSuffix(domain, "."))
	if n != d && !strings.HasSuffix(n, "."+d) {
		return fmt.Errorf("record name %q is not within domain %q", name, domain)
	}
	return nil
}

// validateRecordContent validates the content field based on the record type.
func validateRecordContent(recordType, content string) error {
	switch recordType {
	case "A":
		ip := net.ParseIP(content)
		if ip == nil || ip.To4() == nil {
			return fmt.Errorf("A record content must be a valid IPv4 address")
		}
	case "AAAA":
		ip := net.ParseIP(content)
		if ip == nil || ip.To4() != nil {
			return fmt.Errorf("AAAA record content must be a valid IPv6 address")
		}
	case "CNAME", "NS", "PTR", "ALIAS", "DNAME", "MX":
		if !isValidHostname(content) {
			return fmt.Errorf("%s record content must be a valid hostname", recordType)
		}
	case "TXT", "SPF":
		if content == "" {
			return fmt.Errorf("%s record content must not be empty", recordType)
		}
		if len(content) > 4096 {
			return fmt.Errorf("%s record content must not exceed 4096 characters", recordType)
		}
	case "SOA":
		return validateSOAContent(content)
	case "SRV", "CAA", "TLSA", "DS", "DNSKEY", "NAPTR", "SSHFP", "HTTPS", "SVCB":
		return validateRDATA(recordType, content)
	case "LOC":
		if content == "" {
			return fmt.Errorf("LOC record content must not be empty")
		}
	}
	return nil
}

// validateSOAContent validates SOA record content:
// "{primary} {hostmaster} {serial} {refresh} {retry} {expire} {minimum}".
func validateSOAContent(content string) error {
	parts := strings.Fields(content)
	if len(parts) != 7 {
		return fmt.Errorf("SOA record content must be in format: primary hostmaster serial refresh retry expire minimum")
	}
	if !isValidHostname(parts[0]) {
		return fmt.Errorf("SOA record primary must be a valid hostname")
	}
	if !isValidHostname(parts[1]) {
		return fmt.Errorf("SOA record hostmaster must be a valid hostname")
	}
	for _, f := range parts[2:] {
		if _, err := strconv.ParseUint(f, 10, 32); err != nil {
			return fmt.Errorf("SOA record timers and serial must be unsigned 32-bit integers")
		}
	}
	return nil
}

// isValidHostname checks if s is a valid DNS hostname.
// Labels separated by dots, each label 1-63 chars, alphanumeric + hyphens,
// no leading/trailing hyphens, total max 253 chars.
func isValidHostname(s string) bool {
	if s == "" || len(s) > 253 {
		return false
	}
	// Remove trailing dot (FQDN notation).
	s = strings.TrimSuffix(s, ".")
	if s == "" {
		return false
	}
	labels := strings.Split(s, ".")
	for _, label := range labels {
		if !isValidLabel(label) {
			return false
		}
	}
	return true
}

// isValidLabel checks if a single DNS label is valid.
func isValidLabel(label string) bool {
	n := len(label)
	if n == 0 || n > 63 {
		return false
	}
	if label[0] == '-' || label[n-1] == '-' {
		return false
	}
	for _, c := range label {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == '_') {
			return false
		}
	}
	return true
}

// rdataField is one whitespace separated field of a record's content.
type rdataField struct {
	name string
	want string
	ok   func(string) bool
}

// rdataFormat describes content as a fixed list of fields. When tail is set
// the remaining input is joined and checked as one last field; optionalTail
// allows it to be absent.
type rdataFormat struct {
	fields       []rdataField
	tail         *rdataField
	tailSep      string
	optionalTail bool
}

func uintField(name string, lo, hi uint64) rdataField {
	want := fmt.Sprintf("an integer between %d and %d", lo, hi)
	if lo == hi {
		want = strconv.FormatUint(lo, 10)
	}
	return rdataField{name: name, want: want, ok: func(s string) bool {
		v, err := strconv.ParseUint(s, 10, 32)
		return err == nil && v >= lo && v <= hi
	}}
}

func hexField(name string) rdataField {
	return rdataField{name: name, want: "a valid hex string", ok: func(s string) bool {
		_, err := hex.DecodeString(s)
		return err == nil
	}}
}

func targetField(name string) rdataField {
	return rdataField{name: name, want: `a valid hostname or "."`, ok: func(s string) bool {
		return s == "." || isValidHostname(s)
	}}
}

func textField(name string) rdataField {
	return rdataField{name: name, want: "non-empty", ok: func(s string) bool { return s != "" }}
}

var caaTags = []string{"issue", "issuewild", "iodef", "contactemail", "contactphone"}

var rdataFormats = map[string]rdataFormat{
	"SRV": {fields: []rdataField{
		uintField("weight", 0, 65535),
		uintField("port", 0, 65535),
		targetField("target"),
	}},
	"CAA": {
		fields: []rdataField{
			uintField("flag", 0, 255),
			{name: "tag", want: "one of: " + strings.Join(caaTags, ", "), ok: func(s string) bool {
				for _, t := range caaTags {
					if s == t {
						return true
					}
				}
				return false
			}},
		},
		tail:    &rdataField{name: "value", want: "non-empty", ok: func(s string) bool { return s != "" }},
		tailSep: " ",
	},
	"TLSA": {fields: []rdataField{
		uintField("usage", 0, 3),
		uintField("selector", 0, 1),
		uintField("matching_type", 0, 2),
		hexField("certificate_data"),
	}},
	"DS": {fields: []rdataField{
		uintField("keytag", 0, 65535),
		uintField("algorithm", 0, 255),
		uintField("digest_type", 0, 255),
		hexField("digest"),
	}},
	"DNSKEY": {
		fields: []rdataField{
			uintField("flags", 0, 65535),
			uintField("protocol", 3, 3),
			uintField("algorithm", 0, 255),
		},
		// Base64 key data may be split by whitespace.
		tail: &rdataField{name: "public_key", want: "valid base64", ok: func(s string) bool {
			_, err := base64.StdEncoding.DecodeString(s)
			return s != "" && err == nil
		}},
	},
	"NAPTR": {
		fields: []rdataField{
			uintField("order", 0, 65535),
			uintField("preference", 0, 65535),
			textField("flags"),
			textField("service"),
			textField("regexp"),
		},
		tail:    &rdataField{name: "replacement", want: "non-empty", ok: func(s string) bool { return s != "" }},
		tailSep: " ",
	},
	"SSHFP": {fields: []rdataField{
		uintField("algorithm", 1, 4),
		uintField("fingerprint_type", 1, 2),
		hexField("fingerprint"),
	}},
	"SVCB":  svcbFormat,
	"HTTPS": svcbFormat,
}

var svcbFormat = rdataFormat{
	fields: []rdataField{
		uintField("priority", 0, 65535),
		targetField("target"),
	},
	tail:         &rdataField{name: "params", ok: func(string) bool { return true }},
	tailSep:      " ",
	optionalTail: true,
}

// validateRDATA checks content against the field layout registered for
// recordType. Types without a layout are accepted as is.
func validateRDATA(recordType, content string) error {
	format, ok := rdataFormats[recordType]
	if !ok {
		return nil
	}
	parts := strings.Fields(content)

	need, exact := len(format.fields), format.tail == nil
	if format.tail != nil && !format.optionalTail {
		need++
	}
	if len(parts) < need || (exact && len(parts) != need) {
		names := make([]string, 0, len(format.fields)+1)
		for _, f := range format.fields {
			names = append(names, f.name)
		}
		if format.tail != nil {
			names = append(names, format.tail.name)
		}
		return fmt.Errorf("%s record content must be in format: %s", recordType, strings.Join(names, " "))
	}

	for i, f := range format.fields {
		if !f.ok(parts[i]) {
			return fmt.Errorf("%s record %s must be %s", recordType, f.name, f.want)
		}
	}
	if format.tail != nil && len(parts) > len(format.fields) {
		rest := strings.Join(parts[len(format.fields):], format.tailSep)
		if !format.tail.ok(rest) {
			return fmt.Errorf("%s record %s must be %s", recordType, format.tail.name, format.tail.want)
		}
	}
	return nil
}

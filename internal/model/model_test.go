package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDomainType(t *testing.T) {
	assert.Equal(t, "NATIVE", DefaultDomainType)
}

func TestDefaultZoneTemplateID(t *testing.T) {
	assert.Equal(t, int64(0), DefaultZoneTemplateID)
}

func TestValidDomainType(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"NATIVE", true},
		{"MASTER", true},
		{"SLAVE", true},
		{"native", false},
		{"", false},
		{"PRODUCER", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidDomainType(tt.in))
		})
	}
}

func TestDomainJSON_OnlyNameAndType(t *testing.T) {
	b, err := json.Marshal(Domain{ID: 7, Name: "example.com", Type: DomainTypeNative})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"example.com","type":"NATIVE"}`, string(b))
}

func TestRecordJSON_DomainByName(t *testing.T) {
	b, err := json.Marshal(Record{
		ID: 3, DomainID: 7, Domain: "example.com",
		Name: "www.example.com", Type: "A", Content: "192.0.2.1", TTL: 3600, Prio: 0,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"www.example.com","type":"A","content":"192.0.2.1","ttl":3600,"prio":0,"domain":"example.com"}`, string(b))
}

func TestZoneJSON_DomainAndOwnerOnly(t *testing.T) {
	b, err := json.Marshal(Zone{ID: 1, DomainID: 7, Domain: "example.com", Owner: 42, TemplateID: 0})
	require.NoError(t, err)
	assert.JSONEq(t, `{"domain":"example.com","owner":42}`, string(b))
}

package request

type CreateDomain struct {
	Name string `json:"name" validate:"required,fqdn,max=255"`
	Type string `json:"type" validate:"omitempty,oneof=NATIVE MASTER SLAVE"`
}

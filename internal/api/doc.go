// Package api provides the PowerAdmin REST API.
//
//	@title						PowerAdmin API
//	@version					1.0
//	@description				REST API over the PowerDNS and PowerAdmin schema. Domains, records and zone ownership.
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package api

package core

type Services struct {
	Auth   *AuthService
	Domain *DomainService
	Record *RecordService
	Zone   *ZoneService
}

func NewServices(db DB, jwtSecret, jwtIssuer string) *Services {
	return &Services{
		Auth:   NewAuthService(jwtSecret, jwtIssuer),
		Domain: NewDomainService(db),
		Record: NewRecordService(db),
		Zone:   NewZoneService(db),
	}
}

package services

// ServiceContainer holds all service interfaces for handler wiring.
type ServiceContainer struct {
	AuthSvc        AuthSvcFacade
	MemberSvc      MemberSvcFacade
	BusinessSvc    BusinessSvcFacade
	BookSvc        BookSvcFacade
	TransactionSvc TransactionSvcFacade
	ReportSvc      ReportSvcFacade
	ActivitySvc    ActivitySvcFacade
	ImportSvc      ImportSvcFacade
}

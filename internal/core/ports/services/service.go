package services

// ServiceContainer holds instances of all the application services.
// Handlers, the CLI and the outbox worker reach services through it.
type ServiceContainer struct {
	Payment    PaymentSvcFacade
	Invoice    InvoiceSvcFacade
	Member     MemberSvcFacade
	Lookup     LookupSvcFacade
	User       UserSvcFacade
	Token      TokenSvcFacade
	Dispatcher OutboxDispatcherSvc
}

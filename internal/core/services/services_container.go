package services

import (
	"log/slog"

	"github.com/antusaha970/member-management-backend-sub000/internal/core/domain"
	portsrepo "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/repositories"
	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/platform/cache"
	"github.com/antusaha970/member-management-backend-sub000/internal/platform/config"
	"github.com/antusaha970/member-management-backend-sub000/internal/platform/idgen"
)

// Collaborators are the non-repository dependencies of the services.
type Collaborators struct {
	Cache     cache.Store
	Numbers   *idgen.Generator
	Analytics AnalyticsEnqueuer
	Logger    *slog.Logger
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collab Collaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Lookups first since the payment processor resolves references through them
	container.Lookup = NewLookupService(repos.LookupRepo)
	container.Payment = NewPaymentService(repos.UnitOfWork, container.Lookup, collab.Cache, collab.Numbers)
	container.Invoice = NewInvoiceService(repos.UnitOfWork, repos.InvoiceRepo, repos.MemberRepo, collab.Cache, collab.Numbers)
	container.Member = NewMemberService(repos.UnitOfWork, repos.MemberRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	sinks := map[domain.OutboxTopic]OutboxSink{
		domain.TopicActivity:        ActivitySink{Repo: repos.ActivityRepo},
		domain.TopicCacheInvalidate: CacheSink{Store: collab.Cache},
		domain.TopicAnalytics:       AnalyticsSink{Client: collab.Analytics},
	}
	container.Dispatcher = NewOutboxDispatcher(repos.OutboxRepo, sinks, collab.Logger)

	return container
}

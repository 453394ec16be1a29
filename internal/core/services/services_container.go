package services

import (
	portsrepo "github.com/rupeebook/rupeebook_backend/internal/core/ports/repositories"
	portssvc "github.com/rupeebook/rupeebook_backend/internal/core/ports/services"
	"github.com/rupeebook/rupeebook_backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies. sheetWriter may be nil when sheet export is
// disabled.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, sheetWriter ReportSheetWriter) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}
	loc := cfg.ReportLocation()

	// Book service first since most services authorize through it.
	container.BookSvc = NewBookService(repos.BookRepo, repos.BusinessRepo, repos.MemberRepo)
	authorizer := container.BookSvc.(portssvc.BookAuthorizerSvc)

	container.MemberSvc = NewMemberService(repos.MemberRepo)
	container.BusinessSvc = NewBusinessService(repos.BusinessRepo, repos.BookRepo)
	container.ActivitySvc = NewActivityService(repos.ActivityRepo, repos.MemberRepo,
		WithActivityBookAuthorizer(authorizer),
	)
	container.TransactionSvc = NewTransactionService(repos.TransactionRepo, repos.BookRepo, repos.MemberRepo, container.ActivitySvc, loc,
		WithTransactionBookAuthorizer(authorizer),
	)

	reportOpts := []ReportServiceOption{WithReportBookAuthorizer(authorizer)}
	if sheetWriter != nil {
		reportOpts = append(reportOpts, WithSheetWriter(sheetWriter))
	}
	container.ReportSvc = NewReportService(repos.TransactionRepo, repos.BookRepo, repos.MemberRepo, loc, reportOpts...)

	container.ImportSvc = NewImportService(repos.TransactionRepo, repos.BookRepo, container.ActivitySvc, loc,
		WithImportBookAuthorizer(authorizer),
	)
	container.AuthSvc = NewTokenService(cfg, repos.MemberRepo)

	return container
}

// Compile-time interface conformance checks.
var (
	_ portssvc.MemberSvcFacade      = (*memberService)(nil)
	_ portssvc.BusinessSvcFacade    = (*businessService)(nil)
	_ portssvc.BookSvcFacade        = (*bookService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.ReportSvcFacade      = (*reportService)(nil)
	_ portssvc.ActivitySvcFacade    = (*activityService)(nil)
	_ portssvc.ImportSvcFacade      = (*importService)(nil)
	_ portssvc.AuthSvcFacade        = (*tokenService)(nil)
)

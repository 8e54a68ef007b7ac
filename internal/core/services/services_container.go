package services

import (
	portsrepo "github.com/fidura/compta_recon_app/internal/core/ports/repositories"
	portssvc "github.com/fidura/compta_recon_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. sessionTier may be nil when no session store is configured;
// the balance cache degrades to memory + database.
func NewServiceContainer(repos portsrepo.RepositoryProvider, memoryTier, sessionTier portsrepo.SnapshotTier, generator portssvc.TextGenerator) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Import = NewImportService(repos.LedgerRepo)
	container.Recon = NewReconService(repos.LedgerRepo)
	container.Balance = NewBalanceCacheService(memoryTier, sessionTier, repos.BalanceRepo)
	container.Comment = NewCommentService(repos.CommentRepo)

	if generator == nil {
		generator = NoopTextGenerator{}
	}
	container.Justification = NewJustificationService(generator)

	return container
}

package services

import (
	portsrepo "github.com/KwakuBoohene/ackontant/internal/core/ports/repositories"
	portssvc "github.com/KwakuBoohene/ackontant/internal/core/ports/services"
	"github.com/KwakuBoohene/ackontant/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.User = NewUserService(repos.UserRepo, repos.CurrencyRepo, cfg.BaseCurrencyCode)
	container.Account = NewAccountService(repos.AccountRepo, repos.CurrencyRepo)

	// Rate resolution feeds the balance engine, which in turn feeds the
	// transaction and transfer services.
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo)
	container.Balance = NewBalanceService(container.ExchangeRate, repos.ExchangeRateRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.UserRepo, container.Balance)
	container.Transfer = NewTransferService(repos.TransferRepo, repos.AccountRepo, repos.UserRepo, container.Balance, container.ExchangeRate)

	return container
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/guidewell/guidewell-server/internal/aggregator"
	"github.com/guidewell/guidewell-server/internal/config"
	"github.com/guidewell/guidewell-server/internal/insights"
	"github.com/guidewell/guidewell-server/internal/integrations/ofx"
	"github.com/guidewell/guidewell-server/internal/integrations/plaid"
	"github.com/guidewell/guidewell-server/internal/linksession"
	"github.com/guidewell/guidewell-server/internal/models"
	"github.com/guidewell/guidewell-server/internal/repository"
	"github.com/guidewell/guidewell-server/internal/strategy"
	"github.com/guidewell/guidewell-server/internal/utils"
	"github.com/guidewell/guidewell-server/internal/utils/email"
)

// Service handles business logic
type Service struct {
	repo     *repository.Repository
	plaid    *plaid.Client
	sessions *linksession.Store
	mailer   *email.Sender
	log      *logrus.Logger
	config   *config.Config
	encKey   []byte
}

// NewService initializes a new service
func NewService(repo *repository.Repository, plaidClient *plaid.Client, mailer *email.Sender, log *logrus.Logger, cfg *config.Config) (*Service, error) {
	encKey, err := utils.DecodeKey(cfg.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	return &Service{
		repo:     repo,
		plaid:    plaidClient,
		sessions: linksession.NewStore(),
		mailer:   mailer,
		log:      log,
		config:   cfg,
		encKey:   encKey,
	}, nil
}

// Register creates a new user with hashed password
func (s *Service) Register(email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(email)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// CreateLinkToken fetches a link token for the user's linking session. Only
// one fetch runs per session; a second request while one is in flight fails
// instead of piling up.
func (s *Service) CreateLinkToken(ctx context.Context, userID string) (string, error) {
	session := s.sessions.Get(userID)
	if err := session.Begin(); err != nil {
		return "", err
	}

	token, err := s.plaid.CreateLinkToken(ctx, userID)
	if err != nil {
		session.Fail(err)
		return "", fmt.Errorf("failed to create link token: %w", err)
	}

	session.Ready(token)
	s.log.Infof("Link token created for user %s", userID)
	return token, nil
}

// ExchangePublicToken trades a public token for credentials and stores them
// encrypted for the user.
func (s *Service) ExchangePublicToken(ctx context.Context, publicToken, userID string) (string, error) {
	result, err := s.plaid.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return "", fmt.Errorf("token exchange failed: %w", err)
	}

	if err := s.repo.UpsertUser(userID, ""); err != nil {
		return "", err
	}

	encrypted, err := utils.Encrypt(result.AccessToken, s.encKey)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt access token: %w", err)
	}

	item := &repository.LinkedItem{
		UserID:         userID,
		ItemID:         result.ItemID,
		AccessToken:    encrypted,
		AccessTokenMAC: utils.GenerateHMAC(result.AccessToken, s.config.HMACSecret),
	}
	if err := s.repo.SaveLinkedItem(item); err != nil {
		return "", err
	}

	s.sessions.Get(userID).Reset()
	s.log.Infof("Item linked for user %s: %s", userID, result.ItemID)
	return result.ItemID, nil
}

// GetAccounts fetches and reconciles the user's linked accounts. Returns
// repository.ErrNoLinkedItem when the user has not linked a bank yet.
func (s *Service) GetAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	item, err := s.repo.GetLinkedItem(userID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.accessTokenFor(item)
	if err != nil {
		return nil, err
	}

	data, err := s.plaid.FetchAccountData(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	accounts := aggregator.Reconcile(data.Accounts, data.Liabilities)

	for _, account := range accounts {
		if err := s.repo.UpsertAccount(userID, item.ItemID, account); err != nil {
			s.log.Errorf("Failed to persist account %s: %v", account.ID, err)
		}
	}

	s.log.Infof("Reconciled %d accounts for user %s", len(accounts), userID)
	return accounts, nil
}

// ManualAccountParams is the input for creating an account by hand.
type ManualAccountParams struct {
	Type       models.AccountType `json:"type"`
	Name       string             `json:"name"`
	Balance    float64            `json:"balance"`
	APR        *float64           `json:"apr,omitempty"`
	MinPayment *float64           `json:"minPayment,omitempty"`
	GoalTarget *float64           `json:"goalTarget,omitempty"`
}

// CreateManualAccount stores an account entered by the user directly.
func (s *Service) CreateManualAccount(userID string, params ManualAccountParams) (*models.Account, error) {
	switch params.Type {
	case models.AccountTypeChecking, models.AccountTypeSavings, models.AccountTypeInvestment,
		models.AccountTypeLoan, models.AccountTypeCreditCard:
	default:
		return nil, fmt.Errorf("unknown account type: %q", params.Type)
	}
	if params.Name == "" {
		return nil, fmt.Errorf("account name is required")
	}

	account := models.Account{
		ID:         "manual-" + uuid.NewString(),
		Type:       params.Type,
		Name:       params.Name,
		Balance:    params.Balance,
		APR:        params.APR,
		MinPayment: params.MinPayment,
		GoalTarget: params.GoalTarget,
	}

	if err := s.repo.UpsertUser(userID, ""); err != nil {
		return nil, err
	}
	if err := s.repo.UpsertAccount(userID, "", account); err != nil {
		return nil, err
	}

	s.log.Infof("Manual account created for user %s: %s", userID, account.ID)
	return &account, nil
}

// ImportStatement parses an uploaded OFX statement and stores its accounts
// and transactions for the user.
func (s *Service) ImportStatement(userID string, data []byte) ([]models.Account, error) {
	statements, err := ofx.Parse(data)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpsertUser(userID, ""); err != nil {
		return nil, err
	}

	var accounts []models.Account
	for _, stmt := range statements {
		if err := s.repo.UpsertAccount(userID, "", stmt.Account); err != nil {
			return nil, err
		}
		for i := range stmt.Transactions {
			if err := s.repo.UpsertTransaction(&stmt.Transactions[i]); err != nil {
				s.log.Errorf("Failed to store transaction %s: %v", stmt.Transactions[i].ExternalID, err)
			}
		}
		accounts = append(accounts, stmt.Account)
	}

	s.log.Infof("Imported %d statements for user %s", len(statements), userID)
	return accounts, nil
}

// GoalSummary bundles the inferred goal tags with the aggregates shown next
// to them.
type GoalSummary struct {
	Goals              []models.Goal       `json:"goals"`
	TotalDebt          float64             `json:"totalDebt"`
	PrimarySavingsGoal *models.SavingsGoal `json:"primarySavingsGoal,omitempty"`
}

// GetGoals derives goal hints and aggregates from the user's reconciled
// accounts.
func (s *Service) GetGoals(ctx context.Context, userID string) (*GoalSummary, error) {
	accounts, err := s.GetAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &GoalSummary{
		Goals:              insights.InferGoals(accounts),
		TotalDebt:          insights.TotalDebt(accounts),
		PrimarySavingsGoal: insights.PrimarySavingsGoal(accounts),
	}, nil
}

// CalculateStrategy normalizes the allocation when needed, projects the
// config, and renders the narrative.
func (s *Service) CalculateStrategy(config models.StrategyConfig) (*models.StrategyResult, string, error) {
	if !strategy.ValidateAllocation(config.Allocation) {
		config.Allocation = strategy.NormalizeAllocation(config.Allocation)
	}

	result, err := strategy.CalculateStrategyResult(config)
	if err != nil {
		return nil, "", err
	}

	narrative := strategy.GenerateNarrative(config, result)
	return &result, narrative, nil
}

// EmailScenarioSummary calculates a scenario and mails the narrative to the
// user's registered address.
func (s *Service) EmailScenarioSummary(userID string, config models.StrategyConfig) error {
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return err
	}
	if user.Email == "" {
		return fmt.Errorf("user %s has no email address", userID)
	}

	_, narrative, err := s.CalculateStrategy(config)
	if err != nil {
		return err
	}

	return s.mailer.SendScenarioSummary(user.Email, config, narrative)
}

// RefreshBalances re-fetches balances for every linked item. Per-item
// failures are logged and the sweep continues.
func (s *Service) RefreshBalances(ctx context.Context) {
	items, err := s.repo.ListLinkedItems()
	if err != nil {
		s.log.Errorf("Balance refresh: %v", err)
		return
	}

	for _, item := range items {
		accessToken, err := s.accessTokenFor(&item)
		if err != nil {
			s.log.Errorf("Balance refresh for user %s: %v", item.UserID, err)
			continue
		}

		data, err := s.plaid.FetchAccountData(ctx, accessToken)
		if err != nil {
			s.log.Errorf("Balance refresh for user %s: %v", item.UserID, err)
			continue
		}

		for _, account := range aggregator.Reconcile(data.Accounts, data.Liabilities) {
			if err := s.repo.UpsertAccount(item.UserID, item.ItemID, account); err != nil {
				s.log.Errorf("Balance refresh for user %s, account %s: %v", item.UserID, account.ID, err)
			}
		}
	}

	s.log.Infof("Balance refresh completed for %d items", len(items))
}

// accessTokenFor decrypts a stored access token after checking its integrity
// tag.
func (s *Service) accessTokenFor(item *repository.LinkedItem) (string, error) {
	accessToken, err := utils.Decrypt(item.AccessToken, s.encKey)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt access token: %w", err)
	}
	if item.AccessTokenMAC != "" && !utils.VerifyHMAC(accessToken, s.config.HMACSecret, item.AccessTokenMAC) {
		return "", fmt.Errorf("access token integrity check failed for item %s", item.ItemID)
	}
	return accessToken, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/davron17/finflow/internal/analytics"
	"github.com/davron17/finflow/internal/config"
	"github.com/davron17/finflow/internal/forecast"
	"github.com/davron17/finflow/internal/importer"
	"github.com/davron17/finflow/internal/models"
	"github.com/davron17/finflow/internal/repository"
	"github.com/davron17/finflow/internal/utils/email"
)

// Service handles business logic
type Service struct {
	repo        *repository.Repository
	engine      *forecast.Engine
	analytics   *analytics.Service
	parser      *importer.Parser
	mailer      *email.Sender
	recommender Recommender
	log         *logrus.Logger
	config      *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, engine *forecast.Engine, an *analytics.Service,
	parser *importer.Parser, mailer *email.Sender, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		analytics: an,
		parser:    parser,
		mailer:    mailer,
		log:       log,
		config:    cfg,
	}
}

// SetRecommender attaches an external text-generation collaborator. Without
// one, analyses simply omit the prose recommendation.
func (s *Service) SetRecommender(r Recommender) {
	s.recommender = r
}

// Register creates a new user with hashed password
func (s *Service) Register(email, username, password, businessType string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
		BusinessType: businessType,
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
		Subject:   user.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// CurrentUser resolves the authenticated user from the request context
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindUserByID(userID)
}

// ListTransactions returns the authenticated user's transactions
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTransactionsByUser(userID)
}

// AddTransaction records a single transaction for the authenticated user
func (s *Service) AddTransaction(ctx context.Context, txn models.Transaction) (*models.Transaction, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if txn.Amount.IsNegative() {
		return nil, fmt.Errorf("amount must be a non-negative magnitude")
	}

	txn.ID = uuid.New()
	txn.UserID = userID
	if err := s.repo.CreateTransaction(&txn); err != nil {
		return nil, err
	}
	return &txn, nil
}

func userIDFromContext(ctx context.Context) (uuid.UUID, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return uuid.Nil, fmt.Errorf("user ID not found in context")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}

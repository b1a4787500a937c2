package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/repository"
)

// SeedService генерирует демо-данные: семью с участниками, историю
// транзакций и пару предложений на голосовании.
type SeedService struct {
	userRepo        *repository.UserRepository
	familyRepo      *repository.FamilyRepository
	categoryRepo    *repository.CategoryRepository
	transactionRepo *repository.TransactionRepository
	proposalRepo    *repository.ProposalRepository
}

// NewSeedService создаёт сервис генерации демо-данных.
func NewSeedService(userRepo *repository.UserRepository, familyRepo *repository.FamilyRepository, categoryRepo *repository.CategoryRepository, transactionRepo *repository.TransactionRepository, proposalRepo *repository.ProposalRepository) *SeedService {
	return &SeedService{
		userRepo:        userRepo,
		familyRepo:      familyRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		proposalRepo:    proposalRepo,
	}
}

var (
	seedNames = []string{
		"Александр Иванов", "Мария Иванова", "Дмитрий Иванов", "Анна Иванова",
	}
	seedExpenseCategories = []string{
		"Groceries", "Rent", "Utilities", "Transportation", "Entertainment", "Dining",
	}
	seedIncomeCategories = []string{
		"Salary", "Freelance", "Gift",
	}
	seedProposalTexts = []string{
		"Предлагаю купить новый холодильник, старый уже еле работает.",
		"Давайте отложим деньги на летний отпуск в августе.",
		"Хочу оплатить годовой абонемент в спортзал со скидкой.",
	}
)

// SeedData создаёт демо-семью с numMembers участниками и numTransactions
// транзакциями за последние три месяца.
func (s *SeedService) SeedData(ctx context.Context, numMembers int, numTransactions int) error {
	if numMembers < 1 {
		numMembers = 2
	}
	if numMembers > len(seedNames) {
		numMembers = len(seedNames)
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	passwordHash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)

	members := make([]*models.User, 0, numMembers)
	for i := 0; i < numMembers; i++ {
		user := &models.User{
			Email:        fmt.Sprintf("demo%d.%d@example.com", i+1, rnd.Intn(100000)),
			PasswordHash: string(passwordHash),
			FullName:     seedNames[i],
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed service: не удалось создать пользователя: %w", err)
		}
		members = append(members, user)
	}

	owner := members[0]
	family := &models.Family{
		Name:       "Демо-семья " + owner.FullName,
		InviteCode: fmt.Sprintf("DEMO%04d", rnd.Intn(10000)),
		CreatedBy:  &owner.ID,
	}
	if err := s.familyRepo.CreateWithOwner(ctx, family, owner.ID, s.categoryRepo.SeedDefaults); err != nil {
		return fmt.Errorf("seed service: не удалось создать семью: %w", err)
	}

	for _, member := range members[1:] {
		if err := s.userRepo.SetFamilyID(ctx, member.ID, &family.ID); err != nil {
			return fmt.Errorf("seed service: не удалось добавить участника: %w", err)
		}
	}

	if err := s.generateTransactions(ctx, rnd, family.ID, members, numTransactions); err != nil {
		return err
	}

	return s.generateProposals(ctx, rnd, family.ID, members)
}

// generateTransactions создаёт историю доходов и расходов за три месяца.
func (s *SeedService) generateTransactions(ctx context.Context, rnd *rand.Rand, familyID uuid.UUID, members []*models.User, count int) error {
	if count < 1 {
		count = 30
	}

	now := time.Now()
	for i := 0; i < count; i++ {
		member := members[rnd.Intn(len(members))]
		date := now.AddDate(0, 0, -rnd.Intn(90))

		tr := &models.Transaction{
			FamilyID: familyID,
			UserID:   member.ID,
			Date:     date,
			Status:   models.TransactionStatusCompleted,
		}

		// Примерно каждая четвёртая транзакция считается доходом
		if rnd.Intn(4) == 0 {
			tr.Type = models.TransactionTypeIncome
			tr.Category = seedIncomeCategories[rnd.Intn(len(seedIncomeCategories))]
			tr.Amount = float64(30000 + rnd.Intn(70000))
		} else {
			tr.Type = models.TransactionTypeExpense
			tr.Category = seedExpenseCategories[rnd.Intn(len(seedExpenseCategories))]
			tr.Amount = float64(200 + rnd.Intn(8000))
		}

		if err := s.transactionRepo.Create(ctx, tr); err != nil {
			return fmt.Errorf("seed service: не удалось создать транзакцию: %w", err)
		}
	}

	return nil
}

// generateProposals публикует несколько предложений на голосовании.
func (s *SeedService) generateProposals(ctx context.Context, rnd *rand.Rand, familyID uuid.UUID, members []*models.User) error {
	kinds := []models.ProposalType{models.ProposalTypeSpending, models.ProposalTypeSavings}

	for i, text := range seedProposalTexts {
		proposer := members[rnd.Intn(len(members))]
		description := text

		proposal := &models.Proposal{
			FamilyID:    familyID,
			ProposerID:  proposer.ID,
			Type:        kinds[i%len(kinds)],
			Amount:      float64(5000 + rnd.Intn(95000)),
			Description: &description,
		}
		if err := s.proposalRepo.Create(ctx, proposal); err != nil {
			return fmt.Errorf("seed service: не удалось создать предложение: %w", err)
		}
	}

	return nil
}

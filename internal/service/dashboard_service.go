package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ignatzorin/family-budget-backend/internal/models"
	"github.com/ignatzorin/family-budget-backend/internal/pkg/apperror"
)

// Количество последних транзакций на дашборде.
const recentTransactionsLimit = 5

// DashboardTransactionRepo описывает операции над транзакциями для дашборда.
type DashboardTransactionRepo interface {
	ListByFamily(ctx context.Context, familyID uuid.UUID, limit int) ([]models.Transaction, error)
	ListSince(ctx context.Context, familyID uuid.UUID, since time.Time) ([]models.Transaction, error)
	GetBalance(ctx context.Context, familyID uuid.UUID) (float64, error)
}

// DashboardSubscriptionRepo описывает операции над подписками для дашборда.
type DashboardSubscriptionRepo interface {
	ListUpcoming(ctx context.Context, familyID uuid.UUID, until time.Time) ([]models.Subscription, error)
}

// DashboardProposalRepo описывает операции над предложениями для дашборда.
type DashboardProposalRepo interface {
	ListPendingNotVotedBy(ctx context.Context, familyID, userID uuid.UUID) ([]models.Proposal, error)
}

// BalancePoint представляет дневной чистый поток для графика баланса.
type BalancePoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// DashboardData собирает всё, что нужно главному экрану за один запрос.
type DashboardData struct {
	Balance            float64               `json:"balance"`
	RecentTransactions []models.Transaction  `json:"recent_transactions"`
	UpcomingSubs       []models.Subscription `json:"upcoming_subscriptions"`
	PendingProposals   []models.Proposal     `json:"pending_proposals"`
	BalanceHistory     []BalancePoint        `json:"balance_history"`
}

// DashboardService собирает сводку по семье.
type DashboardService struct {
	transactions  DashboardTransactionRepo
	subscriptions DashboardSubscriptionRepo
	proposals     DashboardProposalRepo
	users         userGetter
	cache         *CacheService
}

// NewDashboardService создаёт сервис дашборда. cache может быть nil,
// тогда каждая сводка собирается заново.
func NewDashboardService(transactions DashboardTransactionRepo, subscriptions DashboardSubscriptionRepo, proposals DashboardProposalRepo, users userGetter, cache *CacheService) *DashboardService {
	return &DashboardService{
		transactions:  transactions,
		subscriptions: subscriptions,
		proposals:     proposals,
		users:         users,
		cache:         cache,
	}
}

// periodStart возвращает начало окна графика для периода.
func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "2w":
		return now.AddDate(0, 0, -14), nil
	case "", "1m":
		return now.AddDate(0, -1, 0), nil
	case "3m":
		return now.AddDate(0, -3, 0), nil
	case "6m":
		return now.AddDate(0, -6, 0), nil
	case "9m":
		return now.AddDate(0, -9, 0), nil
	case "1y":
		return now.AddDate(-1, 0, 0), nil
	default:
		return time.Time{}, apperror.New(apperror.ErrCodeValidation, "период графика должен быть 2w, 1m, 3m, 6m, 9m или 1y")
	}
}

// Data собирает сводку дашборда. Пять выборок выполняются параллельно,
// первая ошибка отменяет остальные.
func (s *DashboardService) Data(ctx context.Context, userID uuid.UUID, period string) (*DashboardData, error) {
	since, err := periodStart(period, time.Now())
	if err != nil {
		return nil, err
	}

	familyID, err := resolveFamilyID(ctx, s.users, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		value, err := s.cache.GetOrSet(DashboardCacheKey(familyID, userID, period), 30*time.Second, func() (interface{}, error) {
			return s.collect(ctx, familyID, userID, since)
		})
		if err != nil {
			return nil, err
		}
		return value.(*DashboardData), nil
	}

	return s.collect(ctx, familyID, userID, since)
}

// collect выполняет пять выборок сводки параллельно.
func (s *DashboardService) collect(ctx context.Context, familyID, userID uuid.UUID, since time.Time) (*DashboardData, error) {
	data := &DashboardData{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		balance, err := s.transactions.GetBalance(gctx, familyID)
		if err != nil {
			return err
		}
		data.Balance = balance
		return nil
	})

	g.Go(func() error {
		recent, err := s.transactions.ListByFamily(gctx, familyID, recentTransactionsLimit)
		if err != nil {
			return err
		}
		data.RecentTransactions = recent
		return nil
	})

	g.Go(func() error {
		subs, err := s.subscriptions.ListUpcoming(gctx, familyID, time.Now().Add(upcomingWindow))
		if err != nil {
			return err
		}
		data.UpcomingSubs = subs
		return nil
	})

	g.Go(func() error {
		proposals, err := s.proposals.ListPendingNotVotedBy(gctx, familyID, userID)
		if err != nil {
			return err
		}
		data.PendingProposals = proposals
		return nil
	})

	g.Go(func() error {
		history, err := s.transactions.ListSince(gctx, familyID, since)
		if err != nil {
			return err
		}
		data.BalanceHistory = buildBalanceHistory(history)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return data, nil
}

// buildBalanceHistory сворачивает транзакции в дневной чистый поток:
// доходы со знаком плюс, расходы со знаком минус.
func buildBalanceHistory(transactions []models.Transaction) []BalancePoint {
	daily := make(map[string]float64)
	for _, tr := range transactions {
		key := tr.Date.Format("2006-01-02")
		if tr.Type == models.TransactionTypeIncome {
			daily[key] += tr.Amount
		} else {
			daily[key] -= tr.Amount
		}
	}

	points := make([]BalancePoint, 0, len(daily))
	for date, value := range daily {
		points = append(points, BalancePoint{Date: date, Value: value})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})

	return points
}

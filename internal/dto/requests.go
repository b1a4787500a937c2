package dto

// RegisterRequest описывает запрос регистрации.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

// LoginRequest описывает запрос входа.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest описывает запрос обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest описывает запрос выхода.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest описывает запрос изменения профиля.
type UpdateProfileRequest struct {
	FullName  string  `json:"full_name" binding:"required"`
	AvatarURL *string `json:"avatar_url"`
}

// CreateFamilyRequest описывает запрос создания семьи.
type CreateFamilyRequest struct {
	Name string `json:"name" binding:"required"`
}

// JoinFamilyRequest описывает запрос вступления в семью по коду.
type JoinFamilyRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

// CategoryRequest описывает запрос создания или изменения категории.
type CategoryRequest struct {
	Name  string  `json:"name" binding:"required"`
	Type  string  `json:"type" binding:"required"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

// TransactionRequest описывает запрос создания или изменения транзакции.
type TransactionRequest struct {
	Amount      float64 `json:"amount" binding:"required"`
	Type        string  `json:"type" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Description *string `json:"description"`
	Date        string  `json:"date" binding:"required"`
	IsRecurring bool    `json:"is_recurring"`
	Status      string  `json:"status"`
}

// CreateProposalRequest описывает запрос публикации предложения.
type CreateProposalRequest struct {
	Type        string  `json:"type" binding:"required"`
	Amount      float64 `json:"amount" binding:"required"`
	Description string  `json:"description" binding:"required"`
	TargetDate  *string `json:"target_date"`
}

// VoteRequest содержит голос по предложению.
type VoteRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// SubscriptionRequest описывает запрос создания или изменения подписки.
type SubscriptionRequest struct {
	Name            string  `json:"name" binding:"required"`
	Amount          float64 `json:"amount" binding:"required"`
	Frequency       string  `json:"frequency" binding:"required"`
	NextPaymentDate string  `json:"next_payment_date" binding:"required"`
	BankAccountID   *string `json:"bank_account_id"`
	Category        *string `json:"category"`
	Description     *string `json:"description"`
	IsActive        *bool   `json:"is_active"`
}

// BankAccountRequest описывает запрос создания или переименования счёта.
type BankAccountRequest struct {
	Name string `json:"name" binding:"required"`
}

// SeedRequest описывает запрос генерации демо-данных.
type SeedRequest struct {
	Members      int `json:"members"`
	Transactions int `json:"transactions"`
}

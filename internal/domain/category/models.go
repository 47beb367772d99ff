package category

import (
	"strings"
	"time"

	"fintrack/internal/domain/shared"
)

type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

type Category struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Kind      Kind      `json:"type"`
	IsFixed   bool      `json:"isFixed"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateParams struct {
	Name    string
	Kind    Kind
	IsFixed bool
}

func (p CreateParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return shared.InvalidArgument("category name is required")
	}
	if p.Kind != KindIncome && p.Kind != KindExpense {
		return shared.InvalidArgument("type must be income or expense")
	}
	return nil
}

type UpdateParams struct {
	Name    *string
	IsFixed *bool
}

func (p UpdateParams) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return shared.InvalidArgument("category name cannot be empty")
	}
	return nil
}

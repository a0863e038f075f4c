package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"ordersvc/internal/domain/model"
	"ordersvc/internal/usecase"
)

// ordersの列の長さ（varchar(255)）
const maxFieldLen = 255

type orderValidator struct{}

// Usecaseは interface を依存注入
func NewOrderValidator() usecase.OrderValidator {
	return &orderValidator{}
}

// 注文作成の入力を検証
func (v *orderValidator) ValidateCreate(in usecase.CreateOrderInput) error {
	if err := requiredText("customer_email", in.CustomerEmail); err != nil {
		return err
	}
	if err := requiredText("item", in.Item); err != nil {
		return err
	}
	return nil
}

func requiredText(field, v string) error {
	// 必須チェック（空白だけも不可）
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s is required", model.ErrInvalidInput, field)
	}
	// PostgreSQLのtextはNUL(0x00)を保存できない
	if strings.ContainsRune(v, 0) {
		return fmt.Errorf("%w: %s must not contain NUL characters", model.ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(v) > maxFieldLen {
		return fmt.Errorf("%w: %s must be at most %d characters", model.ErrInvalidInput, field, maxFieldLen)
	}
	return nil
}

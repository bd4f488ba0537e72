package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"SafeCall/internal/form"
	pkgerrors "SafeCall/pkg/errors"
	"SafeCall/pkg/logger"
	"SafeCall/utils"
)

const DefaultSignUpDelay = time.Second

// SignUpResult 模拟注册成功后的返回，不会保存任何账号
type SignUpResult struct {
	CreatedAt time.Time `json:"created_at"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
}

// SignUpService 注册表单的校验与模拟提交。同一时刻只允许一次提交。
type SignUpService struct {
	delay time.Duration
	now   func() time.Time

	mu         sync.Mutex
	submitting bool
}

// NewSignUpService delay 为 0 时立即完成，负数使用 DefaultSignUpDelay
func NewSignUpService(delay time.Duration) *SignUpService {
	if delay < 0 {
		delay = DefaultSignUpDelay
	}
	return &SignUpService{delay: delay, now: time.Now}
}

// Validate 只做校验，返回的 Draft 保留全部输入与字段错误
func (s *SignUpService) Validate(values form.Values) (*form.Draft, error) {
	draft := form.FromValues(form.SignUpSchema, values)
	return draft, draft.Validate()
}

// Submitting 是否有进行中的提交
func (s *SignUpService) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.submitting
}

// Submit 校验通过后模拟一次耗时的账号创建
func (s *SignUpService) Submit(ctx context.Context, values form.Values) (SignUpResult, error) {
	draft, err := s.Validate(values)
	if err != nil {
		return SignUpResult{}, err
	}

	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return SignUpResult{}, pkgerrors.SignUpInProgress
	}
	s.submitting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
		return SignUpResult{}, ctx.Err()
	}

	result := SignUpResult{
		CreatedAt: s.now(),
		FullName:  draft.Value(form.FieldFullName),
		Email:     draft.Value(form.FieldEmail),
		Message:   "Account created successfully",
	}
	logger.Logger.Info("Sign-up simulated",
		zap.String("email", result.Email),
		zap.String("phone_masked", utils.MaskPhone(draft.Value(form.FieldPhone))),
	)
	return result, nil
}

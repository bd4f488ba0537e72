package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"SafeCall/internal/form"
	"SafeCall/internal/model"
	pkgerrors "SafeCall/pkg/errors"
	"SafeCall/pkg/logger"
	"SafeCall/pkg/metrics"
	"SafeCall/pkg/snowflake"
	"SafeCall/utils"
)

// 分配 ID 时与已有 ID 冲突的最大重试次数
const maxIDAttempts = 5

// IDGenerator 生成联系人 ID
type IDGenerator interface {
	NextID() (string, error)
}

// 会话初始化时预置的两个联系人
var seedContacts = []model.Contact{
	{ID: "1", Name: "John Doe", Relationship: "Family", Phone: "555-0123"},
	{ID: "2", Name: "Jane Smith", Relationship: "Friend", Phone: "555-0456"},
}

type ContactStoreOption func(*ContactStore)

func WithIDGenerator(gen IDGenerator) ContactStoreOption {
	return func(s *ContactStore) {
		s.ids = gen
	}
}

// WithoutSeed 创建空的联系人列表
func WithoutSeed() ContactStoreOption {
	return func(s *ContactStore) {
		s.contacts = s.contacts[:0]
	}
}

func WithContactClock(now func() time.Time) ContactStoreOption {
	return func(s *ContactStore) {
		s.now = now
	}
}

// ContactStore 会话内的紧急联系人列表，按插入顺序保存。
// Add 和 Remove 是唯一的修改入口。
type ContactStore struct {
	mu       sync.RWMutex
	contacts []model.Contact
	ids      IDGenerator
	now      func() time.Time
}

func NewContactStore(opts ...ContactStoreOption) *ContactStore {
	s := &ContactStore{
		contacts: make([]model.Contact, 0, len(seedContacts)),
		now:      time.Now,
	}
	for _, c := range seedContacts {
		s.contacts = append(s.contacts, c)
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.ids == nil {
		if gen := snowflake.Default(); gen != nil {
			s.ids = gen
		} else {
			s.ids = &millisIDs{now: s.now}
		}
	}

	createdAt := s.now()
	for i := range s.contacts {
		if s.contacts[i].CreatedAt.IsZero() {
			s.contacts[i].CreatedAt = createdAt
		}
	}

	return s
}

// Add 校验 name 与 phone 非空后追加联系人；失败时列表不变。
func (s *ContactStore) Add(ctx context.Context, draft model.ContactDraft) (model.Contact, error) {
	name := strings.TrimSpace(draft.Name)
	phone := strings.TrimSpace(draft.Phone)

	fe := pkgerrors.NewFieldErrors(pkgerrors.ContactDraftInvalid)
	if res := utils.Required("Full name", name); !res.OK {
		fe.Add(form.FieldName, res.Message)
	}
	if res := utils.Required("Phone number", phone); !res.OK {
		fe.Add(form.FieldPhone, res.Message)
	}
	if err := fe.OrNil(); err != nil {
		for _, field := range fe.Names() {
			metrics.GetMetrics().RecordContactRejected(ctx, field)
		}
		return model.Contact{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.nextIDLocked()
	if err != nil {
		return model.Contact{}, err
	}

	contact := model.Contact{
		ID:           id,
		Name:         name,
		Relationship: strings.TrimSpace(draft.Relationship),
		Phone:        phone,
		CreatedAt:    s.now(),
	}
	s.contacts = append(s.contacts, contact)

	metrics.GetMetrics().RecordContactAdded(ctx)
	logger.Logger.Info("Contact added",
		zap.String("contact_id", contact.ID),
		zap.String("phone_masked", utils.MaskPhone(contact.Phone)),
		zap.Int("total", len(s.contacts)),
	)

	return contact, nil
}

func (s *ContactStore) nextIDLocked() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id, err := s.ids.NextID()
		if err != nil {
			return "", fmt.Errorf("failed to generate contact id: %w", err)
		}
		if s.indexLocked(id) < 0 {
			return id, nil
		}
		logger.Logger.Warn("Contact id collision, retrying",
			zap.String("contact_id", id),
			zap.Int("attempt", attempt+1),
		)
	}
	return "", pkgerrors.ContactIDExhausted
}

func (s *ContactStore) indexLocked(id string) int {
	for i, c := range s.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Remove 删除指定联系人；不存在时什么都不做。返回是否真的删除了记录。
func (s *ContactStore) Remove(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		logger.Logger.Debug("Contact already absent", zap.String("contact_id", id))
		return false
	}

	next := make([]model.Contact, 0, len(s.contacts)-1)
	next = append(next, s.contacts[:idx]...)
	next = append(next, s.contacts[idx+1:]...)
	s.contacts = next

	metrics.GetMetrics().RecordContactRemoved(ctx)
	logger.Logger.Info("Contact deleted",
		zap.String("contact_id", id),
		zap.Int("total", len(s.contacts)),
	)
	return true
}

// List 返回按插入顺序排列的快照，最新的在最后
func (s *ContactStore) List() []model.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Get 按 ID 查找联系人
func (s *ContactStore) Get(id string) (model.Contact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexLocked(id); idx >= 0 {
		return s.contacts[idx], true
	}
	return model.Contact{}, false
}

func (s *ContactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.contacts)
}

// millisIDs 未初始化 snowflake 时的后备方案：毫秒时间戳，严格递增
type millisIDs struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func (g *millisIDs) NextID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return strconv.FormatInt(id, 10), nil
}

package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/pagination"
	"github.com/sangkips/retail-pos/pkg/utils"
	"github.com/shopspring/decimal"
)

const defaultMemberLevel = "Level 1"

// MemberService manages loyalty members
type MemberService struct {
	docs  *Documents
	clock Clock
}

// NewMemberService creates a new member service
func NewMemberService(docs *Documents, clock Clock) *MemberService {
	return &MemberService{docs: docs, clock: clock}
}

// MemberInput represents the create/update member input
type MemberInput struct {
	ID          string
	Barcode     string
	Name        string
	Address     string
	City        string
	Phone       string
	NPWP        string
	Deposit     decimal.Decimal
	CreditLimit decimal.Decimal
	Level       string
	Points      *int64
	IsActive    *bool
}

// ListMembers returns members matching search by id, name or phone
func (s *MemberService) ListMembers(ctx context.Context, search string, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Member], error) {
	search = strings.ToLower(strings.TrimSpace(search))
	var items []entity.Member
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		for _, m := range doc.Members {
			if search == "" ||
				strings.Contains(strings.ToLower(m.ID), search) ||
				strings.Contains(strings.ToLower(m.Name), search) ||
				strings.Contains(m.Phone, search) {
				items = append(items, m)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(items, params), nil
}

// GetMember retrieves a member by id
func (s *MemberService) GetMember(ctx context.Context, id string) (*entity.Member, error) {
	var member *entity.Member
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		m, ok := doc.FindMember(id)
		if !ok {
			return apperror.NewNotFoundError("Member")
		}
		found := *m
		member = &found
		return nil
	})
	return member, err
}

// CreateMember registers a member. An empty id is assigned the next C0001
// style number; level defaults to "Level 1" and membership runs one year.
func (s *MemberService) CreateMember(ctx context.Context, input *MemberInput) (*entity.Member, error) {
	now := s.clock.now()
	member := entity.Member{
		ID:               strings.TrimSpace(input.ID),
		Barcode:          input.Barcode,
		Name:             strings.TrimSpace(input.Name),
		Address:          input.Address,
		City:             input.City,
		Phone:            strings.TrimSpace(input.Phone),
		NPWP:             input.NPWP,
		RegistrationDate: now,
		Deposit:          input.Deposit,
		CreditLimit:      input.CreditLimit,
		Level:            input.Level,
		ExpiryDate:       now.AddDate(1, 0, 0),
		IsActive:         true,
	}
	if member.Level == "" {
		member.Level = defaultMemberLevel
	}
	if input.Points != nil {
		member.Points = *input.Points
	}
	if input.IsActive != nil {
		member.IsActive = *input.IsActive
	}
	if err := validateStruct(&member); err != nil {
		return nil, err
	}

	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		if member.ID == "" {
			member.ID = nextMemberID(doc.Members)
		} else if _, exists := doc.FindMember(member.ID); exists {
			return apperror.NewConflictError("Member id already exists")
		}
		doc.Members = append(doc.Members, member)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// UpdateMember edits a member's profile. Registration and expiry dates are kept.
func (s *MemberService) UpdateMember(ctx context.Context, id string, input *MemberInput) (*entity.Member, error) {
	var updated entity.Member
	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		m, ok := doc.FindMember(id)
		if !ok {
			return apperror.NewNotFoundError("Member")
		}
		next := *m
		next.Barcode = input.Barcode
		next.Name = strings.TrimSpace(input.Name)
		next.Address = input.Address
		next.City = input.City
		next.Phone = strings.TrimSpace(input.Phone)
		next.NPWP = input.NPWP
		next.Deposit = input.Deposit
		next.CreditLimit = input.CreditLimit
		if input.Level != "" {
			next.Level = input.Level
		}
		if input.Points != nil {
			next.Points = *input.Points
		}
		if input.IsActive != nil {
			next.IsActive = *input.IsActive
		}
		if err := validateStruct(&next); err != nil {
			return err
		}
		*m = next
		updated = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMember removes a member
func (s *MemberService) DeleteMember(ctx context.Context, id string) error {
	return s.docs.Update(ctx, func(doc *entity.Document) error {
		for i := range doc.Members {
			if doc.Members[i].ID == id {
				doc.Members = append(doc.Members[:i], doc.Members[i+1:]...)
				return nil
			}
		}
		return apperror.NewNotFoundError("Member")
	})
}

// nextMemberID returns C followed by one more than the highest numeric suffix in use.
func nextMemberID(members []entity.Member) string {
	highest := 0
	for _, m := range members {
		if !strings.HasPrefix(m.ID, "C") {
			continue
		}
		if n, err := strconv.Atoi(m.ID[1:]); err == nil && n > highest {
			highest = n
		}
	}
	return utils.SequentialID("C", highest+1, 4)
}

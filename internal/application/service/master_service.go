package service

import (
	"context"
	"strings"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/utils"
)

// MasterDataService manages the small reference collections: product
// groups, suppliers, salesmen and banks.
type MasterDataService struct {
	docs *Documents
}

// NewMasterDataService creates a new master data service
func NewMasterDataService(docs *Documents) *MasterDataService {
	return &MasterDataService{docs: docs}
}

// ListGroups returns every product group
func (s *MasterDataService) ListGroups(ctx context.Context) ([]entity.ProductGroup, error) {
	var out []entity.ProductGroup
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		out = append([]entity.ProductGroup{}, doc.ProductGroups...)
		return nil
	})
	return out, err
}

// SaveGroup creates the group, or renames it when the id exists
func (s *MasterDataService) SaveGroup(ctx context.Context, group entity.ProductGroup) (*entity.ProductGroup, error) {
	group.ID = strings.TrimSpace(group.ID)
	group.Name = strings.TrimSpace(group.Name)
	if err := validateStruct(&group); err != nil {
		return nil, err
	}
	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		for i := range doc.ProductGroups {
			if doc.ProductGroups[i].ID == group.ID {
				doc.ProductGroups[i] = group
				return nil
			}
		}
		doc.ProductGroups = append(doc.ProductGroups, group)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteGroup removes a group that no product belongs to
func (s *MasterDataService) DeleteGroup(ctx context.Context, id string) error {
	return s.docs.Update(ctx, func(doc *entity.Document) error {
		for _, p := range doc.Products {
			if p.GroupID == id {
				return apperror.NewConflictError("Group is still used by product " + p.ID)
			}
		}
		for i := range doc.ProductGroups {
			if doc.ProductGroups[i].ID == id {
				doc.ProductGroups = append(doc.ProductGroups[:i], doc.ProductGroups[i+1:]...)
				return nil
			}
		}
		return apperror.NewNotFoundError("Product group")
	})
}

// ListSuppliers returns every supplier
func (s *MasterDataService) ListSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	var out []entity.Supplier
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		out = append([]entity.Supplier{}, doc.Suppliers...)
		return nil
	})
	return out, err
}

// SaveSupplier creates a supplier (an empty id is generated) or updates it
func (s *MasterDataService) SaveSupplier(ctx context.Context, supplier entity.Supplier) (*entity.Supplier, error) {
	supplier.Name = strings.TrimSpace(supplier.Name)
	if err := validateStruct(&supplier); err != nil {
		return nil, err
	}
	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		if supplier.ID == "" {
			supplier.ID = "sup-" + utils.NewID()[:8]
		}
		for i := range doc.Suppliers {
			if doc.Suppliers[i].ID == supplier.ID {
				doc.Suppliers[i] = supplier
				return nil
			}
		}
		doc.Suppliers = append(doc.Suppliers, supplier)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// DeleteSupplier removes a supplier
func (s *MasterDataService) DeleteSupplier(ctx context.Context, id string) error {
	return s.docs.Update(ctx, func(doc *entity.Document) error {
		for i := range doc.Suppliers {
			if doc.Suppliers[i].ID == id {
				doc.Suppliers = append(doc.Suppliers[:i], doc.Suppliers[i+1:]...)
				return nil
			}
		}
		return apperror.NewNotFoundError("Supplier")
	})
}

// ListSalesmen returns every salesman
func (s *MasterDataService) ListSalesmen(ctx context.Context) ([]entity.Salesman, error) {
	var out []entity.Salesman
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		out = append([]entity.Salesman{}, doc.Salesmen...)
		return nil
	})
	return out, err
}

// SaveSalesman creates or updates a salesman
func (s *MasterDataService) SaveSalesman(ctx context.Context, salesman entity.Salesman) (*entity.Salesman, error) {
	salesman.Name = strings.TrimSpace(salesman.Name)
	if salesman.Name == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}
	if salesman.Status == "" {
		salesman.Status = enum.UserStatusActive
	}
	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		if salesman.ID == "" {
			salesman.ID = "sls-" + utils.NewID()[:8]
		}
		for i := range doc.Salesmen {
			if doc.Salesmen[i].ID == salesman.ID {
				doc.Salesmen[i] = salesman
				return nil
			}
		}
		doc.Salesmen = append(doc.Salesmen, salesman)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &salesman, nil
}

// ListBanks returns the accepted banks and e-wallets
func (s *MasterDataService) ListBanks(ctx context.Context) ([]entity.Bank, error) {
	var out []entity.Bank
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		out = append([]entity.Bank{}, doc.Banks...)
		return nil
	})
	return out, err
}

// SaveBank creates or updates a bank or e-wallet
func (s *MasterDataService) SaveBank(ctx context.Context, bank entity.Bank) (*entity.Bank, error) {
	bank.Name = strings.TrimSpace(bank.Name)
	if bank.Name == "" {
		return nil, apperror.NewFieldError("name", "is required")
	}
	if bank.Type == "" {
		bank.Type = "Bank"
	}
	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		if bank.ID == "" {
			bank.ID = strings.ToLower(strings.ReplaceAll(bank.Type, "-", "")) + "-" + utils.NewID()[:8]
		}
		for i := range doc.Banks {
			if doc.Banks[i].ID == bank.ID {
				doc.Banks[i] = bank
				return nil
			}
		}
		doc.Banks = append(doc.Banks, bank)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bank, nil
}
